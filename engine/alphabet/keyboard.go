package alphabet

// Keyboard translates input symbols to contacts.  Implementations may carry a
// letters/figures shift state; Commit is invoked once per processed character
// so the state transitions only after a character has actually been committed.
type Keyboard interface {
	ValidEncrypt(r rune) bool
	ValidDecrypt(r rune) bool
	CodeEncrypt(r rune) (int, error)
	CodeDecrypt(r rune) (int, error)
	Commit(code int, encrypting bool)
	Reset()
}

// Printer translates output contacts to symbols.  A shifting printer tracks
// the shift state of the decrypted text and may swallow the shift symbols or
// render them as '<' and '>'.
type Printer interface {
	SymbolEncrypt(code int) string
	SymbolDecrypt(code int) string
	Commit(code int, encrypting bool)
	Reset()
}

// Symmetric is the keyboard/printer pair of machines with a single alphabet
// covering both directions (Enigma, Nema, SG39).
type Symmetric struct {
	alpha *Alphabet
}

// NewSymmetric creates a symmetric keyboard/printer over the alphabet.
func NewSymmetric(alpha *Alphabet) *Symmetric {
	return &Symmetric{alpha: alpha}
}

func (s *Symmetric) ValidEncrypt(r rune) bool { return s.alpha.Contains(r) }
func (s *Symmetric) ValidDecrypt(r rune) bool { return s.alpha.Contains(r) }

func (s *Symmetric) CodeEncrypt(r rune) (int, error) {
	c, ok := s.alpha.Code(r)
	if !ok {
		return 0, invalid(r)
	}
	return c, nil
}

func (s *Symmetric) CodeDecrypt(r rune) (int, error) {
	return s.CodeEncrypt(r)
}

func (s *Symmetric) SymbolEncrypt(code int) string { return string(s.alpha.Symbol(code)) }
func (s *Symmetric) SymbolDecrypt(code int) string { return string(s.alpha.Symbol(code)) }
func (s *Symmetric) Commit(int, bool)              {}
func (s *Symmetric) Reset()                        {}

// Asymmetric is the keyboard/printer pair of machines whose plaintext and
// ciphertext alphabets differ.  The SIGABA maps the space bar to the Z
// contact: its plaintext alphabet carries a space where z would sit, so z is
// rejected on encrypt and decryption prints a space for the Z contact.
type Asymmetric struct {
	plain  *Alphabet
	cipher *Alphabet
}

// NewAsymmetric creates an asymmetric keyboard/printer pair.  Encrypt input
// and decrypt output use plain; decrypt input and encrypt output use cipher.
func NewAsymmetric(plain, cipher *Alphabet) *Asymmetric {
	return &Asymmetric{plain: plain, cipher: cipher}
}

func (a *Asymmetric) ValidEncrypt(r rune) bool { return a.plain.Contains(r) }
func (a *Asymmetric) ValidDecrypt(r rune) bool { return a.cipher.Contains(r) }

func (a *Asymmetric) CodeEncrypt(r rune) (int, error) {
	c, ok := a.plain.Code(r)
	if !ok {
		return 0, invalid(r)
	}
	return c, nil
}

func (a *Asymmetric) CodeDecrypt(r rune) (int, error) {
	c, ok := a.cipher.Code(r)
	if !ok {
		return 0, invalid(r)
	}
	return c, nil
}

func (a *Asymmetric) SymbolEncrypt(code int) string { return string(a.cipher.Symbol(code)) }
func (a *Asymmetric) SymbolDecrypt(code int) string { return string(a.plain.Symbol(code)) }
func (a *Asymmetric) Commit(int, bool)              {}
func (a *Asymmetric) Reset()                        {}
