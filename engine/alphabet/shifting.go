package alphabet

// ShiftState is the letters/figures state of a shifting keyboard or printer.
type ShiftState int

const (
	// Letters selects the letters alphabet.
	Letters ShiftState = iota
	// Figures selects the figures alphabet.
	Figures
)

// Shifting is the keyboard/printer pair of machines with letter and figure
// shift keys (Typex, KL-7).  Three alphabets are involved: a letters
// plaintext alphabet, a figures plaintext alphabet and a ciphertext alphabet.
// Both plaintext alphabets carry the letter-shift symbol '<' at ltrCode and
// the figure-shift symbol '>' at figCode; reading or producing one of these
// codes transitions the shift state after the character is committed.
type Shifting struct {
	letters *Alphabet
	figures *Alphabet
	cipher  *Alphabet
	ltrCode int
	figCode int

	// ShowShifts makes the printer render the shift codes as '<' and '>'
	// on decrypt instead of swallowing them.
	ShowShifts bool

	keyState   ShiftState
	printState ShiftState
}

// NewShifting creates a shifting keyboard/printer pair.  The shift codes are
// taken from the position of '<' and '>' in the letters alphabet.
func NewShifting(letters, figures, cipher *Alphabet) *Shifting {
	ltr, _ := letters.Code('<')
	fig, _ := letters.Code('>')
	return &Shifting{
		letters: letters,
		figures: figures,
		cipher:  cipher,
		ltrCode: ltr,
		figCode: fig,
	}
}

// State returns the current keyboard shift state.
func (s *Shifting) State() ShiftState {
	return s.keyState
}

func (s *Shifting) active() *Alphabet {
	if s.keyState == Figures {
		return s.figures
	}
	return s.letters
}

func (s *Shifting) printActive() *Alphabet {
	if s.printState == Figures {
		return s.figures
	}
	return s.letters
}

func (s *Shifting) ValidEncrypt(r rune) bool { return s.active().Contains(r) }
func (s *Shifting) ValidDecrypt(r rune) bool { return s.cipher.Contains(r) }

func (s *Shifting) CodeEncrypt(r rune) (int, error) {
	c, ok := s.active().Code(r)
	if !ok {
		return 0, invalid(r)
	}
	return c, nil
}

func (s *Shifting) CodeDecrypt(r rune) (int, error) {
	c, ok := s.cipher.Code(r)
	if !ok {
		return 0, invalid(r)
	}
	return c, nil
}

func (s *Shifting) SymbolEncrypt(code int) string {
	return string(s.cipher.Symbol(code))
}

func (s *Shifting) SymbolDecrypt(code int) string {
	if code == s.ltrCode || code == s.figCode {
		if s.ShowShifts {
			return string(s.printActive().Symbol(code))
		}
		return ""
	}
	return string(s.printActive().Symbol(code))
}

// Commit transitions the shift state after a character has been processed.
// On encrypt the keyboard state follows the plaintext codes that were typed;
// on decrypt the printer state follows the plaintext codes that came out.
func (s *Shifting) Commit(code int, encrypting bool) {
	state := &s.printState
	if encrypting {
		state = &s.keyState
	}
	switch code {
	case s.ltrCode:
		*state = Letters
	case s.figCode:
		*state = Figures
	}
}

// Reset returns both shift states to letters.
func (s *Shifting) Reset() {
	s.keyState = Letters
	s.printState = Letters
}
