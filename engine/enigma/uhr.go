package enigma

import (
	"fmt"
	"strings"

	"rotorkit/engine"
)

// uhrWiring is the fixed wiring of the Uhr scrambler disc, outer to inner
// contact at dial position 0.  Red plug k puts its thick pin on outer contact
// 4k and its thin pin on 4k+2; the white plugs sit on the inner contacts the
// same way, attached in the scrambled slot order derived below.
var uhrWiring = [40]int{
	26, 11, 24, 21, 2, 31, 0, 25, 30, 39,
	28, 13, 22, 35, 20, 37, 6, 23, 4, 33,
	34, 19, 32, 9, 18, 7, 16, 17, 38, 3,
	36, 1, 10, 27, 8, 29, 14, 15, 12, 5,
}

// Uhr is the plugboard scrambler attachment: ten red plug wires and ten
// black/white plug wires connected through a 40-contact disc rotated by a
// dial.  Current always enters a plug's thick pin and leaves a thin pin, so
// the letter map in the keyboard direction is generally not an involution;
// only dial positions divisible by four line the pins up into plain plug
// pairs, with position 0 reproducing the cabled pairs themselves.  The dial
// accepts 0..39 although the device was operated on even positions.
type Uhr struct {
	dial      int
	red       [10]int // letter codes cabled to the red plugs, in plug order
	white     [10]int // letter codes cabled to the black/white plugs
	wiringInv [40]int
	pi        [10]int // inner slot of white plug k at dial 0
	piInv     [10]int
	forward   [26]int
	backward  [26]int
}

// NewUhr creates an Uhr from its cabling: a 20-letter string of ten plugs,
// each plug a red-pin letter followed by its black-pin letter.  The order of
// the two letters matters.
func NewUhr(cabling string) (*Uhr, error) {
	u := &Uhr{}
	for i, v := range uhrWiring {
		u.wiringInv[v] = i
	}
	for k := 0; k < 10; k++ {
		u.pi[k] = (uhrWiring[4*k] - 2) / 4
	}
	for k, v := range u.pi {
		u.piInv[v] = k
	}
	if err := u.SetCabling(cabling); err != nil {
		return nil, err
	}
	return u, nil
}

// SetCabling replaces the plug cabling.  Exactly ten plugs over twenty
// distinct letters are required.
func (u *Uhr) SetCabling(cabling string) error {
	letters := []rune(strings.ToLower(cabling))
	if len(letters) != 20 {
		return fmt.Errorf("%w: Uhr needs exactly ten plugs, got %d letters", engine.ErrConfigInvalid, len(letters))
	}
	seen := make(map[rune]bool, 20)
	var red, white [10]int
	for i, r := range letters {
		if r < 'a' || r > 'z' || seen[r] {
			return fmt.Errorf("%w: bad Uhr cabling letter %q", engine.ErrConfigInvalid, r)
		}
		seen[r] = true
		if i%2 == 0 {
			red[i/2] = int(r - 'a')
		} else {
			white[i/2] = int(r - 'a')
		}
	}
	u.red, u.white = red, white
	u.rebuild()
	return nil
}

// SetDial turns the dial to position d.
func (u *Uhr) SetDial(d int) error {
	if d < 0 || d > 39 {
		return fmt.Errorf("%w: Uhr dial %d outside 0..39", engine.ErrConfigInvalid, d)
	}
	u.dial = d
	u.rebuild()
	return nil
}

// Dial returns the dial position.
func (u *Uhr) Dial() int {
	return u.dial
}

// Cabling renders the plug cabling back into its 20-letter form.
func (u *Uhr) Cabling() string {
	out := make([]rune, 0, 20)
	for k := 0; k < 10; k++ {
		out = append(out, rune('a'+u.red[k]), rune('a'+u.white[k]))
	}
	return string(out)
}

// rebuild recomputes the letter maps for the current dial and cabling.
// The disc wiring maps every thick pin to some thin pin at every dial
// position, so the letter map is a bijection by construction; unplugged
// letters pass straight through.
func (u *Uhr) rebuild() {
	for i := range u.forward {
		u.forward[i] = i
	}
	for k := 0; k < 10; k++ {
		// Red thick pin, through the disc, onto a white thin pin.
		inner := ((uhrWiring[(4*k+u.dial)%40] - u.dial) % 40 + 40) % 40
		u.forward[u.red[k]] = u.white[u.piInv[(inner-2)/4]]
	}
	for j := 0; j < 10; j++ {
		// White thick pin, back through the disc, onto a red thin pin.
		outer := ((u.wiringInv[(4*u.pi[j]+u.dial)%40] - u.dial) % 40 + 40) % 40
		u.forward[u.white[j]] = u.red[(outer-2)/4]
	}
	for i, v := range u.forward {
		u.backward[v] = i
	}
}

// Encrypt maps a plugboard contact towards the entry wheel.
func (u *Uhr) Encrypt(c int) int {
	return u.forward[c]
}

// Decrypt maps a contact coming back from the entry wheel.  The return
// current traverses the same wires in reverse, so the machine as a whole
// stays self-reciprocal even though the letter map is not an involution.
func (u *Uhr) Decrypt(c int) int {
	return u.backward[c]
}
