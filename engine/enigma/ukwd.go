package enigma

import (
	"fmt"
	"strings"

	"rotorkit/engine"
	"rotorkit/engine/permutation"
)

// The UKW-D is a rewirable reflector: the operator plugs twelve wire pairs,
// and the contacts for the letters j and y are permanently bridged.  Plug
// positions on the device are labelled along the circumference alphabet
// below (German Air Force notation); Bletchley Park notation labels the same
// contacts with the plain alphabet.
const ukwdCircumference = "yzxwvutsrqponjmlkihgfedcba"

// UKWDWiring builds the reflector involution from twelve plug pairs in
// Bletchley Park notation, e.g. "azbpcxdqetfogshvirknlmuw".  The letters j
// and y must be absent: their pair is fixed.
func UKWDWiring(pairs string) (*permutation.Permutation, error) {
	letters := []rune(strings.ToLower(strings.ReplaceAll(pairs, " ", "")))
	if len(letters) != 24 {
		return nil, fmt.Errorf("%w: UKW-D needs twelve plug pairs, got %d letters", engine.ErrConfigInvalid, len(letters))
	}
	forward := make([]int, 26)
	for i := range forward {
		forward[i] = -1
	}
	forward['j'-'a'] = 'y' - 'a'
	forward['y'-'a'] = 'j' - 'a'
	for i := 0; i < 24; i += 2 {
		a, b := letters[i], letters[i+1]
		if a < 'a' || a > 'z' || b < 'a' || b > 'z' {
			return nil, fmt.Errorf("%w: bad UKW-D plug letter", engine.ErrConfigInvalid)
		}
		ca, cb := int(a-'a'), int(b-'a')
		if forward[ca] != -1 || forward[cb] != -1 || ca == cb {
			return nil, fmt.Errorf("%w: UKW-D plug %c%c reuses a contact", engine.ErrConfigInvalid, a, b)
		}
		forward[ca] = cb
		forward[cb] = ca
	}
	return permutation.New(forward)
}

// UKWDPairs renders a reflector involution back into Bletchley Park plug
// pairs, omitting the fixed jy pair.
func UKWDPairs(p *permutation.Permutation) string {
	var b strings.Builder
	for i := 0; i < 26; i++ {
		partner := p.Apply(i)
		if i == 'j'-'a' || i == 'y'-'a' || partner < i {
			continue
		}
		b.WriteRune(rune('a' + i))
		b.WriteRune(rune('a' + partner))
	}
	return b.String()
}

// BPToGAF relabels UKW-D plug pairs from Bletchley Park notation to German
// Air Force notation through the circumference alphabet.
func BPToGAF(pairs string) string {
	return relabelPairs(pairs, func(c int) rune {
		return rune(ukwdCircumference[c])
	})
}

// GAFToBP relabels UKW-D plug pairs from German Air Force notation to
// Bletchley Park notation.
func GAFToBP(pairs string) string {
	inv := make(map[rune]rune, 26)
	for i, r := range ukwdCircumference {
		inv[r] = rune('a' + i)
	}
	return relabelPairs(pairs, func(c int) rune {
		return inv[rune('a'+c)]
	})
}

func relabelPairs(pairs string, relabel func(c int) rune) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.ReplaceAll(pairs, " ", "")) {
		if r < 'a' || r > 'z' {
			continue
		}
		b.WriteRune(relabel(int(r - 'a')))
	}
	return b.String()
}
