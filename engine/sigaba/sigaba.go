// Package sigaba implements the American SIGABA (ECM Mark II) in its CSP-889
// and CSP-2900 trims: a straight-through cipher bank whose irregular stepping
// is produced by a second rotor maze of five control and five index rotors.
package sigaba

import (
	"fmt"

	"rotorkit/engine"
	"rotorkit/engine/alphabet"
	"rotorkit/engine/machine"
	"rotorkit/engine/rotor"
)

// Variant tags of the family.
const (
	CSP889  = "CSP889"
	CSP2900 = "CSP2900"
)

// plainAlphabet carries a space on the Z contact: the space bar encrypts as
// a letter, and the Z contact decrypts back to a space.
const plainAlphabet = "abcdefghijklmnopqrstuvwxy "

// New assembles a SIGABA with rotors 0..4 in the cipher bank, 5..9 in the
// control bank and index rotors 0..4, all straight in and zeroized.
func New(variant string) (*machine.Machine, error) {
	if variant != CSP889 && variant != CSP2900 {
		return nil, fmt.Errorf("%w: unknown SIGABA variant %q", engine.ErrConfigInvalid, variant)
	}
	set := newSigabaSet()
	base := machine.NewBaseGear(alphabet.Latin())
	g := &Gear{BaseGear: base, csp2900: variant == CSP2900}

	for i, slot := range slotNames("cipher") {
		d, err := machine.NewSlot(set, slot, bigRotorBase+i, 0, false)
		if err != nil {
			return nil, err
		}
		base.AddSlot(d)
		g.cipher = append(g.cipher, d)
	}
	for i, slot := range slotNames("driver") {
		d, err := machine.NewSlot(set, slot, bigRotorBase+5+i, 0, false)
		if err != nil {
			return nil, err
		}
		base.AddSlot(d)
		g.driver = append(g.driver, d)
	}
	for i, slot := range slotNames("index") {
		d, err := machine.NewSlot(set, slot, indexRotorBase+i, 0, false)
		if err != nil {
			return nil, err
		}
		base.AddSlot(d)
		g.index = append(g.index, d)
	}

	rotorsOf := func(descs []*machine.Descriptor) []*rotor.Rotor {
		out := make([]*rotor.Rotor, len(descs))
		for i, d := range descs {
			out[i] = d.Rotor
		}
		return out
	}
	base.SetStack(rotor.NewStack(rotorsOf(g.cipher)...))
	g.driverS = rotor.NewStack(rotorsOf(g.driver)...)
	g.indexS = rotor.NewStack(rotorsOf(g.index)...)

	pair := alphabet.NewAsymmetric(alphabet.New(plainAlphabet), alphabet.Latin())
	m := machine.New(machine.Def{
		Name:         "SIGABA",
		Variant:      variant,
		RotorSetName: set.Name(),
		Gear:         g,
		Keyboard:     pair,
		Printer:      pair,
		Contacts:     26,
	})
	m.AddRotorSet(set)
	return m, nil
}
