package enigma

import (
	"rotorkit/engine/machine"
)

// ClassicalGear is the lever-driven Enigma stepping mechanism.  The fast
// rotor steps on every character; a rotor at its turnover notch carries its
// left neighbour, and the pawl arrangement makes a middle rotor sitting on
// its own notch step itself together with the slow rotor (the double step).
// The Typex drum bank steps the same way.
type ClassicalGear struct {
	*machine.BaseGear
	fast   string
	middle string
	slow   string
}

// NewClassicalGear wraps a base gear whose named slots form the moving bank.
func NewClassicalGear(base *machine.BaseGear, fast, middle, slow string) *ClassicalGear {
	return &ClassicalGear{BaseGear: base, fast: fast, middle: middle, slow: slow}
}

// Step advances the moving rotors for one character.
func (g *ClassicalGear) Step() {
	fast := g.Descriptor(g.fast).Rotor.Ring()
	middle := g.Descriptor(g.middle).Rotor.Ring()
	slow := g.Descriptor(g.slow).Rotor.Ring()
	if middle.NotchAt(0) != 0 {
		middle.Step()
		slow.Step()
	} else if fast.NotchAt(0) != 0 {
		middle.Step()
	}
	fast.Step()
}

// AbwehrGear is the gear-driven stepping of the Enigma G: a pure odometer
// carry chain with no double step.  The reflector sits at the end of the
// chain and rotates like any other wheel.
type AbwehrGear struct {
	*machine.BaseGear
}

// NewAbwehrGear wraps a base gear with slots fast, middle, slow and ukw.
func NewAbwehrGear(base *machine.BaseGear) *AbwehrGear {
	return &AbwehrGear{BaseGear: base}
}

// Step advances the carry chain for one character.  Carries are sensed
// before any wheel moves.
func (g *AbwehrGear) Step() {
	fast := g.Descriptor("fast").Rotor.Ring()
	middle := g.Descriptor("middle").Rotor.Ring()
	slow := g.Descriptor("slow").Rotor.Ring()
	ukw := g.Descriptor("ukw").Rotor.Ring()

	stepMiddle := fast.NotchAt(0) != 0
	stepSlow := stepMiddle && middle.NotchAt(0) != 0
	stepUKW := stepSlow && slow.NotchAt(0) != 0

	fast.Step()
	if stepMiddle {
		middle.Step()
	}
	if stepSlow {
		slow.Step()
	}
	if stepUKW {
		ukw.Step()
	}
}
