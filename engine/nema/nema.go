// Package nema implements the Swiss Nema: a reflecting bank of four contact
// wheels gated by interleaved drive wheels and the two-ring red wheel on the
// right.
package nema

import (
	"fmt"

	"rotorkit/engine"
	"rotorkit/engine/alphabet"
	"rotorkit/engine/machine"
	"rotorkit/engine/rotor"
)

// nemaAlphabet labels contact 0 with i, following the etching on the wheels.
const nemaAlphabet = "ijklmnopqrstuvwxyzabcdefgh"

// Notch probes: drive wheels and the red wheel's left ring are read at offset
// 16, the red wheel's right ring at 17.
const (
	probeLeft  = 16
	probeRight = 17
)

// defaultRingOffset is the factory alignment: the ring label in the window
// sits two rows below the wiring benchmark.
const defaultRingOffset = 2

// Machine names of the red wheel issues.
const (
	War      = "war"
	Training = "training"
)

// wheelSlots in display order, wheel 1 (reflector) to wheel 10 (red).
var wheelSlots = []string{
	"reflector", "contact2", "drive3", "contact4", "drive5",
	"contact6", "drive7", "contact8", "drive9", "red",
}

// Gear is the Nema stepping gear.  The red wheel, drive 5 and drive 9 advance
// every character; everything else is gated by a notch read sensed before any
// wheel moves.
type Gear struct {
	*machine.BaseGear
}

func (g *Gear) ring(slot string) *rotor.Ring {
	return g.Descriptor(slot).Rotor.Ring()
}

func (g *Gear) Step() {
	red := g.ring("red")
	drive3 := g.ring("drive3")

	stepContact8 := red.NotchAt(probeRight)&1 != 0
	stepDrive7 := red.NotchAt(probeLeft)&2 != 0
	stepContact6 := g.ring("drive7").NotchAt(probeLeft) != 0
	stepContact4 := g.ring("drive5").NotchAt(probeLeft) != 0
	stepDrive3 := g.ring("drive9").NotchAt(probeLeft) != 0
	gate := drive3.NotchAt(probeLeft) != 0
	stepContact2, stepReflector := gate, gate

	red.Step()
	g.ring("drive9").Step()
	g.ring("drive5").Step()
	if stepContact8 {
		g.ring("contact8").Step()
	}
	if stepDrive7 {
		g.ring("drive7").Step()
	}
	if stepContact6 {
		g.ring("contact6").Step()
	}
	if stepContact4 {
		g.ring("contact4").Step()
	}
	if stepDrive3 {
		drive3.Step()
	}
	if stepContact2 {
		g.ring("contact2").Step()
	}
	if stepReflector {
		g.ring("reflector").Step()
	}
}

// New assembles a Nema with contact wheels A..D in wheels 2..8, drive rings
// 12..15 and the red wheel issue named by variant.
func New(variant string) (*machine.Machine, error) {
	redRing := WarRing
	switch variant {
	case War:
		redRing = WarRing
	case Training:
		redRing = TrainingRing
	default:
		return nil, fmt.Errorf("%w: unknown Nema issue %q", engine.ErrConfigInvalid, variant)
	}

	set := newNemaSet()
	base := machine.NewBaseGear(alphabet.New(nemaAlphabet))
	g := &Gear{BaseGear: base}

	plan := map[string]struct{ rotorID, ringID int }{
		"reflector": {Reflector, 0},
		"contact2":  {ContactA, 0},
		"drive3":    {identityWheel, DriveRingFirst},
		"contact4":  {ContactB, 0},
		"drive5":    {identityWheel, DriveRingFirst + 1},
		"contact6":  {ContactC, 0},
		"drive7":    {identityWheel, DriveRingFirst + 2},
		"contact8":  {ContactD, 0},
		"drive9":    {identityWheel, DriveRingFirst + 3},
		"red":       {identityWheel, redRing},
	}
	for _, slot := range wheelSlots {
		p := plan[slot]
		d, err := machine.NewSlot(set, slot, p.rotorID, p.ringID, false)
		if err != nil {
			return nil, err
		}
		d.Rotor.Ring().SetOffset(defaultRingOffset)
		base.AddSlot(d)
	}

	stack := rotor.NewStack(
		base.Descriptor("contact8").Rotor,
		base.Descriptor("contact6").Rotor,
		base.Descriptor("contact4").Rotor,
		base.Descriptor("contact2").Rotor,
		base.Descriptor("reflector").Rotor,
	)
	stack.SetReflecting(true)
	base.SetStack(stack)

	pair := alphabet.NewSymmetric(alphabet.New(nemaAlphabet))
	m := machine.New(machine.Def{
		Name:         "Nema",
		Variant:      variant,
		RotorSetName: set.Name(),
		Gear:         g,
		Keyboard:     pair,
		Printer:      pair,
		Contacts:     26,
		Reflecting:   true,
		PreStep:      true,
	})
	m.AddRotorSet(set)
	return m, nil
}
