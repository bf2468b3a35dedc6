// Package kl7 implements the American KL-7 (ADONIS): eight 36-contact rotors
// with a stationary fourth slot, selectable notch rings, independently set
// letter rings, and a feedback loop that squeezes the 36-contact bank down to
// a 26-letter bijection.
package kl7

import (
	"fmt"
	"strings"

	"rotorkit/engine"
	"rotorkit/engine/alphabet"
	"rotorkit/engine/machine"
	"rotorkit/engine/rotor"
)

const contacts = 36

// lettersAlphabet and figuresAlphabet are the shifted keyboard layers.  The
// J key doubles as letter shift and the Z key as figure shift.
const (
	lettersAlphabet = "abcdefghi<klmnopqrstuvwxy>"
	figuresAlphabet = "123456789<0-.,:;()?!=+/zv>"
)

// stationarySlot is the fourth rotor, which carries the wide ring and never
// moves.
const stationarySlot = "kl7_4"

var allSlots = []string{"kl7_1", "kl7_2", "kl7_3", "kl7_4", "kl7_5", "kl7_6", "kl7_7", "kl7_8"}

// movingSlots in bank order, left to right, skipping the stationary slot.
var movingSlots = []string{"kl7_1", "kl7_2", "kl7_3", "kl7_5", "kl7_6", "kl7_7", "kl7_8"}

// Gear is the KL-7 stepping gear.  Each moving rotor advances when the notch
// ring of its right-hand moving neighbour is active; the rightmost rotor
// advances every character.  All notches are sensed before any rotor moves.
type Gear struct {
	*machine.BaseGear
	moving []*machine.Descriptor
}

func notchActive(d *machine.Descriptor) bool {
	return d.Rotor.Ring().NotchAt(d.NotchRingOffset.Value()) != 0
}

func (g *Gear) Step() {
	last := len(g.moving) - 1
	step := make([]bool, len(g.moving))
	for i := range g.moving {
		if i == last {
			step[i] = true
			continue
		}
		step[i] = notchActive(g.moving[i+1])
	}
	for i, d := range g.moving {
		if step[i] {
			d.Rotor.Ring().Step()
		}
	}
}

// Positions renders the eight rotor windows through the letter rings: a
// letter at most positions, a digit or + where the letter ring is blank.
func (g *Gear) Positions() string {
	var b strings.Builder
	for _, slot := range allSlots {
		d := g.Descriptor(slot)
		window := (d.Rotor.Ring().Position() + d.LetterRingOffset.Value()) % contacts
		b.WriteRune(g.Window().Symbol(window))
	}
	return b.String()
}

// SetPositions applies an eight-symbol window string, compensating for each
// rotor's letter ring offset.
func (g *Gear) SetPositions(s string) error {
	runes := []rune(s)
	if len(runes) != len(allSlots) {
		return fmt.Errorf("%w: want %d positions, got %d", engine.ErrConfigInvalid, len(allSlots), len(runes))
	}
	codes := make([]int, len(runes))
	for i, r := range runes {
		code, ok := g.Window().Code(r)
		if !ok {
			return fmt.Errorf("%w: %q is not a rotor position", engine.ErrConfigInvalid, r)
		}
		codes[i] = code
	}
	for i, slot := range allSlots {
		d := g.Descriptor(slot)
		d.Rotor.Ring().SetPosition((codes[i] - d.LetterRingOffset.Value() + contacts) % contacts)
	}
	return nil
}

// New assembles a KL-7 with cores A..H in slots 1..8, notch rings 1..7 on the
// moving rotors and the wide ring on the stationary slot.
func New() (*machine.Machine, error) {
	set := newKL7Set()
	base := machine.NewBaseGear(alphabet.New(windowAlphabet))
	g := &Gear{BaseGear: base}

	notchRing := 1
	for i, slot := range allSlots {
		ringID := WideRing
		if slot != stationarySlot {
			ringID = notchRing
			notchRing++
		}
		d, err := machine.NewSlot(set, slot, RotorA+i, ringID, false)
		if err != nil {
			return nil, err
		}
		d.NotchRingOffset = machine.NewModInt(contacts)
		d.LetterRingOffset = machine.NewModInt(contacts)
		base.AddSlot(d)
		if slot != stationarySlot {
			g.moving = append(g.moving, d)
		}
	}

	rotors := make([]*rotor.Rotor, len(allSlots))
	for i, slot := range allSlots {
		rotors[i] = base.Descriptor(slot).Rotor
	}
	stack := rotor.NewStack(rotors...)
	stack.SetFeedbackPoints([]int{26, 27, 28, 29, 30, 31, 32, 33, 34, 35})
	base.SetStack(stack)

	pair := alphabet.NewShifting(
		alphabet.New(lettersAlphabet),
		alphabet.New(figuresAlphabet),
		alphabet.Latin(),
	)
	m := machine.New(machine.Def{
		Name:         "KL7",
		Variant:      "KL7",
		RotorSetName: set.Name(),
		Gear:         g,
		Keyboard:     pair,
		Printer:      pair,
		Contacts:     26,
		PreStep:      true,
	})
	m.AddRotorSet(set)
	return m, nil
}
