package machine

import (
	"fmt"

	"rotorkit/engine"
	"rotorkit/engine/alphabet"
	"rotorkit/engine/rotor"
)

// SteppingGear is the per-family state machine that advances rotor
// displacements between characters.  A gear owns one descriptor per named
// slot and the stack those rotors are wired into.
type SteppingGear interface {
	// Step advances the gear by one character.
	Step()
	// Reset returns every slot to its post-construction state.
	Reset()
	// Slots returns the slot names in display order (left to right).
	Slots() []string
	// VisibleSlots returns the slot names shown to the operator.
	VisibleSlots() []string
	// Descriptor returns the descriptor for a slot, or nil.
	Descriptor(slot string) *Descriptor
	// Stack returns the contact path the gear's rotors form.
	Stack() *rotor.Stack
	// Positions renders the visible rotor positions as a string.
	Positions() string
	// SetPositions applies a rotor position string.
	SetPositions(s string) error
}

// BaseGear implements the bookkeeping shared by all stepping gears.  Machine
// families embed it and add their Step rule.
type BaseGear struct {
	slots  []string
	byName map[string]*Descriptor
	stack  *rotor.Stack
	window *alphabet.Alphabet
}

// NewBaseGear creates an empty gear whose rotor windows show symbols of the
// given alphabet.
func NewBaseGear(window *alphabet.Alphabet) *BaseGear {
	return &BaseGear{
		byName: make(map[string]*Descriptor),
		window: window,
	}
}

// AddSlot appends a descriptor; slots display in insertion order.
func (g *BaseGear) AddSlot(d *Descriptor) {
	g.slots = append(g.slots, d.Slot)
	g.byName[d.Slot] = d
}

// SetStack wires the gear's rotors into a stack.
func (g *BaseGear) SetStack(s *rotor.Stack) {
	g.stack = s
}

// Stack returns the gear's contact path.
func (g *BaseGear) Stack() *rotor.Stack {
	return g.stack
}

// Slots returns the slot names in display order.
func (g *BaseGear) Slots() []string {
	out := make([]string, len(g.slots))
	copy(out, g.slots)
	return out
}

// VisibleSlots returns the displayed slot names in display order.
func (g *BaseGear) VisibleSlots() []string {
	var out []string
	for _, name := range g.slots {
		if !g.byName[name].Hidden {
			out = append(out, name)
		}
	}
	return out
}

// Descriptor returns the descriptor for a slot, or nil.
func (g *BaseGear) Descriptor(slot string) *Descriptor {
	return g.byName[slot]
}

// Window returns the alphabet used to render rotor positions.
func (g *BaseGear) Window() *alphabet.Alphabet {
	return g.window
}

// Reset zeroes every slot: displacement, ring offset and auxiliary counters.
func (g *BaseGear) Reset() {
	for _, name := range g.slots {
		d := g.byName[name]
		d.Rotor.Ring().SetPosition(0)
		d.Rotor.Ring().SetOffset(0)
		if d.PinWheel != nil {
			d.PinWheel.SetPosition(0)
		}
		if d.NotchRingOffset != nil {
			d.NotchRingOffset.Set(0)
		}
		if d.LetterRingOffset != nil {
			d.LetterRingOffset.Set(0)
		}
	}
}

// Positions renders the visible rotor positions left to right.
func (g *BaseGear) Positions() string {
	out := make([]rune, 0, len(g.slots))
	for _, name := range g.slots {
		d := g.byName[name]
		if d.Hidden {
			continue
		}
		out = append(out, g.window.Symbol(d.Rotor.Ring().Position()))
	}
	return string(out)
}

// SetPositions applies a rotor position string, one window symbol per visible
// slot, left to right.
func (g *BaseGear) SetPositions(s string) error {
	visible := g.VisibleSlots()
	runes := []rune(s)
	if len(runes) != len(visible) {
		return fmt.Errorf("%w: want %d positions, got %d", engine.ErrConfigInvalid, len(visible), len(runes))
	}
	for i, name := range visible {
		code, ok := g.window.Code(runes[i])
		if !ok {
			return fmt.Errorf("%w: %q is not a rotor position", engine.ErrConfigInvalid, runes[i])
		}
		g.byName[name].Rotor.Ring().SetPosition(code)
	}
	return nil
}
