package machine

import (
	"fmt"

	"rotorkit/engine"
	"rotorkit/engine/rotor"
	"rotorkit/engine/rotorset"
)

// ModInt is a modular counter used for the per-rotor auxiliary state of the
// non-trivial stepping gears (notch ring offsets, letter ring offsets).
type ModInt struct {
	mod int
	val int
}

// NewModInt creates a counter mod m starting at zero.
func NewModInt(mod int) *ModInt {
	return &ModInt{mod: mod}
}

// Value returns the current value.
func (m *ModInt) Value() int {
	return m.val
}

// Set stores v reduced mod m.
func (m *ModInt) Set(v int) {
	m.val = ((v % m.mod) + m.mod) % m.mod
}

// Inc advances the counter by one.
func (m *ModInt) Inc() {
	m.val = (m.val + 1) % m.mod
}

// Dec retreats the counter by one.
func (m *ModInt) Dec() {
	m.val = (m.val + m.mod - 1) % m.mod
}

// Mod returns the modulus.
func (m *ModInt) Mod() int {
	return m.mod
}

// Pinwheel is a Hagelin-style wheel whose circumferential pins are active or
// inactive and which advances every character.
type Pinwheel struct {
	pins []bool
	pos  int
}

// NewPinwheel creates a pinwheel of the given length with all pins inactive.
func NewPinwheel(length int) *Pinwheel {
	return &Pinwheel{pins: make([]bool, length)}
}

// Len returns the number of pin positions.
func (p *Pinwheel) Len() int {
	return len(p.pins)
}

// SetPins replaces the pin pattern.
func (p *Pinwheel) SetPins(pins []bool) error {
	if len(pins) != len(p.pins) {
		return fmt.Errorf("%w: pinwheel expects %d pins, got %d", engine.ErrConfigInvalid, len(p.pins), len(pins))
	}
	copy(p.pins, pins)
	return nil
}

// Pins returns a copy of the pin pattern.
func (p *Pinwheel) Pins() []bool {
	out := make([]bool, len(p.pins))
	copy(out, p.pins)
	return out
}

// Position returns the current wheel position.
func (p *Pinwheel) Position() int {
	return p.pos
}

// SetPosition sets the wheel position, reduced mod the wheel length.
func (p *Pinwheel) SetPosition(pos int) {
	n := len(p.pins)
	p.pos = ((pos % n) + n) % n
}

// Step advances the wheel by one position.
func (p *Pinwheel) Step() {
	p.pos = (p.pos + 1) % len(p.pins)
}

// Active reports whether the pin at the current position is active.
func (p *Pinwheel) Active() bool {
	return p.pins[p.pos]
}

// Descriptor carries everything the stepping gear knows about one rotor slot.
// The optional fields hold the auxiliary counters the non-trivial steppers
// need; a machine family sets exactly the ones it uses.
type Descriptor struct {
	Slot          string
	RotorID       int
	RingID        int
	Rotor         *rotor.Rotor
	InsertInverse bool
	Hidden        bool

	// PinWheel drives the SG39 stepping of this slot.
	PinWheel *Pinwheel
	// NotchRingOffset rotates a KL-7 notch ring against the wiring core.
	NotchRingOffset *ModInt
	// LetterRingOffset rotates a KL-7 letter ring against the wiring core.
	LetterRingOffset *ModInt
}

// NewSlot builds a slot descriptor from catalogue entries.  A ring id absent
// from the set yields a notchless ring.
func NewSlot(set *rotorset.Set, slot string, rotorID, ringID int, hidden bool) (*Descriptor, error) {
	perm, err := set.Rotor(rotorID)
	if err != nil {
		return nil, err
	}
	var ring *rotor.Ring
	if set.HasRing(ringID) {
		pattern, err := set.RingPattern(ringID)
		if err != nil {
			return nil, err
		}
		ring = rotor.NewRing(pattern)
	} else {
		ring = rotor.EmptyRing(perm.Size())
	}
	return &Descriptor{
		Slot:    slot,
		RotorID: rotorID,
		RingID:  ringID,
		Rotor:   rotor.New(perm, ring),
		Hidden:  hidden,
	}, nil
}
