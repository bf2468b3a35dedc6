package rotor

// Ring models the notch ring attached to a rotor: a pattern of nonzero
// entries (the notches), a ring offset and the current rotor position.
// Pattern entries are ints rather than booleans because the Nema red wheel
// merges two side-by-side notch rings into per-position two-bit values.
type Ring struct {
	pattern []int
	offset  int
	pos     int
}

// NewRing creates a ring with the given notch pattern at offset 0, position 0.
func NewRing(pattern []int) *Ring {
	p := make([]int, len(pattern))
	copy(p, pattern)
	return &Ring{pattern: p}
}

// EmptyRing creates an all-zero ring of size n for rotors without notches.
func EmptyRing(n int) *Ring {
	return &Ring{pattern: make([]int, n)}
}

// Size returns the number of positions on the ring.
func (r *Ring) Size() int {
	return len(r.pattern)
}

// Position returns the current rotor position (the visible displacement).
func (r *Ring) Position() int {
	return r.pos
}

// SetPosition sets the rotor position, reduced mod ring size.
func (r *Ring) SetPosition(p int) {
	n := len(r.pattern)
	r.pos = ((p % n) + n) % n
}

// Offset returns the ring setting.
func (r *Ring) Offset() int {
	return r.offset
}

// SetOffset sets the ring setting, reduced mod ring size.
func (r *Ring) SetOffset(o int) {
	n := len(r.pattern)
	r.offset = ((o % n) + n) % n
}

// Step advances the rotor position by one.
func (r *Ring) Step() {
	r.pos = (r.pos + 1) % len(r.pattern)
}

// StepBack retreats the rotor position by one.
func (r *Ring) StepBack() {
	n := len(r.pattern)
	r.pos = (r.pos + n - 1) % n
}

// NotchAt reads the pattern at the given probe offset from the current
// position.  A zero value means no notch.
func (r *Ring) NotchAt(probe int) int {
	n := len(r.pattern)
	return r.pattern[((r.pos+probe)%n+n)%n]
}

// Pattern returns a copy of the notch pattern.
func (r *Ring) Pattern() []int {
	p := make([]int, len(r.pattern))
	copy(p, r.pattern)
	return p
}

// SetPattern replaces the notch pattern.  The new pattern must have the same
// size as the old one; a mismatched pattern is ignored.
func (r *Ring) SetPattern(pattern []int) {
	if len(pattern) != len(r.pattern) {
		return
	}
	copy(r.pattern, pattern)
}
