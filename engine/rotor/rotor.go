// Package rotor implements the wired rotor, its notch ring and the rotor
// stack that forms the contact path of a rotor machine.
package rotor

import (
	"rotorkit/engine/permutation"
)

// Rotor couples a wiring core with a notch ring.  The ring carries the two
// positional shifts that make ring setting and rotor position orthogonal:
// with displacement p and ring offset r a contact c travels
//
//	c1  = (c + p - r) mod n
//	c2  = perm(c1)
//	out = (c2 - p + r) mod n
type Rotor struct {
	perm *permutation.Permutation
	ring *Ring
}

// New creates a rotor from a wiring permutation and a ring.  A nil ring is
// replaced by an all-zero ring of matching size.
func New(perm *permutation.Permutation, ring *Ring) *Rotor {
	if ring == nil {
		ring = EmptyRing(perm.Size())
	}
	return &Rotor{perm: perm, ring: ring}
}

// Size returns the number of contacts.
func (r *Rotor) Size() int {
	return r.perm.Size()
}

// Ring returns the rotor's ring.
func (r *Rotor) Ring() *Ring {
	return r.ring
}

// Permutation returns the rotor's wiring core.
func (r *Rotor) Permutation() *permutation.Permutation {
	return r.perm
}

// SetPermutation replaces the wiring core.
func (r *Rotor) SetPermutation(p *permutation.Permutation) {
	r.perm = p
}

// Encrypt maps contact c through the rotor in the forward direction.
func (r *Rotor) Encrypt(c int) int {
	n := r.perm.Size()
	shift := r.ring.Position() - r.ring.Offset()
	c1 := ((c+shift)%n + n) % n
	c2 := r.perm.Apply(c1)
	return ((c2-shift)%n + n) % n
}

// Decrypt maps contact c through the rotor in the reverse direction.
func (r *Rotor) Decrypt(c int) int {
	n := r.perm.Size()
	shift := r.ring.Position() - r.ring.Offset()
	c1 := ((c+shift)%n + n) % n
	c2 := r.perm.ApplyInverse(c1)
	return ((c2-shift)%n + n) % n
}

// ReverseWiring returns the wiring a rotor presents when it is inserted
// inverse: the contact order is reversed on both sides of the core.
func ReverseWiring(p *permutation.Permutation) *permutation.Permutation {
	n := p.Size()
	forward := make([]int, n)
	for i := 0; i < n; i++ {
		forward[i] = (n - p.ApplyInverse((n-i)%n)) % n
	}
	q, _ := permutation.New(forward)
	return q
}
