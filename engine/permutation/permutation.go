// Package permutation implements fixed-size bijections on {0, ..., n-1}.
// A permutation stores its forward vector together with the materialized
// inverse so that apply and apply-inverse are both single table lookups.
package permutation

import (
	"fmt"

	"rotorkit/engine"
)

// Permutation is a bijection on the contacts 0..n-1.
type Permutation struct {
	forward  []int
	backward []int
}

// New creates a permutation from its forward vector.  The vector must be a
// bijection on 0..len(forward)-1.
func New(forward []int) (*Permutation, error) {
	n := len(forward)
	backward := make([]int, n)
	seen := make([]bool, n)
	for i, v := range forward {
		if v < 0 || v >= n || seen[v] {
			return nil, fmt.Errorf("%w: vector of length %d is not a bijection", engine.ErrStateCorrupt, n)
		}
		seen[v] = true
		backward[v] = i
	}
	fwd := make([]int, n)
	copy(fwd, forward)
	return &Permutation{forward: fwd, backward: backward}, nil
}

// Identity returns the identity permutation on n contacts.
func Identity(n int) *Permutation {
	forward := make([]int, n)
	backward := make([]int, n)
	for i := range forward {
		forward[i] = i
		backward[i] = i
	}
	return &Permutation{forward: forward, backward: backward}
}

// Random returns a uniformly random permutation on n contacts.
func Random(rng *engine.Rand, n int) *Permutation {
	p, _ := New(rng.Perm(n))
	return p
}

// RandomInvolution returns a random fixed-point-free involution on n contacts.
// n must be even.
func RandomInvolution(rng *engine.Rand, n int) (*Permutation, error) {
	if n%2 != 0 {
		return nil, fmt.Errorf("%w: involution on odd size %d", engine.ErrNotSupported, n)
	}
	order := rng.Perm(n)
	forward := make([]int, n)
	for i := 0; i < n; i += 2 {
		forward[order[i]] = order[i+1]
		forward[order[i+1]] = order[i]
	}
	p, _ := New(forward)
	return p, nil
}

// Size returns the number of contacts the permutation acts on.
func (p *Permutation) Size() int {
	return len(p.forward)
}

// Apply maps contact i through the permutation.
func (p *Permutation) Apply(i int) int {
	return p.forward[i]
}

// ApplyInverse maps contact i through the inverse permutation.
func (p *Permutation) ApplyInverse(i int) int {
	return p.backward[i]
}

// Compose returns the permutation that applies p first and rhs second.
func (p *Permutation) Compose(rhs *Permutation) (*Permutation, error) {
	if p.Size() != rhs.Size() {
		return nil, fmt.Errorf("%w: %d vs %d", engine.ErrSizeMismatch, p.Size(), rhs.Size())
	}
	forward := make([]int, p.Size())
	for i := range forward {
		forward[i] = rhs.forward[p.forward[i]]
	}
	return New(forward)
}

// Invert swaps the permutation with its inverse in place.
func (p *Permutation) Invert() {
	p.forward, p.backward = p.backward, p.forward
}

// Inverse returns a new permutation that is the inverse of p.
func (p *Permutation) Inverse() *Permutation {
	q := p.Clone()
	q.Invert()
	return q
}

// Clone returns an independent copy of p.
func (p *Permutation) Clone() *Permutation {
	forward := make([]int, len(p.forward))
	backward := make([]int, len(p.backward))
	copy(forward, p.forward)
	copy(backward, p.backward)
	return &Permutation{forward: forward, backward: backward}
}

// Vector returns a copy of the forward vector.
func (p *Permutation) Vector() []int {
	v := make([]int, len(p.forward))
	copy(v, p.forward)
	return v
}

// IsInvolution reports whether applying p twice is the identity.
func (p *Permutation) IsInvolution() bool {
	for i, v := range p.forward {
		if p.forward[v] != i {
			return false
		}
	}
	return true
}

// HasFixedPoint reports whether any contact maps to itself.
func (p *Permutation) HasFixedPoint() bool {
	for i, v := range p.forward {
		if i == v {
			return true
		}
	}
	return false
}

// CycleStructure returns the cycles of p, each cycle starting at its smallest
// element, ordered by that element.
func (p *Permutation) CycleStructure() [][]int {
	n := len(p.forward)
	seen := make([]bool, n)
	var cycles [][]int
	for i := 0; i < n; i++ {
		if seen[i] {
			continue
		}
		cycle := []int{i}
		seen[i] = true
		for j := p.forward[i]; j != i; j = p.forward[j] {
			seen[j] = true
			cycle = append(cycle, j)
		}
		cycles = append(cycles, cycle)
	}
	return cycles
}
