// Package rotorset implements the named catalogues of rotor wirings and ring
// patterns that machines draw from, including randomization, slicing,
// relabelling and the rotor-set file format.
package rotorset

import (
	"fmt"
	"sort"

	"rotorkit/engine"
	"rotorkit/engine/permutation"
)

// Set is a catalogue mapping numeric rotor ids to permutation vectors and
// numeric ring ids to notch patterns.  Ids marked const are immutable under
// randomization (entry wheels, known reflectors).
type Set struct {
	name   string
	perms  map[int][]int
	rings  map[int][]int
	consts map[int]bool
}

// New creates an empty rotor set.
func New(name string) *Set {
	return &Set{
		name:   name,
		perms:  make(map[int][]int),
		rings:  make(map[int][]int),
		consts: make(map[int]bool),
	}
}

// Name returns the set's name.
func (s *Set) Name() string {
	return s.name
}

// AddRotor registers a rotor wiring under the given id.
func (s *Set) AddRotor(id int, wiring []int, isConst bool) {
	v := make([]int, len(wiring))
	copy(v, wiring)
	s.perms[id] = v
	if isConst {
		s.consts[id] = true
	} else {
		delete(s.consts, id)
	}
}

// AddRing registers a ring pattern under the given id.
func (s *Set) AddRing(id int, pattern []int) {
	v := make([]int, len(pattern))
	copy(v, pattern)
	s.rings[id] = v
}

// Rotor returns a fresh permutation for the rotor id.
func (s *Set) Rotor(id int) (*permutation.Permutation, error) {
	wiring, ok := s.perms[id]
	if !ok {
		return nil, fmt.Errorf("%w: rotor id %d not in set %s", engine.ErrConfigInvalid, id, s.name)
	}
	return permutation.New(wiring)
}

// RingPattern returns a copy of the ring pattern for the ring id.
func (s *Set) RingPattern(id int) ([]int, error) {
	pattern, ok := s.rings[id]
	if !ok {
		return nil, fmt.Errorf("%w: ring id %d not in set %s", engine.ErrConfigInvalid, id, s.name)
	}
	v := make([]int, len(pattern))
	copy(v, pattern)
	return v, nil
}

// HasRotor reports whether the rotor id is in the set.
func (s *Set) HasRotor(id int) bool {
	_, ok := s.perms[id]
	return ok
}

// HasRing reports whether the ring id is in the set.
func (s *Set) HasRing(id int) bool {
	_, ok := s.rings[id]
	return ok
}

// IsConst reports whether the rotor id is immutable under randomization.
func (s *Set) IsConst(id int) bool {
	return s.consts[id]
}

// RotorIDs returns the rotor ids in ascending order.
func (s *Set) RotorIDs() []int {
	ids := make([]int, 0, len(s.perms))
	for id := range s.perms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// RingIDs returns the ring ids in ascending order.
func (s *Set) RingIDs() []int {
	ids := make([]int, 0, len(s.rings))
	for id := range s.rings {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Slice copies the listed rotor and ring ids into a new set.  Unknown ids are
// skipped.
func (s *Set) Slice(name string, rotorIDs, ringIDs []int) *Set {
	out := New(name)
	for _, id := range rotorIDs {
		if wiring, ok := s.perms[id]; ok {
			out.AddRotor(id, wiring, s.consts[id])
		}
	}
	for _, id := range ringIDs {
		if pattern, ok := s.rings[id]; ok {
			out.AddRing(id, pattern)
		}
	}
	return out
}

// Relabel copies the set into a new one with rotor and ring ids remapped
// through mapping.  Ids absent from the mapping keep their value.  The
// remapped ids must stay unique.
func (s *Set) Relabel(name string, mapping map[int]int) (*Set, error) {
	out := New(name)
	remap := func(id int) int {
		if to, ok := mapping[id]; ok {
			return to
		}
		return id
	}
	for id, wiring := range s.perms {
		to := remap(id)
		if out.HasRotor(to) {
			return nil, fmt.Errorf("%w: relabel collides on rotor id %d", engine.ErrConfigInvalid, to)
		}
		out.AddRotor(to, wiring, s.consts[id])
	}
	for id, pattern := range s.rings {
		to := remap(id)
		if out.HasRing(to) {
			return nil, fmt.Errorf("%w: relabel collides on ring id %d", engine.ErrConfigInvalid, to)
		}
		out.AddRing(to, pattern)
	}
	return out, nil
}

// Clone returns an independent copy of the set under the same name.
func (s *Set) Clone() *Set {
	out := s.Slice(s.name, s.RotorIDs(), s.RingIDs())
	return out
}
