package rotorset

import (
	"fmt"

	"rotorkit/engine"
	"rotorkit/engine/permutation"
)

// maxDraws bounds the rejection sampling per rotor before the randomizer
// gives up with ErrRandomizationFailed.
const maxDraws = 1000

// Randomize replaces every non-const rotor wiring with a random permutation
// that has no fixed points and no cyclic single-shift segment.  Wirings that
// were involutions are replaced by involutions, so reflectors stay usable as
// reflectors.  The operation is transactional: on failure the set is left
// unchanged.
func (s *Set) Randomize(rng *engine.Rand) error {
	replacement := make(map[int][]int)
	for _, id := range s.RotorIDs() {
		if s.consts[id] {
			continue
		}
		current, err := permutation.New(s.perms[id])
		if err != nil {
			return err
		}
		fresh, err := drawReplacement(rng, current)
		if err != nil {
			return fmt.Errorf("%w: rotor id %d in set %s", err, id, s.name)
		}
		replacement[id] = fresh.Vector()
	}
	for id, wiring := range replacement {
		s.perms[id] = wiring
	}
	return nil
}

func drawReplacement(rng *engine.Rand, current *permutation.Permutation) (*permutation.Permutation, error) {
	n := current.Size()
	wantInvolution := current.IsInvolution()
	for i := 0; i < maxDraws; i++ {
		var p *permutation.Permutation
		if wantInvolution {
			q, err := permutation.RandomInvolution(rng, n)
			if err != nil {
				return nil, err
			}
			p = q
		} else {
			p = permutation.Random(rng, n)
		}
		if p.HasFixedPoint() || hasShiftSegment(p) {
			continue
		}
		return p, nil
	}
	return nil, engine.ErrRandomizationFailed
}

// hasShiftSegment reports whether the permutation maps two cyclically
// adjacent contacts to cyclically adjacent images, the signature of a weak
// Caesar-like wiring segment.
func hasShiftSegment(p *permutation.Permutation) bool {
	n := p.Size()
	for i := 0; i < n; i++ {
		if p.Apply((i+1)%n) == (p.Apply(i)+1)%n {
			return true
		}
	}
	return false
}
