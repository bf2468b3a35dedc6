package rotor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotorkit/engine"
	"rotorkit/engine/permutation"
)

func wiring(t *testing.T, s string) *permutation.Permutation {
	t.Helper()
	v := make([]int, len(s))
	for i, r := range s {
		v[i] = int(r - 'a')
	}
	p, err := permutation.New(v)
	require.NoError(t, err)
	return p
}

// Enigma rotor I.
const rotorI = "ekmflgdqvzntowyhxuspaibrcj"

func TestRotorRoundTrip(t *testing.T) {
	r := New(wiring(t, rotorI), nil)
	for pos := 0; pos < 26; pos++ {
		r.Ring().SetPosition(pos)
		for off := 0; off < 26; off += 5 {
			r.Ring().SetOffset(off)
			for c := 0; c < 26; c++ {
				assert.Equal(t, c, r.Decrypt(r.Encrypt(c)))
			}
		}
	}
}

func TestRingAndPositionAreOrthogonal(t *testing.T) {
	r := New(wiring(t, rotorI), nil)
	// At position 0 and offset 0 the rotor is the raw wiring.
	assert.Equal(t, int('e'-'a'), r.Encrypt(0))
	// Advancing position by one shifts the entry contact.
	r.Ring().SetPosition(1)
	assert.Equal(t, int('j'-'a'), r.Encrypt(0)) // (perm[1] - 1) mod 26 = k-1 = j
	// A matching ring offset undoes the shift.
	r.Ring().SetOffset(1)
	assert.Equal(t, int('e'-'a'), r.Encrypt(0))
}

func TestNotchSensing(t *testing.T) {
	pattern := make([]int, 26)
	pattern[16] = 1 // notch at q
	ring := NewRing(pattern)
	assert.Zero(t, ring.NotchAt(0))
	ring.SetPosition(16)
	assert.Equal(t, 1, ring.NotchAt(0))
	ring.SetPosition(0)
	assert.Equal(t, 1, ring.NotchAt(16))
	ring.SetPosition(25)
	assert.Equal(t, 1, ring.NotchAt(17))
}

func TestStepWraps(t *testing.T) {
	ring := EmptyRing(26)
	ring.SetPosition(25)
	ring.Step()
	assert.Zero(t, ring.Position())
	ring.StepBack()
	assert.Equal(t, 25, ring.Position())
}

func TestReverseWiring(t *testing.T) {
	p := wiring(t, rotorI)
	q := ReverseWiring(p)
	// Reversing twice restores the original wiring.
	assert.Equal(t, p.Vector(), ReverseWiring(q).Vector())
	// The reversed wiring is still a bijection of the same size.
	assert.Equal(t, 26, q.Size())
}

func TestStraightStackRoundTrip(t *testing.T) {
	rng := engine.NewRand(3)
	s := NewStack(
		New(permutation.Random(rng, 26), nil),
		New(permutation.Random(rng, 26), nil),
		New(permutation.Random(rng, 26), nil),
	)
	for c := 0; c < 26; c++ {
		assert.Equal(t, c, s.Decrypt(s.Encrypt(c)))
	}
}

func TestReflectingStackIsInvolution(t *testing.T) {
	rng := engine.NewRand(4)
	refl, err := permutation.RandomInvolution(rng, 26)
	require.NoError(t, err)
	s := NewStack(
		New(permutation.Random(rng, 26), nil),
		New(permutation.Random(rng, 26), nil),
		New(refl, nil),
	)
	s.SetReflecting(true)
	for c := 0; c < 26; c++ {
		out := s.Encrypt(c)
		assert.Equal(t, c, s.Encrypt(out))
		assert.Equal(t, out, s.Decrypt(c))
		assert.NotEqual(t, c, out)
	}
}

func TestFeedbackStackSqueezesAlphabet(t *testing.T) {
	rng := engine.NewRand(5)
	s := NewStack(
		New(permutation.Random(rng, 36), nil),
		New(permutation.Random(rng, 36), nil),
	)
	points := []int{26, 27, 28, 29, 30, 31, 32, 33, 34, 35}
	s.SetFeedbackPoints(points)
	seen := make(map[int]bool)
	for c := 0; c < 26; c++ {
		out := s.Encrypt(c)
		require.Less(t, out, 26, "feedback output must exit below the loop contacts")
		require.False(t, seen[out])
		seen[out] = true
		assert.Equal(t, c, s.Decrypt(out))
	}
}
