package rotorset

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotorkit/engine"
	"rotorkit/engine/permutation"
)

func sample(t *testing.T) *Set {
	t.Helper()
	s := New("sample")
	s.AddRotor(1, []int{4, 10, 12, 5, 11, 6, 3, 16, 21, 25, 13, 19, 14, 22, 24, 7, 23, 20, 18, 15, 0, 8, 1, 17, 2, 9}, false)
	involution := make([]int, 26)
	for i := 0; i < 26; i += 2 {
		involution[i] = i + 1
		involution[i+1] = i
	}
	s.AddRotor(2, involution, false)
	identity := make([]int, 26)
	for i := range identity {
		identity[i] = i
	}
	s.AddRotor(3, identity, true)
	notches := make([]int, 26)
	notches[16] = 1
	s.AddRing(1, notches)
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := sample(t)
	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf))
	loaded, err := Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, s.Name(), loaded.Name())
	assert.Equal(t, s.RotorIDs(), loaded.RotorIDs())
	assert.Equal(t, s.RingIDs(), loaded.RingIDs())
	for _, id := range s.RotorIDs() {
		want, _ := s.Rotor(id)
		got, _ := loaded.Rotor(id)
		assert.Equal(t, want.Vector(), got.Vector())
		assert.Equal(t, s.IsConst(id), loaded.IsConst(id))
	}
	wantRing, _ := s.RingPattern(1)
	gotRing, _ := loaded.RingPattern(1)
	assert.Equal(t, wantRing, gotRing)
}

func TestLoadRejectsNonBijection(t *testing.T) {
	raw := "[general]\nids = 1\n\n[rotorid_1]\npermutation = 0, 0, 2\nisconst = false\n"
	_, err := Load(bytes.NewReader([]byte(raw)))
	require.ErrorIs(t, err, engine.ErrStateCorrupt)
}

func TestRandomizePreservesShape(t *testing.T) {
	s := sample(t)
	before3, _ := s.Rotor(3)
	rng := engine.NewRand(99)
	require.NoError(t, s.Randomize(rng))

	// Non-const rotors are fresh bijections without fixed points.
	for _, id := range []int{1, 2} {
		p, err := s.Rotor(id)
		require.NoError(t, err)
		assert.False(t, p.HasFixedPoint(), "rotor %d", id)
		assert.False(t, hasShiftSegment(p), "rotor %d", id)
	}
	// The involution stays an involution.
	p2, _ := s.Rotor(2)
	assert.True(t, p2.IsInvolution())
	// Const rotors are untouched.
	after3, _ := s.Rotor(3)
	assert.Equal(t, before3.Vector(), after3.Vector())
}

func TestSliceAndRelabel(t *testing.T) {
	s := sample(t)
	sliced := s.Slice("subset", []int{1, 3}, []int{1})
	assert.Equal(t, []int{1, 3}, sliced.RotorIDs())
	assert.Equal(t, []int{1}, sliced.RingIDs())
	assert.True(t, sliced.IsConst(3))

	relabelled, err := sliced.Relabel("renamed", map[int]int{1: 7, 3: 8})
	require.NoError(t, err)
	assert.Equal(t, []int{7, 8}, relabelled.RotorIDs())
	assert.Equal(t, []int{7}, relabelled.RingIDs())

	_, err = sliced.Relabel("broken", map[int]int{1: 3})
	require.ErrorIs(t, err, engine.ErrConfigInvalid)
}

func TestHasShiftSegment(t *testing.T) {
	shift := make([]int, 26)
	for i := range shift {
		shift[i] = (i + 3) % 26
	}
	p, err := permutation.New(shift)
	require.NoError(t, err)
	assert.True(t, hasShiftSegment(p))
}
