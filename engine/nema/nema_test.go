package nema

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotorkit/engine"
)

var warConfig = map[string]string{
	"rotors": "a b c d",
	"drives": "12 13 14 15",
}

func TestWarMachineFrequency(t *testing.T) {
	m, err := NewConfigurator().Create(warConfig, nil)
	require.NoError(t, err)

	ct := m.Encrypt(strings.Repeat("a", 1000))
	require.Len(t, ct, 1000)

	// A flat-ish letter histogram catches ring offset regressions: a stuck
	// wheel turns the machine into a short-period substitution.
	counts := make(map[rune]int)
	for _, r := range ct {
		counts[r]++
	}
	for r := 'a'; r <= 'z'; r++ {
		assert.Greater(t, counts[r], 0, "letter %c never produced", r)
		assert.Less(t, counts[r], 120, "letter %c over-represented", r)
	}
}

func TestRoundTrip(t *testing.T) {
	m, err := NewConfigurator().Create(warConfig, nil)
	require.NoError(t, err)
	msg := "verschlusseltermeldetext"
	ct := m.Encrypt(msg)
	require.Len(t, ct, len(msg))

	m2, err := NewConfigurator().Create(warConfig, nil)
	require.NoError(t, err)
	assert.Equal(t, msg, m2.Decrypt(ct))
}

func TestNoFixedPoint(t *testing.T) {
	m, err := New(War)
	require.NoError(t, err)
	pt := strings.Repeat("abcdefghijklmnopqrstuvwxyz", 4)
	ct := m.Encrypt(pt)
	require.Len(t, ct, len(pt))
	for i := range pt {
		assert.NotEqual(t, pt[i], ct[i], "fixed point at %d", i)
	}
}

func TestUnconditionalWheels(t *testing.T) {
	m, err := New(War)
	require.NoError(t, err)

	// Wheel order in the window string is reflector, contact2, drive3,
	// contact4, drive5, contact6, drive7, contact8, drive9, red.
	before := m.Positions()
	for i := 0; i < 30; i++ {
		after := m.Step()
		assert.NotEqual(t, before[4], after[4], "drive 5 skipped a step")
		assert.NotEqual(t, before[8], after[8], "drive 9 skipped a step")
		assert.NotEqual(t, before[9], after[9], "red wheel skipped a step")
		before = after
	}
}

func TestIssuesDiffer(t *testing.T) {
	war, err := New(War)
	require.NoError(t, err)
	training, err := New(Training)
	require.NoError(t, err)

	msg := strings.Repeat("redwheelissue", 4)
	ctWar := war.Encrypt(msg)
	ctTraining := training.Encrypt(msg)
	assert.NotEqual(t, ctWar, ctTraining)

	again, err := New(Training)
	require.NoError(t, err)
	assert.Equal(t, msg, again.Decrypt(ctTraining))
}

func TestUnknownRedWheelFallsBack(t *testing.T) {
	c := NewConfigurator()
	m, err := c.Create(map[string]string{"redwheel": "exercise"}, nil)
	require.NoError(t, err)

	snap, err := c.Snapshot(m)
	require.NoError(t, err)
	assert.Equal(t, War, snap["redwheel"])
}

func TestStateSaveLoadRoundTrip(t *testing.T) {
	cfg := map[string]string{
		"rotors":    "f c e a",
		"drives":    "22 17 20 13",
		"positions": "nematester",
	}
	m, err := NewConfigurator().Create(cfg, nil)
	require.NoError(t, err)
	m.Encrypt("advance")

	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))
	saved := buf.String()

	restored, err := New(War)
	require.NoError(t, err)
	require.NoError(t, restored.Load(strings.NewReader(saved)))

	var again bytes.Buffer
	require.NoError(t, restored.Save(&again))
	assert.Equal(t, saved, again.String())

	msg := "continuation"
	assert.Equal(t, m.Encrypt(msg), restored.Encrypt(msg))
}

func TestSnapshotCreateRoundTrip(t *testing.T) {
	cfg := map[string]string{
		"rotors":   "d b f c",
		"drives":   "15 12 23 18",
		"redwheel": "training",
	}
	c := NewConfigurator()
	m, err := c.Create(cfg, nil)
	require.NoError(t, err)

	snap, err := c.Snapshot(m)
	require.NoError(t, err)
	assert.Equal(t, "d b f c", snap["rotors"])
	assert.Equal(t, "15 12 23 18", snap["drives"])
	assert.Equal(t, "training", snap["redwheel"])

	m2, err := c.Create(snap, nil)
	require.NoError(t, err)
	msg := "snapshotequality"
	assert.Equal(t, m.Encrypt(msg), m2.Encrypt(msg))
}

func TestConfiguratorRejections(t *testing.T) {
	c := NewConfigurator()
	_, err := c.Create(map[string]string{"bogus": "1"}, nil)
	assert.ErrorIs(t, err, engine.ErrUnknownKeyword)
	_, err = c.Create(map[string]string{"rotors": "a b c"}, nil)
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
	_, err = c.Create(map[string]string{"rotors": "a a b c"}, nil)
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
	_, err = c.Create(map[string]string{"rotors": "a b c z"}, nil)
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
	_, err = c.Create(map[string]string{"drives": "12 13 14"}, nil)
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
	_, err = c.Create(map[string]string{"drives": "12 12 13 14"}, nil)
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
	_, err = c.Create(map[string]string{"drives": "12 13 14 99"}, nil)
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
	_, err = c.Create(map[string]string{"redwheel": "blue"}, nil)
	assert.ErrorIs(t, err, engine.ErrConfigInvalid)
	_, err = c.Create(map[string]string{"positions": "abc"}, nil)
	assert.ErrorIs(t, err, engine.ErrConfigInvalid)
}
