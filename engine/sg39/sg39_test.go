package sg39

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotorkit/engine"
	"rotorkit/engine/enigma"
	"rotorkit/engine/machine"
)

var fieldConfig = map[string]string{
	"rotors":     "8 6 2 5",
	"notchrings": "2 1 3",
	"rings":      "bcda",
	"positions":  "qrst:3.7.11",
	"pins21":     "0 5 9 14",
	"pins23":     "2 6 12 19",
	"plugs":      "ab cd ef",
}

func TestM4Emulation(t *testing.T) {
	const plugs = "at bl df gj hm nw op qy rz vx"

	ref, err := enigma.NewConfigurator(enigma.M4).Create(map[string]string{
		"rotors":    "beta ii iv i",
		"reflector": "b",
		"rings":     "aaav",
		"positions": "vjna",
		"plugs":     plugs,
	}, nil)
	require.NoError(t, err)

	m, err := NewM4Emulation()
	require.NoError(t, err)
	m.Gear().Descriptor("rotor1").Rotor.Ring().SetOffset(21)
	require.NoError(t, SetPlugboard(m, plugs))
	require.NoError(t, m.SetPositions("vjna"))

	ct := m.Encrypt("vonvonjl")
	assert.Equal(t, "nczwvusx", ct)
	assert.Equal(t, ref.Encrypt("vonvonjl"), ct)
}

func TestEnigmaDoubleStepWithoutPins(t *testing.T) {
	m, err := NewM4Emulation()
	require.NoError(t, err)

	// Rotor one carries the Enigma I notch ring (turnover at q): stepping
	// from q pulls rotor two along, and rotor two's own notch produces the
	// classical double step on the next character.
	require.NoError(t, m.SetPositions("aaiq"))
	assert.Equal(t, "aajr", m.Step()[:4])
	assert.Equal(t, "abks", m.Step()[:4])
	assert.Equal(t, "abkt", m.Step()[:4])
}

func TestPinwheelDrive(t *testing.T) {
	m, err := NewConfigurator().Create(map[string]string{"pins25": "0"}, nil)
	require.NoError(t, err)
	require.Equal(t, "aaaa:0.0.0", m.Positions())

	// The active pin on the 25 wheel carries rotor three once; afterwards
	// only the gear-driven fast rotor moves.
	assert.Equal(t, "abab:1.1.1", m.Step())
	assert.Equal(t, "abac:2.2.2", m.Step())
}

func TestRoundTripNoFixedPoint(t *testing.T) {
	m, err := NewConfigurator().Create(fieldConfig, nil)
	require.NoError(t, err)
	pt := strings.Repeat("abcdefghijklmnopqrstuvwxyz", 4)
	ct := m.Encrypt(pt)
	require.Len(t, ct, len(pt))
	for i := range pt {
		assert.NotEqual(t, pt[i], ct[i], "fixed point at %d", i)
	}

	m2, err := NewConfigurator().Create(fieldConfig, nil)
	require.NoError(t, err)
	assert.Equal(t, pt, m2.Decrypt(ct))
}

func TestSpaceKey(t *testing.T) {
	m, err := NewConfigurator().Create(map[string]string{"spacekey": "true"}, nil)
	require.NoError(t, err)

	_, err = m.EncryptRune('q')
	assert.ErrorIs(t, err, engine.ErrInputInvalid)

	msg := "attack at dawn"
	ct := m.Encrypt(msg)
	require.Len(t, ct, len(msg))
	assert.NotContains(t, ct, " ")

	m2, err := NewConfigurator().Create(map[string]string{"spacekey": "true"}, nil)
	require.NoError(t, err)
	assert.Equal(t, msg, m2.Decrypt(ct))
}

func TestBarePositionsKeepPinWheels(t *testing.T) {
	m, err := NewConfigurator().Create(fieldConfig, nil)
	require.NoError(t, err)
	require.NoError(t, m.SetPositions("wxyz"))
	assert.Equal(t, "wxyz:3.7.11", m.Positions())
}

func TestRandomizePins(t *testing.T) {
	m, err := New(false)
	require.NoError(t, err)
	require.NoError(t, RandomizePins(engine.NewRand(421), m))

	for _, slot := range pinSlots {
		pins := m.Gear().Descriptor(slot).PinWheel.Pins()
		n := len(pins)
		active := 0
		for i := 0; i < n; i++ {
			if pins[i] {
				active++
				assert.False(t, pins[(i+1)%n], "adjacent pins at %d on the %d wheel", i, n)
			}
		}
		assert.Greater(t, active, 0, "%d wheel left blank", n)
	}

	again, err := New(false)
	require.NoError(t, err)
	require.NoError(t, RandomizePins(engine.NewRand(421), again))
	for _, slot := range pinSlots {
		assert.Equal(t,
			m.Gear().Descriptor(slot).PinWheel.Pins(),
			again.Gear().Descriptor(slot).PinWheel.Pins())
	}
}

func TestConfiguratorRandomizesPins(t *testing.T) {
	c := NewConfigurator()
	r, ok := c.(machine.ExtraRandomizer)
	require.True(t, ok)

	m, err := c.Create(nil, nil)
	require.NoError(t, err)
	require.NoError(t, r.RandomizeExtras(m, engine.NewRand(421), ""))
	for _, slot := range pinSlots {
		active := 0
		for _, p := range m.Gear().Descriptor(slot).PinWheel.Pins() {
			if p {
				active++
			}
		}
		assert.Greater(t, active, 0)
	}
}

func TestStateSaveLoadRoundTrip(t *testing.T) {
	m, err := NewConfigurator().Create(fieldConfig, nil)
	require.NoError(t, err)
	m.Encrypt("advance")

	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))
	saved := buf.String()

	restored, err := New(false)
	require.NoError(t, err)
	require.NoError(t, restored.Load(strings.NewReader(saved)))

	var again bytes.Buffer
	require.NoError(t, restored.Save(&again))
	assert.Equal(t, saved, again.String())

	msg := "continuation"
	assert.Equal(t, m.Encrypt(msg), restored.Encrypt(msg))
}

func TestSnapshotCreateRoundTrip(t *testing.T) {
	c := NewConfigurator()
	m, err := c.Create(fieldConfig, nil)
	require.NoError(t, err)

	snap, err := c.Snapshot(m)
	require.NoError(t, err)
	assert.Equal(t, "8 6 2 5", snap["rotors"])
	assert.Equal(t, "2 1 3", snap["notchrings"])
	assert.Equal(t, "bcda", snap["rings"])
	assert.Equal(t, "qrst:3.7.11", snap["positions"])
	assert.Equal(t, "0 5 9 14", snap["pins21"])
	assert.Equal(t, "2 6 12 19", snap["pins23"])
	assert.Equal(t, "ab cd ef", snap["plugs"])

	m2, err := c.Create(snap, nil)
	require.NoError(t, err)
	msg := "snapshotequality"
	assert.Equal(t, m.Encrypt(msg), m2.Encrypt(msg))
}

func TestConfiguratorRejections(t *testing.T) {
	c := NewConfigurator()
	_, err := c.Create(map[string]string{"bogus": "1"}, nil)
	assert.ErrorIs(t, err, engine.ErrUnknownKeyword)
	_, err = c.Create(map[string]string{"rotors": "1 2 3"}, nil)
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
	_, err = c.Create(map[string]string{"rotors": "1 1 2 3"}, nil)
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
	_, err = c.Create(map[string]string{"rotors": "1 2 3 20"}, nil)
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
	_, err = c.Create(map[string]string{"notchrings": "1 2"}, nil)
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
	_, err = c.Create(map[string]string{"notchrings": "1 2 9"}, nil)
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
	_, err = c.Create(map[string]string{"rings": "abc"}, nil)
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
	_, err = c.Create(map[string]string{"pins21": "21"}, nil)
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
	_, err = c.Create(map[string]string{"pins25": "x"}, nil)
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
	_, err = c.Create(map[string]string{"positions": "abcd:0.0"}, nil)
	assert.ErrorIs(t, err, engine.ErrConfigInvalid)
	_, err = c.Create(map[string]string{"positions": "abcd:0.0.99"}, nil)
	assert.ErrorIs(t, err, engine.ErrConfigInvalid)
}
