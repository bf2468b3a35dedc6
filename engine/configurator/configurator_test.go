package configurator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotorkit/engine"
)

func TestLookupIsCaseInsensitive(t *testing.T) {
	for _, name := range []string{"M4", "m4", "csp2900", "CSP2900", "Nema", "sg39"} {
		c, err := Lookup(name)
		require.NoError(t, err, name)
		assert.NotNil(t, c)
	}
	_, err := Lookup("purple")
	assert.ErrorIs(t, err, engine.ErrConfigInvalid)
}

func TestMachinesListsEveryFamily(t *testing.T) {
	names := Machines()
	assert.Len(t, names, 13)
	for _, name := range names {
		_, err := Lookup(name)
		assert.NoError(t, err, name)
	}
}

func TestCreateByName(t *testing.T) {
	m, err := Create("M3", map[string]string{
		"rotors":    "ii i iii",
		"positions": "abc",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "abc", m.Positions())

	_, err = Create("M3", map[string]string{"bogus": "1"}, nil)
	assert.ErrorIs(t, err, engine.ErrUnknownKeyword)
}

func TestFromStateRestoresAnyFamily(t *testing.T) {
	for _, tc := range []struct {
		name string
		cfg  map[string]string
	}{
		{"M4", map[string]string{"rotors": "beta ii iv i", "positions": "vjna"}},
		{"Typex", map[string]string{"positions": "aaaaa"}},
		{"CSP2900", map[string]string{"positions": "oooooooooo00000"}},
		{"KL7", map[string]string{"positions": "eaaag+aa"}},
		{"Nema", map[string]string{"redwheel": "training"}},
		{"SG39", map[string]string{"pins21": "0 4 9"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Create(tc.name, tc.cfg, nil)
			require.NoError(t, err)
			m.Encrypt("warmup")

			var buf bytes.Buffer
			require.NoError(t, m.Save(&buf))

			restored, err := FromState(strings.NewReader(buf.String()))
			require.NoError(t, err)
			msg := "statefulcontinuation"
			assert.Equal(t, m.Encrypt(msg), restored.Encrypt(msg))
		})
	}
}

func TestFromStateRejectsUnknownType(t *testing.T) {
	state := "[machine]\nname = Lorenz\nmachinetype = SZ42\n"
	_, err := FromState(strings.NewReader(state))
	assert.ErrorIs(t, err, engine.ErrStateCorrupt)
}
