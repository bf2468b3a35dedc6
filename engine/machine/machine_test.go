package machine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotorkit/engine"
	"rotorkit/engine/alphabet"
	"rotorkit/engine/rotor"
	"rotorkit/engine/rotorset"
)

// shiftGear drives a single-rotor machine: the wheel steps every character.
type shiftGear struct {
	*BaseGear
}

func (g *shiftGear) Step() {
	g.Descriptor("wheel").Rotor.Ring().Step()
}

func newTestSet() *rotorset.Set {
	wiring := make([]int, 26)
	pattern := make([]int, 26)
	for i := range wiring {
		wiring[i] = (i + 3) % 26
	}
	pattern[0] = 1
	s := rotorset.New("testset")
	s.AddRotor(1, wiring, false)
	s.AddRing(1, pattern)
	return s
}

func newTestMachine(t *testing.T, name, variant string) *Machine {
	t.Helper()
	set := newTestSet()
	base := NewBaseGear(alphabet.Latin())
	d, err := NewSlot(set, "wheel", 1, 1, false)
	require.NoError(t, err)
	base.AddSlot(d)
	base.SetStack(rotor.NewStack(d.Rotor))

	sym := alphabet.NewSymmetric(alphabet.Latin())
	m := New(Def{
		Name:         name,
		Variant:      variant,
		RotorSetName: "testset",
		Gear:         &shiftGear{base},
		Keyboard:     sym,
		Printer:      sym,
		Contacts:     26,
		PreStep:      true,
	})
	m.AddRotorSet(set)
	return m
}

func TestEncryptDecryptInverse(t *testing.T) {
	m := newTestMachine(t, "TestMachine", "A")

	// A cyclic +3 rotor shifts every letter by three regardless of its
	// displacement, which gives a known-answer check on the cipher path.
	assert.Equal(t, "def", m.Encrypt("abc"))

	m2 := newTestMachine(t, "TestMachine", "A")
	assert.Equal(t, "abc", m2.Decrypt("def"))
}

func TestEncryptDropsInvalidSymbols(t *testing.T) {
	m := newTestMachine(t, "TestMachine", "A")
	assert.Equal(t, "def", m.Encrypt("a b?c!"))
}

func TestCurrentPermutationDoesNotStep(t *testing.T) {
	m := newTestMachine(t, "TestMachine", "A")
	before := m.Positions()
	first := m.CurrentPermutation()
	second := m.CurrentPermutation()
	assert.Equal(t, first, second)
	assert.Equal(t, before, m.Positions())
	for c, out := range first {
		assert.Equal(t, (c+3)%26, out)
	}
}

func TestStepAndReset(t *testing.T) {
	m := newTestMachine(t, "TestMachine", "A")
	assert.Equal(t, "a", m.Positions())
	assert.Equal(t, "b", m.Step())
	assert.Equal(t, "c", m.Step())
	m.Reset()
	assert.Equal(t, "a", m.Positions())
}

func TestSetPositionsRejects(t *testing.T) {
	m := newTestMachine(t, "TestMachine", "A")
	assert.ErrorIs(t, m.SetPositions("ab"), engine.ErrConfigInvalid)
	assert.ErrorIs(t, m.SetPositions("#"), engine.ErrConfigInvalid)
	require.NoError(t, m.SetPositions("q"))
	assert.Equal(t, "q", m.Positions())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := newTestMachine(t, "TestMachine", "A")
	m.Encrypt("advancethewheel")

	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))
	saved := buf.String()

	restored := newTestMachine(t, "TestMachine", "A")
	require.NoError(t, restored.Load(strings.NewReader(saved)))

	var again bytes.Buffer
	require.NoError(t, restored.Save(&again))
	assert.Equal(t, saved, again.String())
	assert.Equal(t, m.Encrypt("more"), restored.Encrypt("more"))
}

func TestLoadRejectsForeignState(t *testing.T) {
	m := newTestMachine(t, "TestMachine", "A")
	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))

	other := newTestMachine(t, "OtherMachine", "A")
	assert.ErrorIs(t, other.Load(strings.NewReader(buf.String())), engine.ErrStateCorrupt)

	variant := newTestMachine(t, "TestMachine", "B")
	assert.ErrorIs(t, variant.Load(strings.NewReader(buf.String())), engine.ErrStateCorrupt)
}

func TestLoadRejectsMissingRotorSet(t *testing.T) {
	m := newTestMachine(t, "TestMachine", "A")
	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))
	mangled := strings.Replace(buf.String(), "rotorsetname = testset", "rotorsetname = fieldset", 1)

	restored := newTestMachine(t, "TestMachine", "A")
	assert.ErrorIs(t, restored.Load(strings.NewReader(mangled)), engine.ErrRotorSetMissing)
}

func TestCheckKeywords(t *testing.T) {
	schema := []Keyword{
		{Name: "rotors", Type: KeywordString},
		{Name: "plugless", Type: KeywordBool},
	}
	assert.NoError(t, CheckKeywords(schema, map[string]string{"rotors": "i ii", "plugless": "true"}))
	assert.ErrorIs(t, CheckKeywords(schema, map[string]string{"bogus": "1"}), engine.ErrUnknownKeyword)
	assert.ErrorIs(t, CheckKeywords(schema, map[string]string{"plugless": "maybe"}), engine.ErrMalformedValue)
}

func TestCfgHelpers(t *testing.T) {
	cfg := map[string]string{"name": "abw", "flag": "true"}
	assert.Equal(t, "abw", CfgString(cfg, "name", "fallback"))
	assert.Equal(t, "fallback", CfgString(cfg, "missing", "fallback"))
	assert.True(t, CfgBool(cfg, "flag", false))
	assert.False(t, CfgBool(cfg, "missing", false))
}

func TestIntList(t *testing.T) {
	assert.Equal(t, "3, 1, 4", FormatIntList([]int{3, 1, 4}))
	got, err := ParseIntList(" 3, 1 ,4")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 4}, got)

	got, err = ParseIntList("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseIntList("3, x")
	assert.ErrorIs(t, err, engine.ErrStateCorrupt)
}

func TestModInt(t *testing.T) {
	m := NewModInt(5)
	m.Set(-1)
	assert.Equal(t, 4, m.Value())
	m.Inc()
	assert.Equal(t, 0, m.Value())
	m.Dec()
	assert.Equal(t, 4, m.Value())
	assert.Equal(t, 5, m.Mod())
}

func TestPinwheel(t *testing.T) {
	w := NewPinwheel(3)
	assert.ErrorIs(t, w.SetPins([]bool{true}), engine.ErrConfigInvalid)
	require.NoError(t, w.SetPins([]bool{true, false, true}))
	assert.True(t, w.Active())
	w.Step()
	assert.False(t, w.Active())
	w.Step()
	w.Step()
	assert.Equal(t, 0, w.Position())
	w.SetPosition(-1)
	assert.Equal(t, 2, w.Position())
}
