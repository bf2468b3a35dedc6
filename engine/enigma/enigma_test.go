package enigma

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rotorkit/engine"
)

func TestServicesKnownCiphertext(t *testing.T) {
	m, err := New(Services)
	require.NoError(t, err)
	assert.Equal(t, "bdzgo", m.Encrypt("aaaaa"))

	m2, err := NewConfigurator(Services).Create(map[string]string{"rings": "bbb"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ewtyx", m2.Encrypt("aaaaa"))
}

func TestDoubleStep(t *testing.T) {
	m, err := New(Services)
	require.NoError(t, err)
	require.NoError(t, m.SetPositions("adu"))
	want := []string{"adv", "aew", "bfx", "bfy"}
	for _, pos := range want {
		assert.Equal(t, pos, m.Step())
	}
}

func TestM4DoenitzMessage(t *testing.T) {
	cfg := map[string]string{
		"rotors":    "beta ii iv i",
		"reflector": "b",
		"rings":     "aaav",
		"positions": "vjna",
		"plugs":     "at bl df gj hm nw op qy rz vx",
	}
	m, err := NewConfigurator(M4).Create(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "nczwvusx", m.Encrypt("vonvonjl"))

	m2, err := NewConfigurator(M4).Create(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "vonvonjl", m2.Decrypt("nczwvusx"))
}

func TestNoFixedPoint(t *testing.T) {
	for _, variant := range []string{Services, M3, M4, Abwehr, Railway, Tirpitz, KD} {
		m, err := New(variant)
		require.NoError(t, err, variant)
		in := strings.Repeat("abcdefghijklmnopqrstuvwxyz", 3)
		out := m.Encrypt(in)
		require.Len(t, out, len(in), variant)
		for i := range in {
			assert.NotEqual(t, in[i], out[i], "%s: fixed point at %d", variant, i)
		}
	}
}

func TestRoundTripAllVariants(t *testing.T) {
	msg := "thequickbrownfoxjumpsoverthelazydog"
	for _, variant := range []string{Services, M3, M4, Abwehr, Railway, Tirpitz, KD} {
		m, err := New(variant)
		require.NoError(t, err, variant)
		ct := m.Encrypt(msg)
		m2, err := New(variant)
		require.NoError(t, err, variant)
		assert.Equal(t, msg, m2.Decrypt(ct), variant)
	}
}

func TestAbwehrCarryChain(t *testing.T) {
	m, err := New(Abwehr)
	require.NoError(t, err)
	// All three wheels sit on a turnover at aaaa, so one step carries
	// through to the reflector.
	require.NoError(t, m.SetPositions("aaaa"))
	assert.Equal(t, "bbbb", m.Step())
}

func TestUhrTenPlugRule(t *testing.T) {
	m, err := New(Services)
	require.NoError(t, err)
	require.NoError(t, SetPlugboard(m, "ab cd"))
	before := m.Input()

	err = AttachUhr(m, "ad cn et fl", 0)
	require.ErrorIs(t, err, engine.ErrConfigInvalid)
	assert.Same(t, before, m.Input())

	_, err = NewUhr("adcnetflgijvkzpuqywxab")
	assert.ErrorIs(t, err, engine.ErrConfigInvalid)
}

func TestUhrDialZeroMatchesPlugboard(t *testing.T) {
	plugs := "ad cn et fl gi jv kz pu qy wx"
	withUhr, err := New(Services)
	require.NoError(t, err)
	require.NoError(t, AttachUhr(withUhr, plugs, 0))
	plain, err := New(Services)
	require.NoError(t, err)
	require.NoError(t, SetPlugboard(plain, plugs))
	msg := strings.Repeat("rotorsintheirgearing", 3)
	assert.Equal(t, plain.Encrypt(msg), withUhr.Encrypt(msg))
}

func TestUhrLetterMap(t *testing.T) {
	u, err := NewUhr("adcnetflgijvkzpuqywx")
	require.NoError(t, err)
	require.NoError(t, u.SetDial(27))

	involution := true
	for c := 0; c < 26; c++ {
		assert.Equal(t, c, u.Decrypt(u.Encrypt(c)))
		if u.Encrypt(u.Encrypt(c)) != c {
			involution = false
		}
	}
	assert.False(t, involution, "dial 27 should not be self-reciprocal")

	assert.ErrorIs(t, u.SetDial(40), engine.ErrConfigInvalid)
	assert.ErrorIs(t, u.SetDial(-1), engine.ErrConfigInvalid)
}

func TestServicesWithUhrAndUKWD(t *testing.T) {
	cfg := map[string]string{
		"rotors":    "i v iii",
		"reflector": "d",
		"ukwd":      "azbpcxdqetfogshvirknlmuw",
		"rings":     "abc",
		"plugs":     "ad cn et fl gi jv kz pu qy wx",
		"usesuhr":   "true",
		"uhrdial":   "27",
	}
	m, err := NewConfigurator(Services).Create(cfg, nil)
	require.NoError(t, err)
	in := strings.Repeat("a", 26)
	out := m.Encrypt(in)
	require.Len(t, out, 26)
	for i := range out {
		assert.NotEqual(t, byte('a'), out[i], "fixed point at %d", i)
	}

	m2, err := NewConfigurator(Services).Create(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, in, m2.Decrypt(out))
}

func TestUKWDWiring(t *testing.T) {
	p, err := UKWDWiring(DefaultUKWDPairs)
	require.NoError(t, err)
	assert.True(t, p.IsInvolution())
	assert.False(t, p.HasFixedPoint())
	assert.Equal(t, DefaultUKWDPairs, UKWDPairs(p))

	_, err = UKWDWiring("azbp")
	assert.ErrorIs(t, err, engine.ErrConfigInvalid)
	_, err = UKWDWiring("ajboctdmezfngxhqiskrlupw")
	assert.ErrorIs(t, err, engine.ErrConfigInvalid, "j is permanently bridged to y")
	_, err = UKWDWiring("avaoctdmezfngxhqiskrlupw")
	assert.ErrorIs(t, err, engine.ErrConfigInvalid, "reused contact")
}

func TestUKWDNotation(t *testing.T) {
	bp := DefaultUKWDPairs
	gaf := BPToGAF(bp)
	assert.NotEqual(t, bp, gaf)
	assert.Equal(t, bp, GAFToBP(gaf))
}

func TestPlugboardParsing(t *testing.T) {
	p, err := PlugboardWiring("at bl df")
	require.NoError(t, err)
	assert.True(t, p.IsInvolution())
	assert.Equal(t, "at bl df", PlugboardPairs(p))

	_, err = PlugboardWiring("a")
	assert.ErrorIs(t, err, engine.ErrConfigInvalid)
	_, err = PlugboardWiring("aa")
	assert.ErrorIs(t, err, engine.ErrConfigInvalid)
	_, err = PlugboardWiring("ab ac")
	assert.ErrorIs(t, err, engine.ErrConfigInvalid)
}

func TestSteppingDeterminism(t *testing.T) {
	cfg := map[string]string{
		"rotors":    "iii i v",
		"positions": "qev",
		"plugs":     "bq cr di ej kw mt os px uz gh",
	}
	a, err := NewConfigurator(M3).Create(cfg, nil)
	require.NoError(t, err)
	b, err := NewConfigurator(M3).Create(cfg, nil)
	require.NoError(t, err)
	msg := strings.Repeat("identicalstatesidenticaltext", 4)
	assert.Equal(t, a.Encrypt(msg), b.Encrypt(msg))
}

func TestStateSaveLoadRoundTrip(t *testing.T) {
	cfg := map[string]string{
		"rotors":    "beta ii iv i",
		"reflector": "c",
		"rings":     "bqrv",
		"positions": "vjna",
		"plugs":     "at bl df gj hm nw op qy rz vx",
	}
	m, err := NewConfigurator(M4).Create(cfg, nil)
	require.NoError(t, err)
	m.Encrypt("advancethegear")

	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))
	saved := buf.String()

	restored, err := New(M4)
	require.NoError(t, err)
	require.NoError(t, restored.Load(strings.NewReader(saved)))

	var again bytes.Buffer
	require.NoError(t, restored.Save(&again))
	assert.Equal(t, saved, again.String())

	msg := "continuationciphertext"
	assert.Equal(t, m.Encrypt(msg), restored.Encrypt(msg))
}

func TestStateLoadExtras(t *testing.T) {
	cfg := map[string]string{
		"rotors":  "i v iii",
		"plugs":   "ad cn et fl gi jv kz pu qy wx",
		"usesuhr": "true",
		"uhrdial": "14",
	}
	m, err := NewConfigurator(Services).Create(cfg, nil)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))

	restored, err := New(Services)
	require.NoError(t, err)
	require.NoError(t, restored.Load(bytes.NewReader(buf.Bytes())))
	u, ok := restored.Input().(*Uhr)
	require.True(t, ok)
	assert.Equal(t, 14, u.Dial())
	assert.Equal(t, "adcnetflgijvkzpuqywx", u.Cabling())
}

func TestStateLoadRestoresUKWD(t *testing.T) {
	m, err := New(KD)
	require.NoError(t, err)
	m.Encrypt("advancethegear")
	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))

	restored, err := New(KD)
	require.NoError(t, err)
	require.NoError(t, restored.Load(bytes.NewReader(buf.Bytes())))

	msg := "fieldrewirablereflector"
	assert.Equal(t, m.Encrypt(msg), restored.Encrypt(msg))
}

func TestStateLoadBadExtrasLeavesMachine(t *testing.T) {
	m, err := NewConfigurator(Services).Create(map[string]string{"positions": "qev"}, nil)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))
	corrupt := buf.String() + "\n[uhr]\ncabling = bogus\ndial = 3\n"

	target, err := New(Services)
	require.NoError(t, err)

	// A keyfile with valid slots but a corrupt extras section is rejected
	// before anything is applied.
	err = target.Load(strings.NewReader(corrupt))
	require.Error(t, err)
	assert.Equal(t, "aaa", target.Positions())
	assert.Nil(t, target.Input())
}

func TestStateRejectsWrongVariant(t *testing.T) {
	m3, err := New(M3)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, m3.Save(&buf))

	services, err := New(Services)
	require.NoError(t, err)
	err = services.Load(bytes.NewReader(buf.Bytes()))
	assert.ErrorIs(t, err, engine.ErrStateCorrupt)
}

func TestSnapshotCreateRoundTrip(t *testing.T) {
	cfg := map[string]string{
		"rotors":    "viii vi v",
		"reflector": "c",
		"rings":     "dkp",
		"positions": "mzq",
		"plugs":     "at bl df",
	}
	c := NewConfigurator(M3)
	m, err := c.Create(cfg, nil)
	require.NoError(t, err)

	snap, err := c.Snapshot(m)
	require.NoError(t, err)
	assert.Equal(t, "viii vi v", snap["rotors"])
	assert.Equal(t, "c", snap["reflector"])
	assert.Equal(t, "dkp", snap["rings"])
	assert.Equal(t, "mzq", snap["positions"])
	assert.Equal(t, "at bl df", snap["plugs"])

	m2, err := c.Create(snap, nil)
	require.NoError(t, err)
	msg := "snapshotmustrebuildthesamemachine"
	assert.Equal(t, m.Encrypt(msg), m2.Encrypt(msg))
}

func TestConfiguratorRejections(t *testing.T) {
	c := NewConfigurator(M3)
	_, err := c.Create(map[string]string{"bogus": "x"}, nil)
	assert.ErrorIs(t, err, engine.ErrUnknownKeyword)
	_, err = c.Create(map[string]string{"rotors": "i ii"}, nil)
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
	_, err = c.Create(map[string]string{"rotors": "i ii nine"}, nil)
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
	_, err = c.Create(map[string]string{"rotors": "beta ii iii"}, nil)
	assert.ErrorIs(t, err, engine.ErrMalformedValue, "greek wheel outside the greek slot")
	_, err = c.Create(map[string]string{"positions": "a!c"}, nil)
	assert.ErrorIs(t, err, engine.ErrConfigInvalid)

	_, err = NewConfigurator(M4).Create(map[string]string{"reflector": "d"}, nil)
	assert.ErrorIs(t, err, engine.ErrMalformedValue)
	_, err = NewConfigurator("Bogus").Create(nil, nil)
	assert.ErrorIs(t, err, engine.ErrConfigInvalid)
}

func TestCurrentPermutationMatchesEncrypt(t *testing.T) {
	a, err := New(Services)
	require.NoError(t, err)
	b, err := New(Services)
	require.NoError(t, err)

	// The snapshot must not advance the gear.
	perm := a.CurrentPermutation()
	require.Len(t, perm, 26)
	assert.Equal(t, perm, a.CurrentPermutation())

	// After stepping one machine by hand, its induced permutation predicts
	// the other machine's next keypress.
	a.Step()
	perm = a.CurrentPermutation()
	out, err := b.EncryptRune('a')
	require.NoError(t, err)
	assert.Equal(t, string(rune('a'+perm[0])), out)
}
