package typex

import (
	"fmt"
	"strings"

	"rotorkit/engine"
	"rotorkit/engine/alphabet"
	"rotorkit/engine/machine"
	"rotorkit/engine/permutation"
	"rotorkit/engine/rotor"
	"rotorkit/engine/rotorset"
)

// drumSlots is the configuration order of the selectable drums, matching the
// display order of the visible slots.
var drumSlots = []string{"slow", "middle", "fast", "stator2", "stator1"}

type configurator struct{}

// NewConfigurator returns the Typex configurator.
func NewConfigurator() machine.Configurator {
	return &configurator{}
}

func (c *configurator) Schema() []machine.Keyword {
	return []machine.Keyword{
		{Name: "rotors", Type: machine.KeywordString, Help: "five drums a..n, append r for reversed insertion, e.g. \"a br c d e\""},
		{Name: "rings", Type: machine.KeywordString, Help: "ring settings, one window letter per visible drum"},
		{Name: "positions", Type: machine.KeywordString, Help: "start positions, one window letter per visible drum"},
		{Name: "plugs", Type: machine.KeywordString, Help: "plugboard as a 26-letter substitution, empty for none"},
		{Name: "showshifts", Type: machine.KeywordBool, Help: "render shift codes as < and > on decrypt"},
		{Name: "rotorset", Type: machine.KeywordString, Help: "drum parameter: sp02390, y269 or plugsy269"},
	}
}

// RotorSetName maps the drum parameter onto a catalogue.  plugsy269 draws on
// the Y269 drums; an unknown parameter falls back to the default issue.
func (c *configurator) RotorSetName(cfg map[string]string) string {
	switch machine.CfgString(cfg, "rotorset", "sp02390") {
	case "y269", "plugsy269":
		return "y269"
	}
	return "sp02390"
}

// RandomizeExtras draws the optional plugboard when the plugsy269 parameter
// asks for one.
func (c *configurator) RandomizeExtras(m *machine.Machine, rng *engine.Rand, parameter string) error {
	if parameter != "plugsy269" {
		return nil
	}
	m.SetInput(machine.NewPermTransform(permutation.Random(rng, 26)))
	return nil
}

func (c *configurator) Create(cfg map[string]string, custom *rotorset.Set) (*machine.Machine, error) {
	if err := machine.CheckKeywords(c.Schema(), cfg); err != nil {
		return nil, err
	}
	var (
		m   *machine.Machine
		set *rotorset.Set
		err error
	)
	if custom != nil {
		if m, err = New(); err != nil {
			return nil, err
		}
		m.AddRotorSet(custom)
		m.SetRotorSetName(custom.Name())
		set = custom
	} else {
		if m, err = newOnSet(c.RotorSetName(cfg)); err != nil {
			return nil, err
		}
		set = m.DefaultRotorSet()
	}
	if v, ok := cfg["rotors"]; ok {
		if err := applyDrums(m, set, v); err != nil {
			return nil, err
		}
	}
	if v, ok := cfg["rings"]; ok {
		if err := applyRings(m, v); err != nil {
			return nil, err
		}
	}
	if v, ok := cfg["positions"]; ok {
		if err := m.SetPositions(v); err != nil {
			return nil, err
		}
	}
	if v, ok := cfg["plugs"]; ok {
		if err := SetPlugboard(m, v); err != nil {
			return nil, err
		}
	}
	if shift, ok := m.Keyboard().(*alphabet.Shifting); ok {
		shift.ShowShifts = machine.CfgBool(cfg, "showshifts", false)
	}
	return m, nil
}

func (c *configurator) Snapshot(m *machine.Machine) (map[string]string, error) {
	cfg := make(map[string]string)
	tokens := make([]string, len(drumSlots))
	for i, slot := range drumSlots {
		d := m.Gear().Descriptor(slot)
		if d.RotorID < RotorA || d.RotorID > RotorN {
			return nil, fmt.Errorf("%w: drum id %d has no name", engine.ErrConfigInvalid, d.RotorID)
		}
		name := string(rune('a' + d.RotorID - RotorA))
		if d.InsertInverse {
			name += "r"
		}
		tokens[i] = name
	}
	cfg["rotors"] = strings.Join(tokens, " ")

	window := alphabet.Latin()
	visible := m.Gear().VisibleSlots()
	rings := make([]rune, len(visible))
	for i, slot := range visible {
		rings[i] = window.Symbol(m.Gear().Descriptor(slot).Rotor.Ring().Offset())
	}
	cfg["rings"] = string(rings)
	cfg["positions"] = m.Positions()
	cfg["plugs"] = Plugboard(m)
	if shift, ok := m.Keyboard().(*alphabet.Shifting); ok && shift.ShowShifts {
		cfg["showshifts"] = "true"
	}
	cfg["rotorset"] = m.RotorSetName()
	return cfg, nil
}

func parseDrum(token string) (int, bool, error) {
	runes := []rune(strings.ToLower(token))
	reversed := false
	if len(runes) == 2 && runes[1] == 'r' {
		reversed = true
		runes = runes[:1]
	}
	if len(runes) != 1 || runes[0] < 'a' || runes[0] > 'n' {
		return 0, false, fmt.Errorf("%w: unknown drum %q", engine.ErrMalformedValue, token)
	}
	return int(runes[0]-'a') + RotorA, reversed, nil
}

func applyDrums(m *machine.Machine, set *rotorset.Set, names string) error {
	fields := strings.Fields(names)
	if len(fields) != len(drumSlots) {
		return fmt.Errorf("%w: want %d drum names, got %d", engine.ErrMalformedValue, len(drumSlots), len(fields))
	}
	for i, token := range fields {
		id, reversed, err := parseDrum(token)
		if err != nil {
			return err
		}
		if !set.HasRotor(id) {
			return fmt.Errorf("%w: drum %q not in set %q", engine.ErrMalformedValue, token, set.Name())
		}
		perm, err := set.Rotor(id)
		if err != nil {
			return err
		}
		if reversed {
			perm = rotor.ReverseWiring(perm)
		}
		d := m.Gear().Descriptor(drumSlots[i])
		d.RotorID = id
		d.InsertInverse = reversed
		d.Rotor.SetPermutation(perm)
		ringID := 0
		pattern := make([]int, perm.Size())
		if set.HasRing(id) {
			ringID = id
			pattern, _ = set.RingPattern(id)
		}
		d.RingID = ringID
		d.Rotor.Ring().SetPattern(pattern)
	}
	return nil
}

func applyRings(m *machine.Machine, s string) error {
	window := alphabet.Latin()
	visible := m.Gear().VisibleSlots()
	runes := []rune(strings.ToLower(s))
	if len(runes) != len(visible) {
		return fmt.Errorf("%w: want %d ring letters, got %d", engine.ErrMalformedValue, len(visible), len(runes))
	}
	for i, slot := range visible {
		code, ok := window.Code(runes[i])
		if !ok {
			return fmt.Errorf("%w: %q is not a ring letter", engine.ErrMalformedValue, runes[i])
		}
		m.Gear().Descriptor(slot).Rotor.Ring().SetOffset(code)
	}
	return nil
}
