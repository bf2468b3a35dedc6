package sg39

import (
	"fmt"
	"strconv"
	"strings"

	"rotorkit/engine"
	"rotorkit/engine/alphabet"
	"rotorkit/engine/machine"
	"rotorkit/engine/rotorset"
)

type configurator struct{}

// NewConfigurator returns the SG39 configurator.
func NewConfigurator() machine.Configurator {
	return &configurator{}
}

func (c *configurator) Schema() []machine.Keyword {
	return []machine.Keyword{
		{Name: "rotors", Type: machine.KeywordString, Help: "four rotors 1..10 left to right, e.g. \"4 3 2 1\""},
		{Name: "notchrings", Type: machine.KeywordString, Help: "notch rings 1..3 on the moving rotors, fast first"},
		{Name: "rings", Type: machine.KeywordString, Help: "ring settings, one window letter per rotor"},
		{Name: "positions", Type: machine.KeywordString, Help: "rotor positions, optionally with pin wheel positions, e.g. \"vjna:0.0.0\""},
		{Name: "plugs", Type: machine.KeywordString, Help: "plugboard as space-separated letter pairs"},
		{Name: "pins21", Type: machine.KeywordString, Help: "active pin positions of the 21 wheel, space-separated"},
		{Name: "pins23", Type: machine.KeywordString, Help: "active pin positions of the 23 wheel, space-separated"},
		{Name: "pins25", Type: machine.KeywordString, Help: "active pin positions of the 25 wheel, space-separated"},
		{Name: "spacekey", Type: machine.KeywordBool, Help: "wire the space bar to the Q contact"},
		{Name: "rotorset", Type: machine.KeywordString, Help: "rotor catalogue name"},
	}
}

func (c *configurator) RotorSetName(cfg map[string]string) string {
	return machine.CfgString(cfg, "rotorset", "sg39")
}

// RandomizeExtras redraws the pin patterns of the three wheels.
func (c *configurator) RandomizeExtras(m *machine.Machine, rng *engine.Rand, _ string) error {
	return RandomizePins(rng, m)
}

func (c *configurator) Create(cfg map[string]string, custom *rotorset.Set) (*machine.Machine, error) {
	if err := machine.CheckKeywords(c.Schema(), cfg); err != nil {
		return nil, err
	}
	m, err := New(machine.CfgBool(cfg, "spacekey", false))
	if err != nil {
		return nil, err
	}
	set := m.DefaultRotorSet()
	if custom != nil {
		m.AddRotorSet(custom)
		m.SetRotorSetName(custom.Name())
		set = custom
	}
	if v, ok := cfg["rotors"]; ok {
		if err := applyRotors(m, set, v); err != nil {
			return nil, err
		}
	}
	if v, ok := cfg["notchrings"]; ok {
		if err := applyNotchRings(m, set, v); err != nil {
			return nil, err
		}
	}
	if v, ok := cfg["rings"]; ok {
		if err := applyRings(m, v); err != nil {
			return nil, err
		}
	}
	for i, keyword := range []string{"pins21", "pins23", "pins25"} {
		if v, ok := cfg[keyword]; ok {
			if err := applyPins(m, pinSlots[i], v); err != nil {
				return nil, err
			}
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
	return m, nil
}

func (c *configurator) Snapshot(m *machine.Machine) (map[string]string, error) {
	cfg := make(map[string]string)

	rotors := make([]string, len(wheelSlots))
	rings := make([]rune, len(wheelSlots))
	window := alphabet.Latin()
	for i, slot := range wheelSlots {
		d := m.Gear().Descriptor(slot)
		rotors[i] = strconv.Itoa(d.RotorID)
		rings[i] = window.Symbol(d.Rotor.Ring().Offset())
	}
	cfg["rotors"] = strings.Join(rotors, " ")
	cfg["rings"] = string(rings)

	notches := make([]string, len(pinSlots))
	for i, slot := range pinSlots {
		notches[i] = strconv.Itoa(m.Gear().Descriptor(slot).RingID)
	}
	cfg["notchrings"] = strings.Join(notches, " ")

	for i, keyword := range []string{"pins21", "pins23", "pins25"} {
		var active []string
		for pos, pin := range m.Gear().Descriptor(pinSlots[i]).PinWheel.Pins() {
			if pin {
				active = append(active, strconv.Itoa(pos))
			}
		}
		cfg[keyword] = strings.Join(active, " ")
	}

	cfg["positions"] = m.Positions()
	cfg["plugs"] = Plugboard(m)
	if _, ok := m.Keyboard().(*alphabet.Asymmetric); ok {
		cfg["spacekey"] = "true"
	}
	cfg["rotorset"] = m.RotorSetName()
	return cfg, nil
}

func applyRotors(m *machine.Machine, set *rotorset.Set, names string) error {
	fields := strings.Fields(names)
	if len(fields) != len(wheelSlots) {
		return fmt.Errorf("%w: want %d rotor numbers, got %d", engine.ErrMalformedValue, len(wheelSlots), len(fields))
	}
	seen := make(map[int]bool)
	for i, token := range fields {
		id, err := strconv.Atoi(token)
		if err != nil || !set.HasRotor(id) || id == Reflector {
			return fmt.Errorf("%w: unknown rotor %q", engine.ErrMalformedValue, token)
		}
		if seen[id] {
			return fmt.Errorf("%w: rotor %q inserted twice", engine.ErrMalformedValue, token)
		}
		seen[id] = true
		perm, err := set.Rotor(id)
		if err != nil {
			return err
		}
		d := m.Gear().Descriptor(wheelSlots[i])
		d.RotorID = id
		d.Rotor.SetPermutation(perm)
	}
	return nil
}

func applyNotchRings(m *machine.Machine, set *rotorset.Set, names string) error {
	fields := strings.Fields(names)
	if len(fields) != len(pinSlots) {
		return fmt.Errorf("%w: want %d notch rings, got %d", engine.ErrMalformedValue, len(pinSlots), len(fields))
	}
	for i, token := range fields {
		id, err := strconv.Atoi(token)
		if err != nil || !set.HasRing(id) {
			return fmt.Errorf("%w: unknown notch ring %q", engine.ErrMalformedValue, token)
		}
		pattern, err := set.RingPattern(id)
		if err != nil {
			return err
		}
		d := m.Gear().Descriptor(pinSlots[i])
		d.RingID = id
		d.Rotor.Ring().SetPattern(pattern)
	}
	return nil
}

func applyRings(m *machine.Machine, s string) error {
	window := alphabet.Latin()
	runes := []rune(strings.ToLower(s))
	if len(runes) != len(wheelSlots) {
		return fmt.Errorf("%w: want %d ring letters, got %d", engine.ErrMalformedValue, len(wheelSlots), len(runes))
	}
	for i, slot := range wheelSlots {
		code, ok := window.Code(runes[i])
		if !ok {
			return fmt.Errorf("%w: %q is not a ring letter", engine.ErrMalformedValue, runes[i])
		}
		m.Gear().Descriptor(slot).Rotor.Ring().SetOffset(code)
	}
	return nil
}

func applyPins(m *machine.Machine, slot, positions string) error {
	wheel := m.Gear().Descriptor(slot).PinWheel
	pins := make([]bool, wheel.Len())
	for _, token := range strings.Fields(positions) {
		pos, err := strconv.Atoi(token)
		if err != nil || pos < 0 || pos >= wheel.Len() {
			return fmt.Errorf("%w: %q is not a pin position on the %d wheel", engine.ErrMalformedValue, token, wheel.Len())
		}
		pins[pos] = true
	}
	return wheel.SetPins(pins)
}
