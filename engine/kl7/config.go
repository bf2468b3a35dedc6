package kl7

import (
	"fmt"
	"strconv"
	"strings"

	"rotorkit/engine"
	"rotorkit/engine/machine"
	"rotorkit/engine/rotorset"
)

type configurator struct{}

// NewConfigurator returns the KL-7 configurator.
func NewConfigurator() machine.Configurator {
	return &configurator{}
}

func (c *configurator) Schema() []machine.Keyword {
	return []machine.Keyword{
		{Name: "rotors", Type: machine.KeywordString, Help: "eight cores a..m left to right, e.g. \"l f c g a b h d\""},
		{Name: "notchrings", Type: machine.KeywordString, Help: "seven notch ring numbers 1..11 for the moving rotors"},
		{Name: "notchoffsets", Type: machine.KeywordString, Help: "notch ring offsets, one window symbol per moving rotor"},
		{Name: "rings", Type: machine.KeywordString, Help: "letter ring offsets, one window symbol per rotor"},
		{Name: "positions", Type: machine.KeywordString, Help: "start positions, one window symbol per rotor, e.g. \"eaaag+aa\""},
		{Name: "rotorset", Type: machine.KeywordString, Help: "rotor catalogue name"},
	}
}

func (c *configurator) RotorSetName(cfg map[string]string) string {
	return machine.CfgString(cfg, "rotorset", "kl7")
}

func (c *configurator) Create(cfg map[string]string, custom *rotorset.Set) (*machine.Machine, error) {
	if err := machine.CheckKeywords(c.Schema(), cfg); err != nil {
		return nil, err
	}
	m, err := New()
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
		if err := applyCores(m, set, v); err != nil {
			return nil, err
		}
	}
	if v, ok := cfg["notchrings"]; ok {
		if err := applyNotchRings(m, set, v); err != nil {
			return nil, err
		}
	}
	if v, ok := cfg["notchoffsets"]; ok {
		if err := applyOffsets(m, movingSlots, v, func(d *machine.Descriptor, code int) {
			d.NotchRingOffset.Set(code)
		}); err != nil {
			return nil, err
		}
	}
	if v, ok := cfg["rings"]; ok {
		if err := applyOffsets(m, allSlots, v, func(d *machine.Descriptor, code int) {
			d.LetterRingOffset.Set(code)
		}); err != nil {
			return nil, err
		}
	}
	if v, ok := cfg["positions"]; ok {
		if err := m.SetPositions(v); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (c *configurator) Snapshot(m *machine.Machine) (map[string]string, error) {
	cfg := make(map[string]string)
	window := m.Gear().(*Gear).Window()

	cores := make([]string, len(allSlots))
	rings := make([]rune, len(allSlots))
	for i, slot := range allSlots {
		d := m.Gear().Descriptor(slot)
		if d.RotorID < RotorA || d.RotorID > RotorM {
			return nil, fmt.Errorf("%w: core id %d has no name", engine.ErrConfigInvalid, d.RotorID)
		}
		cores[i] = string(rune('a' + d.RotorID - RotorA))
		rings[i] = window.Symbol(d.LetterRingOffset.Value())
	}
	cfg["rotors"] = strings.Join(cores, " ")
	cfg["rings"] = string(rings)

	notches := make([]string, len(movingSlots))
	offsets := make([]rune, len(movingSlots))
	for i, slot := range movingSlots {
		d := m.Gear().Descriptor(slot)
		notches[i] = strconv.Itoa(d.RingID)
		offsets[i] = window.Symbol(d.NotchRingOffset.Value())
	}
	cfg["notchrings"] = strings.Join(notches, " ")
	cfg["notchoffsets"] = string(offsets)

	cfg["positions"] = m.Positions()
	cfg["rotorset"] = m.RotorSetName()
	return cfg, nil
}

func applyCores(m *machine.Machine, set *rotorset.Set, names string) error {
	fields := strings.Fields(strings.ToLower(names))
	if len(fields) != len(allSlots) {
		return fmt.Errorf("%w: want %d core names, got %d", engine.ErrMalformedValue, len(allSlots), len(fields))
	}
	seen := make(map[string]bool)
	for i, token := range fields {
		if len(token) != 1 || token[0] < 'a' || token[0] > 'm' {
			return fmt.Errorf("%w: unknown core %q", engine.ErrMalformedValue, token)
		}
		if seen[token] {
			return fmt.Errorf("%w: core %q inserted twice", engine.ErrMalformedValue, token)
		}
		seen[token] = true
		id := int(token[0]-'a') + RotorA
		if !set.HasRotor(id) {
			return fmt.Errorf("%w: core %q not in set %q", engine.ErrMalformedValue, token, set.Name())
		}
		perm, err := set.Rotor(id)
		if err != nil {
			return err
		}
		d := m.Gear().Descriptor(allSlots[i])
		d.RotorID = id
		d.Rotor.SetPermutation(perm)
	}
	return nil
}

func applyNotchRings(m *machine.Machine, set *rotorset.Set, names string) error {
	fields := strings.Fields(names)
	if len(fields) != len(movingSlots) {
		return fmt.Errorf("%w: want %d notch ring numbers, got %d", engine.ErrMalformedValue, len(movingSlots), len(fields))
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
		d := m.Gear().Descriptor(movingSlots[i])
		d.RingID = id
		d.Rotor.Ring().SetPattern(pattern)
	}
	return nil
}

func applyOffsets(m *machine.Machine, slots []string, s string, apply func(*machine.Descriptor, int)) error {
	window := m.Gear().(*Gear).Window()
	runes := []rune(strings.ToLower(s))
	if len(runes) != len(slots) {
		return fmt.Errorf("%w: want %d ring symbols, got %d", engine.ErrMalformedValue, len(slots), len(runes))
	}
	for i, r := range runes {
		code, ok := window.Code(r)
		if !ok {
			return fmt.Errorf("%w: %q is not a ring symbol", engine.ErrMalformedValue, r)
		}
		apply(m.Gear().Descriptor(slots[i]), code)
	}
	return nil
}
