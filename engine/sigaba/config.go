package sigaba

import (
	"fmt"
	"strings"

	"rotorkit/engine"
	"rotorkit/engine/machine"
	"rotorkit/engine/rotor"
	"rotorkit/engine/rotorset"
)

type configurator struct {
	variant string
}

// NewConfigurator returns the configurator for a SIGABA variant.
func NewConfigurator(variant string) machine.Configurator {
	return &configurator{variant: variant}
}

func (c *configurator) Schema() []machine.Keyword {
	return []machine.Keyword{
		{Name: "cipher", Type: machine.KeywordString, Help: "cipher bank as five tokens 0..9 with n/r orientation, e.g. \"0n 1n 2r 3n 4n\""},
		{Name: "control", Type: machine.KeywordString, Help: "control bank as five tokens 0..9 with n/r orientation"},
		{Name: "index", Type: machine.KeywordString, Help: "index bank as five tokens 0..4 with n/r orientation"},
		{Name: "positions", Type: machine.KeywordString, Help: "ten window letters then five index digits, e.g. \"oooooooooo00000\""},
		{Name: "rotorset", Type: machine.KeywordString, Help: "rotor catalogue name"},
	}
}

func (c *configurator) RotorSetName(cfg map[string]string) string {
	return machine.CfgString(cfg, "rotorset", "sigaba")
}

func (c *configurator) Create(cfg map[string]string, custom *rotorset.Set) (*machine.Machine, error) {
	if err := machine.CheckKeywords(c.Schema(), cfg); err != nil {
		return nil, err
	}
	m, err := New(c.variant)
	if err != nil {
		return nil, err
	}
	set := m.DefaultRotorSet()
	if custom != nil {
		m.AddRotorSet(custom)
		m.SetRotorSetName(custom.Name())
		set = custom
	}
	if v, ok := cfg["cipher"]; ok {
		if err := applyBank(m, set, slotNames("cipher"), v, bigRotorBase, 9); err != nil {
			return nil, err
		}
	}
	if v, ok := cfg["control"]; ok {
		if err := applyBank(m, set, slotNames("driver"), v, bigRotorBase, 9); err != nil {
			return nil, err
		}
	}
	if v, ok := cfg["index"]; ok {
		if err := applyBank(m, set, slotNames("index"), v, indexRotorBase, 4); err != nil {
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
	banks := []struct {
		keyword string
		prefix  string
		base    int
	}{
		{"cipher", "cipher", bigRotorBase},
		{"control", "driver", bigRotorBase},
		{"index", "index", indexRotorBase},
	}
	for _, bank := range banks {
		tokens := make([]string, 5)
		for i, slot := range slotNames(bank.prefix) {
			d := m.Gear().Descriptor(slot)
			orient := "n"
			if d.InsertInverse {
				orient = "r"
			}
			tokens[i] = fmt.Sprintf("%d%s", d.RotorID-bank.base, orient)
		}
		cfg[bank.keyword] = strings.Join(tokens, " ")
	}
	cfg["positions"] = m.Positions()
	cfg["rotorset"] = m.RotorSetName()
	return cfg, nil
}

func parseBankToken(token string, base, max int) (int, bool, error) {
	runes := []rune(strings.ToLower(token))
	if len(runes) != 2 || runes[0] < '0' || runes[0] > rune('0'+max) {
		return 0, false, fmt.Errorf("%w: unknown rotor %q", engine.ErrMalformedValue, token)
	}
	switch runes[1] {
	case 'n':
		return base + int(runes[0]-'0'), false, nil
	case 'r':
		return base + int(runes[0]-'0'), true, nil
	}
	return 0, false, fmt.Errorf("%w: orientation in %q must be n or r", engine.ErrMalformedValue, token)
}

func applyBank(m *machine.Machine, set *rotorset.Set, slots []string, names string, base, max int) error {
	fields := strings.Fields(names)
	if len(fields) != len(slots) {
		return fmt.Errorf("%w: want %d rotor tokens, got %d", engine.ErrMalformedValue, len(slots), len(fields))
	}
	for i, token := range fields {
		id, reversed, err := parseBankToken(token, base, max)
		if err != nil {
			return err
		}
		if !set.HasRotor(id) {
			return fmt.Errorf("%w: rotor %q not in set %q", engine.ErrMalformedValue, token, set.Name())
		}
		perm, err := set.Rotor(id)
		if err != nil {
			return err
		}
		if reversed {
			perm = rotor.ReverseWiring(perm)
		}
		d := m.Gear().Descriptor(slots[i])
		d.RotorID = id
		d.InsertInverse = reversed
		d.Rotor.SetPermutation(perm)
	}
	return nil
}
