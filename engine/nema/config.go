package nema

import (
	"fmt"
	"strconv"
	"strings"

	"rotorkit/engine"
	"rotorkit/engine/machine"
	"rotorkit/engine/rotorset"
)

var (
	contactSlots = []string{"contact2", "contact4", "contact6", "contact8"}
	driveSlots   = []string{"drive3", "drive5", "drive7", "drive9"}
)

type configurator struct{}

// NewConfigurator returns the Nema configurator.
func NewConfigurator() machine.Configurator {
	return &configurator{}
}

func (c *configurator) Schema() []machine.Keyword {
	return []machine.Keyword{
		{Name: "rotors", Type: machine.KeywordString, Help: "four contact wheels a..f left to right, e.g. \"a b c d\""},
		{Name: "drives", Type: machine.KeywordString, Help: "four drive wheel ring numbers 12..23, e.g. \"12 13 14 15\""},
		{Name: "redwheel", Type: machine.KeywordString, Help: "red wheel issue: war or training"},
		{Name: "positions", Type: machine.KeywordString, Help: "start positions, one window letter per wheel"},
		{Name: "rotorset", Type: machine.KeywordString, Help: "rotor catalogue name"},
	}
}

func (c *configurator) RotorSetName(cfg map[string]string) string {
	return machine.CfgString(cfg, "rotorset", "nema")
}

func (c *configurator) Create(cfg map[string]string, custom *rotorset.Set) (*machine.Machine, error) {
	if err := machine.CheckKeywords(c.Schema(), cfg); err != nil {
		return nil, err
	}
	// An unknown red wheel issue falls back to the war issue.
	issue := machine.CfgString(cfg, "redwheel", War)
	if issue != War && issue != Training {
		issue = War
	}
	m, err := New(issue)
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
		if err := applyContacts(m, set, v); err != nil {
			return nil, err
		}
	}
	if v, ok := cfg["drives"]; ok {
		if err := applyDrives(m, set, v); err != nil {
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

	contacts := make([]string, len(contactSlots))
	for i, slot := range contactSlots {
		d := m.Gear().Descriptor(slot)
		if d.RotorID < ContactA || d.RotorID > ContactF {
			return nil, fmt.Errorf("%w: contact wheel id %d has no name", engine.ErrConfigInvalid, d.RotorID)
		}
		contacts[i] = string(rune('a' + d.RotorID - ContactA))
	}
	cfg["rotors"] = strings.Join(contacts, " ")

	drives := make([]string, len(driveSlots))
	for i, slot := range driveSlots {
		drives[i] = strconv.Itoa(m.Gear().Descriptor(slot).RingID)
	}
	cfg["drives"] = strings.Join(drives, " ")

	issue := War
	if m.Gear().Descriptor("red").RingID == TrainingRing {
		issue = Training
	}
	cfg["redwheel"] = issue
	cfg["positions"] = m.Positions()
	cfg["rotorset"] = m.RotorSetName()
	return cfg, nil
}

func applyContacts(m *machine.Machine, set *rotorset.Set, names string) error {
	fields := strings.Fields(strings.ToLower(names))
	if len(fields) != len(contactSlots) {
		return fmt.Errorf("%w: want %d contact wheels, got %d", engine.ErrMalformedValue, len(contactSlots), len(fields))
	}
	seen := make(map[string]bool)
	for i, token := range fields {
		if len(token) != 1 || token[0] < 'a' || token[0] > 'f' {
			return fmt.Errorf("%w: unknown contact wheel %q", engine.ErrMalformedValue, token)
		}
		if seen[token] {
			return fmt.Errorf("%w: contact wheel %q inserted twice", engine.ErrMalformedValue, token)
		}
		seen[token] = true
		id := int(token[0]-'a') + ContactA
		if !set.HasRotor(id) {
			return fmt.Errorf("%w: contact wheel %q not in set %q", engine.ErrMalformedValue, token, set.Name())
		}
		perm, err := set.Rotor(id)
		if err != nil {
			return err
		}
		d := m.Gear().Descriptor(contactSlots[i])
		d.RotorID = id
		d.Rotor.SetPermutation(perm)
	}
	return nil
}

func applyDrives(m *machine.Machine, set *rotorset.Set, names string) error {
	fields := strings.Fields(names)
	if len(fields) != len(driveSlots) {
		return fmt.Errorf("%w: want %d drive rings, got %d", engine.ErrMalformedValue, len(driveSlots), len(fields))
	}
	seen := make(map[int]bool)
	for i, token := range fields {
		id, err := strconv.Atoi(token)
		if err != nil || id < DriveRingFirst || id > DriveRingLast || !set.HasRing(id) {
			return fmt.Errorf("%w: unknown drive ring %q", engine.ErrMalformedValue, token)
		}
		if seen[id] {
			return fmt.Errorf("%w: drive ring %q mounted twice", engine.ErrMalformedValue, token)
		}
		seen[id] = true
		pattern, err := set.RingPattern(id)
		if err != nil {
			return err
		}
		d := m.Gear().Descriptor(driveSlots[i])
		d.RingID = id
		d.Rotor.Ring().SetPattern(pattern)
	}
	return nil
}
