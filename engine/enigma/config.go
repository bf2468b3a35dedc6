package enigma

import (
	"fmt"
	"strconv"
	"strings"

	"rotorkit/engine"
	"rotorkit/engine/alphabet"
	"rotorkit/engine/machine"
	"rotorkit/engine/rotorset"
)

var wheelNames = map[int]string{
	RotorI:     "i",
	RotorII:    "ii",
	RotorIII:   "iii",
	RotorIV:    "iv",
	RotorV:     "v",
	RotorVI:    "vi",
	RotorVII:   "vii",
	RotorVIII:  "viii",
	RotorBeta:  "beta",
	RotorGamma: "gamma",
}

var wheelIDs = func() map[string]int {
	out := make(map[string]int, len(wheelNames))
	for id, name := range wheelNames {
		out[name] = id
	}
	return out
}()

func builtinSetName(variant string) string {
	switch variant {
	case Abwehr:
		return "abwehr"
	case Railway:
		return "railway"
	case Tirpitz:
		return "tirpitz"
	case KD:
		return "kd"
	default:
		return "enigma"
	}
}

type configurator struct {
	variant string
}

// NewConfigurator returns the configurator for an Enigma variant.
func NewConfigurator(variant string) machine.Configurator {
	return &configurator{variant: variant}
}

func (c *configurator) Schema() []machine.Keyword {
	kws := []machine.Keyword{
		{Name: "rotors", Type: machine.KeywordString, Help: "wheel order, left to right"},
		{Name: "rings", Type: machine.KeywordString, Help: "ring settings, one window letter per visible wheel"},
		{Name: "positions", Type: machine.KeywordString, Help: "start positions, one window letter per visible wheel"},
		{Name: "rotorset", Type: machine.KeywordString, Help: "rotor set name"},
	}
	switch c.variant {
	case Services:
		kws = append(kws,
			machine.Keyword{Name: "reflector", Type: machine.KeywordString, Help: "reflector: b, c or d"},
			machine.Keyword{Name: "plugs", Type: machine.KeywordString, Help: "plugboard pairs, e.g. \"at bl df\""},
			machine.Keyword{Name: "usesuhr", Type: machine.KeywordBool, Help: "cable the plugs through the Uhr"},
			machine.Keyword{Name: "uhrdial", Type: machine.KeywordString, Help: "Uhr dial position 0..39"},
			machine.Keyword{Name: "ukwd", Type: machine.KeywordString, Help: "UKW-D plug pairs, Bletchley Park notation"},
		)
	case M3, M4:
		kws = append(kws,
			machine.Keyword{Name: "reflector", Type: machine.KeywordString, Help: "reflector: b or c"},
			machine.Keyword{Name: "plugs", Type: machine.KeywordString, Help: "plugboard pairs, e.g. \"at bl df\""},
		)
	case KD:
		kws = append(kws,
			machine.Keyword{Name: "ukwd", Type: machine.KeywordString, Help: "UKW-D plug pairs, Bletchley Park notation"},
		)
	}
	return kws
}

func (c *configurator) RotorSetName(cfg map[string]string) string {
	return machine.CfgString(cfg, "rotorset", builtinSetName(c.variant))
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
	if v, ok := cfg["rotors"]; ok {
		if err := applyRotors(m, set, v); err != nil {
			return nil, err
		}
	}
	if v, ok := cfg["reflector"]; ok {
		if err := applyReflector(m, set, c.variant, v); err != nil {
			return nil, err
		}
	}
	if v, ok := cfg["ukwd"]; ok {
		if err := SetUKWD(m, v); err != nil {
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
	if machine.CfgBool(cfg, "usesuhr", false) {
		dial := 0
		if v, ok := cfg["uhrdial"]; ok {
			dial, err = strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("%w: uhrdial %q", engine.ErrMalformedValue, v)
			}
		}
		if err := AttachUhr(m, cfg["plugs"], dial); err != nil {
			return nil, err
		}
	} else if v, ok := cfg["plugs"]; ok {
		if err := SetPlugboard(m, v); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (c *configurator) Snapshot(m *machine.Machine) (map[string]string, error) {
	cfg := make(map[string]string)
	slots := selectableSlots(m)
	names := make([]string, len(slots))
	for i, slot := range slots {
		d := m.Gear().Descriptor(slot)
		name, ok := wheelNames[d.RotorID]
		if !ok {
			return nil, fmt.Errorf("%w: wheel id %d has no name", engine.ErrConfigInvalid, d.RotorID)
		}
		names[i] = name
	}
	cfg["rotors"] = strings.Join(names, " ")

	ukw := m.Gear().Descriptor("ukw")
	switch c.variant {
	case Services, M3, M4:
		switch ukw.RotorID {
		case UKWB, UKWBThin:
			cfg["reflector"] = "b"
		case UKWC, UKWCThin:
			cfg["reflector"] = "c"
		case UKWDPlaceholder:
			cfg["reflector"] = "d"
		}
	}
	if ukw.RotorID == UKWDPlaceholder {
		cfg["ukwd"] = UKWDPairs(ukw.Rotor.Permutation())
	}

	window := alphabet.Latin()
	visible := m.Gear().VisibleSlots()
	rings := make([]rune, len(visible))
	for i, slot := range visible {
		rings[i] = window.Symbol(m.Gear().Descriptor(slot).Rotor.Ring().Offset())
	}
	cfg["rings"] = string(rings)
	cfg["positions"] = m.Positions()

	switch t := m.Input().(type) {
	case *Uhr:
		cfg["usesuhr"] = "true"
		cfg["uhrdial"] = strconv.Itoa(t.Dial())
		cabling := t.Cabling()
		parts := make([]string, 0, 10)
		for i := 0; i+2 <= len(cabling); i += 2 {
			parts = append(parts, cabling[i:i+2])
		}
		cfg["plugs"] = strings.Join(parts, " ")
	case *machine.PermTransform:
		cfg["plugs"] = PlugboardPairs(t.Permutation())
	}
	cfg["rotorset"] = m.RotorSetName()
	return cfg, nil
}

// selectableSlots lists the visible slots whose wheel the operator chooses,
// left to right; the reflector is configured separately.
func selectableSlots(m *machine.Machine) []string {
	var out []string
	for _, slot := range m.Gear().VisibleSlots() {
		if slot != "ukw" {
			out = append(out, slot)
		}
	}
	return out
}

func applyRotors(m *machine.Machine, set *rotorset.Set, names string) error {
	slots := selectableSlots(m)
	fields := strings.Fields(strings.ToLower(names))
	if len(fields) != len(slots) {
		return fmt.Errorf("%w: want %d wheel names, got %d", engine.ErrMalformedValue, len(slots), len(fields))
	}
	for i, name := range fields {
		id, ok := wheelIDs[name]
		if !ok || !set.HasRotor(id) {
			return fmt.Errorf("%w: unknown wheel %q", engine.ErrMalformedValue, name)
		}
		greek := id == RotorBeta || id == RotorGamma
		if greek != (slots[i] == "greek") {
			return fmt.Errorf("%w: wheel %q cannot sit in slot %q", engine.ErrMalformedValue, name, slots[i])
		}
		d := m.Gear().Descriptor(slots[i])
		perm, err := set.Rotor(id)
		if err != nil {
			return err
		}
		if perm.Size() != d.Rotor.Size() {
			return fmt.Errorf("%w: wheel %q has %d contacts, want %d",
				engine.ErrConfigInvalid, name, perm.Size(), d.Rotor.Size())
		}
		d.RotorID = id
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

func applyReflector(m *machine.Machine, set *rotorset.Set, variant, name string) error {
	var id int
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "b":
		id = UKWB
		if variant == M4 {
			id = UKWBThin
		}
	case "c":
		id = UKWC
		if variant == M4 {
			id = UKWCThin
		}
	case "d":
		if variant == M4 {
			return fmt.Errorf("%w: the M4 has no UKW-D", engine.ErrMalformedValue)
		}
		id = UKWDPlaceholder
	default:
		return fmt.Errorf("%w: unknown reflector %q", engine.ErrMalformedValue, name)
	}
	d := m.Gear().Descriptor("ukw")
	perm, err := set.Rotor(id)
	if err != nil {
		return err
	}
	if id == UKWDPlaceholder {
		if perm, err = UKWDWiring(DefaultUKWDPairs); err != nil {
			return err
		}
	}
	d.RotorID = id
	d.Rotor.SetPermutation(perm)
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
