// Package enigma implements the Enigma machine family: the Services machine,
// the navy M3 and M4, the gear-driven Abwehr G, the Railway and Tirpitz
// commercial derivatives and the KD with its rewirable UKW-D reflector,
// including the plugboard and the Uhr scrambler attachment.
package enigma

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"rotorkit/engine"
	"rotorkit/engine/alphabet"
	"rotorkit/engine/machine"
	"rotorkit/engine/permutation"
	"rotorkit/engine/rotor"
	"rotorkit/engine/rotorset"
)

// Variant tags of the family.
const (
	Services = "Services"
	M3       = "M3"
	M4       = "M4"
	Abwehr   = "Abwehr"
	Railway  = "Railway"
	Tirpitz  = "Tirpitz"
	KD       = "KD"
)

// DefaultUKWDPairs is the UKW-D field rewiring a KD machine starts with, in
// Bletchley Park notation.
const DefaultUKWDPairs = "avboctdmezfngxhqiskrlupw"

type wheelPlan struct {
	slot    string
	rotorID int
	ringID  int
	hidden  bool
}

func variantPlans() []wheelPlan {
	return []wheelPlan{
		{"ukw", VariantUKW, 0, false},
		{"slow", VariantRotor3, VariantRotor3, false},
		{"middle", VariantRotor2, VariantRotor2, false},
		{"fast", VariantRotor1, VariantRotor1, false},
		{"etw", VariantETW, 0, true},
	}
}

// New assembles an Enigma machine of the given variant with its default
// wheel order, reflector and neutral settings.
func New(variant string) (*machine.Machine, error) {
	var (
		name      = "Enigma"
		set       *rotorset.Set
		plans     []wheelPlan
		abwehr    bool
		plugboard bool
	)
	switch variant {
	case Services, M3:
		set = newServicesSet()
		plugboard = true
		plans = []wheelPlan{
			{"ukw", UKWB, 0, true},
			{"slow", RotorI, RotorI, false},
			{"middle", RotorII, RotorII, false},
			{"fast", RotorIII, RotorIII, false},
			{"etw", ETWIdentity, 0, true},
		}
	case M4:
		name = "M4Enigma"
		set = newServicesSet()
		plugboard = true
		plans = []wheelPlan{
			{"ukw", UKWBThin, 0, true},
			{"greek", RotorBeta, 0, false},
			{"slow", RotorI, RotorI, false},
			{"middle", RotorII, RotorII, false},
			{"fast", RotorIII, RotorIII, false},
			{"etw", ETWIdentity, 0, true},
		}
	case Abwehr:
		set = newAbwehrSet()
		abwehr = true
		plans = []wheelPlan{
			{"ukw", VariantUKW, VariantUKW, false},
			{"slow", VariantRotor3, VariantRotor3, false},
			{"middle", VariantRotor2, VariantRotor2, false},
			{"fast", VariantRotor1, VariantRotor1, false},
			{"etw", VariantETW, 0, true},
		}
	case Railway:
		set = newRailwaySet()
		plans = variantPlans()
	case Tirpitz:
		set = newTirpitzSet()
		plans = variantPlans()
	case KD:
		set = newKDSet()
		plans = []wheelPlan{
			{"ukw", UKWDPlaceholder, 0, false},
			{"slow", VariantRotor3, VariantRotor3, false},
			{"middle", VariantRotor2, VariantRotor2, false},
			{"fast", VariantRotor1, VariantRotor1, false},
			{"etw", VariantETW, 0, true},
		}
	default:
		return nil, fmt.Errorf("%w: unknown Enigma variant %q", engine.ErrConfigInvalid, variant)
	}

	base := machine.NewBaseGear(alphabet.Latin())
	byName := make(map[string]*machine.Descriptor, len(plans))
	for _, p := range plans {
		d, err := machine.NewSlot(set, p.slot, p.rotorID, p.ringID, p.hidden)
		if err != nil {
			return nil, err
		}
		base.AddSlot(d)
		byName[p.slot] = d
	}

	// Signal order: entry wheel, fast to slow, greek wheel, reflector.
	order := []string{"etw", "fast", "middle", "slow"}
	if byName["greek"] != nil {
		order = append(order, "greek")
	}
	order = append(order, "ukw")
	rotors := make([]*rotor.Rotor, len(order))
	for i, slot := range order {
		rotors[i] = byName[slot].Rotor
	}
	stack := rotor.NewStack(rotors...)
	stack.SetReflecting(true)
	base.SetStack(stack)

	var gear machine.SteppingGear
	if abwehr {
		gear = NewAbwehrGear(base)
	} else {
		gear = NewClassicalGear(base, "fast", "middle", "slow")
	}

	sym := alphabet.NewSymmetric(alphabet.Latin())
	var m *machine.Machine
	def := machine.Def{
		Name:         name,
		Variant:      variant,
		RotorSetName: set.Name(),
		Gear:         gear,
		Keyboard:     sym,
		Printer:      sym,
		Contacts:     26,
		Reflecting:   true,
		PreStep:      true,
		SaveExtra:    func(f *ini.File) { saveExtras(m, f) },
		LoadExtra:    func(f *ini.File) (func(), error) { return loadExtras(m, f) },
	}
	m = machine.New(def)
	m.AddRotorSet(set)
	if plugboard {
		m.SetInput(machine.NewPermTransform(permutation.Identity(26)))
	}
	if variant == KD {
		p, err := UKWDWiring(DefaultUKWDPairs)
		if err != nil {
			return nil, err
		}
		byName["ukw"].Rotor.SetPermutation(p)
	}
	return m, nil
}

// PlugboardWiring builds a plugboard involution from space-separated letter
// pairs such as "at bl df".
func PlugboardWiring(pairs string) (*permutation.Permutation, error) {
	forward := make([]int, 26)
	for i := range forward {
		forward[i] = i
	}
	for _, pair := range strings.Fields(strings.ToLower(pairs)) {
		runes := []rune(pair)
		if len(runes) != 2 {
			return nil, fmt.Errorf("%w: plug %q is not a letter pair", engine.ErrConfigInvalid, pair)
		}
		a, b := runes[0], runes[1]
		if a < 'a' || a > 'z' || b < 'a' || b > 'z' || a == b {
			return nil, fmt.Errorf("%w: bad plug %q", engine.ErrConfigInvalid, pair)
		}
		ca, cb := int(a-'a'), int(b-'a')
		if forward[ca] != ca || forward[cb] != cb {
			return nil, fmt.Errorf("%w: plug %q reuses a letter", engine.ErrConfigInvalid, pair)
		}
		forward[ca], forward[cb] = cb, ca
	}
	return permutation.New(forward)
}

// PlugboardPairs renders a plugboard involution back into space-separated
// letter pairs.
func PlugboardPairs(p *permutation.Permutation) string {
	var parts []string
	for i := 0; i < p.Size(); i++ {
		j := p.Apply(i)
		if j > i {
			parts = append(parts, string([]rune{rune('a' + i), rune('a' + j)}))
		}
	}
	return strings.Join(parts, " ")
}

// SetPlugboard plugs the board from space-separated letter pairs, replacing
// an Uhr if one is attached.
func SetPlugboard(m *machine.Machine, pairs string) error {
	p, err := PlugboardWiring(pairs)
	if err != nil {
		return err
	}
	if t, ok := m.Input().(*machine.PermTransform); ok {
		t.SetPermutation(p)
		return nil
	}
	m.SetInput(machine.NewPermTransform(p))
	return nil
}

// AttachUhr replaces the plugboard with an Uhr cabled from exactly ten plug
// pairs; the first letter of each pair goes to the red pin.
func AttachUhr(m *machine.Machine, pairs string, dial int) error {
	cabling := strings.ReplaceAll(strings.ToLower(pairs), " ", "")
	u, err := NewUhr(cabling)
	if err != nil {
		return err
	}
	if err := u.SetDial(dial); err != nil {
		return err
	}
	m.SetInput(u)
	return nil
}

// SetUKWD rewires the rewirable reflector of a machine that carries one.
func SetUKWD(m *machine.Machine, pairs string) error {
	d := m.Gear().Descriptor("ukw")
	if d == nil || d.RotorID != UKWDPlaceholder {
		return fmt.Errorf("%w: no UKW-D fitted", engine.ErrNotSupported)
	}
	p, err := UKWDWiring(pairs)
	if err != nil {
		return err
	}
	d.Rotor.SetPermutation(p)
	return nil
}

func saveExtras(m *machine.Machine, f *ini.File) {
	switch t := m.Input().(type) {
	case *Uhr:
		section, _ := f.NewSection("uhr")
		section.Key("cabling").SetValue(t.Cabling())
		section.Key("dial").SetValue(strconv.Itoa(t.Dial()))
	case *machine.PermTransform:
		section, _ := f.NewSection("plugboard")
		section.Key("wiring").SetValue(machine.FormatIntList(t.Permutation().Vector()))
	}
	if d := m.Gear().Descriptor("ukw"); d != nil && d.RotorID == UKWDPlaceholder {
		section, _ := f.NewSection("ukwd")
		section.Key("wiring").SetValue(machine.FormatIntList(d.Rotor.Permutation().Vector()))
	}
}

func loadExtras(m *machine.Machine, f *ini.File) (func(), error) {
	var (
		input     machine.Transform
		haveInput bool
	)
	if section, err := f.GetSection("uhr"); err == nil {
		u, err := NewUhr(section.Key("cabling").String())
		if err != nil {
			return nil, err
		}
		dial, err := section.Key("dial").Int()
		if err != nil {
			return nil, fmt.Errorf("%w: uhr dial", engine.ErrStateCorrupt)
		}
		if err := u.SetDial(dial); err != nil {
			return nil, err
		}
		input, haveInput = u, true
	} else if section, err := f.GetSection("plugboard"); err == nil {
		vec, err := machine.ParseIntList(section.Key("wiring").String())
		if err != nil {
			return nil, err
		}
		p, err := permutation.New(vec)
		if err != nil {
			return nil, err
		}
		input, haveInput = machine.NewPermTransform(p), true
	}

	var ukwd *permutation.Permutation
	if section, err := f.GetSection("ukwd"); err == nil {
		if id, err := f.Section("ukw").Key("rotorid").Int(); err != nil || id != UKWDPlaceholder {
			return nil, fmt.Errorf("%w: state carries UKW-D wiring for a fixed reflector", engine.ErrStateCorrupt)
		}
		vec, err := machine.ParseIntList(section.Key("wiring").String())
		if err != nil {
			return nil, err
		}
		p, err := permutation.New(vec)
		if err != nil {
			return nil, err
		}
		if !p.IsInvolution() {
			return nil, fmt.Errorf("%w: UKW-D wiring is not an involution", engine.ErrStateCorrupt)
		}
		ukwd = p
	}

	return func() {
		if haveInput {
			m.SetInput(input)
		} else {
			m.SetInput(nil)
		}
		if ukwd != nil {
			m.Gear().Descriptor("ukw").Rotor.SetPermutation(ukwd)
		}
	}, nil
}
