// Package typex implements the British Typex: an Enigma-style reflecting
// machine with two settable stators between the entry and the moving bank,
// reversible drum insertion, a letters/figures shifting keyboard and an
// optional plugboard.
package typex

import (
	"fmt"

	"gopkg.in/ini.v1"

	"rotorkit/engine"
	"rotorkit/engine/alphabet"
	"rotorkit/engine/enigma"
	"rotorkit/engine/machine"
	"rotorkit/engine/permutation"
	"rotorkit/engine/rotor"
)

// Keyboard alphabets.  '<' and '>' are the letter and figure shift keys;
// they occupy the v and z contacts, so those letters are typed in figures
// mode instead.
const (
	lettersAlphabet = "abcdefghijklmnopqrstu<wxy>"
	figuresAlphabet = "-'vz3%x£8*().,9014/57<2 6>"
)

// New assembles a Typex on the SP02390 drum set with drums a..c moving,
// d and e as stators and no plugboard.
func New() (*machine.Machine, error) {
	return newOnSet("sp02390")
}

func newOnSet(setName string) (*machine.Machine, error) {
	var set = newSP02390Set()
	if setName == "y269" {
		set = newY269Set()
	} else if setName != "sp02390" {
		return nil, fmt.Errorf("%w: unknown Typex drum set %q", engine.ErrConfigInvalid, setName)
	}

	base := machine.NewBaseGear(alphabet.Latin())
	plans := []struct {
		slot    string
		rotorID int
		ringID  int
		hidden  bool
	}{
		{"ukw", Reflector, 0, true},
		{"slow", RotorA, RotorA, false},
		{"middle", RotorB, RotorB, false},
		{"fast", RotorC, RotorC, false},
		{"stator2", RotorD, RotorD, false},
		{"stator1", RotorE, RotorE, false},
	}
	byName := make(map[string]*machine.Descriptor, len(plans))
	for _, p := range plans {
		d, err := machine.NewSlot(set, p.slot, p.rotorID, p.ringID, p.hidden)
		if err != nil {
			return nil, err
		}
		base.AddSlot(d)
		byName[p.slot] = d
	}

	stack := rotor.NewStack(
		byName["stator1"].Rotor,
		byName["stator2"].Rotor,
		byName["fast"].Rotor,
		byName["middle"].Rotor,
		byName["slow"].Rotor,
		byName["ukw"].Rotor,
	)
	stack.SetReflecting(true)
	base.SetStack(stack)
	gear := enigma.NewClassicalGear(base, "fast", "middle", "slow")

	shift := alphabet.NewShifting(
		alphabet.New(lettersAlphabet),
		alphabet.New(figuresAlphabet),
		alphabet.Latin(),
	)
	var m *machine.Machine
	def := machine.Def{
		Name:         "Typex",
		Variant:      "Typex",
		RotorSetName: set.Name(),
		Gear:         gear,
		Keyboard:     shift,
		Printer:      shift,
		Contacts:     26,
		Reflecting:   true,
		PreStep:      true,
		SaveExtra:    func(f *ini.File) { saveExtras(m, f) },
		LoadExtra:    func(f *ini.File) (func(), error) { return loadExtras(m, f) },
	}
	m = machine.New(def)
	m.AddRotorSet(set)
	return m, nil
}

// SetPlugboard installs a plugboard from a 26-letter substitution string.
// Unlike the Enigma board the Typex plugboard takes a full permutation, not
// pairs.  An empty string removes the board.
func SetPlugboard(m *machine.Machine, subst string) error {
	if subst == "" {
		m.SetInput(nil)
		return nil
	}
	p, err := parseSubstitution(subst)
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

func parseSubstitution(subst string) (*permutation.Permutation, error) {
	runes := []rune(subst)
	if len(runes) != 26 {
		return nil, fmt.Errorf("%w: plugboard needs 26 letters, got %d", engine.ErrConfigInvalid, len(runes))
	}
	vec := make([]int, 26)
	for i, r := range runes {
		if r < 'a' || r > 'z' {
			return nil, fmt.Errorf("%w: bad plugboard letter %q", engine.ErrConfigInvalid, r)
		}
		vec[i] = int(r - 'a')
	}
	p, err := permutation.New(vec)
	if err != nil {
		return nil, fmt.Errorf("%w: plugboard is not a permutation", engine.ErrConfigInvalid)
	}
	return p, nil
}

// Plugboard renders the installed plugboard as its 26-letter substitution
// string, or "" when none is fitted.
func Plugboard(m *machine.Machine) string {
	t, ok := m.Input().(*machine.PermTransform)
	if !ok {
		return ""
	}
	vec := t.Permutation().Vector()
	out := make([]rune, len(vec))
	for i, v := range vec {
		out[i] = rune('a' + v)
	}
	return string(out)
}

func saveExtras(m *machine.Machine, f *ini.File) {
	if subst := Plugboard(m); subst != "" {
		section, _ := f.NewSection("plugboard")
		section.Key("substitution").SetValue(subst)
	}
}

func loadExtras(m *machine.Machine, f *ini.File) (func(), error) {
	section, err := f.GetSection("plugboard")
	if err != nil {
		return func() { m.SetInput(nil) }, nil
	}
	p, err := parseSubstitution(section.Key("substitution").String())
	if err != nil {
		return nil, fmt.Errorf("%w: plugboard substitution", engine.ErrStateCorrupt)
	}
	return func() { m.SetInput(machine.NewPermTransform(p)) }, nil
}
