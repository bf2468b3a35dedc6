// Package sg39 implements the German Schlüsselgerät 39: a reflecting
// four-rotor machine whose first three rotors are driven by an Enigma-style
// notch train with three Hagelin pin wheels layered on top.  With all pins
// removed the movement degenerates to classical Enigma stepping, which is how
// the machine emulates an M4.
package sg39

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"rotorkit/engine"
	"rotorkit/engine/alphabet"
	"rotorkit/engine/enigma"
	"rotorkit/engine/machine"
	"rotorkit/engine/permutation"
	"rotorkit/engine/rotor"
	"rotorkit/engine/rotorset"
)

// spaceAlphabet wires the space bar to the Q contact when the asymmetric
// keyboard option is on.
const spaceAlphabet = "abcdefghijklmnop rstuvwxyz"

// wheelSlots in display order; the reflector window is covered.
var wheelSlots = []string{"rotor4", "rotor3", "rotor2", "rotor1"}

// pinSlots are the pin wheel carriers, fast rotor first (wheel sizes 21, 23,
// 25).
var pinSlots = []string{"rotor1", "rotor2", "rotor3"}

// Gear is the SG39 stepping gear.  The fast rotor is gear driven and moves
// every character; the second and third rotors move on an active pin of
// their wheel or on the notch train: rotor one's notch carries rotor two,
// rotor two's notch carries rotors two and three.  All pins and notches are
// sensed before anything moves, and every pin wheel advances each character.
type Gear struct {
	*machine.BaseGear
}

func (g *Gear) Step() {
	r1 := g.Descriptor("rotor1")
	r2 := g.Descriptor("rotor2")
	r3 := g.Descriptor("rotor3")
	n1 := r1.Rotor.Ring().NotchAt(0) != 0
	n2 := r2.Rotor.Ring().NotchAt(0) != 0
	step2 := r2.PinWheel.Active() || n1 || n2
	step3 := r3.PinWheel.Active() || n2

	r1.PinWheel.Step()
	r2.PinWheel.Step()
	r3.PinWheel.Step()
	r1.Rotor.Ring().Step()
	if step2 {
		r2.Rotor.Ring().Step()
	}
	if step3 {
		r3.Rotor.Ring().Step()
	}
}

// Positions renders the four rotor windows left to right followed by the pin
// wheel positions, e.g. "vjna:0.0.0".  The bare four-letter form is accepted
// by SetPositions and leaves the pin wheels alone.
func (g *Gear) Positions() string {
	var b strings.Builder
	for _, slot := range wheelSlots {
		b.WriteRune(g.Window().Symbol(g.Descriptor(slot).Rotor.Ring().Position()))
	}
	b.WriteByte(':')
	for i, slot := range pinSlots {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(g.Descriptor(slot).PinWheel.Position()))
	}
	return b.String()
}

func (g *Gear) SetPositions(s string) error {
	letters, pins, hasPins := strings.Cut(s, ":")
	runes := []rune(letters)
	if len(runes) != len(wheelSlots) {
		return fmt.Errorf("%w: want %d rotor positions, got %d", engine.ErrConfigInvalid, len(wheelSlots), len(runes))
	}
	codes := make([]int, len(runes))
	for i, r := range runes {
		code, ok := g.Window().Code(r)
		if !ok {
			return fmt.Errorf("%w: %q is not a rotor position", engine.ErrConfigInvalid, r)
		}
		codes[i] = code
	}
	var wheelPos []int
	if hasPins {
		parts := strings.Split(pins, ".")
		if len(parts) != len(pinSlots) {
			return fmt.Errorf("%w: want %d pin wheel positions, got %d", engine.ErrConfigInvalid, len(pinSlots), len(parts))
		}
		wheelPos = make([]int, len(parts))
		for i, p := range parts {
			v, err := strconv.Atoi(p)
			if err != nil || v < 0 || v >= g.Descriptor(pinSlots[i]).PinWheel.Len() {
				return fmt.Errorf("%w: %q is not a pin wheel position", engine.ErrConfigInvalid, p)
			}
			wheelPos[i] = v
		}
	}
	for i, slot := range wheelSlots {
		g.Descriptor(slot).Rotor.Ring().SetPosition(codes[i])
	}
	if wheelPos != nil {
		for i, slot := range pinSlots {
			g.Descriptor(slot).PinWheel.SetPosition(wheelPos[i])
		}
	}
	return nil
}

type slotPlan struct {
	slot    string
	rotorID int
	ringID  int
	hidden  bool
}

func assemble(set *rotorset.Set, plans []slotPlan, spaceKey bool) (*machine.Machine, error) {
	base := machine.NewBaseGear(alphabet.Latin())
	g := &Gear{BaseGear: base}
	byName := make(map[string]*machine.Descriptor, len(plans))
	for _, p := range plans {
		d, err := machine.NewSlot(set, p.slot, p.rotorID, p.ringID, p.hidden)
		if err != nil {
			return nil, err
		}
		base.AddSlot(d)
		byName[p.slot] = d
	}
	for i, slot := range pinSlots {
		byName[slot].PinWheel = machine.NewPinwheel(wheelSizes[i])
	}

	stack := rotor.NewStack(
		byName["rotor1"].Rotor,
		byName["rotor2"].Rotor,
		byName["rotor3"].Rotor,
		byName["rotor4"].Rotor,
		byName["reflector"].Rotor,
	)
	stack.SetReflecting(true)
	base.SetStack(stack)

	var pair interface {
		alphabet.Keyboard
		alphabet.Printer
	} = alphabet.NewSymmetric(alphabet.Latin())
	if spaceKey {
		pair = alphabet.NewAsymmetric(alphabet.New(spaceAlphabet), alphabet.Latin())
	}

	var m *machine.Machine
	m = machine.New(machine.Def{
		Name:         "SG39",
		Variant:      "SG39",
		RotorSetName: set.Name(),
		Gear:         g,
		Keyboard:     pair,
		Printer:      pair,
		Contacts:     26,
		Reflecting:   true,
		PreStep:      true,
		SaveExtra:    func(f *ini.File) { saveExtras(m, f) },
		LoadExtra:    func(f *ini.File) (func(), error) { return loadExtras(m, f) },
	})
	m.AddRotorSet(set)
	m.SetInput(machine.NewPermTransform(permutation.Identity(26)))
	return m, nil
}

// New assembles an SG39 with rotors 1..4, the standard reflector, notch rings
// 1..3 on the moving rotors and all pins inactive.  With spaceKey the space
// bar replaces Q on the keyboard.
func New(spaceKey bool) (*machine.Machine, error) {
	return assemble(newSG39Set(), []slotPlan{
		{"reflector", Reflector, 0, true},
		{"rotor4", Rotor4, 0, false},
		{"rotor3", Rotor3, 3, false},
		{"rotor2", Rotor2, 2, false},
		{"rotor1", Rotor1, 1, false},
	}, spaceKey)
}

// NewM4Emulation assembles an SG39 carrying the naval M4 wiring: rotor I with
// its notch ring in the fast slot, IV in the middle, II in the slow, beta on
// the static fourth slot and the thin B reflector.  All pins are inactive, so
// the movement matches the M4 exactly.
func NewM4Emulation() (*machine.Machine, error) {
	sliced := enigma.ServicesSet().Slice("m4emulation",
		[]int{enigma.RotorI, enigma.RotorII, enigma.RotorIV, enigma.RotorBeta, enigma.UKWBThin},
		[]int{enigma.RotorI, enigma.RotorII, enigma.RotorIV},
	)
	set, err := sliced.Relabel("m4emulation", map[int]int{
		enigma.RotorI:    Rotor1,
		enigma.RotorIV:   Rotor2,
		enigma.RotorII:   Rotor3,
		enigma.RotorBeta: Rotor4,
		enigma.UKWBThin:  Reflector,
	})
	if err != nil {
		return nil, err
	}
	return assemble(set, []slotPlan{
		{"reflector", Reflector, 0, true},
		{"rotor4", Rotor4, 0, false},
		{"rotor3", Rotor3, 3, false},
		{"rotor2", Rotor2, 2, false},
		{"rotor1", Rotor1, 1, false},
	}, false)
}

// SetPlugboard plugs the board from space-separated letter pairs.
func SetPlugboard(m *machine.Machine, pairs string) error {
	return enigma.SetPlugboard(m, pairs)
}

// Plugboard renders the current plugboard as space-separated letter pairs.
func Plugboard(m *machine.Machine) string {
	if t, ok := m.Input().(*machine.PermTransform); ok {
		return enigma.PlugboardPairs(t.Permutation())
	}
	return ""
}

func saveExtras(m *machine.Machine, f *ini.File) {
	if t, ok := m.Input().(*machine.PermTransform); ok {
		section, _ := f.NewSection("plugboard")
		section.Key("wiring").SetValue(machine.FormatIntList(t.Permutation().Vector()))
	}
}

func loadExtras(m *machine.Machine, f *ini.File) (func(), error) {
	section, err := f.GetSection("plugboard")
	if err != nil {
		return func() { m.SetInput(nil) }, nil
	}
	vec, err := machine.ParseIntList(section.Key("wiring").String())
	if err != nil {
		return nil, err
	}
	p, err := permutation.New(vec)
	if err != nil {
		return nil, err
	}
	return func() { m.SetInput(machine.NewPermTransform(p)) }, nil
}

// Pin randomization bounds: patterns are redrawn until no two wheels share
// more than maxPinOverlap active positions.
const (
	maxPinOverlap = 8
	maxAttempts   = 1000
)

// RandomizePins draws fresh pin patterns for the three wheels.  Active pins
// are at least two apart around each wheel and the pairwise overlap between
// wheels stays within maxPinOverlap.
func RandomizePins(rng *engine.Rand, m *machine.Machine) error {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		patterns := make([][]bool, len(pinSlots))
		for i, slot := range pinSlots {
			patterns[i] = randomPins(rng, m.Gear().Descriptor(slot).PinWheel.Len())
		}
		if overlap(patterns[0], patterns[1]) > maxPinOverlap ||
			overlap(patterns[0], patterns[2]) > maxPinOverlap ||
			overlap(patterns[1], patterns[2]) > maxPinOverlap {
			continue
		}
		for i, slot := range pinSlots {
			if err := m.Gear().Descriptor(slot).PinWheel.SetPins(patterns[i]); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: no pin patterns within overlap bound after %d attempts", engine.ErrRandomizationFailed, maxAttempts)
}

func randomPins(rng *engine.Rand, n int) []bool {
	pins := make([]bool, n)
	prev := false
	for i := 0; i < n; i++ {
		if !prev && rng.Intn(2) == 1 {
			pins[i] = true
		}
		prev = pins[i]
	}
	// The wheel is circular; the last pin may not abut the first.
	if pins[0] && pins[n-1] {
		pins[n-1] = false
	}
	return pins
}

func overlap(a, b []bool) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	count := 0
	for i := 0; i < n; i++ {
		if a[i] && b[i] {
			count++
		}
	}
	return count
}
