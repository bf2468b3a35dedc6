package sigaba

import (
	"fmt"
	"strings"

	"rotorkit/engine"
	"rotorkit/engine/machine"
	"rotorkit/engine/rotor"
)

// driverNotch is the control rotor position that carries the odometer: the
// middle bank advances when the fast control rotor shows o.
const driverNotch = 14

// driverInputs889 are the control rotor input contacts energized on every
// step: F G H I on the CSP-889, D through I on the CSP-2900.
var (
	driverInputs889  = []int{5, 6, 7, 8}
	driverInputs2900 = []int{3, 4, 5, 6, 7, 8}
)

// driverToIndex maps a control bank output contact onto an index rotor input.
// On the CSP-2900 the outputs P..T are left unconnected and skipped in Step.
var driverToIndex = [26]int{
	9, 1, 2, 3, 3, 4, 4, 4, 5, 5, 5, 6, 6,
	6, 6, 7, 7, 7, 7, 7, 8, 8, 8, 8, 8, 8,
}

// indexPairing wires the ten index bank outputs pairwise onto the five
// cipher rotor stepping magnets.
var indexPairing = [10]int{0, 1, 1, 2, 2, 3, 3, 4, 4, 0}

// Gear is the SIGABA stepping maze: the control bank drives current through
// the index bank, and the energized index outputs decide which cipher rotors
// advance.  The machine steps after each character.
type Gear struct {
	*machine.BaseGear
	csp2900 bool
	cipher  []*machine.Descriptor
	driver  []*machine.Descriptor
	index   []*machine.Descriptor
	driverS *rotor.Stack
	indexS  *rotor.Stack
}

func slotNames(prefix string) []string {
	out := make([]string, 5)
	for i := range out {
		out[i] = fmt.Sprintf("%s_%d", prefix, i)
	}
	return out
}

// stepCipher drives current through the control and index banks and advances
// the cipher rotors the energized index outputs select.
func (g *Gear) stepCipher() {
	inputs := driverInputs889
	if g.csp2900 {
		inputs = driverInputs2900
	}
	var moved [5]bool
	for _, c := range inputs {
		out := g.driverS.Encrypt(c)
		if g.csp2900 && out >= 15 && out <= 19 {
			continue
		}
		moved[indexPairing[g.indexS.Encrypt(driverToIndex[out])]] = true
	}
	for r, step := range moved {
		if !step {
			continue
		}
		ring := g.cipher[r].Rotor.Ring()
		if g.csp2900 && r >= 1 && r <= 3 {
			ring.StepBack()
		} else {
			ring.Step()
		}
	}
}

// Step advances the maze for one character: the cipher rotors move according
// to the current control and index state, then the control odometer turns.
func (g *Gear) Step() {
	g.stepCipher()

	fast := g.driver[2].Rotor.Ring()
	middle := g.driver[3].Rotor.Ring()
	slow := g.driver[1].Rotor.Ring()
	stepMiddle := fast.Position() == driverNotch
	stepSlow := stepMiddle && middle.Position() == driverNotch
	fast.Step()
	if stepMiddle {
		middle.Step()
	}
	if stepSlow {
		slow.Step()
	}
}

// SetupStep advances a single control rotor during machine setup and lets
// the resulting control output step the cipher bank, without enciphering a
// character.  Only the three moving control rotors can be stepped by hand;
// the odometer does not turn.
func (g *Gear) SetupStep(slot string) error {
	switch slot {
	case "driver_1", "driver_2", "driver_3":
		g.Descriptor(slot).Rotor.Ring().Step()
		g.stepCipher()
		return nil
	}
	return fmt.Errorf("%w: slot %q has no setup lever", engine.ErrNotSupported, slot)
}

// Positions renders all fifteen rotor windows: cipher and control rotors as
// letters, index rotors as digits.
func (g *Gear) Positions() string {
	var b strings.Builder
	for _, d := range g.cipher {
		b.WriteRune(rune('a' + d.Rotor.Ring().Position()))
	}
	for _, d := range g.driver {
		b.WriteRune(rune('a' + d.Rotor.Ring().Position()))
	}
	for _, d := range g.index {
		b.WriteRune(rune('0' + d.Rotor.Ring().Position()))
	}
	return b.String()
}

// SetPositions applies a fifteen-symbol window string in the Positions
// layout.
func (g *Gear) SetPositions(s string) error {
	runes := []rune(s)
	if len(runes) != 15 {
		return fmt.Errorf("%w: want 15 positions, got %d", engine.ErrConfigInvalid, len(runes))
	}
	for i := 0; i < 10; i++ {
		if runes[i] < 'a' || runes[i] > 'z' {
			return fmt.Errorf("%w: %q is not a rotor position", engine.ErrConfigInvalid, runes[i])
		}
	}
	for i := 10; i < 15; i++ {
		if runes[i] < '0' || runes[i] > '9' {
			return fmt.Errorf("%w: %q is not an index position", engine.ErrConfigInvalid, runes[i])
		}
	}
	for i, d := range g.cipher {
		d.Rotor.Ring().SetPosition(int(runes[i] - 'a'))
	}
	for i, d := range g.driver {
		d.Rotor.Ring().SetPosition(int(runes[5+i] - 'a'))
	}
	for i, d := range g.index {
		d.Rotor.Ring().SetPosition(int(runes[10+i] - '0'))
	}
	return nil
}
