// Package machine implements the generic rotor machine: a stepping gear, an
// input and an output transform, a keyboard and a printer, composed into the
// per-character cipher path, plus the sectioned-keyfile state format and the
// configurator contract the machine families implement.
package machine

import (
	"strings"

	"gopkg.in/ini.v1"

	"rotorkit/engine/alphabet"
	"rotorkit/engine/rotorset"
)

// Def collects everything a machine family supplies when it assembles a
// machine.
type Def struct {
	// Name is the machine type tag written to state files (Enigma, SIGABA, ...).
	Name string
	// Variant distinguishes members of a family (Services, Abwehr, CSP889, ...).
	Variant string
	// RotorSetName names the default rotor set.
	RotorSetName string
	// Gear is the family's stepping gear.
	Gear SteppingGear
	// Keyboard and Printer translate symbols to contacts and back.
	Keyboard alphabet.Keyboard
	Printer  alphabet.Printer
	// Contacts is the size of the machine's code space (26, or 26 for the
	// KL-7 whose 36-contact stack squeezes back down through feedback).
	Contacts int
	// Reflecting marks machines whose stack reflects; encrypt equals decrypt.
	Reflecting bool
	// PreStep marks machines whose gear advances before the character is
	// enciphered.  SIGABA post-steps.
	PreStep bool
	// SaveExtra and LoadExtra let the family persist state beyond the
	// per-slot values: plugboard wiring, Uhr cabling, UKW-D involution.
	// LoadExtra parses and validates only, returning an apply closure so
	// Load can reject a corrupt keyfile before touching the machine.
	SaveExtra func(f *ini.File)
	LoadExtra func(f *ini.File) (func(), error)
}

// Machine is a complete rotor cipher machine.  It is strictly sequential:
// one character is processed to completion before the next may be submitted.
type Machine struct {
	def    Def
	input  Transform
	output Transform
	sets   map[string]*rotorset.Set
}

// New assembles a machine from a family definition.
func New(def Def) *Machine {
	return &Machine{
		def:  def,
		sets: make(map[string]*rotorset.Set),
	}
}

// Name returns the machine type tag.
func (m *Machine) Name() string { return m.def.Name }

// Variant returns the family variant tag.
func (m *Machine) Variant() string { return m.def.Variant }

// Gear returns the stepping gear.
func (m *Machine) Gear() SteppingGear { return m.def.Gear }

// Keyboard returns the machine's keyboard.
func (m *Machine) Keyboard() alphabet.Keyboard { return m.def.Keyboard }

// Printer returns the machine's printer.
func (m *Machine) Printer() alphabet.Printer { return m.def.Printer }

// Reflecting reports whether encrypt and decrypt coincide.
func (m *Machine) Reflecting() bool { return m.def.Reflecting }

// PreStep reports whether the gear advances before enciphering.
func (m *Machine) PreStep() bool { return m.def.PreStep }

// RotorSetName returns the name of the default rotor set.
func (m *Machine) RotorSetName() string { return m.def.RotorSetName }

// SetRotorSetName changes the default rotor set name.
func (m *Machine) SetRotorSetName(name string) { m.def.RotorSetName = name }

// AddRotorSet registers a rotor set under its own name.  Sets are reference
// data shared with the configurator; the machine holds them nonexclusively.
func (m *Machine) AddRotorSet(s *rotorset.Set) {
	m.sets[s.Name()] = s
}

// RotorSet returns a registered set by name, or nil.
func (m *Machine) RotorSet(name string) *rotorset.Set {
	return m.sets[name]
}

// DefaultRotorSet returns the set named by RotorSetName, or nil.
func (m *Machine) DefaultRotorSet() *rotorset.Set {
	return m.sets[m.def.RotorSetName]
}

// SetInput installs the input transform.  For reflecting machines the same
// transform serves the way back out of the stack.
func (m *Machine) SetInput(t Transform) { m.input = t }

// Input returns the input transform, or nil.
func (m *Machine) Input() Transform { return m.input }

// SetOutput installs the output transform of a non-reflecting machine.
func (m *Machine) SetOutput(t Transform) { m.output = t }

// Output returns the output transform, or nil.
func (m *Machine) Output() Transform { return m.output }

// encryptPath runs one contact through the cipher path without stepping.
func (m *Machine) encryptPath(c int) int {
	if m.input != nil {
		c = m.input.Encrypt(c)
	}
	c = m.def.Gear.Stack().Encrypt(c)
	if m.def.Reflecting {
		if m.input != nil {
			c = m.input.Decrypt(c)
		}
	} else if m.output != nil {
		c = m.output.Encrypt(c)
	}
	return c
}

// decryptPath is the inverse of encryptPath for non-reflecting machines.
func (m *Machine) decryptPath(c int) int {
	if m.def.Reflecting {
		return m.encryptPath(c)
	}
	if m.output != nil {
		c = m.output.Decrypt(c)
	}
	c = m.def.Gear.Stack().Decrypt(c)
	if m.input != nil {
		c = m.input.Decrypt(c)
	}
	return c
}

// EncryptRune enciphers one symbol.  The returned string may be empty when a
// shifting printer swallows a shift code, or hold exactly one symbol.
func (m *Machine) EncryptRune(r rune) (string, error) {
	code, err := m.def.Keyboard.CodeEncrypt(r)
	if err != nil {
		return "", err
	}
	if m.def.PreStep {
		m.def.Gear.Step()
	}
	c := m.encryptPath(code)
	if !m.def.PreStep {
		m.def.Gear.Step()
	}
	out := m.def.Printer.SymbolEncrypt(c)
	m.def.Keyboard.Commit(code, true)
	return out, nil
}

// DecryptRune deciphers one symbol.
func (m *Machine) DecryptRune(r rune) (string, error) {
	code, err := m.def.Keyboard.CodeDecrypt(r)
	if err != nil {
		return "", err
	}
	if m.def.PreStep {
		m.def.Gear.Step()
	}
	c := m.decryptPath(code)
	if !m.def.PreStep {
		m.def.Gear.Step()
	}
	out := m.def.Printer.SymbolDecrypt(c)
	m.def.Printer.Commit(c, false)
	return out, nil
}

// Encrypt enciphers a string, discarding symbols the keyboard rejects.
func (m *Machine) Encrypt(s string) string {
	var b strings.Builder
	for _, r := range s {
		if !m.def.Keyboard.ValidEncrypt(r) {
			continue
		}
		out, err := m.EncryptRune(r)
		if err != nil {
			continue
		}
		b.WriteString(out)
	}
	return b.String()
}

// Decrypt deciphers a string, discarding symbols the keyboard rejects.
func (m *Machine) Decrypt(s string) string {
	var b strings.Builder
	for _, r := range s {
		if !m.def.Keyboard.ValidDecrypt(r) {
			continue
		}
		out, err := m.DecryptRune(r)
		if err != nil {
			continue
		}
		b.WriteString(out)
	}
	return b.String()
}

// CurrentPermutation snapshots the induced input-to-output contact map of
// the current machine state without advancing the gear.
func (m *Machine) CurrentPermutation() []int {
	out := make([]int, m.def.Contacts)
	for c := range out {
		out[c] = m.encryptPath(c)
	}
	return out
}

// Step advances the gear once without enciphering and returns the resulting
// rotor positions.
func (m *Machine) Step() string {
	m.def.Gear.Step()
	return m.def.Gear.Positions()
}

// Positions renders the visible rotor positions.
func (m *Machine) Positions() string {
	return m.def.Gear.Positions()
}

// SetPositions applies a rotor position string.
func (m *Machine) SetPositions(s string) error {
	return m.def.Gear.SetPositions(s)
}

// Reset returns the gear, keyboard and printer to their initial state.
func (m *Machine) Reset() {
	m.def.Gear.Reset()
	m.def.Keyboard.Reset()
	m.def.Printer.Reset()
}
