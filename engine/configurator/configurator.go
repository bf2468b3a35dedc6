// Package configurator registers every machine family under its public name
// and builds machines generically: from a keyword dictionary through the
// family configurator, or from a saved state keyfile whose type tag picks the
// family.
package configurator

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/ini.v1"

	"rotorkit/engine"
	"rotorkit/engine/enigma"
	"rotorkit/engine/kl7"
	"rotorkit/engine/machine"
	"rotorkit/engine/nema"
	"rotorkit/engine/rotorset"
	"rotorkit/engine/sg39"
	"rotorkit/engine/sigaba"
	"rotorkit/engine/typex"
)

var configurators = map[string]machine.Configurator{
	"services": enigma.NewConfigurator(enigma.Services),
	"m3":       enigma.NewConfigurator(enigma.M3),
	"m4":       enigma.NewConfigurator(enigma.M4),
	"abwehr":   enigma.NewConfigurator(enigma.Abwehr),
	"railway":  enigma.NewConfigurator(enigma.Railway),
	"tirpitz":  enigma.NewConfigurator(enigma.Tirpitz),
	"kd":       enigma.NewConfigurator(enigma.KD),
	"typex":    typex.NewConfigurator(),
	"csp889":   sigaba.NewConfigurator(sigaba.CSP889),
	"csp2900":  sigaba.NewConfigurator(sigaba.CSP2900),
	"kl7":      kl7.NewConfigurator(),
	"nema":     nema.NewConfigurator(),
	"sg39":     sg39.NewConfigurator(),
}

// displayNames maps the lookup keys back to their public spelling.
var displayNames = map[string]string{
	"services": "Services",
	"m3":       "M3",
	"m4":       "M4",
	"abwehr":   "Abwehr",
	"railway":  "Railway",
	"tirpitz":  "Tirpitz",
	"kd":       "KD",
	"typex":    "Typex",
	"csp889":   "CSP889",
	"csp2900":  "CSP2900",
	"kl7":      "KL7",
	"nema":     "Nema",
	"sg39":     "SG39",
}

// factories build a neutral machine per state-file type tag, ready for Load.
var factories = map[string]func() (*machine.Machine, error){
	enigma.Services: func() (*machine.Machine, error) { return enigma.New(enigma.Services) },
	enigma.M3:       func() (*machine.Machine, error) { return enigma.New(enigma.M3) },
	enigma.M4:       func() (*machine.Machine, error) { return enigma.New(enigma.M4) },
	enigma.Abwehr:   func() (*machine.Machine, error) { return enigma.New(enigma.Abwehr) },
	enigma.Railway:  func() (*machine.Machine, error) { return enigma.New(enigma.Railway) },
	enigma.Tirpitz:  func() (*machine.Machine, error) { return enigma.New(enigma.Tirpitz) },
	enigma.KD:       func() (*machine.Machine, error) { return enigma.New(enigma.KD) },
	"Typex":         typex.New,
	sigaba.CSP889:   func() (*machine.Machine, error) { return sigaba.New(sigaba.CSP889) },
	sigaba.CSP2900:  func() (*machine.Machine, error) { return sigaba.New(sigaba.CSP2900) },
	"KL7":           kl7.New,
	nema.War:        func() (*machine.Machine, error) { return nema.New(nema.War) },
	nema.Training:   func() (*machine.Machine, error) { return nema.New(nema.Training) },
	"SG39":          func() (*machine.Machine, error) { return sg39.New(false) },
}

// Machines lists the registered machine names, sorted.
func Machines() []string {
	names := make([]string, 0, len(displayNames))
	for _, name := range displayNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the configurator registered under a machine name.  The
// lookup is case-insensitive.
func Lookup(name string) (machine.Configurator, error) {
	c, ok := configurators[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown machine %q", engine.ErrConfigInvalid, name)
	}
	return c, nil
}

// Create builds a machine by name from a keyword dictionary.
func Create(name string, cfg map[string]string, custom *rotorset.Set) (*machine.Machine, error) {
	c, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return c.Create(cfg, custom)
}

// FromState reads a state keyfile, builds the machine its type tag names and
// restores the state into it.  Extra rotor sets are registered before loading
// so states referencing a custom catalogue can resolve it.
func FromState(r io.Reader, sets ...*rotorset.Set) (*machine.Machine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrStateCorrupt, err)
	}
	f, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrStateCorrupt, err)
	}
	tag := f.Section("machine").Key("machinetype").String()
	factory, ok := factories[tag]
	if !ok {
		return nil, fmt.Errorf("%w: unknown machine type %q", engine.ErrStateCorrupt, tag)
	}
	m, err := factory()
	if err != nil {
		return nil, err
	}
	for _, s := range sets {
		m.AddRotorSet(s)
	}
	if err := m.Load(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return m, nil
}
