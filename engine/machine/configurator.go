package machine

import (
	"fmt"
	"strconv"

	"rotorkit/engine"
	"rotorkit/engine/rotorset"
)

// KeywordType tags the value type of a configuration keyword.
type KeywordType int

const (
	// KeywordString is a free-form string value.
	KeywordString KeywordType = iota
	// KeywordBool is a true/false value.
	KeywordBool
)

// Keyword describes one entry of a configurator's schema.
type Keyword struct {
	Name string
	Type KeywordType
	Help string
}

// Configurator exchanges keyword dictionaries with the rest of the system.
// Create is transactional: it either returns a fully configured machine or an
// error, never a half-configured one.
type Configurator interface {
	// Schema lists the keywords the configurator understands.
	Schema() []Keyword
	// Snapshot serializes a machine's configuration into a dictionary.
	Snapshot(m *Machine) (map[string]string, error)
	// Create constructs a machine from a dictionary.  An optional custom
	// rotor set overrides the builtin catalogue.
	Create(cfg map[string]string, custom *rotorset.Set) (*Machine, error)
	// RotorSetName names the rotor set a configuration draws from.
	RotorSetName(cfg map[string]string) string
}

// ExtraRandomizer is implemented by configurators whose machines carry
// randomizable features beyond the rotor wirings, such as a plugboard draw
// or pin patterns.  The parameter is the rotor-set parameter the caller
// asked for; unknown parameters draw nothing extra.
type ExtraRandomizer interface {
	RandomizeExtras(m *Machine, rng *engine.Rand, parameter string) error
}

// CheckKeywords rejects dictionary entries outside the schema.
func CheckKeywords(schema []Keyword, cfg map[string]string) error {
	known := make(map[string]KeywordType, len(schema))
	for _, kw := range schema {
		known[kw.Name] = kw.Type
	}
	for name, value := range cfg {
		typ, ok := known[name]
		if !ok {
			return fmt.Errorf("%w: %q", engine.ErrUnknownKeyword, name)
		}
		if typ == KeywordBool {
			if _, err := strconv.ParseBool(value); err != nil {
				return fmt.Errorf("%w: %q=%q is not a bool", engine.ErrMalformedValue, name, value)
			}
		}
	}
	return nil
}

// CfgString reads a string keyword, falling back to a default.
func CfgString(cfg map[string]string, name, fallback string) string {
	if v, ok := cfg[name]; ok {
		return v
	}
	return fallback
}

// CfgBool reads a bool keyword, falling back to a default.  CheckKeywords
// has already rejected malformed values.
func CfgBool(cfg map[string]string, name string, fallback bool) bool {
	v, ok := cfg[name]
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
