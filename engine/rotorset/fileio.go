package rotorset

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"rotorkit/engine"
	"rotorkit/engine/permutation"
)

// Rotor-set file format: a [general] section with an ids integer list, and a
// [rotorid_N] section per id carrying the permutation, the optional ringdata
// and the isconst flag.

func intList(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

func parseIntList(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer list", engine.ErrStateCorrupt, raw)
		}
		out[i] = v
	}
	return out, nil
}

// Save writes the set to w in the rotor-set file format.
func (s *Set) Save(w io.Writer) error {
	f := ini.Empty()
	ids := make(map[int]bool)
	for id := range s.perms {
		ids[id] = true
	}
	for id := range s.rings {
		ids[id] = true
	}
	all := make([]int, 0, len(ids))
	for id := range ids {
		all = append(all, id)
	}
	sort.Ints(all)

	general, err := f.NewSection("general")
	if err != nil {
		return err
	}
	general.Key("name").SetValue(s.name)
	general.Key("ids").SetValue(intList(all))

	for _, id := range all {
		section, err := f.NewSection(fmt.Sprintf("rotorid_%d", id))
		if err != nil {
			return err
		}
		if wiring, ok := s.perms[id]; ok {
			section.Key("permutation").SetValue(intList(wiring))
			section.Key("isconst").SetValue(strconv.FormatBool(s.consts[id]))
		}
		if pattern, ok := s.rings[id]; ok {
			section.Key("ringdata").SetValue(intList(pattern))
		}
	}
	_, err = f.WriteTo(w)
	return err
}

// Load reads a set in the rotor-set file format.
func Load(r io.Reader) (*Set, error) {
	f, err := ini.Load(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrStateCorrupt, err)
	}
	general := f.Section("general")
	set := New(general.Key("name").String())
	ids, err := parseIntList(general.Key("ids").String())
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		section, err := f.GetSection(fmt.Sprintf("rotorid_%d", id))
		if err != nil {
			return nil, fmt.Errorf("%w: missing section for id %d", engine.ErrStateCorrupt, id)
		}
		if section.HasKey("permutation") {
			wiring, err := parseIntList(section.Key("permutation").String())
			if err != nil {
				return nil, err
			}
			if _, err := permutation.New(wiring); err != nil {
				return nil, fmt.Errorf("%w: rotor id %d", engine.ErrStateCorrupt, id)
			}
			set.AddRotor(id, wiring, section.Key("isconst").MustBool(false))
		}
		if section.HasKey("ringdata") {
			pattern, err := parseIntList(section.Key("ringdata").String())
			if err != nil {
				return nil, err
			}
			set.AddRing(id, pattern)
		}
	}
	return set, nil
}
