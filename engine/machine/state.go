package machine

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"rotorkit/engine"
	"rotorkit/engine/rotor"
)

// State keyfile layout: a [machine] section with the type tag, variant and
// default rotor set name, then one section per rotor slot.  Family extras
// (plugboard, Uhr, UKW-D) are written by the family's SaveExtra hook.

// FormatIntList renders ints as the comma-separated list form used in state
// files.
func FormatIntList(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

// ParseIntList parses the comma-separated list form used in state files.
func ParseIntList(raw string) ([]int, error) {
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

func boolsToInts(bits []bool) []int {
	out := make([]int, len(bits))
	for i, b := range bits {
		if b {
			out[i] = 1
		}
	}
	return out
}

func intsToBools(values []int) []bool {
	out := make([]bool, len(values))
	for i, v := range values {
		out[i] = v != 0
	}
	return out
}

// Save serializes the complete machine state as a sectioned keyfile.
func (m *Machine) Save(w io.Writer) error {
	f := ini.Empty()
	top, err := f.NewSection("machine")
	if err != nil {
		return err
	}
	top.Key("name").SetValue(m.def.Name)
	top.Key("machinetype").SetValue(m.def.Variant)
	top.Key("rotorsetname").SetValue(m.def.RotorSetName)

	for _, slot := range m.def.Gear.Slots() {
		d := m.def.Gear.Descriptor(slot)
		section, err := f.NewSection(slot)
		if err != nil {
			return err
		}
		section.Key("rotorid").SetValue(strconv.Itoa(d.RotorID))
		section.Key("ringid").SetValue(strconv.Itoa(d.RingID))
		section.Key("ringdata").SetValue(FormatIntList(d.Rotor.Ring().Pattern()))
		section.Key("displacement").SetValue(strconv.Itoa(d.Rotor.Ring().Position()))
		section.Key("ringoffset").SetValue(strconv.Itoa(d.Rotor.Ring().Offset()))
		section.Key("insertinverse").SetValue(strconv.FormatBool(d.InsertInverse))
		if d.PinWheel != nil {
			section.Key("pins").SetValue(FormatIntList(boolsToInts(d.PinWheel.Pins())))
			section.Key("pinposition").SetValue(strconv.Itoa(d.PinWheel.Position()))
		}
		if d.NotchRingOffset != nil {
			section.Key("notchringoffset").SetValue(strconv.Itoa(d.NotchRingOffset.Value()))
		}
		if d.LetterRingOffset != nil {
			section.Key("letterringoffset").SetValue(strconv.Itoa(d.LetterRingOffset.Value()))
		}
	}
	if m.def.SaveExtra != nil {
		m.def.SaveExtra(f)
	}
	_, err = f.WriteTo(w)
	return err
}

type stagedSlot struct {
	d             *Descriptor
	rotorID       int
	ringID        int
	ringData      []int
	displacement  int
	ringOffset    int
	insertInverse bool
	pins          []int
	pinPos        int
	notchOffset   int
	letterOffset  int
}

// Load restores a machine state from a sectioned keyfile.  The operation is
// transactional: every section is validated before anything is applied, and
// a keyfile for a different machine type is rejected.
func (m *Machine) Load(r io.Reader) error {
	f, err := ini.Load(r)
	if err != nil {
		return fmt.Errorf("%w: %v", engine.ErrStateCorrupt, err)
	}
	top := f.Section("machine")
	if top.Key("name").String() != m.def.Name {
		return fmt.Errorf("%w: state is for machine %q, not %q",
			engine.ErrStateCorrupt, top.Key("name").String(), m.def.Name)
	}
	if top.Key("machinetype").String() != m.def.Variant {
		return fmt.Errorf("%w: state is for variant %q, not %q",
			engine.ErrStateCorrupt, top.Key("machinetype").String(), m.def.Variant)
	}
	setName := top.Key("rotorsetname").String()
	set := m.sets[setName]
	if set == nil {
		return fmt.Errorf("%w: %q", engine.ErrRotorSetMissing, setName)
	}

	staged := make([]stagedSlot, 0, len(m.def.Gear.Slots()))
	for _, slot := range m.def.Gear.Slots() {
		d := m.def.Gear.Descriptor(slot)
		section, err := f.GetSection(slot)
		if err != nil {
			return fmt.Errorf("%w: missing slot section %q", engine.ErrStateCorrupt, slot)
		}
		st := stagedSlot{d: d}
		if st.rotorID, err = section.Key("rotorid").Int(); err != nil {
			return fmt.Errorf("%w: slot %q rotorid", engine.ErrStateCorrupt, slot)
		}
		if st.ringID, err = section.Key("ringid").Int(); err != nil {
			return fmt.Errorf("%w: slot %q ringid", engine.ErrStateCorrupt, slot)
		}
		if st.ringData, err = ParseIntList(section.Key("ringdata").String()); err != nil {
			return err
		}
		if len(st.ringData) != d.Rotor.Ring().Size() {
			return fmt.Errorf("%w: slot %q ring size %d, want %d",
				engine.ErrStateCorrupt, slot, len(st.ringData), d.Rotor.Ring().Size())
		}
		if st.displacement, err = section.Key("displacement").Int(); err != nil {
			return fmt.Errorf("%w: slot %q displacement", engine.ErrStateCorrupt, slot)
		}
		if st.ringOffset, err = section.Key("ringoffset").Int(); err != nil {
			return fmt.Errorf("%w: slot %q ringoffset", engine.ErrStateCorrupt, slot)
		}
		st.insertInverse = section.Key("insertinverse").MustBool(false)
		if !set.HasRotor(st.rotorID) {
			return fmt.Errorf("%w: slot %q references rotor id %d missing from set %q",
				engine.ErrStateCorrupt, slot, st.rotorID, setName)
		}
		perm, err := set.Rotor(st.rotorID)
		if err != nil {
			return err
		}
		if perm.Size() != d.Rotor.Size() {
			return fmt.Errorf("%w: slot %q rotor size %d, want %d",
				engine.ErrStateCorrupt, slot, perm.Size(), d.Rotor.Size())
		}
		if d.PinWheel != nil {
			if st.pins, err = ParseIntList(section.Key("pins").String()); err != nil {
				return err
			}
			if len(st.pins) != d.PinWheel.Len() {
				return fmt.Errorf("%w: slot %q pinwheel length %d, want %d",
					engine.ErrStateCorrupt, slot, len(st.pins), d.PinWheel.Len())
			}
			if st.pinPos, err = section.Key("pinposition").Int(); err != nil {
				return fmt.Errorf("%w: slot %q pinposition", engine.ErrStateCorrupt, slot)
			}
		}
		if d.NotchRingOffset != nil {
			if st.notchOffset, err = section.Key("notchringoffset").Int(); err != nil {
				return fmt.Errorf("%w: slot %q notchringoffset", engine.ErrStateCorrupt, slot)
			}
		}
		if d.LetterRingOffset != nil {
			if st.letterOffset, err = section.Key("letterringoffset").Int(); err != nil {
				return fmt.Errorf("%w: slot %q letterringoffset", engine.ErrStateCorrupt, slot)
			}
		}
		staged = append(staged, st)
	}

	var applyExtras func()
	if m.def.LoadExtra != nil {
		if applyExtras, err = m.def.LoadExtra(f); err != nil {
			return err
		}
	}

	for _, st := range staged {
		perm, _ := set.Rotor(st.rotorID)
		if st.insertInverse {
			perm = rotor.ReverseWiring(perm)
		}
		st.d.RotorID = st.rotorID
		st.d.RingID = st.ringID
		st.d.InsertInverse = st.insertInverse
		st.d.Rotor.SetPermutation(perm)
		st.d.Rotor.Ring().SetPattern(st.ringData)
		st.d.Rotor.Ring().SetPosition(st.displacement)
		st.d.Rotor.Ring().SetOffset(st.ringOffset)
		if st.d.PinWheel != nil {
			if err := st.d.PinWheel.SetPins(intsToBools(st.pins)); err != nil {
				return err
			}
			st.d.PinWheel.SetPosition(st.pinPos)
		}
		if st.d.NotchRingOffset != nil {
			st.d.NotchRingOffset.Set(st.notchOffset)
		}
		if st.d.LetterRingOffset != nil {
			st.d.LetterRingOffset.Set(st.letterOffset)
		}
	}
	m.def.RotorSetName = setName
	if applyExtras != nil {
		applyExtras()
	}
	return nil
}
