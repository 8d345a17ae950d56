package marker

import (
	"errors"
	"fmt"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
)

// ErrUnknownRecord is returned when a click names a record that is not part
// of the current selection set.
var ErrUnknownRecord = errors.New("record is not in the current selection")

// Mode is the highlight mode of the machine.
type Mode int

const (
	Unselected Mode = iota
	OneSelected
)

func (m Mode) String() string {
	switch m {
	case Unselected:
		return "unselected"
	case OneSelected:
		return "one-selected"
	default:
		return "unknown"
	}
}

// State is a snapshot of the machine.
type State struct {
	Mode   Mode
	Active int // record id, meaningful in OneSelected only
}

// Transition describes the effect of one click.
type Transition int

const (
	Selected Transition = iota // Unselected -> OneSelected
	Toggled                    // OneSelected(r) -> Unselected
	Switched                   // OneSelected(p) -> OneSelected(r)
)

func (t Transition) String() string {
	switch t {
	case Selected:
		return "select"
	case Toggled:
		return "toggle-off"
	case Switched:
		return "switch"
	default:
		return "unknown"
	}
}

// Machine tracks which marker, if any, is highlighted among the records of
// the current selection set. The highlight is a single id, so at most one
// record is ever active.
type Machine struct {
	records []*model.Record
	members map[int]*model.Record
	state   State
}

// NewMachine returns a machine over an empty selection.
func NewMachine() *Machine {
	return &Machine{members: map[int]*model.Record{}}
}

// Reset replaces the selection set and returns to Unselected.
func (m *Machine) Reset(records []*model.Record) {
	m.records = records
	m.members = make(map[int]*model.Record, len(records))
	for _, rec := range records {
		m.members[rec.ID] = rec
	}
	m.state = State{Mode: Unselected}
}

// Click applies a click on the marker of record id.
func (m *Machine) Click(id int) (Transition, error) {
	if _, ok := m.members[id]; !ok {
		return 0, fmt.Errorf("click on record %d: %w", id, ErrUnknownRecord)
	}

	switch {
	case m.state.Mode == Unselected:
		m.state = State{Mode: OneSelected, Active: id}
		return Selected, nil
	case m.state.Active == id:
		m.state = State{Mode: Unselected}
		return Toggled, nil
	default:
		m.state = State{Mode: OneSelected, Active: id}
		return Switched, nil
	}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Active reports whether record id is highlighted.
func (m *Machine) Active(id int) bool {
	return m.state.Mode == OneSelected && m.state.Active == id
}

// Len returns the size of the current selection set.
func (m *Machine) Len() int {
	return len(m.records)
}

// SelectionView returns the active record alone when one is highlighted,
// otherwise the whole selection set.
func (m *Machine) SelectionView() []*model.Record {
	if m.state.Mode == OneSelected {
		return []*model.Record{m.members[m.state.Active]}
	}
	out := make([]*model.Record, len(m.records))
	copy(out, m.records)
	return out
}
