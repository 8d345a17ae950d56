package interaction

import (
	"cmp"
	"slices"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
)

// SortField represents the field to sort markers by
type SortField int

const (
	SortByTime SortField = iota
	SortByID
	SortByCategory
	sortFieldCount
)

func (f SortField) String() string {
	switch f {
	case SortByTime:
		return "time"
	case SortByID:
		return "id"
	case SortByCategory:
		return "category"
	default:
		return "unknown"
	}
}

// SortOrder represents the sort order
type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

// RecordSorter orders the marker list. Ties are broken by ascending id so
// the order is stable across renders.
type RecordSorter struct {
	field SortField
	order SortOrder
}

// NewRecordSorter creates a sorter listing the newest records first.
func NewRecordSorter() *RecordSorter {
	return &RecordSorter{
		field: SortByTime,
		order: SortDescending,
	}
}

// Field returns the current sort field.
func (s *RecordSorter) Field() SortField {
	return s.field
}

// Cycle advances to the next sort field. Time sorts newest first, the others
// ascending.
func (s *RecordSorter) Cycle() {
	s.field = (s.field + 1) % sortFieldCount
	if s.field == SortByTime {
		s.order = SortDescending
	} else {
		s.order = SortAscending
	}
}

// Sort sorts records in place according to current settings
func (s *RecordSorter) Sort(records []*model.Record) {
	slices.SortStableFunc(records, func(a, b *model.Record) int {
		var c int
		switch s.field {
		case SortByTime:
			c = a.Timestamp.Compare(b.Timestamp)
		case SortByID:
			c = cmp.Compare(a.ID, b.ID)
		case SortByCategory:
			c = cmp.Compare(a.Category.Shortname, b.Category.Shortname)
		}
		if s.order == SortDescending {
			c = -c
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		return c
	})
}
