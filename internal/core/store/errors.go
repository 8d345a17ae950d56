package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyDataset is matched by errors.Is when a load yields no valid record.
var ErrEmptyDataset = errors.New("dataset contains no valid records")

// RecordError describes why a single input record was excluded.
type RecordError struct {
	Index  int    // position in the input
	UUID   string // may be empty
	Reason string
}

func (e RecordError) Error() string {
	if e.UUID != "" {
		return fmt.Sprintf("record %d (%s): %s", e.Index, e.UUID, e.Reason)
	}
	return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
}

// ValidationError lists every record excluded during a load. The load itself
// still succeeds for the remaining records.
type ValidationError struct {
	Records []RecordError
}

// Excluded returns the number of excluded records.
func (e *ValidationError) Excluded() int {
	return len(e.Records)
}

func (e *ValidationError) Error() string {
	const shown = 3
	parts := make([]string, 0, shown)
	for i, r := range e.Records {
		if i == shown {
			break
		}
		parts = append(parts, r.Error())
	}
	msg := fmt.Sprintf("%d record(s) excluded: %s", len(e.Records), strings.Join(parts, "; "))
	if len(e.Records) > shown {
		msg += fmt.Sprintf("; and %d more", len(e.Records)-shown)
	}
	return msg
}

// EmptyDatasetError is returned when no input record survived validation.
type EmptyDatasetError struct {
	Total    int
	Excluded int
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("%s (%d input, %d excluded)", ErrEmptyDataset.Error(), e.Total, e.Excluded)
}

func (e *EmptyDatasetError) Is(target error) bool {
	return target == ErrEmptyDataset
}
