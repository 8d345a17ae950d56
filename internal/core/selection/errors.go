package selection

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned for a time range whose end precedes its start.
var ErrInvalidRange = errors.New("time range end precedes start")

// UnknownCategoryError reports category ids a filter referenced that are not
// part of the loaded category set. The filter is still applied; the unknown
// ids simply match nothing.
type UnknownCategoryError struct {
	IDs []int
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category id(s) %v", e.IDs)
}
