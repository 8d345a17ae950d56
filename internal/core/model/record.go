package model

import "time"

// Record is a validated media record. Records are immutable once the store
// has loaded them; derived fields are resolved at load time.
type Record struct {
	ID        int
	UUID      string
	Timestamp time.Time
	Location  Location
	Category  Category
	Images    []MediaElement
	Videos    []MediaElement
}

// Category is compared by ID only; copies with the same ID are the same
// category regardless of their names.
type Category struct {
	ID        int    `json:"id"`
	Shortname string `json:"shortname"`
	Longname  string `json:"longname"`
}

// Equal reports whether both refer to the same category.
func (c Category) Equal(other Category) bool {
	return c.ID == other.ID
}

// TimeKey is the record's instant in Unix milliseconds, used as the time
// dimension key.
func (r *Record) TimeKey() int64 {
	return r.Timestamp.UnixMilli()
}

// CategoryID returns the primitive key of the record's category.
func (r *Record) CategoryID() int {
	return r.Category.ID
}

// MediaCount is the number of attached images and videos.
func (r *Record) MediaCount() int {
	return len(r.Images) + len(r.Videos)
}
