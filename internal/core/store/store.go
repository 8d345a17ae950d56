package store

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/util"
)

// Store is the immutable set of validated records of one data load. It is
// safe to share between readers once Load has returned.
type Store struct {
	records     []*model.Record // ascending id
	byID        map[int]*model.Record
	categories  map[int]model.Category
	categoryIDs []int
	total       int
	excluded    int
}

// Load validates raws and builds a store from the valid ones.
//
// Invalid records are excluded and reported through a *ValidationError. When
// nothing survives, the returned error also matches ErrEmptyDataset. In both
// cases the returned store is usable.
func Load(raws []model.RawMediaData) (*Store, error) {
	s := &Store{
		byID:       make(map[int]*model.Record, len(raws)),
		categories: make(map[int]model.Category),
		total:      len(raws),
	}

	var rejected []RecordError
	reject := func(index int, raw model.RawMediaData, format string, args ...interface{}) {
		rejected = append(rejected, RecordError{Index: index, UUID: raw.UUID, Reason: fmt.Sprintf(format, args...)})
	}

	type pending struct {
		rec      *model.Record
		explicit bool
	}
	accepted := make([]pending, 0, len(raws))
	maxID := -1

	for i, raw := range raws {
		rec, err := resolve(raw)
		if err != nil {
			reject(i, raw, "%v", err)
			continue
		}
		if raw.ID != nil {
			if *raw.ID < 0 {
				reject(i, raw, "negative id %d", *raw.ID)
				continue
			}
			if _, dup := s.byID[*raw.ID]; dup {
				reject(i, raw, "duplicate id %d", *raw.ID)
				continue
			}
			rec.ID = *raw.ID
			s.byID[rec.ID] = rec
			if rec.ID > maxID {
				maxID = rec.ID
			}
		}
		accepted = append(accepted, pending{rec: rec, explicit: raw.ID != nil})
	}

	next := maxID + 1
	s.records = make([]*model.Record, 0, len(accepted))
	for _, p := range accepted {
		if !p.explicit {
			p.rec.ID = next
			s.byID[next] = p.rec
			next++
		}
		s.registerCategory(p.rec.Category)
		s.records = append(s.records, p.rec)
	}
	sort.Slice(s.records, func(i, j int) bool {
		return s.records[i].ID < s.records[j].ID
	})

	s.categoryIDs = make([]int, 0, len(s.categories))
	for id := range s.categories {
		s.categoryIDs = append(s.categoryIDs, id)
	}
	sort.Ints(s.categoryIDs)

	s.excluded = len(rejected)
	util.LogDebug("store loaded",
		util.F("records", len(s.records)),
		util.F("excluded", s.excluded),
		util.F("categories", len(s.categoryIDs)))

	var errs []error
	if len(rejected) > 0 {
		for _, r := range rejected {
			util.LogWarn("record excluded", util.F("index", r.Index), util.F("uuid", r.UUID), util.F("reason", r.Reason))
		}
		errs = append(errs, &ValidationError{Records: rejected})
	}
	if len(s.records) == 0 {
		errs = append(errs, &EmptyDatasetError{Total: s.total, Excluded: s.excluded})
	}
	return s, errors.Join(errs...)
}

// resolve validates a raw record and computes its derived fields.
func resolve(raw model.RawMediaData) (*model.Record, error) {
	cat := raw.PrimaryCategory()
	if cat == nil {
		return nil, fmt.Errorf("missing category")
	}
	if cat.ID == nil {
		return nil, fmt.Errorf("category without id")
	}
	if n := utf8.RuneCountInString(cat.Shortname); n > model.MaxShortnameLength {
		return nil, fmt.Errorf("category %d shortname has %d characters, limit is %d", *cat.ID, n, model.MaxShortnameLength)
	}
	if n := utf8.RuneCountInString(cat.Longname); n > model.MaxLongnameLength {
		return nil, fmt.Errorf("category %d longname has %d characters, limit is %d", *cat.ID, n, model.MaxLongnameLength)
	}

	ts, err := util.ParseISO8601(raw.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("malformed timestamp: %w", err)
	}

	if raw.Location == nil {
		return nil, fmt.Errorf("missing location")
	}
	if !raw.Location.Valid() {
		return nil, fmt.Errorf("location %s out of range", util.FormatCoordinate(raw.Location.Lat, raw.Location.Lng))
	}

	return &model.Record{
		UUID:      raw.UUID,
		Timestamp: ts,
		Location:  *raw.Location,
		Category: model.Category{
			ID:        *cat.ID,
			Shortname: cat.Shortname,
			Longname:  cat.Longname,
		},
		Images: raw.Images,
		Videos: raw.Videos,
	}, nil
}

func (s *Store) registerCategory(c model.Category) {
	known, ok := s.categories[c.ID]
	if !ok {
		s.categories[c.ID] = c
		return
	}
	if known.Shortname != c.Shortname || known.Longname != c.Longname {
		util.LogWarn("conflicting category definition, keeping first",
			util.F("id", c.ID), util.F("kept", known.Shortname), util.F("ignored", c.Shortname))
	}
}

// All returns every record in ascending id order.
func (s *Store) All() []*model.Record {
	out := make([]*model.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of loaded records.
func (s *Store) Len() int {
	return len(s.records)
}

// Get returns the record with the given id.
func (s *Store) Get(id int) (*model.Record, bool) {
	rec, ok := s.byID[id]
	return rec, ok
}

// Categories returns the known categories in ascending id order.
func (s *Store) Categories() []model.Category {
	out := make([]model.Category, len(s.categoryIDs))
	for i, id := range s.categoryIDs {
		out[i] = s.categories[id]
	}
	return out
}

// CategoryIDs returns the known category ids, ascending.
func (s *Store) CategoryIDs() []int {
	out := make([]int, len(s.categoryIDs))
	copy(out, s.categoryIDs)
	return out
}

// Category resolves a category id.
func (s *Store) Category(id int) (model.Category, bool) {
	c, ok := s.categories[id]
	return c, ok
}

// Excluded returns how many input records failed validation.
func (s *Store) Excluded() int {
	return s.excluded
}

// Total returns the number of input records, valid or not.
func (s *Store) Total() int {
	return s.total
}
