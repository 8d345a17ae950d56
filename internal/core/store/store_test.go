package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/katharinakoal/VGI4HWM-Dashboard-Components/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func rawRecord(uuid string, catID int, short, ts string) model.RawMediaData {
	return model.RawMediaData{
		UUID:      uuid,
		Timestamp: ts,
		Location:  &model.Location{Lat: 52.45, Lng: 13.52},
		Category:  &model.RawCategory{ID: intPtr(catID), Shortname: short, Longname: short + " long"},
	}
}

func TestLoadValidRecords(t *testing.T) {
	raws := []model.RawMediaData{
		rawRecord("u1", 1, "A", "2020-01-01"),
		rawRecord("u2", 2, "B", "2020-01-02T10:30:00Z"),
		rawRecord("u3", 1, "A", "2020-01-03T08:00:00+01:00"),
	}

	s, err := Load(raws)
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())
	assert.Equal(t, 0, s.Excluded())
	assert.Equal(t, 3, s.Total())

	all := s.All()
	assert.Equal(t, []int{0, 1, 2}, []int{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, "u2", all[1].UUID)
	assert.Equal(t, int64(1577836800000), all[0].TimeKey())
	assert.Equal(t, 7, all[2].Timestamp.UTC().Hour())

	assert.Equal(t, []int{1, 2}, s.CategoryIDs())
	cat, ok := s.Category(2)
	require.True(t, ok)
	assert.Equal(t, "B", cat.Shortname)
	_, ok = s.Category(3)
	assert.False(t, ok)

	rec, ok := s.Get(2)
	require.True(t, ok)
	assert.Equal(t, "u3", rec.UUID)
}

func TestLoadAssignsIdsAfterExplicitOnes(t *testing.T) {
	a := rawRecord("a", 1, "A", "2020-01-01")
	b := rawRecord("b", 1, "A", "2020-01-02")
	b.ID = intPtr(10)
	c := rawRecord("c", 1, "A", "2020-01-03")
	d := rawRecord("d", 1, "A", "2020-01-04")
	d.ID = intPtr(4)

	s, err := Load([]model.RawMediaData{a, b, c, d})
	require.NoError(t, err)

	var got []string
	var gotIDs []int
	for _, r := range s.All() {
		got = append(got, r.UUID)
		gotIDs = append(gotIDs, r.ID)
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, got)
	assert.Equal(t, []int{4, 10, 11, 12}, gotIDs)
}

func TestLoadExcludesInvalidRecords(t *testing.T) {
	noCategory := rawRecord("no-cat", 1, "A", "2020-01-01")
	noCategory.Category = nil

	noCategoryID := rawRecord("no-cat-id", 1, "A", "2020-01-01")
	noCategoryID.Category.ID = nil

	longShort := rawRecord("long-short", 1, strings.Repeat("x", 41), "2020-01-01")

	longLong := rawRecord("long-long", 1, "A", "2020-01-01")
	longLong.Category.Longname = strings.Repeat("y", 256)

	badTime := rawRecord("bad-time", 1, "A", "01/02/2020")
	noTime := rawRecord("no-time", 1, "A", "")

	noLocation := rawRecord("no-location", 1, "A", "2020-01-01")
	noLocation.Location = nil

	badLocation := rawRecord("bad-location", 1, "A", "2020-01-01")
	badLocation.Location = &model.Location{Lat: 91, Lng: 0}

	negativeID := rawRecord("negative-id", 1, "A", "2020-01-01")
	negativeID.ID = intPtr(-1)

	first := rawRecord("first", 1, "A", "2020-01-01")
	first.ID = intPtr(7)
	dup := rawRecord("dup", 1, "A", "2020-01-01")
	dup.ID = intPtr(7)

	fromList := rawRecord("from-list", 0, "", "2020-01-05")
	fromList.Category = nil
	fromList.Categories = []model.RawCategory{{ID: intPtr(3), Shortname: "C"}}

	raws := []model.RawMediaData{
		noCategory, noCategoryID, longShort, longLong, badTime, noTime,
		noLocation, badLocation, negativeID, first, dup, fromList,
	}

	s, err := Load(raws)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 10, verr.Excluded())
	assert.Equal(t, 10, s.Excluded())
	assert.False(t, errors.Is(err, ErrEmptyDataset))
	assert.Contains(t, err.Error(), "10 record(s) excluded")
	assert.Contains(t, err.Error(), "and 7 more")

	reasons := map[string]string{}
	for _, r := range verr.Records {
		reasons[r.UUID] = r.Reason
	}
	assert.Contains(t, reasons["no-cat"], "missing category")
	assert.Contains(t, reasons["no-cat-id"], "without id")
	assert.Contains(t, reasons["long-short"], "shortname")
	assert.Contains(t, reasons["long-long"], "longname")
	assert.Contains(t, reasons["bad-time"], "malformed timestamp")
	assert.Contains(t, reasons["no-time"], "malformed timestamp")
	assert.Contains(t, reasons["no-location"], "missing location")
	assert.Contains(t, reasons["bad-location"], "out of range")
	assert.Contains(t, reasons["negative-id"], "negative id")
	assert.Contains(t, reasons["dup"], "duplicate id 7")

	require.Equal(t, 2, s.Len())
	all := s.All()
	assert.Equal(t, "first", all[0].UUID)
	assert.Equal(t, "from-list", all[1].UUID)
	assert.Equal(t, 3, all[1].Category.ID)
}

func TestLoadEmptyDataset(t *testing.T) {
	bad := rawRecord("bad", 1, "A", "not a date")

	s, err := Load([]model.RawMediaData{bad})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyDataset))

	var empty *EmptyDatasetError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, 1, empty.Total)
	assert.Equal(t, 1, empty.Excluded)

	require.NotNil(t, s)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.All())
	assert.Empty(t, s.Categories())

	_, err = Load(nil)
	assert.True(t, errors.Is(err, ErrEmptyDataset))
}

func TestLoadKeepsFirstCategoryDefinition(t *testing.T) {
	s, err := Load([]model.RawMediaData{
		rawRecord("a", 1, "Birds", "2020-01-01"),
		rawRecord("b", 1, "Vögel", "2020-01-02"),
	})
	require.NoError(t, err)

	cats := s.Categories()
	require.Len(t, cats, 1)
	assert.Equal(t, "Birds", cats[0].Shortname)
	// records keep their own copy but compare equal by id
	all := s.All()
	assert.True(t, all[0].Category.Equal(all[1].Category))
	assert.Equal(t, "Vögel", all[1].Category.Shortname)
}

func TestAllReturnsCopy(t *testing.T) {
	s, err := Load([]model.RawMediaData{rawRecord("a", 1, "A", "2020-01-01")})
	require.NoError(t, err)

	all := s.All()
	all[0] = nil
	assert.NotNil(t, s.All()[0])
}
