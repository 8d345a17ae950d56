package model

// RawMediaData is the wire shape of a single media record as delivered by the
// data source. Fields are validated and resolved by the store before use.
type RawMediaData struct {
	ID         *int           `json:"id,omitempty"`
	UUID       string         `json:"uuid"`
	Timestamp  string         `json:"timestamp"` // ISO-8601
	Location   *Location      `json:"location"`
	Images     []MediaElement `json:"images"`
	Videos     []MediaElement `json:"videos"`
	Category   *RawCategory   `json:"category,omitempty"`
	Categories []RawCategory  `json:"categories,omitempty"`
}

// RawCategory is a category reference as found in the input.
type RawCategory struct {
	ID        *int   `json:"id"`
	Shortname string `json:"shortname"`
	Longname  string `json:"longname"`
}

// Location is a WGS84 coordinate in decimal degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MediaElement is an image or video attached to a record.
type MediaElement struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Title        string `json:"title,omitempty"`
	Caption      string `json:"caption,omitempty"`
}

// PrimaryCategory returns the category the record is dimensioned by: the
// explicit category if given, otherwise the first of categories.
func (r RawMediaData) PrimaryCategory() *RawCategory {
	if r.Category != nil {
		return r.Category
	}
	if len(r.Categories) > 0 {
		return &r.Categories[0]
	}
	return nil
}

// Valid reports whether the coordinate lies within WGS84 bounds.
func (l Location) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}
