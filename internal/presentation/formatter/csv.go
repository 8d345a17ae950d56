package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// CSVFormatter writes one row per record of the selection view.
type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(w io.Writer, s *Snapshot) error {
	cw := csv.NewWriter(w)

	headers := []string{"id", "uuid", "timestamp", "lat", "lng", "category", "media", "active"}
	if err := cw.Write(headers); err != nil {
		return err
	}

	for _, r := range s.Records {
		record := []string{
			strconv.Itoa(r.ID),
			r.UUID,
			r.Timestamp.UTC().Format(time.RFC3339),
			strconv.FormatFloat(r.Lat, 'f', -1, 64),
			strconv.FormatFloat(r.Lng, 'f', -1, 64),
			r.Category,
			strconv.Itoa(r.Media),
			fmt.Sprintf("%t", r.Active),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
