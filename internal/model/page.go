package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// PageID is the backend-assigned identifier of a scraped page. The backend
// emits integers today; the client never does arithmetic on it.
type PageID string

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *PageID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return eris.Wrap(err, "model: decode page id")
		}
		*id = PageID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return eris.Wrap(err, "model: decode page id")
	}
	*id = PageID(n.String())
	return nil
}

// String returns the id as it appears in paths.
func (id PageID) String() string { return string(id) }

// naiveLayout is the wire form of a timestamp without a zone offset.
const naiveLayout = "2006-01-02T15:04:05.999999999"

// timestampLayouts lists the formats the backend is known to emit. Naive
// timestamps come from the database as-is and carry wall-clock time only.
var timestampLayouts = []struct {
	layout string
	naive  bool
}{
	{time.RFC3339Nano, false},
	{naiveLayout, true},
	{"2006-01-02 15:04:05.999999999Z07:00", false},
	{"2006-01-02 15:04:05.999999999", true},
}

// Timestamp is a backend timestamp tolerant of missing zone offsets.
// Naive timestamps hold their wall clock in UTC and are shown unshifted
// in whatever zone they are displayed in.
type Timestamp struct {
	time.Time
	Naive bool
}

// ParseTimestamp parses s using the known backend layouts.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, l := range timestampLayouts {
		if t, err := time.Parse(l.layout, s); err == nil {
			return Timestamp{Time: t, Naive: l.naive}, nil
		}
	}
	return Timestamp{}, eris.Errorf("model: unrecognised timestamp %q", s)
}

// In returns the instant to display in loc. A naive timestamp keeps its
// wall clock and takes loc as its zone.
func (ts Timestamp) In(loc *time.Location) time.Time {
	if !ts.Naive {
		return ts.Time.In(loc)
	}
	t := ts.Time
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// UnmarshalJSON decodes a quoted timestamp. null and "" leave the zero value.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return eris.Wrap(err, "model: decode timestamp")
	}
	if s == "" {
		*ts = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// MarshalJSON encodes the timestamp as RFC 3339, or without an offset if
// it was read without one.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	if ts.Naive {
		return json.Marshal(ts.Time.Format(naiveLayout))
	}
	return json.Marshal(ts.Time.Format(time.RFC3339Nano))
}

// PageSummary is the list projection of a scraped page.
type PageSummary struct {
	ID           PageID    `json:"id"`
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	ScrapedAt    Timestamp `json:"scraped_at"`
	LastAccessed Timestamp `json:"last_accessed"`
}

// Page is the full scraped page record as returned by the backend.
type Page struct {
	ID           PageID    `json:"id"`
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ScrapedAt    Timestamp `json:"scraped_at"`
	LastAccessed Timestamp `json:"last_accessed"`
}

// Summary drops the page content.
func (p Page) Summary() PageSummary {
	return PageSummary{
		ID:           p.ID,
		URL:          p.URL,
		Title:        p.Title,
		ScrapedAt:    p.ScrapedAt,
		LastAccessed: p.LastAccessed,
	}
}
