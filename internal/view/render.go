package view

import (
	"strings"
	"time"

	"github.com/sells-group/scraper-ui/internal/model"
)

// PreviewLength is the number of characters shown in a scrape preview.
const PreviewLength = 300

// Ellipsis marks a preview.
const Ellipsis = "..."

// Preview returns the first PreviewLength characters of content followed by
// Ellipsis. content itself is left untouched.
func Preview(content string) string {
	n := 0
	for i := range content {
		if n == PreviewLength {
			return content[:i] + Ellipsis
		}
		n++
	}
	return content + Ellipsis
}

// Segment is one newline-delimited piece of page content. An empty segment
// renders as a line break.
type Segment struct {
	Text string
}

// IsBreak reports whether the segment renders as a line break.
func (s Segment) IsBreak() bool {
	return s.Text == ""
}

// Paragraphs splits content on '\n' keeping every segment, blank ones
// included, in order.
func Paragraphs(content string) []Segment {
	parts := strings.Split(content, "\n")
	segments := make([]Segment, len(parts))
	for i, p := range parts {
		segments[i] = Segment{Text: p}
	}
	return segments
}

// TimeLayout matches the browser's en-US locale string.
const TimeLayout = "1/2/2006, 3:04:05 PM"

// FormatTime renders ts in loc. Zero timestamps render as "n/a".
func FormatTime(ts model.Timestamp, loc *time.Location) string {
	if ts.IsZero() {
		return "n/a"
	}
	if loc == nil {
		loc = time.Local
	}
	return ts.In(loc).Format(TimeLayout)
}
