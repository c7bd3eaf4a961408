package clinical

import (
	"errors"
	"time"
)

// ErrInvalidStartDate is returned for a start_date that matches none of the
// accepted layouts.
var ErrInvalidStartDate = errors.New("Invalid start date format")

// startDateLayouts are tried in order. Layouts without a zone are read as UTC.
var startDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// ParseStartDate parses the start_date query parameter. An empty value means
// no lower bound and yields nil.
func ParseStartDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, ErrInvalidStartDate
}
