package job

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate accepts "YYYY-MM-DD" or an RFC 3339 timestamp and keeps only the date.
// An empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, ErrValidation("application_date must be YYYY-MM-DD")
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d, nil
}

// FormatDate is the inverse of ParseDate; nil yields "".
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
