package domain

import (
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date such as a due date or a project start date. It is kept
// in its textual form; Time parses it on demand.
type Date string

// NewDate formats t as a Date.
func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Time parses the date. RFC 3339 timestamps are accepted as well.
func (d Date) Time() (time.Time, bool) {
	s := strings.TrimSpace(string(d))
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Before orders dates chronologically; unparseable dates sort after every valid one.
func (d Date) Before(other Date) bool {
	a, okA := d.Time()
	b, okB := other.Time()
	switch {
	case okA && okB:
		return a.Before(b)
	case okA:
		return true
	default:
		return false
	}
}
