package feed

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// DefaultZone applies to timestamps without a zone
const DefaultZone = "America/New_York"

var errEmptyTimestamp = errors.New("empty timestamp")

// TimestampError reports a timestamp no layout could parse
type TimestampError struct {
	Value string
	Err   error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("parse timestamp %q: %v", e.Value, e.Err)
}

func (e *TimestampError) Unwrap() error { return e.Err }

// DefaultLocation loads DefaultZone, falling back to a fixed EST offset
func DefaultLocation() *time.Location {
	loc, err := time.LoadLocation(DefaultZone)
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05Z07:00",
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"Monday, January 2, 2006",
	"2 January 2006",
	"01/02/2006",
	"1/2/2006",
}

// ParseTimestamp parses s with the first matching layout. Timestamps
// without a zone are placed in loc; a nil loc means DefaultLocation
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &TimestampError{Value: s, Err: errEmptyTimestamp}
	}
	if loc == nil {
		loc = DefaultLocation()
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	var last error
	for _, layout := range localLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		last = err
	}
	return time.Time{}, &TimestampError{Value: s, Err: last}
}
