package types

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

const dateLayout = "2006-01-02"

// Date represents a calendar date without a time-of-day component, encoded
// as "YYYY-MM-DD". The zero value ("") means the date is absent. All
// whole-day arithmetic happens on UTC midnights so that DST transitions
// never skew a delta by an hour.
type Date string

// ParseDate parses a calendar date string. A time-of-day suffix
// ("2024-03-10T00:00:00Z") is ignored, matching how dates travel through
// API payloads. An empty string yields the zero Date without error.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return "", nil
	}
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", goerr.Wrap(err, "invalid calendar date", goerr.V("value", s))
	}
	return Date(s), nil
}

// DateOf truncates a timestamp to its calendar date in the local time zone.
func DateOf(t time.Time) Date {
	return Date(t.In(time.Local).Format(dateLayout))
}

// String returns the string representation
func (d Date) String() string {
	return string(d)
}

// IsZero reports whether the date is absent
func (d Date) IsZero() bool {
	return d == ""
}

// Valid reports whether the date is present and well-formed
func (d Date) Valid() bool {
	_, ok := d.utc()
	return ok
}

// utc returns the date as midnight UTC, used for day arithmetic
func (d Date) utc() (time.Time, bool) {
	if d == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// LocalMidnight returns the date as midnight in the local time zone. This
// is the boundary representation used when persisting dates as store
// timestamps, so a date written as "2024-03-10" reads back as "2024-03-10"
// regardless of the server's zone.
func (d Date) LocalMidnight() (time.Time, bool) {
	t, ok := d.utc()
	if !ok {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), true
}

// DaysSince returns the signed whole-day count d - other. Both dates must
// be valid; the second return value reports whether the delta is defined.
func (d Date) DaysSince(other Date) (int, bool) {
	a, aok := d.utc()
	b, bok := other.utc()
	if !aok || !bok {
		return 0, false
	}
	return int(a.Sub(b) / (24 * time.Hour)), true
}

// FormatBR renders the date as "dd/MM/yyyy" for user-facing messages
func (d Date) FormatBR() string {
	t, ok := d.utc()
	if !ok {
		return "Não informado"
	}
	return t.Format("02/01/2006")
}
