// Package civil implements calendar dates detached from time-of-day and
// timezone offsets. All week-window and ordering arithmetic in the calendar
// engine happens on these dates, never on instants, so that adding six days
// always advances exactly six calendar days even when a DST transition falls
// inside the window.
package civil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const layout = "2006-01-02"

// secondsPerDay is exact for UTC midnights: UTC has no DST, so the Unix
// timestamp of any civil date's midnight is an integer multiple of it.
const secondsPerDay = 86400

var (
	ErrInvalidDate    = errors.New("invalid civil date")
	ErrInvalidWeekday = errors.New("invalid weekday label")
)

// Date is a calendar date: year, month, day. The zero value is not a valid
// date and reports true from IsZero.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// FromTime converts an instant to the civil date observed on local wall
// clocks in loc. Identical instants on either side of a DST transition can
// land on different civil dates, which is exactly the point.
func FromTime(t time.Time, loc *time.Location) (Date, error) {
	if t.IsZero() {
		return Date{}, fmt.Errorf("%w: zero instant", ErrInvalidDate)
	}
	if loc == nil {
		return Date{}, fmt.Errorf("%w: nil location", ErrInvalidDate)
	}

	year, month, day := t.In(loc).Date()
	return Date{Year: year, Month: month, Day: day}, nil
}

// Parse reads a canonical YYYY-MM-DD string. Syntactically malformed input
// and impossible calendar dates (2026-02-30) are both rejected.
func Parse(value string) (Date, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) != len(layout) {
		return Date{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDate, value)
	}

	t, err := time.ParseInLocation(layout, trimmed, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDate, value)
	}

	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}, nil
}

// MustParse is Parse for fixtures and seeds with known-good literals.
func MustParse(value string) Date {
	d, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// utcMidnight anchors the date at 00:00 UTC, the timezone-agnostic reference
// used for all arithmetic.
func (d Date) utcMidnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DayNumber returns the number of calendar days since the Unix epoch date.
// Negative for dates before 1970-01-01.
func (d Date) DayNumber() int {
	return int(d.utcMidnight().Unix() / secondsPerDay)
}

// AddDays advances the date by n calendar days (n may be negative). The
// computation runs in UTC, so it is immune to wall-clock shifts.
func (d Date) AddDays(n int) Date {
	year, month, day := d.utcMidnight().AddDate(0, 0, n).Date()
	return Date{Year: year, Month: month, Day: day}
}

func (d Date) Weekday() time.Weekday {
	return d.utcMidnight().Weekday()
}

// Compare returns -1, 0, or 1 as d is before, equal to, or after other.
func (d Date) Compare(other Date) int {
	a, b := d.DayNumber(), other.DayNumber()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

func (d Date) Equal(other Date) bool { return d.Compare(other) == 0 }

// MarshalText renders the canonical wire format so JSON payloads carry
// "YYYY-MM-DD" strings.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return nil, fmt.Errorf("%w: cannot marshal zero date", ErrInvalidDate)
	}
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseWeekday maps a lower-case English weekday label to time.Weekday.
func ParseWeekday(label string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	default:
		return time.Sunday, fmt.Errorf("%w: %q", ErrInvalidWeekday, label)
	}
}
