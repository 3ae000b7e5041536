package plan

import (
	"errors"
	"fmt"
	"time"

	"github.com/trailforge/plancal/internal/domain/civil"
)

var ErrInvalidCalendar = errors.New("invalid calendar configuration")

// Calendar carries the two system-wide calendar constants: the single fixed
// timezone all seasons declare and the weekday every week starts on. It is
// threaded through every call rather than living as a package global, so
// datasets with different conventions can coexist in tests.
type Calendar struct {
	Location  *time.Location
	WeekStart time.Weekday
}

// NewCalendar resolves a named timezone and a weekday label into a Calendar.
func NewCalendar(timezone, weekStart string) (Calendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Calendar{}, fmt.Errorf("%w: load timezone %q: %v", ErrInvalidCalendar, timezone, err)
	}

	wd, err := civil.ParseWeekday(weekStart)
	if err != nil {
		return Calendar{}, fmt.Errorf("%w: %v", ErrInvalidCalendar, err)
	}

	return Calendar{Location: loc, WeekStart: wd}, nil
}

// TimezoneName is the identifier seasons must declare verbatim.
func (c Calendar) TimezoneName() string {
	if c.Location == nil {
		return ""
	}
	return c.Location.String()
}

// DateOf normalizes an instant to the civil date seen on wall clocks in the
// calendar's timezone.
func (c Calendar) DateOf(t time.Time) (civil.Date, error) {
	return civil.FromTime(t, c.Location)
}
