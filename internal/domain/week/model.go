package week

import (
	"fmt"
	"strings"
	"time"

	"github.com/trailforge/plancal/internal/domain/civil"
)

// RestMarker is the explicit "no workout today" assignment. It is the only
// legitimate way to express a workout-free day; an absent or unresolvable
// reference is always corrupt data.
const RestMarker = "rest"

// DayKeys lists the seven weekday keys every week's day map must carry,
// ordered from Monday to match the calendar's week layout.
var DayKeys = [7]string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// Week is one 7-day slice of a season. Workouts maps each weekday key to a
// workout reference string or RestMarker.
type Week struct {
	ID        string
	SeasonID  string
	BlockID   string
	StartDate civil.Date
	Workouts  map[string]string
}

// EndDate is the last day of the week's window: start plus six calendar days.
func (w Week) EndDate() civil.Date {
	return w.StartDate.AddDays(6)
}

// Contains reports whether the date falls inside [StartDate, StartDate+6].
func (w Week) Contains(d civil.Date) bool {
	return !d.Before(w.StartDate) && !d.After(w.EndDate())
}

// DayKeyFor maps a weekday to its day-map key.
func DayKeyFor(wd time.Weekday) string {
	switch wd {
	case time.Monday:
		return DayKeys[0]
	case time.Tuesday:
		return DayKeys[1]
	case time.Wednesday:
		return DayKeys[2]
	case time.Thursday:
		return DayKeys[3]
	case time.Friday:
		return DayKeys[4]
	case time.Saturday:
		return DayKeys[5]
	default:
		return DayKeys[6]
	}
}

// IsRest reports whether a day-map value is the explicit rest marker.
func IsRest(value string) bool {
	return strings.TrimSpace(value) == RestMarker
}

// ValidateDayMap checks that the map carries exactly the seven weekday keys,
// no more and no less. Values are not inspected here.
func ValidateDayMap(workouts map[string]string) error {
	known := make(map[string]struct{}, len(DayKeys))
	for _, key := range DayKeys {
		known[key] = struct{}{}
		if _, ok := workouts[key]; !ok {
			return fmt.Errorf("day map is missing key %q", key)
		}
	}

	for key := range workouts {
		if _, ok := known[key]; !ok {
			return fmt.Errorf("day map has unknown key %q", key)
		}
	}

	return nil
}
