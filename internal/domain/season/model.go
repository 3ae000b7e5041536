package season

import (
	"github.com/trailforge/plancal/internal/domain/civil"
)

// Season is a published training season: an inclusive civil-date range plus
// the ordered weeks that fill it. Records are frozen once loaded; the engine
// only reads them.
type Season struct {
	ID        string
	Name      string
	StartDate civil.Date
	EndDate   civil.Date
	Timezone  string
	WeekIDs   []string
}

// Contains reports whether the date falls inside the season's range. Both
// bounds are inclusive: a query exactly on StartDate or EndDate is in season.
func (s Season) Contains(d civil.Date) bool {
	return !d.Before(s.StartDate) && !d.After(s.EndDate)
}
