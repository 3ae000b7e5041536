package workout

import "fmt"

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

func KnownStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	default:
		return false
	}
}

const (
	EffortMin = 1
	EffortMax = 10
)

// Interval is one prescribed segment of a workout. Effort is the required
// 1-10 intensity anchor; the zone fields are optional secondary targets.
type Interval struct {
	Name            string `json:"name,omitempty"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	Effort          int    `json:"effort"`
	HeartRateZone   *int   `json:"heartRateZone,omitempty"`
	PowerZone       *int   `json:"powerZone,omitempty"`
}

// Variant is the tier-specific rendition of a workout: a non-empty ordered
// interval sequence.
type Variant struct {
	Intervals []Interval `json:"intervals"`
}

// Workout is one immutable version of a library entry. Identity is the
// (ID, Version) pair; versions are assigned externally, increase
// monotonically per ID, and are never reused.
type Workout struct {
	ID      string
	Version int
	Status  Status
	Title   string
	Tiers   map[Tier]Variant
}

// Key renders the canonical pinned-reference form of this version.
func (w Workout) Key() string {
	return fmt.Sprintf("%s@v%d", w.ID, w.Version)
}
