package postgres

import "time"

type seasonRow struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Timezone  string    `db:"timezone"`
	WeekIDs   []byte    `db:"week_ids"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type blockRow struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	Intent    string    `db:"intent"`
	WeekIDs   []byte    `db:"week_ids"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type weekRow struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	SeasonID  string    `db:"season_id"`
	BlockID   string    `db:"block_id"`
	StartDate time.Time `db:"start_date"`
	Workouts  []byte    `db:"workouts"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type workoutRow struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Version   int       `db:"version"`
	Status    string    `db:"status"`
	Title     string    `db:"title"`
	Tiers     []byte    `db:"tiers"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
