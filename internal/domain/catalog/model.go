package catalog

import "time"

// Service is a dental procedure offered by the clinic. DurationMinutes
// seeds the default appointment length when this service is booked.
type Service struct {
	ID              int64     `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Level           *string   `db:"level" json:"level,omitempty"`
	LevelNumber     *int      `db:"level_number" json:"level_number,omitempty"`
	Price           float64   `db:"price" json:"price"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Active          bool      `db:"active" json:"active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
