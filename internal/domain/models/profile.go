package models

import "time"

// Profile is the public summary shown in feeds and match lists. The aggregate
// Rating is recomputed whenever a new rating for the user is submitted.
type Profile struct {
	ID        string `gorm:"primaryKey"`
	FullName  string
	City      string
	State     string
	About     string
	PhotoURL  string
	Rating    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
