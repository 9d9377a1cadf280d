package models

import (
	"math"
	"time"
)

// Rating is one side's score for a completed application relationship.
// Unique per (application, rater); the index created in Migrate enforces it.
type Rating struct {
	ID            int `gorm:"primaryKey"`
	ApplicationID int `gorm:"index"`
	RaterID       string
	RatedUserID   string `gorm:"index"`
	Score         float64
	Comment       string
	CreatedAt     time.Time
}

// IsValidScore accepts 0 to 5 in half-point steps.
func IsValidScore(score float64) bool {
	if score < 0 || score > 5 {
		return false
	}
	doubled := score * 2
	return doubled == math.Trunc(doubled)
}
