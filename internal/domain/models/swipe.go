package models

import "time"

type TargetType string

const (
	TargetJob       TargetType = "job"
	TargetCandidate TargetType = "candidate"
)

type SwipeAction string

const (
	ActionLike      SwipeAction = "like"
	ActionDislike   SwipeAction = "dislike"
	ActionSuperLike SwipeAction = "super_like"
)

// IsPositive reports whether the action expresses interest. Only positive
// actions can contribute to a match.
func (a SwipeAction) IsPositive() bool {
	return a == ActionLike || a == ActionSuperLike
}

// Swipe is an immutable interest signal from one actor toward one target.
// At most one row exists per (actor, target, target type); the unique index
// created in DbContext.Migrate enforces it.
type Swipe struct {
	ID         int    `gorm:"primaryKey"`
	ActorID    string `gorm:"index"`
	TargetID   string
	TargetType TargetType
	Action     SwipeAction
	CreatedAt  time.Time
}
