package models

import "time"

type MatchStatus string

const (
	MatchActive    MatchStatus = "active"
	MatchUnmatched MatchStatus = "unmatched"
)

// Match is derived from two complementary positive swipes on the same
// (candidate, job) pair. It is created exactly once; the unique index on the
// triple makes creation idempotent under replay and concurrent swipes.
type Match struct {
	ID          int    `gorm:"primaryKey"`
	CandidateID string `gorm:"index"`
	CompanyID   string `gorm:"index"`
	JobID       string
	Status      MatchStatus
	MatchedAt   time.Time
}

func NewMatch(candidateID, companyID, jobID string) Match {
	return Match{
		CandidateID: candidateID,
		CompanyID:   companyID,
		JobID:       jobID,
		Status:      MatchActive,
		MatchedAt:   time.Now(),
	}
}
