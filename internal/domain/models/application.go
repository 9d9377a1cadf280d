package models

import "time"

type ApplicationStatus string

const (
	ApplicationPending          ApplicationStatus = "pending"
	ApplicationAccepted         ApplicationStatus = "accepted"
	ApplicationRejected         ApplicationStatus = "rejected"
	ApplicationCancelled        ApplicationStatus = "cancelled"
	ApplicationContactRequested ApplicationStatus = "contact_requested"
)

type ContractStatus string

const (
	ContractPending   ContractStatus = "pending"
	ContractActive    ContractStatus = "active"
	ContractCompleted ContractStatus = "completed"
	ContractCancelled ContractStatus = "cancelled"
)

// Application tracks a candidate's formal pursuit of a job, with its own
// contract lifecycle independent of any Match. ContractStatus escalates
// monotonically pending -> active -> completed; cancelled is reachable from
// pending and active only.
type Application struct {
	ID                int    `gorm:"primaryKey"`
	CandidateID       string `gorm:"index"`
	JobID             string `gorm:"index"`
	Status            ApplicationStatus
	ContractStatus    ContractStatus
	CandidateAccepted *bool
	StartDate         *time.Time
	EndDate           *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewApplication(candidateID, jobID string) Application {
	return Application{
		CandidateID:    candidateID,
		JobID:          jobID,
		Status:         ApplicationPending,
		ContractStatus: ContractPending,
	}
}

// ContractProposed reports whether a working period has been attached.
// CandidateAccepted may only be set once this is true.
func (a *Application) ContractProposed() bool {
	return a.StartDate != nil && a.EndDate != nil
}

func (a *Application) ContractTerminal() bool {
	return a.ContractStatus == ContractCompleted || a.ContractStatus == ContractCancelled
}

// CanTransitionContract encodes the allowed contract_status moves.
func CanTransitionContract(from, to ContractStatus) bool {
	switch from {
	case ContractPending:
		return to == ContractActive || to == ContractCancelled
	case ContractActive:
		return to == ContractCompleted || to == ContractCancelled
	default:
		return false
	}
}
