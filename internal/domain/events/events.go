package events

import "github.com/vagamatch/vagamatch/internal/domain/models"

var (
	SwipeRecordedTopic        = "SwipeRecordedEvent"
	MatchCreatedTopic         = "MatchCreatedEvent"
	ContractProposedTopic     = "ContractProposedEvent"
	ApplicationCompletedTopic = "ApplicationCompletedEvent"
)

// SwipeRecorded is published by the swipe ledger after a new swipe row is
// inserted. Replayed or deduplicated swipes do not produce this event.
type SwipeRecorded struct {
	Swipe models.Swipe
}

type MatchCreated struct {
	Match models.Match
	Job   models.Job
}

type ContractProposed struct {
	Application models.Application
	JobTitle    string
}

type ApplicationCompleted struct {
	Application models.Application
	CompanyID   string
}
