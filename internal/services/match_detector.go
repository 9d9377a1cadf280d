package services

import (
	"context"
	"sync"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
	"github.com/vagamatch/vagamatch/internal/domain/events"
	"github.com/vagamatch/vagamatch/internal/domain/models"
	"github.com/vagamatch/vagamatch/internal/logger"
	"github.com/vagamatch/vagamatch/internal/metrics"
)

type complementarySwipes interface {
	FindPositive(ctx context.Context, actorID, targetID string, targetType models.TargetType) (*models.Swipe, error)
}

type jobReader interface {
	GetByID(ctx context.Context, id string) (*models.Job, error)
	GetByCompany(ctx context.Context, companyID string) ([]models.Job, error)
}

type matchCreator interface {
	CreateIfAbsent(ctx context.Context, match *models.Match) (bool, error)
}

// MatchDetector listens for recorded swipes and materializes a Match when both
// sides of a (candidate, job) pair have expressed interest. Creation is guarded
// twice: a per-pair mutex serializes the check-then-create, and the storage
// layer's unique index absorbs anything that still slips through, so at most
// one Match ever exists for a triple.
type MatchDetector struct {
	bus     EventBus.Bus
	swipes  complementarySwipes
	jobs    jobReader
	matches matchCreator
	locks   sync.Map
}

func NewMatchDetector(bus EventBus.Bus, swipes complementarySwipes, jobs jobReader,
	matches matchCreator) (*MatchDetector, error) {

	d := &MatchDetector{
		bus:     bus,
		swipes:  swipes,
		jobs:    jobs,
		matches: matches,
	}
	if err := bus.Subscribe(events.SwipeRecordedTopic, d.onSwipeRecorded); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *MatchDetector) onSwipeRecorded(event events.SwipeRecorded) {
	if err := d.Detect(context.Background(), event.Swipe); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("match detection failed for swipe by %v on %v: %v",
				event.Swipe.ActorID, event.Swipe.TargetID, err)
	}
}

// Detect inspects one swipe and creates the match if the complementary
// positive swipe already exists. A dislike never produces a match.
func (d *MatchDetector) Detect(ctx context.Context, swipe models.Swipe) error {
	if !swipe.Action.IsPositive() {
		return nil
	}

	switch swipe.TargetType {
	case models.TargetJob:
		return d.detectForCandidateSwipe(ctx, swipe)
	case models.TargetCandidate:
		return d.detectForCompanySwipe(ctx, swipe)
	default:
		return nil
	}
}

func (d *MatchDetector) detectForCandidateSwipe(ctx context.Context, swipe models.Swipe) error {
	job, err := d.jobs.GetByID(ctx, swipe.TargetID)
	if err != nil {
		return err
	}
	if job == nil {
		// Swiped targets must exist; a missing job is a data integrity
		// violation, not a recoverable state.
		return models.ErrNotFound
	}

	counterpart, err := d.swipes.FindPositive(ctx, job.CompanyID, swipe.ActorID, models.TargetCandidate)
	if err != nil {
		return err
	}
	if counterpart == nil {
		return nil
	}

	return d.createMatch(ctx, swipe.ActorID, *job)
}

func (d *MatchDetector) detectForCompanySwipe(ctx context.Context, swipe models.Swipe) error {
	jobs, err := d.jobs.GetByCompany(ctx, swipe.ActorID)
	if err != nil {
		return err
	}

	for _, job := range jobs {
		counterpart, err := d.swipes.FindPositive(ctx, swipe.TargetID, job.ID, models.TargetJob)
		if err != nil {
			return err
		}
		if counterpart == nil {
			continue
		}
		if err = d.createMatch(ctx, swipe.TargetID, job); err != nil {
			return err
		}
	}
	return nil
}

func (d *MatchDetector) createMatch(ctx context.Context, candidateID string, job models.Job) error {
	unlock := d.lockPair(candidateID, job.ID)
	defer unlock()

	match := models.NewMatch(candidateID, job.CompanyID, job.ID)
	created, err := d.matches.CreateIfAbsent(ctx, &match)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	metrics.MatchesCreatedCounter.Inc()
	log.Infof("match created for candidate %v and job %v", candidateID, job.ID)
	d.bus.Publish(events.MatchCreatedTopic, events.MatchCreated{Match: match, Job: job})
	return nil
}

func (d *MatchDetector) lockPair(candidateID, jobID string) func() {
	key := candidateID + "|" + jobID
	value, _ := d.locks.LoadOrStore(key, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
