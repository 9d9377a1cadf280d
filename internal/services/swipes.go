package services

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/vagamatch/vagamatch/internal/domain/events"
	"github.com/vagamatch/vagamatch/internal/domain/models"
	"github.com/vagamatch/vagamatch/internal/metrics"
)

type swipeLedger interface {
	Add(ctx context.Context, swipe *models.Swipe) (bool, error)
	Find(ctx context.Context, actorID, targetID string, targetType models.TargetType) (*models.Swipe, error)
	HasSwiped(ctx context.Context, actorID, targetID string, targetType models.TargetType) (bool, error)
	SwipedTargetIDs(ctx context.Context, actorID string, targetType models.TargetType) ([]string, error)
}

type jobFeedSource interface {
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Unswiped(ctx context.Context, actorID string, limit int) ([]models.Job, error)
}

type applicantSource interface {
	CandidateIDsForCompany(ctx context.Context, companyID string) ([]string, error)
}

type profileReader interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Profile, error)
}

// SwipeService is the append-only swipe ledger plus feed generation. A repeated
// swipe on the same target is absorbed as an idempotent no-op; correctness does
// not depend on the feed having filtered the target out first.
type SwipeService struct {
	bus          EventBus.Bus
	swipes       swipeLedger
	jobs         jobFeedSource
	applications applicantSource
	profiles     profileReader
	feedCache    *gocache.Cache
}

func NewSwipeService(bus EventBus.Bus, swipes swipeLedger, jobs jobFeedSource,
	applications applicantSource, profiles profileReader) *SwipeService {

	return &SwipeService{
		bus:          bus,
		swipes:       swipes,
		jobs:         jobs,
		applications: applications,
		profiles:     profiles,
		feedCache:    gocache.New(time.Minute, 5*time.Minute),
	}
}

// RecordSwipe appends the actor's interest signal. Candidates swipe jobs,
// companies swipe candidates; anything else is unauthorized. The swipe-recorded
// event is published only when a new row was written, so replays never reach
// the match detector twice.
func (s *SwipeService) RecordSwipe(ctx context.Context, actor models.Actor, targetID string,
	targetType models.TargetType, action models.SwipeAction) (models.Swipe, error) {

	if err := s.checkRoleTarget(actor, targetType); err != nil {
		return models.Swipe{}, err
	}

	if err := s.checkTargetExists(ctx, targetID, targetType); err != nil {
		return models.Swipe{}, err
	}

	swipe := models.Swipe{
		ActorID:    actor.ID,
		TargetID:   targetID,
		TargetType: targetType,
		Action:     action,
	}

	created, err := s.swipes.Add(ctx, &swipe)
	if err != nil {
		return models.Swipe{}, errors.Wrap(err, "failed to record swipe")
	}

	if created {
		metrics.SwipesCounter.WithLabelValues(string(action)).Inc()
		s.feedCache.Delete(actor.ID)
		s.bus.Publish(events.SwipeRecordedTopic, events.SwipeRecorded{Swipe: swipe})
		return swipe, nil
	}

	// A swipe for this identity already exists; the new action was absorbed,
	// so the stored row is the truth.
	existing, err := s.swipes.Find(ctx, actor.ID, targetID, targetType)
	if err != nil {
		return models.Swipe{}, errors.Wrap(err, "failed to load existing swipe")
	}
	if existing == nil {
		return models.Swipe{}, errors.New("swipe vanished after duplicate insert")
	}
	return *existing, nil
}

func (s *SwipeService) HasSwiped(ctx context.Context, actorID, targetID string,
	targetType models.TargetType) (bool, error) {
	return s.swipes.HasSwiped(ctx, actorID, targetID, targetType)
}

// JobFeed returns up to limit jobs the candidate has not swiped yet. Exclusion
// of swiped targets happens in the query; no ranking is applied.
func (s *SwipeService) JobFeed(ctx context.Context, actor models.Actor, limit int) ([]models.Job, error) {
	if !actor.IsCandidate() {
		return nil, models.ErrUnauthorized
	}
	return s.jobs.Unswiped(ctx, actor.ID, limit)
}

// CandidateFeed returns applicants to the company's jobs that the company has
// not swiped yet, hydrated into profile summaries. The result is cached for a
// minute per company; RecordSwipe invalidates the entry.
func (s *SwipeService) CandidateFeed(ctx context.Context, actor models.Actor, limit int) ([]models.Profile, error) {
	if !actor.IsCompany() {
		return nil, models.ErrUnauthorized
	}

	if cached, found := s.feedCache.Get(actor.ID); found {
		return truncateProfiles(cached.([]models.Profile), limit), nil
	}

	applicantIDs, err := s.applications.CandidateIDsForCompany(ctx, actor.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applicants")
	}

	swipedIDs, err := s.swipes.SwipedTargetIDs(ctx, actor.ID, models.TargetCandidate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list swiped candidates")
	}

	fresh, _ := lo.Difference(applicantIDs, swipedIDs)
	if len(fresh) == 0 {
		return []models.Profile{}, nil
	}

	profiles, err := s.profiles.GetByIDs(ctx, fresh)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load candidate profiles")
	}

	s.feedCache.SetDefault(actor.ID, profiles)
	return truncateProfiles(profiles, limit), nil
}

func (s *SwipeService) checkRoleTarget(actor models.Actor, targetType models.TargetType) error {
	switch targetType {
	case models.TargetJob:
		if !actor.IsCandidate() {
			return models.ErrUnauthorized
		}
	case models.TargetCandidate:
		if !actor.IsCompany() {
			return models.ErrUnauthorized
		}
	default:
		return errors.Wrapf(models.ErrNotFound, "unknown target type %v", targetType)
	}
	return nil
}

func (s *SwipeService) checkTargetExists(ctx context.Context, targetID string, targetType models.TargetType) error {
	if targetType == models.TargetJob {
		job, err := s.jobs.GetByID(ctx, targetID)
		if err != nil {
			return errors.Wrap(err, "failed to load job")
		}
		if job == nil {
			return models.ErrNotFound
		}
		return nil
	}

	profile, err := s.profiles.GetByID(ctx, targetID)
	if err != nil {
		return errors.Wrap(err, "failed to load profile")
	}
	if profile == nil {
		return models.ErrNotFound
	}
	return nil
}

func truncateProfiles(profiles []models.Profile, limit int) []models.Profile {
	if limit > 0 && len(profiles) > limit {
		return profiles[:limit]
	}
	return profiles
}
