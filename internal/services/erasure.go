package services

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/vagamatch/vagamatch/internal/domain/models"
)

type erasableSwipes interface {
	RemoveByActor(ctx context.Context, actorID string) error
	RemoveByTarget(ctx context.Context, targetID string) error
	RemoveTargetingCompanyJobs(ctx context.Context, companyID string) error
}

type erasableMatches interface {
	RemoveByActor(ctx context.Context, actorID string) error
}

type erasableApplications interface {
	RemoveByActor(ctx context.Context, actorID string) error
	RemoveByCompanyJobs(ctx context.Context, companyID string) error
}

type erasableRatings interface {
	RemoveByActor(ctx context.Context, actorID string) error
}

type erasableTestimonials interface {
	RemoveByActor(ctx context.Context, actorID string) error
}

type erasableNotifications interface {
	RemoveByUser(ctx context.Context, userID string) error
}

type erasableJobs interface {
	RemoveByCompany(ctx context.Context, companyID string) error
}

type erasableProfiles interface {
	Remove(ctx context.Context, id string) error
}

// ErasureService removes everything the platform stored about an account.
// Swipes and matches are otherwise immutable; erasure is the one sanctioned
// deletion path.
type ErasureService struct {
	swipes        erasableSwipes
	matches       erasableMatches
	applications  erasableApplications
	ratings       erasableRatings
	testimonials  erasableTestimonials
	notifications erasableNotifications
	jobs          erasableJobs
	profiles      erasableProfiles
}

func NewErasureService(swipes erasableSwipes, matches erasableMatches,
	applications erasableApplications, ratings erasableRatings,
	testimonials erasableTestimonials, notifications erasableNotifications,
	jobs erasableJobs, profiles erasableProfiles) *ErasureService {

	return &ErasureService{
		swipes:        swipes,
		matches:       matches,
		applications:  applications,
		ratings:       ratings,
		testimonials:  testimonials,
		notifications: notifications,
		jobs:          jobs,
		profiles:      profiles,
	}
}

// Erase deletes the target actor's data. Only the actor themselves or an admin
// may trigger it.
func (s *ErasureService) Erase(ctx context.Context, actor models.Actor, target models.Actor) error {
	if actor.ID != target.ID && !actor.IsAdmin() {
		return models.ErrUnauthorized
	}

	type step struct {
		name string
		run  func() error
	}

	steps := []step{
		{"swipes by actor", func() error { return s.swipes.RemoveByActor(ctx, target.ID) }},
		{"swipes at target", func() error { return s.swipes.RemoveByTarget(ctx, target.ID) }},
		{"matches", func() error { return s.matches.RemoveByActor(ctx, target.ID) }},
		{"applications", func() error { return s.applications.RemoveByActor(ctx, target.ID) }},
		{"ratings", func() error { return s.ratings.RemoveByActor(ctx, target.ID) }},
		{"testimonials", func() error { return s.testimonials.RemoveByActor(ctx, target.ID) }},
		{"notifications", func() error { return s.notifications.RemoveByUser(ctx, target.ID) }},
		{"profile", func() error { return s.profiles.Remove(ctx, target.ID) }},
	}
	if target.IsCompany() {
		// Job-scoped cleanup resolves job ownership through the jobs table,
		// so it has to run before the jobs themselves are dropped.
		steps = append(steps,
			step{"swipes at company jobs", func() error { return s.swipes.RemoveTargetingCompanyJobs(ctx, target.ID) }},
			step{"applications to company jobs", func() error { return s.applications.RemoveByCompanyJobs(ctx, target.ID) }},
			step{"jobs", func() error { return s.jobs.RemoveByCompany(ctx, target.ID) }},
		)
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			return errors.Wrapf(err, "failed to erase %v", step.name)
		}
	}

	log.Infof("erased account data for %v", target.ID)
	return nil
}
