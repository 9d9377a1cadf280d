package services

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/vagamatch/vagamatch/internal/domain/models"
	"github.com/vagamatch/vagamatch/internal/logger"
)

type ratingStore interface {
	Add(ctx context.Context, rating *models.Rating) error
	Exists(ctx context.Context, applicationID int, raterID string) (bool, error)
	AverageForUser(ctx context.Context, ratedUserID string) (float64, error)
}

type applicationReader interface {
	GetByID(ctx context.Context, id int) (*models.Application, error)
}

type profileRatingWriter interface {
	UpdateRating(ctx context.Context, id string, rating float64) error
}

// RatingService gates ratings behind a completed contract: each participant of
// the application may rate the other side exactly once.
type RatingService struct {
	ratings      ratingStore
	applications applicationReader
	jobs         jobReader
	profiles     profileRatingWriter
}

func NewRatingService(ratings ratingStore, applications applicationReader, jobs jobReader,
	profiles profileRatingWriter) *RatingService {

	return &RatingService{
		ratings:      ratings,
		applications: applications,
		jobs:         jobs,
		profiles:     profiles,
	}
}

func (s *RatingService) Submit(ctx context.Context, actor models.Actor, applicationID int,
	ratedUserID string, score float64, comment string) (models.Rating, error) {

	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return models.Rating{}, errors.Wrap(err, "failed to load application")
	}
	if application == nil {
		return models.Rating{}, models.ErrNotFound
	}

	job, err := s.jobs.GetByID(ctx, application.JobID)
	if err != nil {
		return models.Rating{}, errors.Wrap(err, "failed to load job")
	}
	if job == nil {
		return models.Rating{}, models.ErrNotFound
	}

	if actor.ID != application.CandidateID && actor.ID != job.CompanyID {
		return models.Rating{}, models.ErrUnauthorized
	}

	counterpart := application.CandidateID
	if actor.ID == application.CandidateID {
		counterpart = job.CompanyID
	}
	if ratedUserID != counterpart {
		return models.Rating{}, errors.Wrap(models.ErrNotEligible, "can only rate the other participant")
	}

	if application.ContractStatus != models.ContractCompleted {
		return models.Rating{}, errors.Wrap(models.ErrNotEligible, "contract is not completed")
	}

	if !models.IsValidScore(score) {
		return models.Rating{}, errors.Wrapf(models.ErrInvalidScore, "score %v", score)
	}

	rated, err := s.ratings.Exists(ctx, applicationID, actor.ID)
	if err != nil {
		return models.Rating{}, errors.Wrap(err, "failed to check existing rating")
	}
	if rated {
		return models.Rating{}, models.ErrAlreadyRated
	}

	rating := models.Rating{
		ApplicationID: applicationID,
		RaterID:       actor.ID,
		RatedUserID:   ratedUserID,
		Score:         score,
		Comment:       comment,
	}
	if err = s.ratings.Add(ctx, &rating); err != nil {
		return models.Rating{}, errors.Wrap(err, "failed to save rating")
	}

	s.refreshAggregate(ctx, ratedUserID)
	return rating, nil
}

// refreshAggregate keeps the profile's averaged rating in sync. Failure here is
// cosmetic and must not fail the submission that triggered it.
func (s *RatingService) refreshAggregate(ctx context.Context, ratedUserID string) {
	average, err := s.ratings.AverageForUser(ctx, ratedUserID)
	if err == nil {
		err = s.profiles.UpdateRating(ctx, ratedUserID, average)
	}
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to refresh aggregate rating for %v: %v", ratedUserID, err)
	}
}
