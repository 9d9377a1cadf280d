package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vagamatch/vagamatch/internal/domain/models"
)

type matchReader interface {
	GetByCandidate(ctx context.Context, candidateID string) ([]models.Match, error)
	GetByCompany(ctx context.Context, companyID string) ([]models.Match, error)
}

// MatchSummary is a match hydrated with the job and the counterpart's profile,
// ready for a match list screen.
type MatchSummary struct {
	Match       models.Match
	Job         models.Job
	Counterpart models.Profile
}

// MatchService is the read side of the match store. Creation belongs to the
// MatchDetector exclusively.
type MatchService struct {
	matches  matchReader
	jobs     jobReader
	profiles profileReader
}

func NewMatchService(matches matchReader, jobs jobReader, profiles profileReader) *MatchService {
	return &MatchService{matches: matches, jobs: jobs, profiles: profiles}
}

// ListForActor returns the actor's active matches. Hydration gaps (a job or
// profile deleted since) drop the entry rather than failing the listing.
func (s *MatchService) ListForActor(ctx context.Context, actor models.Actor) ([]MatchSummary, error) {
	var found []models.Match
	var err error

	switch actor.Role {
	case models.RoleCandidate:
		found, err = s.matches.GetByCandidate(ctx, actor.ID)
	case models.RoleCompany:
		found, err = s.matches.GetByCompany(ctx, actor.ID)
	default:
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to list matches")
	}

	summaries := make([]MatchSummary, 0, len(found))
	for _, match := range found {
		job, err := s.jobs.GetByID(ctx, match.JobID)
		if err != nil {
			return nil, err
		}

		counterpartID := match.CandidateID
		if actor.IsCandidate() {
			counterpartID = match.CompanyID
		}
		profile, err := s.profiles.GetByID(ctx, counterpartID)
		if err != nil {
			return nil, err
		}

		if job == nil || profile == nil {
			continue
		}
		summaries = append(summaries, MatchSummary{Match: match, Job: *job, Counterpart: *profile})
	}

	return summaries, nil
}
