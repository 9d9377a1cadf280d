package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vagamatch/vagamatch/internal/domain/models"
)

type jobStore interface {
	Add(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	GetByCompany(ctx context.Context, companyID string) ([]models.Job, error)
	Update(ctx context.Context, job *models.Job) error
}

type JobDraft struct {
	Title           string
	Description     string
	Location        string
	Salary          string
	Experience      models.ExperienceLevel
	Specializations []string
	WorkModel       models.WorkModel
}

// JobService owns posting lifecycle: a company creates and edits its own
// postings; everyone can read them.
type JobService struct {
	jobs jobStore
}

func NewJobService(jobs jobStore) *JobService {
	return &JobService{jobs: jobs}
}

func (s *JobService) Create(ctx context.Context, actor models.Actor, draft JobDraft) (models.Job, error) {
	if !actor.IsCompany() {
		return models.Job{}, models.ErrUnauthorized
	}
	if draft.Title == "" || draft.Description == "" {
		return models.Job{}, errors.Wrap(models.ErrInvalidState, "title and description are required")
	}

	job := models.NewJob(uuid.NewString(), actor.ID, draft.Title, draft.Description,
		draft.Location, draft.Salary, draft.Experience, draft.Specializations, draft.WorkModel)

	if err := s.jobs.Add(ctx, &job); err != nil {
		return models.Job{}, errors.Wrap(err, "failed to create job")
	}
	return job, nil
}

// Update replaces the mutable fields of the company's own posting.
func (s *JobService) Update(ctx context.Context, actor models.Actor, jobID string, draft JobDraft) (models.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return models.Job{}, errors.Wrap(err, "failed to load job")
	}
	if job == nil {
		return models.Job{}, models.ErrNotFound
	}
	if job.CompanyID != actor.ID {
		return models.Job{}, models.ErrUnauthorized
	}

	updated := models.NewJob(job.ID, job.CompanyID, draft.Title, draft.Description,
		draft.Location, draft.Salary, draft.Experience, draft.Specializations, draft.WorkModel)
	updated.CreatedAt = job.CreatedAt

	if err = s.jobs.Update(ctx, &updated); err != nil {
		return models.Job{}, errors.Wrap(err, "failed to update job")
	}
	return updated, nil
}

func (s *JobService) Get(ctx context.Context, jobID string) (models.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return models.Job{}, errors.Wrap(err, "failed to load job")
	}
	if job == nil {
		return models.Job{}, models.ErrNotFound
	}
	return *job, nil
}

func (s *JobService) ListForCompany(ctx context.Context, actor models.Actor) ([]models.Job, error) {
	if !actor.IsCompany() {
		return nil, models.ErrUnauthorized
	}
	return s.jobs.GetByCompany(ctx, actor.ID)
}
