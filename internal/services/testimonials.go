package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vagamatch/vagamatch/internal/domain/models"
)

type testimonialStore interface {
	Add(ctx context.Context, testimonial *models.Testimonial) error
	GetByID(ctx context.Context, id int) (*models.Testimonial, error)
	GetByCompany(ctx context.Context, companyID string) ([]models.Testimonial, error)
	GetApprovedByCompany(ctx context.Context, companyID string) ([]models.Testimonial, error)
	UpdateStatus(ctx context.Context, id int, status models.TestimonialStatus) error
}

// TestimonialService lets a candidate publish a statement about a completed
// engagement, moderated by the company before it becomes public.
type TestimonialService struct {
	testimonials testimonialStore
	applications applicationReader
	jobs         jobReader
}

func NewTestimonialService(testimonials testimonialStore, applications applicationReader,
	jobs jobReader) *TestimonialService {

	return &TestimonialService{
		testimonials: testimonials,
		applications: applications,
		jobs:         jobs,
	}
}

// Submit creates a pending testimonial for the candidate's own completed
// application. The job title is denormalized so the testimonial survives the
// posting being taken down.
func (s *TestimonialService) Submit(ctx context.Context, actor models.Actor, applicationID int,
	comment string) (models.Testimonial, error) {

	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return models.Testimonial{}, errors.Wrap(err, "failed to load application")
	}
	if application == nil {
		return models.Testimonial{}, models.ErrNotFound
	}
	if application.CandidateID != actor.ID {
		return models.Testimonial{}, models.ErrUnauthorized
	}
	if application.ContractStatus != models.ContractCompleted {
		return models.Testimonial{}, errors.Wrap(models.ErrNotEligible, "contract is not completed")
	}

	job, err := s.jobs.GetByID(ctx, application.JobID)
	if err != nil {
		return models.Testimonial{}, errors.Wrap(err, "failed to load job")
	}
	if job == nil {
		return models.Testimonial{}, models.ErrNotFound
	}

	testimonial := models.NewTestimonial(applicationID, actor.ID, job.CompanyID, job.Title, comment)
	if err = s.testimonials.Add(ctx, &testimonial); err != nil {
		return models.Testimonial{}, errors.Wrap(err, "failed to save testimonial")
	}
	return testimonial, nil
}

// Review approves or rejects a pending testimonial. Only the company it is
// about may decide, and only once: re-deciding is InvalidState.
func (s *TestimonialService) Review(ctx context.Context, actor models.Actor, testimonialID int,
	approve bool) error {

	testimonial, err := s.testimonials.GetByID(ctx, testimonialID)
	if err != nil {
		return errors.Wrap(err, "failed to load testimonial")
	}
	if testimonial == nil {
		return models.ErrNotFound
	}
	if testimonial.CompanyID != actor.ID || !actor.IsCompany() {
		return models.ErrUnauthorized
	}
	if testimonial.Status != models.TestimonialPending {
		return errors.Wrap(models.ErrInvalidState, "testimonial already decided")
	}

	status := models.TestimonialRejected
	if approve {
		status = models.TestimonialApproved
	}
	return s.testimonials.UpdateStatus(ctx, testimonialID, status)
}

// ListForCompany returns everything submitted about the company (own view).
func (s *TestimonialService) ListForCompany(ctx context.Context, actor models.Actor) ([]models.Testimonial, error) {
	if !actor.IsCompany() {
		return nil, models.ErrUnauthorized
	}
	return s.testimonials.GetByCompany(ctx, actor.ID)
}

// ApprovedForCompany is the public read: only approved testimonials.
func (s *TestimonialService) ApprovedForCompany(ctx context.Context, companyID string) ([]models.Testimonial, error) {
	return s.testimonials.GetApprovedByCompany(ctx, companyID)
}
