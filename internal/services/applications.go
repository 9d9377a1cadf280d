package services

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/vagamatch/vagamatch/internal/domain/events"
	"github.com/vagamatch/vagamatch/internal/domain/models"
	"github.com/vagamatch/vagamatch/internal/metrics"
)

type applicationStore interface {
	Add(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id int) (*models.Application, error)
	GetByCandidate(ctx context.Context, candidateID string) ([]models.Application, error)
	GetByJob(ctx context.Context, jobID string) ([]models.Application, error)
	ExistsForJob(ctx context.Context, candidateID, jobID string) (bool, error)
	Update(ctx context.Context, application *models.Application) error
	Remove(ctx context.Context, id int) error
}

// ApplicationService drives the application and contract state machine:
// a candidate applies, the company proposes a working period, the candidate
// accepts or rejects, and the contract runs to completion or cancellation.
type ApplicationService struct {
	bus          EventBus.Bus
	applications applicationStore
	jobs         jobReader
	now          func() time.Time
}

func NewApplicationService(bus EventBus.Bus, applications applicationStore, jobs jobReader) *ApplicationService {
	return &ApplicationService{
		bus:          bus,
		applications: applications,
		jobs:         jobs,
		now:          time.Now,
	}
}

// Submit creates a pending application. One live application per
// (candidate, job): re-applying is only possible after the previous one was
// cancelled and removed.
func (s *ApplicationService) Submit(ctx context.Context, actor models.Actor, jobID string) (models.Application, error) {
	if !actor.IsCandidate() {
		return models.Application{}, models.ErrUnauthorized
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return models.Application{}, errors.Wrap(err, "failed to load job")
	}
	if job == nil {
		return models.Application{}, models.ErrNotFound
	}

	exists, err := s.applications.ExistsForJob(ctx, actor.ID, jobID)
	if err != nil {
		return models.Application{}, errors.Wrap(err, "failed to check existing application")
	}
	if exists {
		return models.Application{}, errors.Wrap(models.ErrInvalidState, "already applied to this job")
	}

	application := models.NewApplication(actor.ID, jobID)
	if err = s.applications.Add(ctx, &application); err != nil {
		return models.Application{}, errors.Wrap(err, "failed to create application")
	}

	metrics.ApplicationEventsCounter.WithLabelValues("submitted").Inc()
	return application, nil
}

// Cancel removes the candidate's own application while the contract is still
// pending. A second cancel finds nothing and reports NotFound.
func (s *ApplicationService) Cancel(ctx context.Context, actor models.Actor, applicationID int) error {
	application, err := s.getOwnedByCandidate(ctx, actor, applicationID)
	if err != nil {
		return err
	}

	if application.ContractStatus != models.ContractPending {
		return errors.Wrap(models.ErrInvalidState, "contract already underway")
	}

	if err = s.applications.Remove(ctx, application.ID); err != nil {
		return errors.Wrap(err, "failed to remove application")
	}

	metrics.ApplicationEventsCounter.WithLabelValues("cancelled").Inc()
	return nil
}

// ProposeContract attaches the working period. Only the company owning the job
// may propose, only while the contract is pending, and the period must start
// today or later and end on or after it starts.
func (s *ApplicationService) ProposeContract(ctx context.Context, actor models.Actor,
	applicationID int, startDate, endDate time.Time) error {

	application, job, err := s.getWithJob(ctx, applicationID)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() && (actor.ID != job.CompanyID || !actor.IsCompany()) {
		return models.ErrUnauthorized
	}

	if application.ContractStatus != models.ContractPending {
		return errors.Wrap(models.ErrInvalidState, "contract already underway")
	}

	if endDate.Before(startDate) {
		return errors.Wrap(models.ErrInvalidDateRange, "end date before start date")
	}
	if startDate.Before(truncateToDay(s.now())) {
		return errors.Wrap(models.ErrInvalidDateRange, "start date in the past")
	}

	application.StartDate = &startDate
	application.EndDate = &endDate
	application.CandidateAccepted = nil

	if err = s.applications.Update(ctx, application); err != nil {
		return errors.Wrap(err, "failed to save contract proposal")
	}

	metrics.ApplicationEventsCounter.WithLabelValues("contract_proposed").Inc()
	s.bus.Publish(events.ContractProposedTopic, events.ContractProposed{
		Application: *application,
		JobTitle:    job.Title,
	})
	return nil
}

// RespondToContract records the candidate's decision on a proposed contract.
// A second response is rejected with InvalidState: the first decision stands.
func (s *ApplicationService) RespondToContract(ctx context.Context, actor models.Actor,
	applicationID int, accept bool) error {

	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return errors.Wrap(err, "failed to load application")
	}
	// The caller either owns the application or, as far as they know, it
	// does not exist.
	if application == nil || application.CandidateID != actor.ID {
		return models.ErrNotFound
	}

	if !application.ContractProposed() {
		return errors.Wrap(models.ErrInvalidState, "no contract proposed")
	}
	if application.ContractStatus != models.ContractPending {
		return errors.Wrap(models.ErrInvalidState, "contract already decided")
	}

	accepted := accept
	application.CandidateAccepted = &accepted
	if accept {
		application.ContractStatus = models.ContractActive
		application.Status = models.ApplicationAccepted
	} else {
		application.ContractStatus = models.ContractCancelled
		application.Status = models.ApplicationCancelled
	}

	if err = s.applications.Update(ctx, application); err != nil {
		return errors.Wrap(err, "failed to save contract response")
	}

	if accept {
		metrics.ApplicationEventsCounter.WithLabelValues("contract_accepted").Inc()
	} else {
		metrics.ApplicationEventsCounter.WithLabelValues("contract_rejected").Inc()
	}
	return nil
}

// Complete transitions an active contract to completed. Calling it again on a
// completed application is a no-op; any other state is invalid. The nightly
// sweeper calls this as well once the working period has elapsed.
func (s *ApplicationService) Complete(ctx context.Context, actor models.Actor, applicationID int) error {
	application, job, err := s.getWithJob(ctx, applicationID)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() && actor.ID != job.CompanyID {
		return models.ErrUnauthorized
	}

	if application.ContractStatus == models.ContractCompleted {
		return nil
	}
	if application.ContractStatus != models.ContractActive {
		return errors.Wrap(models.ErrInvalidState, "contract is not active")
	}

	application.ContractStatus = models.ContractCompleted
	if err = s.applications.Update(ctx, application); err != nil {
		return errors.Wrap(err, "failed to complete application")
	}

	metrics.ApplicationEventsCounter.WithLabelValues("completed").Inc()
	s.bus.Publish(events.ApplicationCompletedTopic, events.ApplicationCompleted{
		Application: *application,
		CompanyID:   job.CompanyID,
	})
	return nil
}

// CancelContract is the company/admin escape hatch from any non-terminal state.
func (s *ApplicationService) CancelContract(ctx context.Context, actor models.Actor, applicationID int) error {
	application, job, err := s.getWithJob(ctx, applicationID)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() && actor.ID != job.CompanyID {
		return models.ErrUnauthorized
	}

	if application.ContractTerminal() {
		return errors.Wrap(models.ErrInvalidState, "contract already ended")
	}

	application.ContractStatus = models.ContractCancelled
	application.Status = models.ApplicationCancelled

	if err = s.applications.Update(ctx, application); err != nil {
		return errors.Wrap(err, "failed to cancel contract")
	}

	metrics.ApplicationEventsCounter.WithLabelValues("contract_cancelled").Inc()
	return nil
}

// RequestContact flags a pending application as contact-requested so the
// candidate sees the company wants to talk before any contract exists.
func (s *ApplicationService) RequestContact(ctx context.Context, actor models.Actor, applicationID int) error {
	application, job, err := s.getWithJob(ctx, applicationID)
	if err != nil {
		return err
	}

	if actor.ID != job.CompanyID {
		return models.ErrUnauthorized
	}
	if application.Status != models.ApplicationPending {
		return errors.Wrap(models.ErrInvalidState, "application already progressed")
	}

	application.Status = models.ApplicationContactRequested
	return s.applications.Update(ctx, application)
}

func (s *ApplicationService) ListForCandidate(ctx context.Context, actor models.Actor) ([]models.Application, error) {
	if !actor.IsCandidate() {
		return nil, models.ErrUnauthorized
	}
	return s.applications.GetByCandidate(ctx, actor.ID)
}

func (s *ApplicationService) ListForJob(ctx context.Context, actor models.Actor, jobID string) ([]models.Application, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load job")
	}
	if job == nil {
		return nil, models.ErrNotFound
	}
	if !actor.IsAdmin() && actor.ID != job.CompanyID {
		return nil, models.ErrUnauthorized
	}
	return s.applications.GetByJob(ctx, jobID)
}

func (s *ApplicationService) getOwnedByCandidate(ctx context.Context, actor models.Actor,
	applicationID int) (*models.Application, error) {

	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load application")
	}
	if application == nil {
		return nil, models.ErrNotFound
	}
	if application.CandidateID != actor.ID {
		return nil, models.ErrUnauthorized
	}
	return application, nil
}

func (s *ApplicationService) getWithJob(ctx context.Context, applicationID int) (*models.Application, *models.Job, error) {
	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load application")
	}
	if application == nil {
		return nil, nil, models.ErrNotFound
	}

	job, err := s.jobs.GetByID(ctx, application.JobID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load job")
	}
	if job == nil {
		log.Errorf("application %v references missing job %v", application.ID, application.JobID)
		return nil, nil, models.ErrNotFound
	}
	return application, job, nil
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
