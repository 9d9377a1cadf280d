package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/vagamatch/vagamatch/internal/domain/models"
	"gorm.io/gorm"
)

type Applications struct {
	db *gorm.DB
}

func NewApplicationsRepository(db *gorm.DB) *Applications {
	return &Applications{db: db}
}

func (repo *Applications) Add(ctx context.Context, application *models.Application) error {
	return repo.db.WithContext(ctx).Create(application).Error
}

func (repo *Applications) GetByID(ctx context.Context, id int) (*models.Application, error) {
	var application models.Application
	err := repo.db.WithContext(ctx).First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &application, nil
}

func (repo *Applications) GetByCandidate(ctx context.Context, candidateID string) ([]models.Application, error) {
	var applications []models.Application
	err := repo.db.WithContext(ctx).Find(&applications, "candidate_id = ?", candidateID).Error
	return applications, err
}

func (repo *Applications) GetByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	var applications []models.Application
	err := repo.db.WithContext(ctx).Find(&applications, "job_id = ?", jobID).Error
	return applications, err
}

func (repo *Applications) ExistsForJob(ctx context.Context, candidateID, jobID string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&models.Application{}).
		Where("candidate_id = ? AND job_id = ?", candidateID, jobID).
		Count(&count).Error
	return count > 0, err
}

// CandidateIDsForCompany lists distinct candidates who applied to any of the
// company's jobs. Feeds the company swipe deck.
func (repo *Applications) CandidateIDsForCompany(ctx context.Context, companyID string) ([]string, error) {
	var ids []string
	err := repo.db.WithContext(ctx).Model(&models.Application{}).
		Distinct("applications.candidate_id").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.company_id = ?", companyID).
		Pluck("applications.candidate_id", &ids).Error
	return ids, err
}

func (repo *Applications) Update(ctx context.Context, application *models.Application) error {
	return repo.db.WithContext(ctx).Save(application).Error
}

func (repo *Applications) Remove(ctx context.Context, id int) error {
	return repo.db.WithContext(ctx).Delete(&models.Application{}, "id = ?", id).Error
}

// ActiveEndedBefore returns active contracts whose working period ended before
// the cutoff. Used by the nightly sweeper.
func (repo *Applications) ActiveEndedBefore(ctx context.Context, cutoff time.Time) ([]models.Application, error) {
	var applications []models.Application
	err := repo.db.WithContext(ctx).
		Where("contract_status = ? AND end_date IS NOT NULL AND end_date < ?", models.ContractActive, cutoff).
		Find(&applications).Error
	return applications, err
}

func (repo *Applications) RemoveByActor(ctx context.Context, actorID string) error {
	return repo.db.WithContext(ctx).Delete(&models.Application{}, "candidate_id = ?", actorID).Error
}

// RemoveByCompanyJobs drops applications to any job owned by the company.
// Must run while the jobs rows still exist.
func (repo *Applications) RemoveByCompanyJobs(ctx context.Context, companyID string) error {
	jobIDs := repo.db.Model(&models.Job{}).Select("id").Where("company_id = ?", companyID)
	return repo.db.WithContext(ctx).
		Where("job_id IN (?)", jobIDs).
		Delete(&models.Application{}).Error
}
