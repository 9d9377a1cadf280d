package repositories

import (
	"context"
	"errors"

	"github.com/vagamatch/vagamatch/internal/domain/models"
	"gorm.io/gorm"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

func (repo *Jobs) Add(ctx context.Context, job *models.Job) error {
	return repo.db.WithContext(ctx).Create(job).Error
}

func (repo *Jobs) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := repo.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (repo *Jobs) GetByCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	var jobs []models.Job
	err := repo.db.WithContext(ctx).Find(&jobs, "company_id = ?", companyID).Error
	return jobs, err
}

// Unswiped returns jobs the actor has no swipe for yet, in no particular order.
func (repo *Jobs) Unswiped(ctx context.Context, actorID string, limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := repo.db.WithContext(ctx).
		Where("id NOT IN (?)", repo.db.Model(&models.Swipe{}).
			Select("target_id").
			Where("actor_id = ? AND target_type = ?", actorID, models.TargetJob)).
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}

func (repo *Jobs) Update(ctx context.Context, job *models.Job) error {
	return repo.db.WithContext(ctx).Save(job).Error
}

func (repo *Jobs) RemoveByCompany(ctx context.Context, companyID string) error {
	return repo.db.WithContext(ctx).Delete(&models.Job{}, "company_id = ?", companyID).Error
}
