package repositories

import (
	"context"
	"errors"

	"github.com/vagamatch/vagamatch/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Swipes struct {
	db *gorm.DB
}

func NewSwipesRepository(db *gorm.DB) *Swipes {
	return &Swipes{db: db}
}

// Add inserts the swipe, swallowing a duplicate of the same
// (actor, target, target type). The returned flag reports whether a new row
// was actually written.
func (repo *Swipes) Add(ctx context.Context, swipe *models.Swipe) (bool, error) {
	res := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "actor_id"}, {Name: "target_id"}, {Name: "target_type"}},
			DoNothing: true,
		}).
		Create(swipe)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (repo *Swipes) HasSwiped(ctx context.Context, actorID, targetID string, targetType models.TargetType) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&models.Swipe{}).
		Where("actor_id = ? AND target_id = ? AND target_type = ?", actorID, targetID, targetType).
		Count(&count).Error
	return count > 0, err
}

// Find returns the stored swipe for the identity triple, or nil.
func (repo *Swipes) Find(ctx context.Context, actorID, targetID string, targetType models.TargetType) (*models.Swipe, error) {
	var swipe models.Swipe
	err := repo.db.WithContext(ctx).
		Where("actor_id = ? AND target_id = ? AND target_type = ?", actorID, targetID, targetType).
		First(&swipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &swipe, nil
}

// FindPositive returns the like/super_like swipe for the triple, or nil.
func (repo *Swipes) FindPositive(ctx context.Context, actorID, targetID string, targetType models.TargetType) (*models.Swipe, error) {
	var swipe models.Swipe
	err := repo.db.WithContext(ctx).
		Where("actor_id = ? AND target_id = ? AND target_type = ? AND action IN ?",
			actorID, targetID, targetType, []models.SwipeAction{models.ActionLike, models.ActionSuperLike}).
		First(&swipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &swipe, nil
}

func (repo *Swipes) SwipedTargetIDs(ctx context.Context, actorID string, targetType models.TargetType) ([]string, error) {
	var ids []string
	err := repo.db.WithContext(ctx).Model(&models.Swipe{}).
		Where("actor_id = ? AND target_type = ?", actorID, targetType).
		Pluck("target_id", &ids).Error
	return ids, err
}

// RemoveByActor drops every swipe the actor issued. Account erasure only.
func (repo *Swipes) RemoveByActor(ctx context.Context, actorID string) error {
	return repo.db.WithContext(ctx).Delete(&models.Swipe{}, "actor_id = ?", actorID).Error
}

// RemoveByTarget drops every swipe pointing at the target. Account erasure only.
func (repo *Swipes) RemoveByTarget(ctx context.Context, targetID string) error {
	return repo.db.WithContext(ctx).Delete(&models.Swipe{}, "target_id = ?", targetID).Error
}

// RemoveTargetingCompanyJobs drops swipes on any job owned by the company.
// Must run while the jobs rows still exist.
func (repo *Swipes) RemoveTargetingCompanyJobs(ctx context.Context, companyID string) error {
	jobIDs := repo.db.Model(&models.Job{}).Select("id").Where("company_id = ?", companyID)
	return repo.db.WithContext(ctx).
		Where("target_type = ? AND target_id IN (?)", models.TargetJob, jobIDs).
		Delete(&models.Swipe{}).Error
}
