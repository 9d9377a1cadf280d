package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vagamatch/vagamatch/internal/domain/models"
	"gorm.io/gorm"
)

type Ratings struct {
	db *gorm.DB
}

func NewRatingsRepository(db *gorm.DB) *Ratings {
	return &Ratings{db: db}
}

func (repo *Ratings) Add(ctx context.Context, rating *models.Rating) error {
	return repo.db.WithContext(ctx).Create(rating).Error
}

func (repo *Ratings) Exists(ctx context.Context, applicationID int, raterID string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&models.Rating{}).
		Where("application_id = ? AND rater_id = ?", applicationID, raterID).
		Count(&count).Error
	return count > 0, err
}

func (repo *Ratings) GetByApplication(ctx context.Context, applicationID int) ([]models.Rating, error) {
	var ratings []models.Rating
	err := repo.db.WithContext(ctx).Find(&ratings, "application_id = ?", applicationID).Error
	return ratings, err
}

// AverageForUser returns the mean score the user has received, or 0 when
// nothing was submitted yet.
func (repo *Ratings) AverageForUser(ctx context.Context, ratedUserID string) (float64, error) {
	var avg sql.NullFloat64
	err := repo.db.WithContext(ctx).Model(&models.Rating{}).
		Where("rated_user_id = ?", ratedUserID).
		Select("AVG(score)").
		Scan(&avg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

func (repo *Ratings) RemoveByActor(ctx context.Context, actorID string) error {
	return repo.db.WithContext(ctx).
		Delete(&models.Rating{}, "rater_id = ? OR rated_user_id = ?", actorID, actorID).Error
}
