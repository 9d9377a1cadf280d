package repositories

import (
	"context"
	"errors"

	"github.com/vagamatch/vagamatch/internal/domain/models"
	"gorm.io/gorm"
)

type Profiles struct {
	db *gorm.DB
}

func NewProfilesRepository(db *gorm.DB) *Profiles {
	return &Profiles{db: db}
}

func (repo *Profiles) Upsert(ctx context.Context, profile *models.Profile) error {
	return repo.db.WithContext(ctx).Save(profile).Error
}

func (repo *Profiles) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	err := repo.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (repo *Profiles) GetByIDs(ctx context.Context, ids []string) ([]models.Profile, error) {
	var profiles []models.Profile
	err := repo.db.WithContext(ctx).Find(&profiles, "id IN ?", ids).Error
	return profiles, err
}

func (repo *Profiles) UpdateRating(ctx context.Context, id string, rating float64) error {
	return repo.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", id).
		Update("rating", rating).Error
}

func (repo *Profiles) Remove(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Delete(&models.Profile{}, "id = ?", id).Error
}
