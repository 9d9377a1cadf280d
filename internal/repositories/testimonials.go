package repositories

import (
	"context"
	"errors"

	"github.com/vagamatch/vagamatch/internal/domain/models"
	"gorm.io/gorm"
)

type Testimonials struct {
	db *gorm.DB
}

func NewTestimonialsRepository(db *gorm.DB) *Testimonials {
	return &Testimonials{db: db}
}

func (repo *Testimonials) Add(ctx context.Context, testimonial *models.Testimonial) error {
	return repo.db.WithContext(ctx).Create(testimonial).Error
}

func (repo *Testimonials) GetByID(ctx context.Context, id int) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	err := repo.db.WithContext(ctx).First(&testimonial, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &testimonial, nil
}

func (repo *Testimonials) GetByCompany(ctx context.Context, companyID string) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	err := repo.db.WithContext(ctx).Find(&testimonials, "company_id = ?", companyID).Error
	return testimonials, err
}

func (repo *Testimonials) GetApprovedByCompany(ctx context.Context, companyID string) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	err := repo.db.WithContext(ctx).
		Find(&testimonials, "company_id = ? AND status = ?", companyID, models.TestimonialApproved).Error
	return testimonials, err
}

func (repo *Testimonials) UpdateStatus(ctx context.Context, id int, status models.TestimonialStatus) error {
	return repo.db.WithContext(ctx).Model(&models.Testimonial{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (repo *Testimonials) RemoveByActor(ctx context.Context, actorID string) error {
	return repo.db.WithContext(ctx).
		Delete(&models.Testimonial{}, "candidate_id = ? OR company_id = ?", actorID, actorID).Error
}
