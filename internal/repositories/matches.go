package repositories

import (
	"context"

	"github.com/vagamatch/vagamatch/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Matches struct {
	db *gorm.DB
}

func NewMatchesRepository(db *gorm.DB) *Matches {
	return &Matches{db: db}
}

// CreateIfAbsent inserts the match unless one already exists for the
// (candidate, company, job) triple. A conflict is a successful idempotent
// outcome, reported as created=false, never as an error.
func (repo *Matches) CreateIfAbsent(ctx context.Context, match *models.Match) (bool, error) {
	res := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "candidate_id"}, {Name: "company_id"}, {Name: "job_id"}},
			DoNothing: true,
		}).
		Create(match)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (repo *Matches) Exists(ctx context.Context, candidateID, companyID, jobID string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&models.Match{}).
		Where("candidate_id = ? AND company_id = ? AND job_id = ?", candidateID, companyID, jobID).
		Count(&count).Error
	return count > 0, err
}

func (repo *Matches) GetByCandidate(ctx context.Context, candidateID string) ([]models.Match, error) {
	var matches []models.Match
	err := repo.db.WithContext(ctx).
		Find(&matches, "candidate_id = ? AND status = ?", candidateID, models.MatchActive).Error
	return matches, err
}

func (repo *Matches) GetByCompany(ctx context.Context, companyID string) ([]models.Match, error) {
	var matches []models.Match
	err := repo.db.WithContext(ctx).
		Find(&matches, "company_id = ? AND status = ?", companyID, models.MatchActive).Error
	return matches, err
}

func (repo *Matches) RemoveByActor(ctx context.Context, actorID string) error {
	return repo.db.WithContext(ctx).
		Delete(&models.Match{}, "candidate_id = ? OR company_id = ?", actorID, actorID).Error
}
