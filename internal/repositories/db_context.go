package repositories

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/vagamatch/vagamatch/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	entities := []any{
		models.Profile{},
		models.Job{},
		models.Swipe{},
		models.Match{},
		models.Application{},
		models.Rating{},
		models.Testimonial{},
		models.Notification{},
	}

	for _, entity := range entities {
		if err := c.DB.AutoMigrate(entity); err != nil {
			return fmt.Errorf("failed to migrate %T entity: %w", entity, err)
		}
	}

	// The swipe identity and match triple indexes carry the idempotency
	// guarantees; the rating index enforces one rating per rater per
	// application. Services treat conflicting inserts as already-done.
	indexes := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_swipe_identity ON swipes (actor_id, target_id, target_type)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_match_triple ON matches (candidate_id, company_id, job_id)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_rating_per_rater ON ratings (application_id, rater_id)",
	}
	for _, index := range indexes {
		if err := c.DB.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create unique index: %w", err)
		}
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
