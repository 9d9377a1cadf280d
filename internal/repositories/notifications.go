package repositories

import (
	"context"

	"github.com/vagamatch/vagamatch/internal/domain/models"
	"gorm.io/gorm"
)

type Notifications struct {
	db *gorm.DB
}

func NewNotificationsRepository(db *gorm.DB) *Notifications {
	return &Notifications{db: db}
}

func (repo *Notifications) Add(ctx context.Context, notification *models.Notification) error {
	return repo.db.WithContext(ctx).Create(notification).Error
}

func (repo *Notifications) GetUnreadByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&notifications, "user_id = ? AND read = ?", userID, false).Error
	return notifications, err
}

// MarkRead flips the flag only when the notification belongs to the user.
func (repo *Notifications) MarkRead(ctx context.Context, id int, userID string) error {
	return repo.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true).Error
}

func (repo *Notifications) RemoveByUser(ctx context.Context, userID string) error {
	return repo.db.WithContext(ctx).Delete(&models.Notification{}, "user_id = ?", userID).Error
}
