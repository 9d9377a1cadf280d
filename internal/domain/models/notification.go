package models

import "time"

type NotificationType string

const (
	NotificationMatch             NotificationType = "match"
	NotificationContractProposal  NotificationType = "contract_proposal"
	NotificationContractCompleted NotificationType = "contract_completed"
)

// Notification is an in-app message row. Delivery is fire-and-forget: a failed
// insert is logged and never rolls back the state change that triggered it.
type Notification struct {
	ID        int    `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	Title     string
	Message   string
	Type      NotificationType
	RelatedID string
	Read      bool
	CreatedAt time.Time
}
