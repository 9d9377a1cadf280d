package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
	"github.com/vagamatch/vagamatch/internal/domain/events"
	"github.com/vagamatch/vagamatch/internal/domain/models"
	"github.com/vagamatch/vagamatch/internal/logger"
	"github.com/vagamatch/vagamatch/internal/metrics"
)

type notificationStore interface {
	Add(ctx context.Context, notification *models.Notification) error
	GetUnreadByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id int, userID string) error
}

// Notifier turns domain events into in-app notification rows. Delivery is
// fire-and-forget: a failed insert is logged and counted, never propagated
// back to the operation that raised the event.
type Notifier struct {
	notifications notificationStore
}

func NewNotifier(bus EventBus.Bus, notifications notificationStore) (*Notifier, error) {
	n := &Notifier{notifications: notifications}

	if err := bus.Subscribe(events.MatchCreatedTopic, n.onMatchCreated); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.ContractProposedTopic, n.onContractProposed); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.ApplicationCompletedTopic, n.onApplicationCompleted); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Notifier) onMatchCreated(event events.MatchCreated) {
	n.deliver(models.Notification{
		UserID:    event.Match.CandidateID,
		Title:     "It's a match!",
		Message:   fmt.Sprintf("You and the company behind %q liked each other.", event.Job.Title),
		Type:      models.NotificationMatch,
		RelatedID: event.Job.ID,
	})
	n.deliver(models.Notification{
		UserID:    event.Match.CompanyID,
		Title:     "It's a match!",
		Message:   fmt.Sprintf("A candidate you liked is also interested in %q.", event.Job.Title),
		Type:      models.NotificationMatch,
		RelatedID: event.Job.ID,
	})
}

func (n *Notifier) onContractProposed(event events.ContractProposed) {
	n.deliver(models.Notification{
		UserID:    event.Application.CandidateID,
		Title:     "New contract proposal",
		Message:   fmt.Sprintf("You received a contract proposal for %q. Review and respond.", event.JobTitle),
		Type:      models.NotificationContractProposal,
		RelatedID: strconv.Itoa(event.Application.ID),
	})
}

func (n *Notifier) onApplicationCompleted(event events.ApplicationCompleted) {
	message := "Your contract has been completed. You can now rate the experience."
	n.deliver(models.Notification{
		UserID:    event.Application.CandidateID,
		Title:     "Contract completed",
		Message:   message,
		Type:      models.NotificationContractCompleted,
		RelatedID: strconv.Itoa(event.Application.ID),
	})
	n.deliver(models.Notification{
		UserID:    event.CompanyID,
		Title:     "Contract completed",
		Message:   message,
		Type:      models.NotificationContractCompleted,
		RelatedID: strconv.Itoa(event.Application.ID),
	})
}

// Unread lists the actor's pending notifications, newest first.
func (n *Notifier) Unread(ctx context.Context, actor models.Actor) ([]models.Notification, error) {
	return n.notifications.GetUnreadByUser(ctx, actor.ID)
}

// MarkRead acknowledges one of the actor's own notifications. Acknowledging
// someone else's is a silent no-op; the row simply does not match.
func (n *Notifier) MarkRead(ctx context.Context, actor models.Actor, notificationID int) error {
	return n.notifications.MarkRead(ctx, notificationID, actor.ID)
}

func (n *Notifier) deliver(notification models.Notification) {
	if err := n.notifications.Add(context.Background(), &notification); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeNotify).
			Errorf("failed to deliver notification to %v: %v", notification.UserID, err)
		return
	}
	metrics.NotificationsCounter.Inc()
}
