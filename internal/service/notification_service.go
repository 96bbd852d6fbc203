package service

import (
	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
	"mindclass_backend/internal/util"
	"mindclass_backend/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Notifier receives feed events from the other services. A nil Notifier
// drops them.
type Notifier interface {
	Notify(userID, title, message string, kind model.NotificationType)
}

func notify(n Notifier, userID, title, message string, kind model.NotificationType) {
	if n == nil || userID == "" {
		return
	}
	n.Notify(userID, title, message, kind)
}

type NotificationService struct {
	Store repository.NotificationStore
}

func NewNotificationService(store repository.NotificationStore) *NotificationService {
	return &NotificationService{Store: store}
}

// Notify records a feed entry. A failed write is logged and never fails
// the action that triggered it.
func (s *NotificationService) Notify(userID, title, message string, kind model.NotificationType) {
	if kind == "" {
		kind = model.NotifyInfo
	}
	n := &model.Notification{UserID: userID, Title: title, Message: message, Type: kind}
	if err := s.Store.Create(n); err != nil {
		logger.Log.Warn("Failed to record notification",
			zap.String("user", userID), zap.String("title", title), zap.Error(err))
	}
}

func (s *NotificationService) List(userID string, unreadOnly bool) ([]model.Notification, error) {
	return s.Store.ListByUser(userID, unreadOnly)
}

func (s *NotificationService) MarkRead(userID, id string) error {
	err := s.Store.MarkRead(userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return util.ErrNotificationNotFound
	}
	return err
}

func (s *NotificationService) MarkAllRead(userID string) error {
	return s.Store.MarkAllRead(userID)
}
