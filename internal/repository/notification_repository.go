package repository

import (
	"mindclass_backend/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	n.EnsureID()
	return errors.Wrap(r.DB.Create(n).Error, "create notification")
}

func (r *NotificationRepository) ListByUser(userID string, unreadOnly bool) ([]model.Notification, error) {
	var out []model.Notification
	db := r.DB.Where("user_id = ?", userID)
	if unreadOnly {
		db = db.Where("is_read = ?", false)
	}
	err := db.Order("created_at DESC").Find(&out).Error
	return out, errors.Wrap(err, "list notifications")
}

func (r *NotificationRepository) MarkRead(userID, id string) error {
	res := r.DB.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return errors.Wrap(res.Error, "mark notification read")
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.DB.Model(&model.Notification{}).Where("id = ? AND user_id = ?", id, userID).Count(&n).Error; err != nil {
			return errors.Wrap(err, "mark notification read")
		}
		if n == 0 {
			return ErrNotFound
		}
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(userID string) error {
	err := r.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	return errors.Wrap(err, "mark notifications read")
}
