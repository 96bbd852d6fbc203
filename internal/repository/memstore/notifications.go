package memstore

import (
	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
)

type NotificationStore struct {
	t *table[model.Notification]
}

func (s *NotificationStore) Create(n *model.Notification) error {
	stamp(&n.UUIDBase)
	s.t.put(n.ID, *n)
	return nil
}

func (s *NotificationStore) ListByUser(userID string, unreadOnly bool) ([]model.Notification, error) {
	return s.t.filter(func(n model.Notification) bool {
		return n.UserID == userID && (!unreadOnly || !n.Read)
	}), nil
}

func (s *NotificationStore) MarkRead(userID, id string) error {
	n, ok := s.t.get(id)
	if !ok || n.UserID != userID {
		return repository.ErrNotFound
	}
	n.Read = true
	s.t.put(id, n)
	return nil
}

func (s *NotificationStore) MarkAllRead(userID string) error {
	for _, n := range s.t.filter(func(n model.Notification) bool { return n.UserID == userID && !n.Read }) {
		n.Read = true
		s.t.put(n.ID, n)
	}
	return nil
}
