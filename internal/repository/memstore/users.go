package memstore

import (
	"slices"
	"sync"
	"time"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
)

type UserStore struct {
	t *table[model.User]
	// pairMu serialises friendship updates touching two rows.
	pairMu sync.Mutex
}

func (s *UserStore) Create(user *model.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	s.t.put(user.ID, *user)
	return nil
}

func (s *UserStore) Update(user *model.User) error {
	if !s.t.has(user.ID) {
		return repository.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	s.t.put(user.ID, *user)
	return nil
}

func (s *UserStore) FindByID(id string) (*model.User, error) {
	u, ok := s.t.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) FindByEmail(email string) (*model.User, error) {
	u, ok := s.t.first(func(u model.User) bool { return u.Email == email })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) FindByIDs(ids []string) ([]model.User, error) {
	users := make([]model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.t.get(id); ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *UserStore) Count(role model.UserRole) (int64, error) {
	users := s.t.filter(func(u model.User) bool { return role == "" || u.Role == role })
	return int64(len(users)), nil
}

func (s *UserStore) AddFriendship(a, b string) error {
	return s.updatePair(a, b, func(u *model.User, other string) {
		if !u.HasFriend(other) {
			u.Friends = append(u.Friends, other)
		}
	})
}

func (s *UserStore) RemoveFriendship(a, b string) error {
	return s.updatePair(a, b, func(u *model.User, other string) {
		u.Friends = slices.DeleteFunc(u.Friends, func(id string) bool { return id == other })
	})
}

func (s *UserStore) updatePair(a, b string, apply func(u *model.User, other string)) error {
	s.pairMu.Lock()
	defer s.pairMu.Unlock()

	ua, ok := s.t.get(a)
	if !ok {
		return repository.ErrNotFound
	}
	ub, ok := s.t.get(b)
	if !ok {
		return repository.ErrNotFound
	}
	apply(&ua, b)
	apply(&ub, a)
	s.t.put(a, ua)
	s.t.put(b, ub)
	return nil
}

func (s *UserStore) FriendIDs(uid string) ([]string, error) {
	u, ok := s.t.get(uid)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u.Friends, nil
}
