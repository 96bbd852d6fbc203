package memstore

import (
	"time"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
)

type ClassroomStore struct {
	t *table[model.Classroom]
}

func (s *ClassroomStore) Create(c *model.Classroom) error {
	stamp(&c.UUIDBase)
	s.t.put(c.ID, *c)
	return nil
}

func (s *ClassroomStore) Update(c *model.Classroom) error {
	if !s.t.has(c.ID) {
		return repository.ErrNotFound
	}
	stamp(&c.UUIDBase)
	s.t.put(c.ID, *c)
	return nil
}

func (s *ClassroomStore) FindByID(id string) (*model.Classroom, error) {
	c, ok := s.t.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (s *ClassroomStore) FindByCode(code string) (*model.Classroom, error) {
	c, ok := s.t.first(func(c model.Classroom) bool { return c.Code == code })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (s *ClassroomStore) ListByTeacher(teacherID string) ([]model.Classroom, error) {
	return s.t.filter(func(c model.Classroom) bool { return c.TeacherID == teacherID }), nil
}

func (s *ClassroomStore) ListByStudent(studentID string) ([]model.Classroom, error) {
	return s.t.filter(func(c model.Classroom) bool { return c.HasStudent(studentID) }), nil
}

type FriendRequestStore struct {
	t *table[model.FriendRequest]
}

func (s *FriendRequestStore) Create(req *model.FriendRequest) error {
	if req.ID == "" {
		req.ID = model.NewID()
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now()
	}
	s.t.put(req.ID, *req)
	return nil
}

func (s *FriendRequestStore) Update(req *model.FriendRequest) error {
	if !s.t.has(req.ID) {
		return repository.ErrNotFound
	}
	s.t.put(req.ID, *req)
	return nil
}

func (s *FriendRequestStore) FindByID(id string) (*model.FriendRequest, error) {
	r, ok := s.t.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (s *FriendRequestStore) FindPending(fromUID, toUID string) (*model.FriendRequest, error) {
	r, ok := s.t.first(func(r model.FriendRequest) bool {
		return r.FromUID == fromUID && r.ToUID == toUID && r.Status == model.RequestPending
	})
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (s *FriendRequestStore) ListPendingFor(toUID string) ([]model.FriendRequest, error) {
	return s.t.filter(func(r model.FriendRequest) bool {
		return r.ToUID == toUID && r.Status == model.RequestPending
	}), nil
}

func (s *FriendRequestStore) ListSentBy(fromUID string) ([]model.FriendRequest, error) {
	return s.t.filter(func(r model.FriendRequest) bool { return r.FromUID == fromUID }), nil
}
