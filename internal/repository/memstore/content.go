package memstore

import (
	"slices"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
)

type LibraryStore struct {
	t *table[model.LibraryItem]
}

func (s *LibraryStore) Create(item *model.LibraryItem) error {
	stamp(&item.UUIDBase)
	s.t.put(item.ID, *item)
	return nil
}

func (s *LibraryStore) FindByID(id string) (*model.LibraryItem, error) {
	item, ok := s.t.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &item, nil
}

func (s *LibraryStore) ListByUser(userID string, contentType model.ContentType) ([]model.LibraryItem, error) {
	return s.t.filter(func(i model.LibraryItem) bool {
		return i.UserID == userID && (contentType == "" || i.Type == contentType)
	}), nil
}

func (s *LibraryStore) Delete(id string) error {
	if !s.t.delete(id) {
		return repository.ErrNotFound
	}
	return nil
}

type AssignmentStore struct {
	t *table[model.Assignment]
}

func (s *AssignmentStore) Create(a *model.Assignment) error {
	stamp(&a.UUIDBase)
	s.t.put(a.ID, *a)
	return nil
}

func (s *AssignmentStore) Update(a *model.Assignment) error {
	if !s.t.has(a.ID) {
		return repository.ErrNotFound
	}
	stamp(&a.UUIDBase)
	s.t.put(a.ID, *a)
	return nil
}

func (s *AssignmentStore) FindByID(id string) (*model.Assignment, error) {
	a, ok := s.t.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (s *AssignmentStore) ListByClassrooms(classroomIDs []string) ([]model.Assignment, error) {
	return s.t.filter(func(a model.Assignment) bool {
		return slices.Contains(classroomIDs, a.ClassroomID)
	}), nil
}

type LearningPathStore struct {
	t *table[model.LearningPath]
}

func (s *LearningPathStore) Create(p *model.LearningPath) error {
	stamp(&p.UUIDBase)
	s.t.put(p.ID, *p)
	return nil
}

func (s *LearningPathStore) Update(p *model.LearningPath) error {
	if !s.t.has(p.ID) {
		return repository.ErrNotFound
	}
	stamp(&p.UUIDBase)
	s.t.put(p.ID, *p)
	return nil
}

func (s *LearningPathStore) FindByID(id string) (*model.LearningPath, error) {
	p, ok := s.t.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *LearningPathStore) ListByUser(userID string) ([]model.LearningPath, error) {
	return s.t.filter(func(p model.LearningPath) bool { return p.UserID == userID }), nil
}
