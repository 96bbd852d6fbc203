package memstore

import (
	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
)

type TestStore struct {
	t *table[model.Test]
}

func (s *TestStore) Create(test *model.Test) error {
	stamp(&test.UUIDBase)
	s.t.put(test.ID, *test)
	return nil
}

func (s *TestStore) Update(test *model.Test) error {
	if !s.t.has(test.ID) {
		return repository.ErrNotFound
	}
	stamp(&test.UUIDBase)
	s.t.put(test.ID, *test)
	return nil
}

func (s *TestStore) FindByID(id string) (*model.Test, error) {
	test, ok := s.t.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &test, nil
}

func (s *TestStore) FindLiveByCode(code string) (*model.Test, error) {
	test, ok := s.t.first(func(t model.Test) bool {
		return t.Status == model.TestLive && t.AccessCode == code
	})
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &test, nil
}

func (s *TestStore) CodeInUse(code string) (bool, error) {
	_, ok := s.t.first(func(t model.Test) bool {
		return t.Status != model.TestEnded && t.AccessCode == code
	})
	return ok, nil
}

func (s *TestStore) List() ([]model.Test, error) {
	return s.t.filter(nil), nil
}

func (s *TestStore) ListByCreator(creatorID string) ([]model.Test, error) {
	return s.t.filter(func(t model.Test) bool { return t.CreatorID == creatorID }), nil
}

type ResultStore struct {
	t *table[model.TestResult]
}

func (s *ResultStore) Create(result *model.TestResult) error {
	stamp(&result.UUIDBase)
	s.t.put(result.ID, *result)
	return nil
}

func (s *ResultStore) ListByTest(testID string) ([]model.TestResult, error) {
	return s.t.filter(func(r model.TestResult) bool { return r.TestID == testID }), nil
}

func (s *ResultStore) ListByStudent(studentID string) ([]model.TestResult, error) {
	return s.t.filter(func(r model.TestResult) bool { return r.StudentID == studentID }), nil
}
