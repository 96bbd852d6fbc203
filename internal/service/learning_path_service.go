package service

import (
	"context"
	"time"

	"mindclass_backend/internal/generation"
	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
	"mindclass_backend/internal/util"

	"github.com/pkg/errors"
)

var ErrDayOutOfRange = errors.New("day is not part of this learning path")

type LearningPathService struct {
	Paths     repository.LearningPathStore
	Generator generation.Generator
}

func NewLearningPathService(paths repository.LearningPathStore, gen generation.Generator) *LearningPathService {
	return &LearningPathService{Paths: paths, Generator: gen}
}

// Generate drafts a plan without storing it.
func (s *LearningPathService) Generate(ctx context.Context, goal string) (*model.LearningPath, error) {
	return s.Generator.LearningPath(ctx, goal)
}

// Save stores a plan for the user starting today.
func (s *LearningPathService) Save(userID string, p model.LearningPath) (*model.LearningPath, error) {
	if err := generation.NormalizePath(&p); err != nil {
		return nil, err
	}
	now := time.Now()
	p.ID = ""
	p.UserID = userID
	p.StartDate = &now
	if err := s.Paths.Create(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *LearningPathService) List(userID string) ([]model.LearningPath, error) {
	return s.Paths.ListByUser(userID)
}

func (s *LearningPathService) Get(userID, id string) (*model.LearningPath, error) {
	p, err := s.Paths.FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.ErrPathNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, util.ErrPathNotFound
	}
	return p, nil
}

// MarkDay sets the completion flag of one day.
func (s *LearningPathService) MarkDay(userID, id string, day int, done bool) (*model.LearningPath, error) {
	p, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range p.Schedule {
		if p.Schedule[i].Day == day {
			p.Schedule[i].Completed = done
			found = true
		}
	}
	if !found {
		return nil, ErrDayOutOfRange
	}
	if err := s.Paths.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}
