package service

import (
	"context"
	"fmt"
	"strings"

	"mindclass_backend/internal/generation"
	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
	"mindclass_backend/internal/util"
	"mindclass_backend/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	DemoTestID     = "demo-photosynthesis"
	DemoAccessCode = "123456"
	defaultSubject = "General"
	maxCodeTries   = 20
)

type ManualQuestion struct {
	Text   string `json:"text" binding:"required"`
	Answer string `json:"answer"`
}

type CreateManualTestRequest struct {
	Title           string              `json:"title" binding:"required"`
	Subject         string              `json:"subject"`
	AssignedClassID string              `json:"assignedClassId"`
	Questions       []ManualQuestion    `json:"questions" binding:"required,min=1,dive"`
	Settings        *model.TestSettings `json:"settings"`
}

type CreateAITestRequest struct {
	Topic           string           `json:"topic" binding:"required"`
	Difficulty      model.Difficulty `json:"difficulty"`
	Count           int              `json:"count"`
	AssignedClassID string           `json:"assignedClassId"`
}

type TestService struct {
	Tests     repository.TestStore
	Generator generation.Generator
	Storage   *StorageService
	Notifier  Notifier
}

func NewTestService(tests repository.TestStore, gen generation.Generator, storage *StorageService) *TestService {
	return &TestService{Tests: tests, Generator: gen, Storage: storage}
}

// CreateManual stores a DRAFT test of free-text questions numbered from 0.
func (s *TestService) CreateManual(creatorID string, req CreateManualTestRequest) (*model.Test, error) {
	if len(req.Questions) == 0 {
		return nil, util.ErrEmptyTest
	}
	settings := model.DefaultTestSettings()
	if req.Settings != nil {
		settings = *req.Settings
	}
	if !settings.ValidTimeLimit() {
		return nil, util.ErrInvalidTimeLimit
	}

	questions := make([]model.Question, 0, len(req.Questions))
	for i, q := range req.Questions {
		questions = append(questions, model.Question{
			ID:            i,
			Text:          strings.TrimSpace(q.Text),
			Type:          model.QuestionShort,
			CorrectAnswer: q.Answer,
			Explanation:   "Manual question",
			Difficulty:    model.Medium,
		})
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = defaultSubject
	}

	test := &model.Test{
		Title:           strings.TrimSpace(req.Title),
		Subject:         subject,
		CreatorID:       creatorID,
		AssignedClassID: req.AssignedClassID,
		Questions:       questions,
		Settings:        settings,
		Status:          model.TestDraft,
	}
	return test, s.create(test)
}

// CreateFromAI asks the generator for a test and stores it as a DRAFT.
func (s *TestService) CreateFromAI(ctx context.Context, creatorID string, req CreateAITestRequest) (*model.Test, error) {
	if req.Difficulty == "" {
		req.Difficulty = model.Medium
	}
	if req.Count <= 0 {
		req.Count = 5
	}
	gen, err := s.Generator.Test(ctx, req.Topic, req.Difficulty, req.Count)
	if err != nil {
		return nil, err
	}

	test := &model.Test{
		Title:           gen.Title,
		Subject:         gen.Subject,
		CreatorID:       creatorID,
		AssignedClassID: req.AssignedClassID,
		Questions:       gen.Questions,
		Settings:        gen.Settings,
		Status:          model.TestDraft,
	}
	return test, s.create(test)
}

func (s *TestService) create(test *model.Test) error {
	code, err := s.uniqueCode()
	if err != nil {
		return err
	}
	test.AccessCode = code
	test.EnsureID()
	if err := s.Tests.Create(test); err != nil {
		return err
	}
	notify(s.Notifier, test.CreatorID, "Test Created", testStatusMessage(test), model.NotifySuccess)
	logger.Log.Info("Test created",
		zap.String("test_id", test.ID),
		zap.String("creator", test.CreatorID),
		zap.Int("questions", len(test.Questions)))
	return nil
}

// uniqueCode draws access codes until one is free among non-ENDED tests.
func (s *TestService) uniqueCode() (string, error) {
	for i := 0; i < maxCodeTries; i++ {
		code := util.NewAccessCode()
		inUse, err := s.Tests.CodeInUse(code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
	return "", util.ErrCodeExhausted
}

func (s *TestService) Get(id string) (*model.Test, error) {
	test, err := s.Tests.FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.ErrTestNotFound
	}
	return test, err
}

func (s *TestService) List() ([]model.Test, error) {
	return s.Tests.List()
}

func (s *TestService) ListByCreator(creatorID string) ([]model.Test, error) {
	return s.Tests.ListByCreator(creatorID)
}

// ListLive returns the tests students can currently join.
func (s *TestService) ListLive() ([]model.Test, error) {
	all, err := s.Tests.List()
	if err != nil {
		return nil, err
	}
	live := make([]model.Test, 0, len(all))
	for _, t := range all {
		if t.Status == model.TestLive {
			live = append(live, t)
		}
	}
	return live, nil
}

func (s *TestService) FindLiveByCode(code string) (*model.Test, error) {
	return s.Tests.FindLiveByCode(code)
}

func (s *TestService) GoLive(actorID, id string) (*model.Test, error) {
	return s.transition(actorID, id, model.TestDraft, model.TestLive)
}

func (s *TestService) End(actorID, id string) (*model.Test, error) {
	return s.transition(actorID, id, model.TestLive, model.TestEnded)
}

func (s *TestService) transition(actorID, id string, from, to model.TestStatus) (*model.Test, error) {
	test, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if test.CreatorID != actorID {
		return nil, util.ErrPermissionDenied
	}
	if test.Status != from {
		return nil, util.ErrInvalidTransition
	}
	test.Status = to
	if err := s.Tests.Update(test); err != nil {
		return nil, err
	}
	notify(s.Notifier, actorID, "Test Updated", testStatusMessage(test), model.NotifyInfo)
	logger.Log.Info("Test status changed",
		zap.String("test_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	return test, nil
}

func testStatusMessage(t *model.Test) string {
	return fmt.Sprintf("Test %q is now %s", t.Title, t.Status)
}

// ExportPDF renders a printable paper and uploads it. The answer key is
// only included when withAnswers is set.
func (s *TestService) ExportPDF(ctx context.Context, actorID, id string, withAnswers bool) (string, error) {
	test, err := s.Get(id)
	if err != nil {
		return "", err
	}
	if withAnswers && test.CreatorID != actorID {
		return "", util.ErrPermissionDenied
	}
	buf, err := RenderTestPDF(test, withAnswers)
	if err != nil {
		return "", err
	}
	suffix := "paper"
	if withAnswers {
		suffix = "key"
	}
	name := fmt.Sprintf("tests/%s-%s.pdf", test.ID, suffix)
	return s.Storage.Upload(ctx, name, buf, int64(buf.Len()), util.MimePDF)
}

// SeedDemo adds the Photosynthesis practice test unless it already exists.
func (s *TestService) SeedDemo() error {
	if _, err := s.Tests.FindByID(DemoTestID); err == nil {
		return nil
	}
	test := DemoTest()
	if err := s.Tests.Create(test); err != nil {
		return errors.Wrap(err, "seed demo test")
	}
	logger.Log.Info("Demo test seeded", zap.String("code", test.AccessCode))
	return nil
}

func DemoTest() *model.Test {
	test := &model.Test{
		Title:      "Photosynthesis Practice Test",
		Subject:    "Biology",
		CreatorID:  "SYSTEM",
		Status:     model.TestLive,
		AccessCode: DemoAccessCode,
		Settings:   model.TestSettings{TimeLimitMinutes: 10},
		Questions: []model.Question{
			{ID: 1, Text: "Which pigment absorbs sunlight?", Type: model.QuestionMCQ, Options: []string{"Chlorophyll", "Xanthophyll"}, CorrectAnswer: "Chlorophyll", Difficulty: model.Easy},
			{ID: 2, Text: "Product of photosynthesis?", Type: model.QuestionMCQ, Options: []string{"O2", "CO2"}, CorrectAnswer: "O2", Difficulty: model.Easy},
		},
	}
	test.ID = DemoTestID
	return test
}
