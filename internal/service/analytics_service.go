package service

import (
	"sort"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
	"mindclass_backend/internal/util"

	"github.com/pkg/errors"
)

// TestAnalytics summarises every result of one test.
type TestAnalytics struct {
	TestID       string      `json:"testId"`
	Title        string      `json:"title"`
	Status       string      `json:"status"`
	Participants int         `json:"participants"`
	AveragePct   float64     `json:"averagePercent"`
	TimedOut     int         `json:"timedOut"`
	Rows         []ResultRow `json:"rows"`
}

type ResultRow struct {
	StudentID   string  `json:"studentId"`
	StudentName string  `json:"studentName"`
	Score       int     `json:"score"`
	MaxScore    int     `json:"maxScore"`
	Percent     float64 `json:"percent"`
	TimedOut    bool    `json:"timedOut"`
	DateTaken   string  `json:"dateTaken"`
}

type AnalyticsService struct {
	Tests   repository.TestStore
	Results repository.ResultStore
	Users   repository.UserStore
}

func NewAnalyticsService(tests repository.TestStore, results repository.ResultStore, users repository.UserStore) *AnalyticsService {
	return &AnalyticsService{Tests: tests, Results: results, Users: users}
}

func percent(score, maxScore int) float64 {
	if maxScore == 0 {
		return 0
	}
	return float64(score) * 100 / float64(maxScore)
}

// ForTest builds the results sheet of one test. Only its creator may see it.
func (s *AnalyticsService) ForTest(actorID, testID string) (*TestAnalytics, error) {
	test, err := s.Tests.FindByID(testID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.ErrTestNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load test for analytics")
	}
	if test.CreatorID != actorID {
		return nil, util.ErrPermissionDenied
	}
	return s.summarise(test)
}

// ForCreator summarises every test the teacher created, newest first.
func (s *AnalyticsService) ForCreator(actorID string) ([]TestAnalytics, error) {
	tests, err := s.Tests.ListByCreator(actorID)
	if err != nil {
		return nil, err
	}
	out := make([]TestAnalytics, 0, len(tests))
	for i := range tests {
		a, err := s.summarise(&tests[i])
		if err != nil {
			return nil, err
		}
		a.Rows = nil
		out = append(out, *a)
	}
	return out, nil
}

func (s *AnalyticsService) summarise(test *model.Test) (*TestAnalytics, error) {
	results, err := s.Results.ListByTest(test.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.StudentID)
	}
	users, err := s.Users.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	a := &TestAnalytics{
		TestID:       test.ID,
		Title:        test.Title,
		Status:       string(test.Status),
		Participants: len(results),
		Rows:         make([]ResultRow, 0, len(results)),
	}
	total := 0.0
	for _, r := range results {
		pct := percent(r.Score, r.MaxScore)
		total += pct
		if r.TimedOut {
			a.TimedOut++
		}
		a.Rows = append(a.Rows, ResultRow{
			StudentID:   r.StudentID,
			StudentName: names[r.StudentID],
			Score:       r.Score,
			MaxScore:    r.MaxScore,
			Percent:     pct,
			TimedOut:    r.TimedOut,
			DateTaken:   r.DateTaken.Format(util.TimeFormat),
		})
	}
	if len(results) > 0 {
		a.AveragePct = total / float64(len(results))
	}
	sort.SliceStable(a.Rows, func(i, j int) bool { return a.Rows[i].Percent > a.Rows[j].Percent })
	return a, nil
}
