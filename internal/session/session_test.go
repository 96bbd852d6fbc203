package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFinder struct {
	tests []*model.Test
	err   error
}

func (f *fakeFinder) FindLiveByCode(code string) (*model.Test, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.tests {
		if t.Status == model.TestLive && t.AccessCode == code {
			return t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func photosynthesisTest() *model.Test {
	t := &model.Test{
		Title:      "Photosynthesis Practice Test",
		Subject:    "Biology",
		Status:     model.TestLive,
		AccessCode: "123456",
		Settings:   model.TestSettings{TimeLimitMinutes: 10},
		Questions: []model.Question{
			{ID: 1, Text: "Which pigment absorbs sunlight?", Type: model.QuestionMCQ, Options: []string{"Chlorophyll", "Xanthophyll"}, CorrectAnswer: "Chlorophyll", Difficulty: model.Easy},
			{ID: 2, Text: "Product of photosynthesis?", Type: model.QuestionMCQ, Options: []string{"O2", "CO2"}, CorrectAnswer: "O2", Difficulty: model.Easy},
		},
	}
	t.ID = "demo-photosynthesis"
	return t
}

type recorder struct {
	mu      sync.Mutex
	results []model.TestResult
}

func (r *recorder) save(res model.TestResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

func newSession(t *testing.T, tests ...*model.Test) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	fixed := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	s := New("MC-1111-2222-3333", &fakeFinder{tests: tests},
		WithSubmitFunc(rec.save),
		WithClock(func() time.Time { return fixed }))
	return s, rec
}

func TestJoinByCode(t *testing.T) {
	draft := photosynthesisTest()
	draft.ID = "draft"
	draft.Status = model.TestDraft
	draft.AccessCode = "654321"

	tests := []struct {
		name     string
		code     string
		wantView View
		wantErr  error
	}{
		{name: "live code", code: "123456", wantView: ViewTake},
		{name: "unknown code", code: "000000", wantView: ViewList, wantErr: ErrInvalidCode},
		{name: "draft test code", code: "654321", wantView: ViewList, wantErr: ErrInvalidCode},
		{name: "no trimming", code: " 123456", wantView: ViewList, wantErr: ErrInvalidCode},
		{name: "no partial match", code: "12345", wantView: ViewList, wantErr: ErrInvalidCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSession(t, photosynthesisTest(), draft)
			err := s.JoinByCode(tt.code)
			assert.Equal(t, tt.wantErr, err)
			assert.Equal(t, tt.wantView, s.View())
		})
	}
}

func TestJoinInitialisesAttempt(t *testing.T) {
	s, _ := newSession(t, photosynthesisTest())
	require.NoError(t, s.JoinByCode("123456"))

	snap := s.Snapshot()
	assert.Equal(t, ViewTake, snap.View)
	assert.Equal(t, 600, snap.RemainingSeconds)
	assert.Empty(t, snap.Answers)
	require.Len(t, snap.Questions, 2)
	for _, q := range snap.Questions {
		assert.Empty(t, q.CorrectAnswer, "answers must stay hidden while taking")
	}
}

func TestJoinStoreFailureIsNotInvalidCode(t *testing.T) {
	outage := errors.New("connection refused")
	s := New("MC-1111-2222-3333", &fakeFinder{err: outage})

	err := s.JoinByCode("123456")
	require.Error(t, err)
	assert.ErrorIs(t, err, outage)
	assert.NotErrorIs(t, err, ErrInvalidCode)
	assert.Equal(t, ViewList, s.View())
}

func TestJoinRejectsTimeLimitOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
	}{
		{"zero", 0},
		{"over a day", model.MaxTimeLimitMinutes + 1},
		{"overflowing seconds", 1 << 62},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test := photosynthesisTest()
			test.Settings.TimeLimitMinutes = tt.minutes
			s, rec := newSession(t, test)

			assert.Equal(t, ErrTimeLimit, s.JoinByCode("123456"))
			assert.Equal(t, ViewList, s.View())
			assert.Equal(t, 0, rec.count())
		})
	}
}

func TestJoinLongestTimeLimit(t *testing.T) {
	test := photosynthesisTest()
	test.Settings.TimeLimitMinutes = model.MaxTimeLimitMinutes
	s, _ := newSession(t, test)
	require.NoError(t, s.JoinByCode("123456"))

	_, err := s.Tick()
	require.NoError(t, err)
	snap := s.Snapshot()
	assert.Equal(t, ViewTake, snap.View)
	assert.Equal(t, model.MaxTimeLimitMinutes*60-1, snap.RemainingSeconds)
}

func TestJoinOnlyFromList(t *testing.T) {
	s, _ := newSession(t, photosynthesisTest())
	require.NoError(t, s.JoinByCode("123456"))
	assert.Equal(t, ErrWrongView, s.JoinByCode("123456"))
}

func TestScoreScenario(t *testing.T) {
	s, rec := newSession(t, photosynthesisTest())
	require.NoError(t, s.JoinByCode("123456"))
	require.NoError(t, s.SelectAnswer(1, "Chlorophyll"))
	require.NoError(t, s.SelectAnswer(2, "CO2"))

	res, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 2, res.MaxScore)
	assert.Equal(t, model.ResultAwaited, res.Status)
	assert.Equal(t, "demo-photosynthesis", res.TestID)
	assert.Equal(t, "MC-1111-2222-3333", res.StudentID)
	assert.False(t, res.TimedOut)
	assert.Equal(t, ViewResult, s.View())
	assert.Equal(t, 1, rec.count())
}

func TestSelectAnswer(t *testing.T) {
	s, _ := newSession(t, photosynthesisTest())
	assert.Equal(t, ErrNotTaking, s.SelectAnswer(1, "Chlorophyll"))

	require.NoError(t, s.JoinByCode("123456"))
	assert.Equal(t, ErrUnknownQuestion, s.SelectAnswer(99, "x"))

	require.NoError(t, s.SelectAnswer(1, "Xanthophyll"))
	require.NoError(t, s.SelectAnswer(1, "Chlorophyll"))
	assert.Equal(t, map[int]string{1: "Chlorophyll"}, s.Snapshot().Answers)
}

func TestFreeTextAnswersStoredNotScored(t *testing.T) {
	test := photosynthesisTest()
	test.Questions = append(test.Questions, model.Question{ID: 3, Text: "Explain the Calvin cycle", Type: model.QuestionLong, CorrectAnswer: "anything"})
	s, _ := newSession(t, test)
	require.NoError(t, s.JoinByCode("123456"))
	require.NoError(t, s.SelectAnswer(1, "Chlorophyll"))
	require.NoError(t, s.SelectAnswer(2, "O2"))
	require.NoError(t, s.SelectAnswer(3, "anything"))

	res, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, 3, res.MaxScore)
	assert.Equal(t, "anything", res.Answers[3])
}

func TestConfirmSubmitIsIdempotent(t *testing.T) {
	s, rec := newSession(t, photosynthesisTest())
	require.NoError(t, s.JoinByCode("123456"))
	require.NoError(t, s.RequestSubmit())
	assert.True(t, s.Snapshot().ConfirmPending)

	first, err := s.ConfirmSubmit()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := s.ConfirmSubmit()
		assert.Equal(t, ErrAlreadySubmitted, err)
		assert.Equal(t, first.ID, again.ID)
	}
	assert.Equal(t, 1, rec.count())
	assert.False(t, s.Snapshot().ConfirmPending)
}

func TestConcurrentSubmitYieldsOneResult(t *testing.T) {
	s, rec := newSession(t, photosynthesisTest())
	require.NoError(t, s.JoinByCode("123456"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.ConfirmSubmit()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, rec.count())
}

func TestCancelSubmit(t *testing.T) {
	s, _ := newSession(t, photosynthesisTest())
	assert.Equal(t, ErrNotTaking, s.RequestSubmit())
	require.NoError(t, s.JoinByCode("123456"))
	require.NoError(t, s.RequestSubmit())
	require.NoError(t, s.CancelSubmit())
	snap := s.Snapshot()
	assert.False(t, snap.ConfirmPending)
	assert.Equal(t, ViewTake, snap.View)
}

func TestCountdown(t *testing.T) {
	test := photosynthesisTest()
	test.Settings.TimeLimitMinutes = 1
	s, rec := newSession(t, test)
	require.NoError(t, s.JoinByCode("123456"))

	prev := s.Snapshot().RemainingSeconds
	require.Equal(t, 60, prev)
	for i := 0; i < 59; i++ {
		res, err := s.Tick()
		require.NoError(t, err)
		require.Nil(t, res)
		cur := s.Snapshot().RemainingSeconds
		assert.Equal(t, prev-1, cur)
		prev = cur
	}
	assert.Equal(t, 0, rec.count())

	res, err := s.Tick()
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.TimedOut)
	assert.Equal(t, ViewResult, s.View())
	assert.Equal(t, 0, s.Snapshot().RemainingSeconds)

	_, err = s.Tick()
	assert.Equal(t, ErrNotTaking, err)
	_, err = s.ConfirmSubmit()
	assert.Equal(t, ErrAlreadySubmitted, err)
	assert.Equal(t, 1, rec.count())
}

func TestReturnToList(t *testing.T) {
	s, _ := newSession(t, photosynthesisTest())
	assert.Equal(t, ErrNoResult, s.ReturnToList())

	require.NoError(t, s.JoinByCode("123456"))
	assert.Equal(t, ErrNoResult, s.ReturnToList())

	_, err := s.Submit()
	require.NoError(t, err)
	require.NoError(t, s.ReturnToList())

	snap := s.Snapshot()
	assert.Equal(t, ViewList, snap.View)
	assert.Empty(t, snap.TestID)
	assert.Nil(t, snap.Result)

	require.NoError(t, s.JoinByCode("123456"))
	assert.Empty(t, s.Snapshot().Answers)
}

func TestResultRevealsAnswers(t *testing.T) {
	s, _ := newSession(t, photosynthesisTest())
	require.NoError(t, s.JoinByCode("123456"))
	_, err := s.Submit()
	require.NoError(t, err)

	snap := s.Snapshot()
	require.NotNil(t, snap.Result)
	for _, q := range snap.Questions {
		assert.NotEmpty(t, q.CorrectAnswer)
	}
}

func TestShuffleKeepsAllQuestions(t *testing.T) {
	test := photosynthesisTest()
	test.Settings.ShuffleQuestions = true
	for i := 3; i <= 10; i++ {
		test.Questions = append(test.Questions, model.Question{ID: i, Text: "q", Type: model.QuestionShort})
	}
	s, _ := newSession(t, test)
	require.NoError(t, s.JoinByCode("123456"))

	seen := map[int]bool{}
	for _, q := range s.Snapshot().Questions {
		seen[q.ID] = true
	}
	assert.Len(t, seen, 10)
}

func TestTeacherFlow(t *testing.T) {
	s, _ := newSession(t)

	assert.Equal(t, ErrWrongView, s.ChooseAI())
	require.NoError(t, s.BeginCreate())
	assert.Equal(t, ViewCreateSelect, s.View())
	assert.Equal(t, ErrWrongView, s.FinishCreate())

	require.NoError(t, s.ChooseAI())
	assert.Equal(t, ViewCreateAI, s.View())
	require.NoError(t, s.FinishCreate())
	assert.Equal(t, ViewList, s.View())

	require.NoError(t, s.BeginCreate())
	require.NoError(t, s.ChooseManual())
	assert.Equal(t, ViewCreateManual, s.View())
	require.NoError(t, s.CancelCreate())
	assert.Equal(t, ViewList, s.View())
}

func TestScore(t *testing.T) {
	test := photosynthesisTest()
	tests := []struct {
		name    string
		answers map[int]string
		want    int
	}{
		{name: "none", answers: map[int]string{}, want: 0},
		{name: "all", answers: map[int]string{1: "Chlorophyll", 2: "O2"}, want: 2},
		{name: "case sensitive", answers: map[int]string{1: "chlorophyll", 2: "O2"}, want: 1},
		{name: "whitespace counts", answers: map[int]string{1: "Chlorophyll ", 2: "O2"}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, maxScore := Score(test, tt.answers)
			assert.Equal(t, tt.want, score)
			assert.Equal(t, 2, maxScore)
			assert.LessOrEqual(t, score, maxScore)
		})
	}
}
