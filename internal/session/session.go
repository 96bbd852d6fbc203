// Package session implements the per-user test session state machine:
// joining a live test by access code, answering, the countdown, submission
// and scoring. Student flow is LIST -> TAKE -> RESULT; the teacher authoring
// flow is LIST -> CREATE_SELECT -> CREATE_AI|CREATE_MANUAL -> LIST.
package session

import (
	"math/rand/v2"
	"sync"
	"time"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"

	"github.com/pkg/errors"
)

type View string

const (
	ViewList         View = "LIST"
	ViewTake         View = "TAKE"
	ViewResult       View = "RESULT"
	ViewCreateSelect View = "CREATE_SELECT"
	ViewCreateAI     View = "CREATE_AI"
	ViewCreateManual View = "CREATE_MANUAL"
)

var (
	ErrInvalidCode      = errors.New("invalid code or test not live")
	ErrNotTaking        = errors.New("no test in progress")
	ErrUnknownQuestion  = errors.New("question does not belong to this test")
	ErrAlreadySubmitted = errors.New("attempt already submitted")
	ErrNoResult         = errors.New("no result to leave")
	ErrWrongView        = errors.New("action not allowed in the current view")
	ErrTimeLimit        = errors.New("test time limit is out of range")
)

// TestFinder resolves an access code to a LIVE test. Implementations
// return repository.ErrNotFound when no LIVE test carries exactly that
// code; any other error is a store failure.
type TestFinder interface {
	FindLiveByCode(code string) (*model.Test, error)
}

// SubmitFunc receives every result emitted by a session, once per attempt.
type SubmitFunc func(result model.TestResult)

type attempt struct {
	test       *model.Test
	order      []int
	answers    map[int]string
	remaining  int
	confirming bool
	submitted  bool
	result     *model.TestResult
}

// Session is the state of one user. It is safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	userID   string
	view     View
	attempt  *attempt
	finder   TestFinder
	onSubmit SubmitFunc
	now      func() time.Time
	newID    func() string
}

type Option func(*Session)

func WithSubmitFunc(fn SubmitFunc) Option {
	return func(s *Session) { s.onSubmit = fn }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func New(userID string, finder TestFinder, opts ...Option) *Session {
	s := &Session{
		userID: userID,
		view:   ViewList,
		finder: finder,
		now:    time.Now,
		newID:  model.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) UserID() string {
	return s.userID
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// JoinByCode starts an attempt on the LIVE test whose access code equals
// code exactly. On failure the session stays in LIST.
func (s *Session) JoinByCode(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewList {
		return ErrWrongView
	}

	test, err := s.finder.FindLiveByCode(code)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return errors.Wrap(err, "look up access code")
	}
	if err != nil || test == nil || test.Status != model.TestLive || test.AccessCode != code {
		return ErrInvalidCode
	}
	if !test.Settings.ValidTimeLimit() {
		return ErrTimeLimit
	}

	order := make([]int, len(test.Questions))
	for i := range order {
		order[i] = i
	}
	if test.Settings.ShuffleQuestions {
		rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}

	s.attempt = &attempt{
		test:      test,
		order:     order,
		answers:   make(map[int]string),
		remaining: test.Settings.TimeLimitMinutes * 60,
	}
	s.view = ViewTake
	return nil
}

// SelectAnswer records value for questionID. Free-text answers are kept
// for review even though only MCQ answers are scored.
func (s *Session) SelectAnswer(questionID int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewTake {
		return ErrNotTaking
	}
	if _, ok := s.attempt.test.Question(questionID); !ok {
		return ErrUnknownQuestion
	}
	s.attempt.answers[questionID] = value
	return nil
}

// Tick advances the countdown by one second. When the countdown reaches
// zero the attempt is submitted and the result returned; otherwise the
// result is nil.
func (s *Session) Tick() (*model.TestResult, error) {
	s.mu.Lock()
	if s.view != ViewTake {
		s.mu.Unlock()
		return nil, ErrNotTaking
	}
	if s.attempt.remaining > 0 {
		s.attempt.remaining--
	}
	if s.attempt.remaining > 0 {
		s.mu.Unlock()
		return nil, nil
	}
	return s.submitLocked(true)
}

func (s *Session) RequestSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewTake {
		return ErrNotTaking
	}
	s.attempt.confirming = true
	return nil
}

func (s *Session) CancelSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewTake {
		return ErrNotTaking
	}
	s.attempt.confirming = false
	return nil
}

// ConfirmSubmit submits the attempt. Repeated calls return the stored
// result together with ErrAlreadySubmitted.
func (s *Session) ConfirmSubmit() (*model.TestResult, error) {
	return s.Submit()
}

func (s *Session) Submit() (*model.TestResult, error) {
	s.mu.Lock()
	return s.submitLocked(false)
}

// submitLocked expects s.mu to be held and releases it.
func (s *Session) submitLocked(timedOut bool) (*model.TestResult, error) {
	a := s.attempt
	if a == nil {
		s.mu.Unlock()
		return nil, ErrNotTaking
	}
	if a.submitted {
		res := *a.result
		s.mu.Unlock()
		return &res, ErrAlreadySubmitted
	}
	if s.view != ViewTake {
		s.mu.Unlock()
		return nil, ErrNotTaking
	}

	score, maxScore := Score(a.test, a.answers)
	answers := make(map[int]string, len(a.answers))
	for k, v := range a.answers {
		answers[k] = v
	}

	result := model.TestResult{
		TestID:    a.test.ID,
		StudentID: s.userID,
		Score:     score,
		MaxScore:  maxScore,
		Answers:   answers,
		DateTaken: s.now(),
		Status:    model.ResultAwaited,
		TimedOut:  timedOut,
	}
	result.ID = s.newID()

	a.submitted = true
	a.confirming = false
	a.result = &result
	s.view = ViewResult
	onSubmit := s.onSubmit
	s.mu.Unlock()

	if onSubmit != nil {
		onSubmit(result)
	}
	res := result
	return &res, nil
}

// ReturnToList discards the finished attempt.
func (s *Session) ReturnToList() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != ViewResult {
		return ErrNoResult
	}
	s.attempt = nil
	s.view = ViewList
	return nil
}

// Abandon drops any state and goes back to LIST without submitting. It
// mirrors navigating away from the page and reports whether an unsubmitted
// attempt was dropped.
func (s *Session) Abandon() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	running := s.view == ViewTake
	s.attempt = nil
	s.view = ViewList
	return running
}

// Teacher authoring flow.

func (s *Session) BeginCreate() error {
	return s.move(ViewCreateSelect, ViewList)
}

func (s *Session) ChooseAI() error {
	return s.move(ViewCreateAI, ViewCreateSelect)
}

func (s *Session) ChooseManual() error {
	return s.move(ViewCreateManual, ViewCreateSelect)
}

func (s *Session) FinishCreate() error {
	return s.move(ViewList, ViewCreateAI, ViewCreateManual)
}

func (s *Session) CancelCreate() error {
	return s.move(ViewList, ViewCreateSelect, ViewCreateAI, ViewCreateManual)
}

func (s *Session) move(to View, from ...View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range from {
		if s.view == f {
			s.view = to
			return nil
		}
	}
	return ErrWrongView
}

// Score counts MCQ questions answered with exactly the correct answer.
// The maximum is the total number of questions, free-text included.
func Score(test *model.Test, answers map[int]string) (score, maxScore int) {
	for _, q := range test.Questions {
		if q.Type != model.QuestionMCQ {
			continue
		}
		if ans, ok := answers[q.ID]; ok && ans == q.CorrectAnswer {
			score++
		}
	}
	return score, len(test.Questions)
}
