package service

import (
	"time"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
	"mindclass_backend/internal/session"
	"mindclass_backend/pkg/logger"
	"mindclass_backend/pkg/monitoring"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SessionService runs test attempts for students and persists every result
// the sessions emit.
type SessionService struct {
	Manager  *session.Manager
	Results  repository.ResultStore
	Notifier Notifier
}

func NewSessionService(finder session.TestFinder, results repository.ResultStore, tick time.Duration) *SessionService {
	s := &SessionService{Results: results}
	s.Manager = session.NewManager(finder, tick, s.record)
	return s
}

func (s *SessionService) record(result model.TestResult) {
	trigger := "manual"
	if result.TimedOut {
		trigger = "timeout"
	}
	monitoring.ResultsSubmitted.WithLabelValues(trigger).Inc()
	monitoring.ActiveAttempts.Dec()

	if err := s.Results.Create(&result); err != nil {
		logger.Log.Error("Failed to store test result",
			zap.String("test_id", result.TestID),
			zap.String("student", result.StudentID),
			zap.Error(err))
		return
	}
	notify(s.Notifier, result.StudentID, "Test Submitted", "Results Awaited", model.NotifyInfo)
	logger.Log.Info("Test submitted",
		zap.String("test_id", result.TestID),
		zap.String("student", result.StudentID),
		zap.Int("score", result.Score),
		zap.Int("max_score", result.MaxScore),
		zap.Bool("timed_out", result.TimedOut))
}

func (s *SessionService) Join(userID, code string) (session.Snapshot, error) {
	snap, err := s.Manager.Join(userID, code)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCode) {
			monitoring.JoinRejected.Inc()
		}
		return snap, err
	}
	monitoring.AttemptsJoined.Inc()
	monitoring.ActiveAttempts.Inc()
	logger.Log.Debug("Attempt started", zap.String("student", userID), zap.String("test_id", snap.TestID))
	return snap, nil
}

func (s *SessionService) State(userID string) session.Snapshot {
	return s.Manager.Session(userID).Snapshot()
}

func (s *SessionService) Answer(userID string, questionID int, value string) (session.Snapshot, error) {
	sess := s.Manager.Session(userID)
	err := sess.SelectAnswer(questionID, value)
	return sess.Snapshot(), err
}

func (s *SessionService) RequestSubmit(userID string) (session.Snapshot, error) {
	sess := s.Manager.Session(userID)
	err := sess.RequestSubmit()
	return sess.Snapshot(), err
}

func (s *SessionService) CancelSubmit(userID string) (session.Snapshot, error) {
	sess := s.Manager.Session(userID)
	err := sess.CancelSubmit()
	return sess.Snapshot(), err
}

// Submit confirms the attempt. A repeated call returns the stored result
// along with session.ErrAlreadySubmitted.
func (s *SessionService) Submit(userID string) (*model.TestResult, error) {
	return s.Manager.Submit(userID)
}

func (s *SessionService) ReturnToList(userID string) (session.Snapshot, error) {
	err := s.Manager.ReturnToList(userID)
	return s.Manager.Session(userID).Snapshot(), err
}

// Leave abandons a running attempt without a result.
func (s *SessionService) Leave(userID string) {
	if s.Manager.Leave(userID) {
		monitoring.ActiveAttempts.Dec()
	}
}

func (s *SessionService) ResultsFor(studentID string) ([]model.TestResult, error) {
	return s.Results.ListByStudent(studentID)
}

func (s *SessionService) TickInterval() time.Duration {
	return s.Manager.Interval()
}

func (s *SessionService) Shutdown() {
	s.Manager.Shutdown()
}

// ErrUnknownAction is returned for an authoring step that does not exist.
var ErrUnknownAction = errors.New("unknown authoring action")

// Author moves a teacher through the authoring views: begin, ai, manual,
// finish or cancel.
func (s *SessionService) Author(userID, action string) (session.Snapshot, error) {
	sess := s.Manager.Session(userID)
	var err error
	switch action {
	case "begin":
		err = sess.BeginCreate()
	case "ai":
		err = sess.ChooseAI()
	case "manual":
		err = sess.ChooseManual()
	case "finish":
		err = sess.FinishCreate()
	case "cancel":
		err = sess.CancelCreate()
	default:
		err = ErrUnknownAction
	}
	return sess.Snapshot(), err
}
