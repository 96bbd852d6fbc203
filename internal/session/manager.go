package session

import (
	"context"
	"sync"
	"time"

	"mindclass_backend/internal/model"
)

// Manager owns one Session per user and drives the countdown of every
// running attempt with a wall-clock ticker.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	timers   map[string]context.CancelFunc
	finder   TestFinder
	onSubmit SubmitFunc
	interval time.Duration
	wg       sync.WaitGroup
	closed   bool
}

func NewManager(finder TestFinder, interval time.Duration, onSubmit SubmitFunc) *Manager {
	if interval <= 0 {
		interval = time.Second
	}
	return &Manager{
		sessions: make(map[string]*Session),
		timers:   make(map[string]context.CancelFunc),
		finder:   finder,
		onSubmit: onSubmit,
		interval: interval,
	}
}

// Session returns the user's session, creating it in LIST on first use.
func (m *Manager) Session(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionLocked(userID)
}

func (m *Manager) sessionLocked(userID string) *Session {
	s, ok := m.sessions[userID]
	if !ok {
		s = New(userID, m.finder, WithSubmitFunc(m.onSubmit))
		m.sessions[userID] = s
	}
	return s
}

// Join starts an attempt and its countdown.
func (m *Manager) Join(userID, code string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Snapshot{}, ErrWrongView
	}
	s := m.sessionLocked(userID)
	if err := s.JoinByCode(code); err != nil {
		return s.Snapshot(), err
	}

	ctx, cancel := context.WithCancel(context.Background())
	if prev, ok := m.timers[userID]; ok {
		prev()
	}
	m.timers[userID] = cancel
	m.wg.Add(1)
	go m.run(ctx, s)

	return s.Snapshot(), nil
}

func (m *Manager) run(ctx context.Context, s *Session) {
	defer m.wg.Done()
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res, err := s.Tick()
			if err != nil || res != nil {
				return
			}
		}
	}
}

// Submit confirms the user's attempt and stops its countdown.
func (m *Manager) Submit(userID string) (*model.TestResult, error) {
	s := m.Session(userID)
	res, err := s.ConfirmSubmit()
	if err == nil {
		m.stopTimer(userID)
	}
	return res, err
}

// ReturnToList leaves the result view.
func (m *Manager) ReturnToList(userID string) error {
	s := m.Session(userID)
	if err := s.ReturnToList(); err != nil {
		return err
	}
	m.stopTimer(userID)
	return nil
}

// Leave discards the user's session state without submitting. It reports
// whether a running attempt was dropped; an attempt the countdown already
// submitted does not count.
func (m *Manager) Leave(userID string) bool {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if !ok {
		m.stopTimer(userID)
		return false
	}
	running := s.Abandon()
	m.stopTimer(userID)
	return running
}

func (m *Manager) stopTimer(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cancel, ok := m.timers[userID]; ok {
		cancel()
		delete(m.timers, userID)
	}
}

// Active reports how many users currently have a countdown running.
func (m *Manager) Active() int {
	n := 0
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()
	for _, s := range sessions {
		if s.View() == ViewTake {
			n++
		}
	}
	return n
}

// Interval is the wall-clock length of one countdown second.
func (m *Manager) Interval() time.Duration {
	return m.interval
}

// Shutdown stops every countdown and waits for the tickers to exit.
// Running attempts are left unsubmitted.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	m.closed = true
	for id, cancel := range m.timers {
		cancel()
		delete(m.timers, id)
	}
	m.mu.Unlock()
	m.wg.Wait()
}
