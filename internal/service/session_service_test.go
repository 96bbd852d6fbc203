package service

import (
	"testing"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/session"
	"mindclass_backend/pkg/monitoring"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionServiceStoresResult(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.tests.SeedDemo())
	student := "MC-1234-5678-9012"

	snap, err := e.sessions.Join(student, DemoAccessCode)
	require.NoError(t, err)
	assert.Equal(t, session.ViewTake, snap.View)
	assert.Equal(t, 600, snap.RemainingSeconds)

	_, err = e.sessions.Answer(student, 1, "Chlorophyll")
	require.NoError(t, err)
	_, err = e.sessions.Answer(student, 2, "CO2")
	require.NoError(t, err)

	snap, err = e.sessions.RequestSubmit(student)
	require.NoError(t, err)
	assert.True(t, snap.ConfirmPending)

	result, err := e.sessions.Submit(student)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.MaxScore)
	assert.Equal(t, model.ResultAwaited, result.Status)

	again, err := e.sessions.Submit(student)
	assert.ErrorIs(t, err, session.ErrAlreadySubmitted)
	assert.Equal(t, result.ID, again.ID)

	stored, err := e.sessions.ResultsFor(student)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, map[int]string{1: "Chlorophyll", 2: "CO2"}, stored[0].Answers)

	snap, err = e.sessions.ReturnToList(student)
	require.NoError(t, err)
	assert.Equal(t, session.ViewList, snap.View)
}

func TestSessionServiceJoinErrors(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.tests.SeedDemo())

	snap, err := e.sessions.Join("MC-1234-5678-9012", "000000")
	assert.ErrorIs(t, err, session.ErrInvalidCode)
	assert.Equal(t, session.ViewList, snap.View)

	_, err = e.sessions.Answer("MC-1234-5678-9012", 1, "Chlorophyll")
	assert.ErrorIs(t, err, session.ErrNotTaking)
}

func TestSessionServiceAuthor(t *testing.T) {
	e := newEnv(t)
	teacher := "MC-1111-2222-3333"

	steps := []struct {
		action string
		want   session.View
	}{
		{"begin", session.ViewCreateSelect},
		{"manual", session.ViewCreateManual},
		{"finish", session.ViewList},
		{"begin", session.ViewCreateSelect},
		{"ai", session.ViewCreateAI},
		{"cancel", session.ViewList},
	}
	for _, s := range steps {
		snap, err := e.sessions.Author(teacher, s.action)
		require.NoError(t, err, s.action)
		assert.Equal(t, s.want, snap.View, s.action)
	}

	_, err := e.sessions.Author(teacher, "publish")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestSessionServiceLongestTestKeepsCounting(t *testing.T) {
	e := newEnv(t)
	teacher := "MC-1111-2222-3333"
	student := "MC-1234-5678-9012"

	test, err := e.tests.CreateManual(teacher, CreateManualTestRequest{
		Title:     "All day",
		Questions: []ManualQuestion{{Text: "Q", Answer: "A"}},
		Settings:  &model.TestSettings{TimeLimitMinutes: model.MaxTimeLimitMinutes},
	})
	require.NoError(t, err)
	_, err = e.tests.GoLive(teacher, test.ID)
	require.NoError(t, err)

	snap, err := e.sessions.Join(student, test.AccessCode)
	require.NoError(t, err)
	assert.Equal(t, model.MaxTimeLimitMinutes*60, snap.RemainingSeconds)

	res, err := e.sessions.Manager.Session(student).Tick()
	require.NoError(t, err)
	assert.Nil(t, res)
	snap = e.sessions.State(student)
	assert.Equal(t, session.ViewTake, snap.View)
	assert.Equal(t, model.MaxTimeLimitMinutes*60-1, snap.RemainingSeconds)
}

func TestSessionServiceActiveAttemptsGauge(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.tests.SeedDemo())
	student := "MC-1234-5678-9012"
	before := testutil.ToFloat64(monitoring.ActiveAttempts)

	_, err := e.sessions.Join(student, DemoAccessCode)
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(monitoring.ActiveAttempts))

	e.sessions.Leave(student)
	assert.Equal(t, before, testutil.ToFloat64(monitoring.ActiveAttempts))

	// the countdown submits first, leaving afterwards must not count again
	_, err = e.sessions.Join(student, DemoAccessCode)
	require.NoError(t, err)
	sess := e.sessions.Manager.Session(student)
	for sess.View() == session.ViewTake {
		_, err := sess.Tick()
		require.NoError(t, err)
	}
	assert.Equal(t, before, testutil.ToFloat64(monitoring.ActiveAttempts))

	e.sessions.Leave(student)
	assert.Equal(t, before, testutil.ToFloat64(monitoring.ActiveAttempts))
}
