package session

import (
	"testing"
	"time"

	"mindclass_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerAutoSubmitsOnTimeout(t *testing.T) {
	test := photosynthesisTest()
	test.Settings.TimeLimitMinutes = 1
	rec := &recorder{}
	m := NewManager(&fakeFinder{tests: []*model.Test{test}}, time.Millisecond, rec.save)
	defer m.Shutdown()

	snap, err := m.Join("MC-1111-2222-3333", "123456")
	require.NoError(t, err)
	assert.Equal(t, ViewTake, snap.View)

	assert.Eventually(t, func() bool {
		return m.Session("MC-1111-2222-3333").View() == ViewResult
	}, 2*time.Second, 5*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, rec.count())
	assert.True(t, rec.results[0].TimedOut)
}

func TestManagerSubmitStopsCountdown(t *testing.T) {
	rec := &recorder{}
	m := NewManager(&fakeFinder{tests: []*model.Test{photosynthesisTest()}}, 5*time.Millisecond, rec.save)
	defer m.Shutdown()

	_, err := m.Join("MC-1111-2222-3333", "123456")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Active())

	res, err := m.Submit("MC-1111-2222-3333")
	require.NoError(t, err)
	assert.False(t, res.TimedOut)

	_, err = m.Submit("MC-1111-2222-3333")
	assert.Equal(t, ErrAlreadySubmitted, err)
	assert.Equal(t, 1, rec.count())
	assert.Equal(t, 0, m.Active())

	require.NoError(t, m.ReturnToList("MC-1111-2222-3333"))
	assert.Equal(t, ViewList, m.Session("MC-1111-2222-3333").View())
}

func TestManagerInvalidCode(t *testing.T) {
	m := NewManager(&fakeFinder{tests: []*model.Test{photosynthesisTest()}}, time.Second, nil)
	defer m.Shutdown()

	snap, err := m.Join("MC-1111-2222-3333", "000000")
	assert.Equal(t, ErrInvalidCode, err)
	assert.Equal(t, ViewList, snap.View)
	assert.Equal(t, 0, m.Active())
}

func TestManagerLeaveDiscardsAttempt(t *testing.T) {
	rec := &recorder{}
	m := NewManager(&fakeFinder{tests: []*model.Test{photosynthesisTest()}}, time.Millisecond, rec.save)
	defer m.Shutdown()

	_, err := m.Join("MC-1111-2222-3333", "123456")
	require.NoError(t, err)
	assert.True(t, m.Leave("MC-1111-2222-3333"))

	assert.Equal(t, ViewList, m.Session("MC-1111-2222-3333").View())
	assert.Equal(t, 0, rec.count())
	assert.False(t, m.Leave("MC-1111-2222-3333"))
}

func TestManagerLeaveAfterTimeoutDropsNothing(t *testing.T) {
	test := photosynthesisTest()
	test.Settings.TimeLimitMinutes = 1
	rec := &recorder{}
	m := NewManager(&fakeFinder{tests: []*model.Test{test}}, time.Millisecond, rec.save)
	defer m.Shutdown()

	_, err := m.Join("MC-1111-2222-3333", "123456")
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return rec.count() == 1 }, 2*time.Second, 5*time.Millisecond)

	assert.False(t, m.Leave("MC-1111-2222-3333"), "a submitted attempt is not dropped")
	assert.Equal(t, 1, rec.count())
}
