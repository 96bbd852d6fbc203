package service

import (
	"errors"
	"testing"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
	"mindclass_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(t *testing.T, e *env, uid string) []model.Notification {
	t.Helper()
	items, err := e.notifications.List(uid, false)
	require.NoError(t, err)
	return items
}

func titles(items []model.Notification) []string {
	out := make([]string, 0, len(items))
	for _, n := range items {
		out = append(out, n.Title)
	}
	return out
}

func TestNotificationsFromActions(t *testing.T) {
	e := newEnv(t)
	teacher := e.login(t, "t@school.org", model.Teacher)
	student := e.login(t, "s@school.org", model.Student)

	_, err := e.classrooms.Create(teacher.ID, CreateClassroomRequest{Name: "Science Class 10"})
	require.NoError(t, err)
	_, err = e.classrooms.Join(student.ID, "SCI-10A")
	require.NoError(t, err)

	test, err := e.tests.CreateManual(teacher.ID, CreateManualTestRequest{
		Title:     "Optics",
		Questions: []ManualQuestion{{Text: "Define refraction", Answer: "bending"}},
	})
	require.NoError(t, err)
	_, err = e.tests.GoLive(teacher.ID, test.ID)
	require.NoError(t, err)

	_, err = e.library.Add(student.ID, AddLibraryItemRequest{Type: model.ContentNotes, Title: "Cells"})
	require.NoError(t, err)

	req, err := e.friends.SendRequest(student.ID, teacher.ID, "")
	require.NoError(t, err)
	_, err = e.friends.Respond(req.ID, teacher.ID, true)
	require.NoError(t, err)

	_, err = e.sessions.Join(student.ID, test.AccessCode)
	require.NoError(t, err)
	_, err = e.sessions.Submit(student.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"New Notification",
		"Test Updated",
		"Test Created",
		"Classroom Created",
	}, titles(feed(t, e, teacher.ID)))

	studentFeed := feed(t, e, student.ID)
	assert.Equal(t, []string{
		"Test Submitted",
		"New Notification",
		"Content Saved",
		"Classroom Joined",
	}, titles(studentFeed))
	assert.Equal(t, "Results Awaited", studentFeed[0].Message)
	assert.Equal(t, teacher.ID+" accepted your request!", studentFeed[1].Message)
	assert.Equal(t, `"Cells" added to My Library`, studentFeed[2].Message)
	assert.Equal(t, "Welcome to Science Class 10!", studentFeed[3].Message)
	assert.Equal(t, model.NotifySuccess, studentFeed[3].Type)
	for _, n := range studentFeed {
		assert.False(t, n.Read)
		assert.Equal(t, student.ID, n.UserID)
	}
}

func TestNotificationsMarkRead(t *testing.T) {
	e := newEnv(t)
	uid := "MC-1111-2222-3333"
	other := "MC-4444-5555-6666"
	e.notifications.Notify(uid, "One", "first", "")
	e.notifications.Notify(uid, "Two", "second", model.NotifyEmail)
	e.notifications.Notify(other, "Theirs", "x", model.NotifyInfo)

	items := feed(t, e, uid)
	require.Len(t, items, 2)
	assert.Equal(t, model.NotifyEmail, items[0].Type)
	assert.Equal(t, model.NotifyInfo, items[1].Type)

	assert.ErrorIs(t, e.notifications.MarkRead(other, items[0].ID), util.ErrNotificationNotFound)
	assert.ErrorIs(t, e.notifications.MarkRead(uid, "missing"), util.ErrNotificationNotFound)

	require.NoError(t, e.notifications.MarkRead(uid, items[0].ID))
	unread, err := e.notifications.List(uid, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "One", unread[0].Title)

	require.NoError(t, e.notifications.MarkAllRead(uid))
	unread, err = e.notifications.List(uid, true)
	require.NoError(t, err)
	assert.Empty(t, unread)
	assert.Len(t, feed(t, e, uid), 2)

	theirs, err := e.notifications.List(other, true)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

type failingNotifications struct {
	repository.NotificationStore
}

func (failingNotifications) Create(*model.Notification) error {
	return errors.New("disk full")
}

func TestNotifyFailureKeepsAction(t *testing.T) {
	e := newEnv(t)
	e.notifications.Store = failingNotifications{e.stores.Notifications}

	item, err := e.library.Add("MC-1111-2222-3333", AddLibraryItemRequest{Type: model.ContentNotes, Title: "Cells"})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)

	e.library.Notifier = nil
	_, err = e.library.Add("MC-1111-2222-3333", AddLibraryItemRequest{Type: model.ContentNotes, Title: "Atoms"})
	require.NoError(t, err)
}
