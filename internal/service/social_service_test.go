package service

import (
	"testing"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRegistersOnce(t *testing.T) {
	e := newEnv(t)

	first, err := e.auth.Login(LoginRequest{Email: "Ana@School.org", Role: model.Student})
	require.NoError(t, err)
	assert.NotEmpty(t, first.Token)
	assert.NoError(t, util.ValidateUID(first.User.ID))
	assert.Equal(t, "ana", first.User.Name)

	second, err := e.auth.Login(LoginRequest{Email: "ana@school.org", Role: model.Student})
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)

	claims, err := util.ParseJWT(second.Token, e.cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, claims.UserID)

	_, err = e.auth.Login(LoginRequest{Email: "x@y.z", Role: "JANITOR"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestClassroomCreateAndJoin(t *testing.T) {
	e := newEnv(t)
	teacher := e.login(t, "t@school.org", model.Teacher)
	student := e.login(t, "s@school.org", model.Student)

	sci, err := e.classrooms.Create(teacher.ID, CreateClassroomRequest{Name: "Science Class 10"})
	require.NoError(t, err)
	assert.Equal(t, "SCI-10A", sci.Code)
	assert.Equal(t, "General", sci.Subject)

	other, err := e.classrooms.Create(teacher.ID, CreateClassroomRequest{Name: "Math", Subject: "Maths"})
	require.NoError(t, err)
	assert.Regexp(t, `^[A-Z0-9]{6}$`, other.Code)

	_, err = e.classrooms.Join(student.ID, "NOPE00")
	assert.ErrorIs(t, err, util.ErrInvalidClassCode)

	joined, err := e.classrooms.Join(student.ID, "SCI-10A")
	require.NoError(t, err)
	assert.Equal(t, []string{student.ID}, joined.StudentIDs)

	_, err = e.classrooms.Join(student.ID, "SCI-10A")
	assert.ErrorIs(t, err, util.ErrAlreadyJoined)

	mine, err := e.classrooms.ListForUser(student.ID, model.Student)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, sci.ID, mine[0].ID)

	owned, err := e.classrooms.ListForUser(teacher.ID, model.Teacher)
	require.NoError(t, err)
	assert.Len(t, owned, 2)
}

func TestSendRequestValidation(t *testing.T) {
	e := newEnv(t)
	a := e.login(t, "a@x.org", model.Student)

	tests := []struct {
		name string
		to   string
		want string
	}{
		{"missing prefix", "ABC-123", `UID must start with "MC-"`},
		{"wrong groups", "MC-1234-5678", "Invalid format. Use MC-XXXX-XXXX-XXXX"},
		{"self", a.ID, "cannot invite yourself"},
		{"unknown user", "MC-0000-0000-0000", "user not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.friends.SendRequest(a.ID, tt.to, "hi")
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestFriendRequestFlow(t *testing.T) {
	e := newEnv(t)
	a := e.login(t, "a@x.org", model.Student)
	b := e.login(t, "b@x.org", model.Student)

	req, err := e.friends.SendRequest(a.ID, b.ID, "study buddy?")
	require.NoError(t, err)
	assert.Equal(t, model.RequestPending, req.Status)

	_, err = e.friends.SendRequest(a.ID, b.ID, "again")
	assert.ErrorIs(t, err, util.ErrDuplicateRequest)

	pending, err := e.friends.PendingRequests(b.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = e.friends.Respond(req.ID, a.ID, true)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	accepted, err := e.friends.Respond(req.ID, b.ID, true)
	require.NoError(t, err)
	assert.Equal(t, model.RequestAccepted, accepted.Status)

	_, err = e.friends.Respond(req.ID, b.ID, false)
	assert.ErrorIs(t, err, util.ErrRequestHandled)

	friends, err := e.friends.Friends(a.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, b.ID, friends[0].ID)

	_, err = e.friends.SendRequest(b.ID, a.ID, "")
	assert.ErrorIs(t, err, util.ErrAlreadyFriends)

	require.NoError(t, e.friends.RemoveFriend(a.ID, b.ID))
	friends, err = e.friends.Friends(b.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestReciprocalRequestAccepts(t *testing.T) {
	e := newEnv(t)
	a := e.login(t, "a@x.org", model.Student)
	b := e.login(t, "b@x.org", model.Teacher)

	_, err := e.friends.SendRequest(a.ID, b.ID, "")
	require.NoError(t, err)

	req, err := e.friends.SendRequest(b.ID, a.ID, "")
	require.NoError(t, err)
	assert.Equal(t, model.RequestAccepted, req.Status)

	ids, err := e.stores.Users.FriendIDs(b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, ids)
}

func TestRejectRequest(t *testing.T) {
	e := newEnv(t)
	a := e.login(t, "a@x.org", model.Student)
	b := e.login(t, "b@x.org", model.Student)

	req, err := e.friends.SendRequest(a.ID, b.ID, "")
	require.NoError(t, err)
	rejected, err := e.friends.Respond(req.ID, b.ID, false)
	require.NoError(t, err)
	assert.Equal(t, model.RequestRejected, rejected.Status)

	friends, err := e.friends.Friends(a.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestProfileCompletion(t *testing.T) {
	tests := []struct {
		name    string
		profile model.UserProfile
		want    int
	}{
		{"empty", model.UserProfile{}, 0},
		{"bio does not count", model.UserProfile{Bio: "hello"}, 0},
		{"school only", model.UserProfile{School: "Central High"}, 25},
		{"blank is empty", model.UserProfile{School: "  ", Phone: "555"}, 25},
		{"full", model.UserProfile{DOB: "2008-01-01", Gender: "F", School: "Central", Phone: "555"}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProfileCompletion(tt.profile))
		})
	}
}

func TestUpdateProfileUnlock(t *testing.T) {
	e := newEnv(t)
	u := e.login(t, "a@x.org", model.Student)

	half, err := e.users.UpdateProfile(u.ID, UpdateProfileRequest{Profile: model.UserProfile{DOB: "2008-01-01", Gender: "F"}})
	require.NoError(t, err)
	assert.Equal(t, 50, half.Completion)
	assert.False(t, half.JustCompleted)

	full := model.UserProfile{DOB: "2008-01-01", Gender: "F", School: "Central", Phone: "555"}
	done, err := e.users.UpdateProfile(u.ID, UpdateProfileRequest{Name: "Ana", Profile: full})
	require.NoError(t, err)
	assert.Equal(t, 100, done.Completion)
	assert.True(t, done.JustCompleted)
	assert.Equal(t, "Ana", done.User.Name)

	again, err := e.users.UpdateProfile(u.ID, UpdateProfileRequest{Profile: full})
	require.NoError(t, err)
	assert.False(t, again.JustCompleted)
}

func TestPrivacy(t *testing.T) {
	e := newEnv(t)
	owner := e.login(t, "a@x.org", model.Student)
	viewer := e.login(t, "b@x.org", model.Student)
	_, err := e.users.UpdateProfile(owner.ID, UpdateProfileRequest{Profile: model.UserProfile{School: "Central"}})
	require.NoError(t, err)

	hidden, err := e.users.PublicView(viewer.ID, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, hidden.Profile.School)
	assert.Empty(t, hidden.Email)

	toggled, err := e.users.TogglePrivacy(owner.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Profile.IsPublic)

	shown, err := e.users.PublicView(viewer.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Central", shown.Profile.School)
}
