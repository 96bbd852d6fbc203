package service

import (
	"testing"
	"time"

	"mindclass_backend/internal/config"
	"mindclass_backend/internal/generation"
	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
	"mindclass_backend/internal/repository/memstore"

	"github.com/stretchr/testify/require"
)

type env struct {
	stores        repository.Stores
	cfg           *config.Config
	tests         *TestService
	sessions      *SessionService
	auth          *AuthService
	users         *UserService
	classrooms    *ClassroomService
	friends       *FriendshipService
	library       *LibraryService
	assignments   *AssignmentService
	paths         *LearningPathService
	content       *ContentService
	analytics     *AnalyticsService
	dashboard     *DashboardService
	notifications *NotificationService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
		Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
	}
	stores := memstore.New()
	gen := generation.NewStaticGenerator()

	e := &env{stores: stores, cfg: cfg}
	storage := NewStorageService(cfg)
	e.notifications = NewNotificationService(stores.Notifications)
	e.tests = NewTestService(stores.Tests, gen, storage)
	e.tests.Notifier = e.notifications
	e.sessions = NewSessionService(stores.Tests, stores.Results, time.Hour)
	e.sessions.Notifier = e.notifications
	t.Cleanup(e.sessions.Shutdown)
	e.auth = NewAuthService(stores.Users, cfg)
	e.users = NewUserService(stores.Users)
	e.classrooms = NewClassroomService(stores.Classrooms)
	e.classrooms.Notifier = e.notifications
	e.friends = NewFriendshipService(stores.Requests, stores.Users)
	e.friends.Notifier = e.notifications
	e.library = NewLibraryService(stores.Library)
	e.library.Notifier = e.notifications
	e.assignments = NewAssignmentService(stores.Assignments, e.classrooms, e.tests)
	e.paths = NewLearningPathService(stores.Paths, gen)
	e.content = NewContentService(gen, e.library, storage)
	e.analytics = NewAnalyticsService(stores.Tests, stores.Results, stores.Users)
	e.dashboard = NewDashboardService(stores.Tests, stores.Results, e.classrooms, e.assignments, stores.Paths)
	return e
}

func (e *env) login(t *testing.T, email string, role model.UserRole) *model.User {
	t.Helper()
	resp, err := e.auth.Login(LoginRequest{Email: email, Role: role})
	require.NoError(t, err)
	return resp.User
}
