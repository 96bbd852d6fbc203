// Package repository defines the stores the services depend on and their
// gorm implementations. The in-memory implementations live in memstore.
package repository

import (
	"errors"

	"mindclass_backend/internal/model"
)

// ErrNotFound is returned by every store when a lookup matches nothing.
var ErrNotFound = errors.New("record not found")

type TestStore interface {
	Create(test *model.Test) error
	Update(test *model.Test) error
	FindByID(id string) (*model.Test, error)
	// FindLiveByCode matches the access code exactly among LIVE tests.
	FindLiveByCode(code string) (*model.Test, error)
	// CodeInUse reports whether a non-ENDED test already carries code.
	CodeInUse(code string) (bool, error)
	List() ([]model.Test, error)
	ListByCreator(creatorID string) ([]model.Test, error)
}

type ResultStore interface {
	Create(result *model.TestResult) error
	ListByTest(testID string) ([]model.TestResult, error)
	ListByStudent(studentID string) ([]model.TestResult, error)
}

type UserStore interface {
	Create(user *model.User) error
	Update(user *model.User) error
	FindByID(id string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByIDs(ids []string) ([]model.User, error)
	Count(role model.UserRole) (int64, error)
	// AddFriendship and RemoveFriendship update both users at once.
	AddFriendship(a, b string) error
	RemoveFriendship(a, b string) error
	FriendIDs(uid string) ([]string, error)
}

type ClassroomStore interface {
	Create(c *model.Classroom) error
	Update(c *model.Classroom) error
	FindByID(id string) (*model.Classroom, error)
	FindByCode(code string) (*model.Classroom, error)
	ListByTeacher(teacherID string) ([]model.Classroom, error)
	ListByStudent(studentID string) ([]model.Classroom, error)
}

type FriendRequestStore interface {
	Create(req *model.FriendRequest) error
	Update(req *model.FriendRequest) error
	FindByID(id string) (*model.FriendRequest, error)
	// FindPending returns the PENDING request sent from one uid to another.
	FindPending(fromUID, toUID string) (*model.FriendRequest, error)
	ListPendingFor(toUID string) ([]model.FriendRequest, error)
	ListSentBy(fromUID string) ([]model.FriendRequest, error)
}

type LibraryStore interface {
	Create(item *model.LibraryItem) error
	FindByID(id string) (*model.LibraryItem, error)
	// ListByUser filters by type unless contentType is empty.
	ListByUser(userID string, contentType model.ContentType) ([]model.LibraryItem, error)
	Delete(id string) error
}

type AssignmentStore interface {
	Create(a *model.Assignment) error
	Update(a *model.Assignment) error
	FindByID(id string) (*model.Assignment, error)
	ListByClassrooms(classroomIDs []string) ([]model.Assignment, error)
}

type LearningPathStore interface {
	Create(p *model.LearningPath) error
	Update(p *model.LearningPath) error
	FindByID(id string) (*model.LearningPath, error)
	ListByUser(userID string) ([]model.LearningPath, error)
}

type NotificationStore interface {
	Create(n *model.Notification) error
	// ListByUser returns the feed newest first, only unread entries when
	// unreadOnly is set.
	ListByUser(userID string, unreadOnly bool) ([]model.Notification, error)
	// MarkRead flags one entry of userID's feed.
	MarkRead(userID, id string) error
	MarkAllRead(userID string) error
}

// Stores bundles every store so the app can switch backends in one place.
type Stores struct {
	Tests         TestStore
	Results       ResultStore
	Users         UserStore
	Classrooms    ClassroomStore
	Requests      FriendRequestStore
	Library       LibraryStore
	Assignments   AssignmentStore
	Paths         LearningPathStore
	Notifications NotificationStore
}
