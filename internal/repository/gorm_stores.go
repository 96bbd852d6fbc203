package repository

import (
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

var (
	_ TestStore          = (*TestRepository)(nil)
	_ ResultStore        = (*ResultRepository)(nil)
	_ UserStore          = (*UserRepository)(nil)
	_ ClassroomStore     = (*ClassroomRepository)(nil)
	_ FriendRequestStore = (*FriendshipRepository)(nil)
	_ LibraryStore       = (*LibraryRepository)(nil)
	_ AssignmentStore    = (*AssignmentRepository)(nil)
	_ LearningPathStore  = (*LearningPathRepository)(nil)
	_ NotificationStore  = (*NotificationRepository)(nil)
)

// NewGormStores wires every store to db. rdb may be nil.
func NewGormStores(db *gorm.DB, rdb *redis.Client) Stores {
	return Stores{
		Tests:         NewTestRepository(db, rdb),
		Results:       NewResultRepository(db),
		Users:         NewUserRepository(db, rdb),
		Classrooms:    NewClassroomRepository(db),
		Requests:      NewFriendshipRepository(db),
		Library:       NewLibraryRepository(db),
		Assignments:   NewAssignmentRepository(db),
		Paths:         NewLearningPathRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}
