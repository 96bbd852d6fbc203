package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "STUDENT"
	Teacher UserRole = "TEACHER"
	Parent  UserRole = "PARENT"
	Admin   UserRole = "ADMIN"
)

func (r UserRole) Valid() bool {
	switch r {
	case Student, Teacher, Parent, Admin:
		return true
	}
	return false
}

type Preferences struct {
	Language   string `json:"language"`
	GradeLevel string `json:"gradeLevel"`
	Style      string `json:"style"`
}

// swagger:model UserProfile
type UserProfile struct {
	DOB      string `gorm:"size:20" json:"dob"`
	Gender   string `gorm:"size:20" json:"gender"`
	School   string `gorm:"size:255" json:"school"`
	Phone    string `gorm:"size:40" json:"phone"`
	Bio      string `gorm:"type:text" json:"bio"`
	IsPublic bool   `gorm:"default:false" json:"isPublic"`
}

// User.ID has the shape MC-XXXX-XXXX-XXXX.
// swagger:model User
type User struct {
	ID          string      `gorm:"primaryKey;type:varchar(20)" json:"id"`
	Email       string      `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Name        string      `gorm:"size:100;not null" json:"name"`
	Role        UserRole    `gorm:"size:20;default:'STUDENT'" json:"role"`
	Preferences Preferences `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`
	Profile     UserProfile `gorm:"embedded;embeddedPrefix:profile_" json:"profile"`
	Friends     []string    `gorm:"serializer:json" json:"friends"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) HasFriend(uid string) bool {
	for _, f := range u.Friends {
		if f == uid {
			return true
		}
	}
	return false
}
