package model

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestAccepted RequestStatus = "ACCEPTED"
	RequestRejected RequestStatus = "REJECTED"
)

// FriendRequest addresses users by their MC- uid.
type FriendRequest struct {
	ID        string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FromUID   string        `gorm:"index;size:20;not null" json:"fromUid"`
	ToUID     string        `gorm:"index;size:20;not null" json:"toUid"`
	Status    RequestStatus `gorm:"size:10;default:'PENDING'" json:"status"`
	Message   string        `gorm:"size:255" json:"message"`
	Timestamp time.Time     `gorm:"autoCreateTime" json:"timestamp"`
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}
