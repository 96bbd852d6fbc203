package model

type NotificationType string

const (
	NotifyInfo    NotificationType = "INFO"
	NotifySuccess NotificationType = "SUCCESS"
	NotifyError   NotificationType = "ERROR"
	NotifyEmail   NotificationType = "EMAIL"
)

// Notification is one entry of a user's feed. Entries stay until read.
// swagger:model Notification
type Notification struct {
	UUIDBase
	UserID  string           `gorm:"index;size:20" json:"userId"`
	Title   string           `gorm:"size:255" json:"title"`
	Message string           `gorm:"size:1024" json:"message"`
	Type    NotificationType `gorm:"size:10" json:"type"`
	Read    bool             `gorm:"column:is_read;index" json:"read"`
}

func (Notification) TableName() string {
	return "notifications"
}
