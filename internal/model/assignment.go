package model

import "time"

type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "PENDING"
	AssignmentSubmitted AssignmentStatus = "SUBMITTED"
)

type AssignmentType string

const (
	AssignmentAI     AssignmentType = "AI"
	AssignmentManual AssignmentType = "MANUAL"
)

// swagger:model Assignment
type Assignment struct {
	UUIDBase
	Title       string           `gorm:"size:255;not null" json:"title"`
	Description string           `gorm:"type:text" json:"description"`
	ClassroomID string           `gorm:"index;size:36" json:"classroomId"`
	CreatorID   string           `gorm:"index;size:20" json:"creatorId"`
	DueDate     time.Time        `json:"dueDate"`
	Status      AssignmentStatus `gorm:"size:10;default:'PENDING'" json:"status"`
	Type        AssignmentType   `gorm:"size:10" json:"type"`
	Questions   []string         `gorm:"serializer:json" json:"questions,omitempty"`
	SubmittedBy []string         `gorm:"serializer:json" json:"submittedBy,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// StatusFor reports the assignment status from one student's point of view.
func (a *Assignment) StatusFor(uid string) AssignmentStatus {
	for _, id := range a.SubmittedBy {
		if id == uid {
			return AssignmentSubmitted
		}
	}
	return AssignmentPending
}
