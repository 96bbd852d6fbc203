package model

import "time"

type DailyPlan struct {
	Day        int      `json:"day" validate:"required,min=1"`
	Topic      string   `json:"topic" validate:"required"`
	Activities []string `json:"activities" validate:"required,min=1"`
	Completed  bool     `json:"completed"`
}

// swagger:model LearningPath
type LearningPath struct {
	UUIDBase
	Goal      string      `gorm:"size:255" json:"goal" validate:"required"`
	Schedule  []DailyPlan `gorm:"serializer:json" json:"schedule" validate:"required,min=1,dive"`
	UserID    string      `gorm:"index;size:20" json:"userId,omitempty"`
	StartDate *time.Time  `json:"startDate,omitempty"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

// Progress is the share of completed days, 0..100.
func (p *LearningPath) Progress() int {
	if len(p.Schedule) == 0 {
		return 0
	}
	done := 0
	for _, d := range p.Schedule {
		if d.Completed {
			done++
		}
	}
	return done * 100 / len(p.Schedule)
}
