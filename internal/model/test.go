package model

import (
	"time"
)

type TestStatus string

const (
	TestDraft TestStatus = "DRAFT"
	TestLive  TestStatus = "LIVE"
	TestEnded TestStatus = "ENDED"
)

type QuestionType string

const (
	QuestionMCQ   QuestionType = "MCQ"
	QuestionShort QuestionType = "SHORT"
	QuestionLong  QuestionType = "LONG"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMCQ, QuestionShort, QuestionLong:
		return true
	}
	return false
}

type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Question ids are unique within their test only.
// swagger:model Question
type Question struct {
	ID            int          `json:"id"`
	Text          string       `json:"text" validate:"required"`
	Type          QuestionType `json:"type" validate:"required,oneof=MCQ SHORT LONG"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer,omitempty"`
	Explanation   string       `json:"explanation"`
	Difficulty    Difficulty   `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
}

// MaxTimeLimitMinutes caps a test at one day so the countdown in seconds
// always fits an int.
const MaxTimeLimitMinutes = 24 * 60

type TestSettings struct {
	TimeLimitMinutes int  `gorm:"default:30" json:"timeLimitMinutes" binding:"max=1440"`
	Proctoring       bool `json:"proctoring"`
	Adaptive         bool `json:"adaptive"`
	ShuffleQuestions bool `json:"shuffleQuestions"`
}

func DefaultTestSettings() TestSettings {
	return TestSettings{TimeLimitMinutes: 30}
}

func (s TestSettings) ValidTimeLimit() bool {
	return s.TimeLimitMinutes > 0 && s.TimeLimitMinutes <= MaxTimeLimitMinutes
}

// swagger:model Test
type Test struct {
	UUIDBase
	Title           string       `gorm:"size:255;not null" json:"title"`
	Subject         string       `gorm:"size:100" json:"subject"`
	CreatorID       string       `gorm:"index;size:20" json:"creatorId"`
	AssignedClassID string       `gorm:"size:36" json:"assignedClassId,omitempty"`
	Questions       []Question   `gorm:"serializer:json" json:"questions"`
	Settings        TestSettings `gorm:"embedded;embeddedPrefix:settings_" json:"settings"`
	Status          TestStatus   `gorm:"size:10;index;default:'DRAFT'" json:"status"`
	AccessCode      string       `gorm:"size:6;index" json:"accessCode,omitempty"`
}

func (Test) TableName() string {
	return "tests"
}

func (t *Test) Question(id int) (Question, bool) {
	for _, q := range t.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

type ResultStatus string

const (
	ResultCompleted ResultStatus = "COMPLETED"
	ResultAwaited   ResultStatus = "AWAITED"
)

// swagger:model TestResult
type TestResult struct {
	UUIDBase
	TestID    string         `gorm:"index;size:36" json:"testId"`
	StudentID string         `gorm:"index;size:20" json:"studentId"`
	Score     int            `json:"score"`
	MaxScore  int            `json:"maxScore"`
	Answers   map[int]string `gorm:"serializer:json" json:"answers"`
	DateTaken time.Time      `json:"dateTaken"`
	Status    ResultStatus   `gorm:"size:10" json:"status"`
	TimedOut  bool           `json:"timedOut"`
}

func (TestResult) TableName() string {
	return "test_results"
}
