package model

// swagger:model Classroom
type Classroom struct {
	UUIDBase
	Name       string   `gorm:"size:255;not null" json:"name"`
	Subject    string   `gorm:"size:100" json:"subject"`
	TeacherID  string   `gorm:"index;size:20" json:"teacherId"`
	StudentIDs []string `gorm:"serializer:json" json:"studentIds"`
	Code       string   `gorm:"size:20;uniqueIndex" json:"code"`
}

func (Classroom) TableName() string {
	return "classrooms"
}

func (c *Classroom) HasStudent(uid string) bool {
	for _, id := range c.StudentIDs {
		if id == uid {
			return true
		}
	}
	return false
}
