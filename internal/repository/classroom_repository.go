package repository

import (
	"fmt"

	"mindclass_backend/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ClassroomRepository struct {
	DB *gorm.DB
}

func NewClassroomRepository(db *gorm.DB) *ClassroomRepository {
	return &ClassroomRepository{DB: db}
}

func (r *ClassroomRepository) Create(c *model.Classroom) error {
	c.EnsureID()
	return errors.Wrap(r.DB.Create(c).Error, "create classroom")
}

func (r *ClassroomRepository) Update(c *model.Classroom) error {
	return errors.Wrap(r.DB.Save(c).Error, "update classroom")
}

func (r *ClassroomRepository) FindByID(id string) (*model.Classroom, error) {
	var c model.Classroom
	if err := r.DB.First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "find classroom")
	}
	return &c, nil
}

func (r *ClassroomRepository) FindByCode(code string) (*model.Classroom, error) {
	var c model.Classroom
	if err := r.DB.Where("code = ?", code).First(&c).Error; err != nil {
		return nil, notFound(err, "find classroom by code")
	}
	return &c, nil
}

func (r *ClassroomRepository) ListByTeacher(teacherID string) ([]model.Classroom, error) {
	var list []model.Classroom
	err := r.DB.Where("teacher_id = ?", teacherID).Order("created_at DESC").Find(&list).Error
	return list, errors.Wrap(err, "list classrooms by teacher")
}

// ListByStudent matches the JSON-encoded member list, which works the same
// on MySQL and PostgreSQL text columns.
func (r *ClassroomRepository) ListByStudent(studentID string) ([]model.Classroom, error) {
	var list []model.Classroom
	pattern := fmt.Sprintf("%%%q%%", studentID)
	err := r.DB.Where("student_ids LIKE ?", pattern).Order("created_at DESC").Find(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "list classrooms by student")
	}
	// LIKE can over-match on crafted ids; confirm membership.
	kept := list[:0]
	for _, c := range list {
		if c.HasStudent(studentID) {
			kept = append(kept, c)
		}
	}
	return kept, nil
}
