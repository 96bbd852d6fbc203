package repository

import (
	"mindclass_backend/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(a *model.Assignment) error {
	a.EnsureID()
	return errors.Wrap(r.DB.Create(a).Error, "create assignment")
}

func (r *AssignmentRepository) Update(a *model.Assignment) error {
	return errors.Wrap(r.DB.Save(a).Error, "update assignment")
}

func (r *AssignmentRepository) FindByID(id string) (*model.Assignment, error) {
	var a model.Assignment
	if err := r.DB.First(&a, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "find assignment")
	}
	return &a, nil
}

func (r *AssignmentRepository) ListByClassrooms(classroomIDs []string) ([]model.Assignment, error) {
	var list []model.Assignment
	if len(classroomIDs) == 0 {
		return list, nil
	}
	err := r.DB.Where("classroom_id IN ?", classroomIDs).Order("due_date ASC").Find(&list).Error
	return list, errors.Wrap(err, "list assignments")
}
