package repository

import (
	"mindclass_backend/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) Create(result *model.TestResult) error {
	result.EnsureID()
	return errors.Wrap(r.DB.Create(result).Error, "create result")
}

func (r *ResultRepository) ListByTest(testID string) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.DB.Where("test_id = ?", testID).Order("date_taken ASC").Find(&results).Error
	return results, errors.Wrap(err, "list results by test")
}

func (r *ResultRepository) ListByStudent(studentID string) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.DB.Where("student_id = ?", studentID).Order("date_taken DESC").Find(&results).Error
	return results, errors.Wrap(err, "list results by student")
}
