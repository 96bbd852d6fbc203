package repository

import (
	"mindclass_backend/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type LearningPathRepository struct {
	DB *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{DB: db}
}

func (r *LearningPathRepository) Create(p *model.LearningPath) error {
	p.EnsureID()
	return errors.Wrap(r.DB.Create(p).Error, "create learning path")
}

func (r *LearningPathRepository) Update(p *model.LearningPath) error {
	return errors.Wrap(r.DB.Save(p).Error, "update learning path")
}

func (r *LearningPathRepository) FindByID(id string) (*model.LearningPath, error) {
	var p model.LearningPath
	if err := r.DB.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err, "find learning path")
	}
	return &p, nil
}

func (r *LearningPathRepository) ListByUser(userID string) ([]model.LearningPath, error) {
	var paths []model.LearningPath
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&paths).Error
	return paths, errors.Wrap(err, "list learning paths")
}
