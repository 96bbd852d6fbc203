package repository

import (
	"mindclass_backend/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type LibraryRepository struct {
	DB *gorm.DB
}

func NewLibraryRepository(db *gorm.DB) *LibraryRepository {
	return &LibraryRepository{DB: db}
}

func (r *LibraryRepository) Create(item *model.LibraryItem) error {
	item.EnsureID()
	return errors.Wrap(r.DB.Create(item).Error, "create library item")
}

func (r *LibraryRepository) FindByID(id string) (*model.LibraryItem, error) {
	var item model.LibraryItem
	if err := r.DB.First(&item, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "find library item")
	}
	return &item, nil
}

func (r *LibraryRepository) ListByUser(userID string, contentType model.ContentType) ([]model.LibraryItem, error) {
	var items []model.LibraryItem
	db := r.DB.Where("user_id = ?", userID)
	if contentType != "" {
		db = db.Where("type = ?", contentType)
	}
	err := db.Order("created_at DESC").Find(&items).Error
	return items, errors.Wrap(err, "list library items")
}

func (r *LibraryRepository) Delete(id string) error {
	res := r.DB.Delete(&model.LibraryItem{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete library item")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
