package repository

import (
	"mindclass_backend/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type FriendshipRepository struct {
	DB *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{DB: db}
}

func (r *FriendshipRepository) Create(req *model.FriendRequest) error {
	if req.ID == "" {
		req.ID = model.NewID()
	}
	return errors.Wrap(r.DB.Create(req).Error, "create friend request")
}

func (r *FriendshipRepository) Update(req *model.FriendRequest) error {
	return errors.Wrap(r.DB.Save(req).Error, "update friend request")
}

func (r *FriendshipRepository) FindByID(id string) (*model.FriendRequest, error) {
	var req model.FriendRequest
	if err := r.DB.First(&req, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "find friend request")
	}
	return &req, nil
}

func (r *FriendshipRepository) FindPending(fromUID, toUID string) (*model.FriendRequest, error) {
	var req model.FriendRequest
	err := r.DB.Where("from_uid = ? AND to_uid = ? AND status = ?", fromUID, toUID, model.RequestPending).
		First(&req).Error
	if err != nil {
		return nil, notFound(err, "find pending request")
	}
	return &req, nil
}

func (r *FriendshipRepository) ListPendingFor(toUID string) ([]model.FriendRequest, error) {
	var reqs []model.FriendRequest
	err := r.DB.Where("to_uid = ? AND status = ?", toUID, model.RequestPending).
		Order("timestamp DESC").Find(&reqs).Error
	return reqs, errors.Wrap(err, "list pending requests")
}

func (r *FriendshipRepository) ListSentBy(fromUID string) ([]model.FriendRequest, error) {
	var reqs []model.FriendRequest
	err := r.DB.Where("from_uid = ?", fromUID).Order("timestamp DESC").Find(&reqs).Error
	return reqs, errors.Wrap(err, "list sent requests")
}
