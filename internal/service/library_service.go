package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
	"mindclass_backend/internal/util"

	"github.com/pkg/errors"
)

var ErrInvalidContentType = errors.New("invalid content type")

type AddLibraryItemRequest struct {
	Type  model.ContentType `json:"type" binding:"required"`
	Title string            `json:"title" binding:"required"`
	Data  json.RawMessage   `json:"data"`
}

type LibraryService struct {
	Items    repository.LibraryStore
	Notifier Notifier
}

func NewLibraryService(items repository.LibraryStore) *LibraryService {
	return &LibraryService{Items: items}
}

func (s *LibraryService) Add(userID string, req AddLibraryItemRequest) (*model.LibraryItem, error) {
	if !req.Type.Valid() {
		return nil, ErrInvalidContentType
	}
	data := req.Data
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	if !json.Valid(data) {
		return nil, errors.Wrap(ErrInvalidContentType, "data is not valid JSON")
	}
	item := &model.LibraryItem{
		Type:   req.Type,
		Title:  strings.TrimSpace(req.Title),
		Data:   data,
		UserID: userID,
	}
	if err := s.Items.Create(item); err != nil {
		return nil, err
	}
	notify(s.Notifier, userID, "Content Saved", fmt.Sprintf("%q added to My Library", item.Title), model.NotifySuccess)
	return item, nil
}

// Save stores any generated payload under the user's library.
func (s *LibraryService) Save(userID string, t model.ContentType, title string, payload any) (*model.LibraryItem, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encode library payload")
	}
	return s.Add(userID, AddLibraryItemRequest{Type: t, Title: title, Data: data})
}

// List returns the user's items, filtered by type unless filter is empty.
func (s *LibraryService) List(userID string, filter model.ContentType) ([]model.LibraryItem, error) {
	if filter != "" && !filter.Valid() {
		return nil, ErrInvalidContentType
	}
	return s.Items.ListByUser(userID, filter)
}

func (s *LibraryService) Get(userID, id string) (*model.LibraryItem, error) {
	item, err := s.Items.FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, util.ErrItemNotFound
	}
	return item, nil
}

func (s *LibraryService) Delete(userID, id string) error {
	if _, err := s.Get(userID, id); err != nil {
		return err
	}
	return s.Items.Delete(id)
}
