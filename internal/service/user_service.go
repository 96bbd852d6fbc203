package service

import (
	"strings"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
	"mindclass_backend/internal/util"
	"mindclass_backend/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type UpdateProfileRequest struct {
	Name        string             `json:"name"`
	Profile     model.UserProfile  `json:"profile"`
	Preferences *model.Preferences `json:"preferences"`
}

type ProfileUpdate struct {
	User *model.User `json:"user"`
	// Completion is 0..100.
	Completion int `json:"completion"`
	// JustCompleted is set when this update took the profile to 100.
	JustCompleted bool `json:"justCompleted"`
}

// ProfileCompletion scores dob, gender, school and phone at 25 each.
func ProfileCompletion(p model.UserProfile) int {
	score := 0
	for _, v := range []string{p.DOB, p.Gender, p.School, p.Phone} {
		if strings.TrimSpace(v) != "" {
			score += 25
		}
	}
	return score
}

type UserService struct {
	Users repository.UserStore
}

func NewUserService(users repository.UserStore) *UserService {
	return &UserService{Users: users}
}

func (s *UserService) Get(uid string) (*model.User, error) {
	user, err := s.Users.FindByID(uid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// PublicView returns what another user may see: the profile only when it
// is public, or when the viewer is a friend.
func (s *UserService) PublicView(viewerID, uid string) (*model.User, error) {
	user, err := s.Get(uid)
	if err != nil {
		return nil, err
	}
	if viewerID != uid && !user.Profile.IsPublic && !user.HasFriend(viewerID) {
		user.Profile = model.UserProfile{}
		user.Email = ""
	}
	user.Friends = nil
	return user, nil
}

func (s *UserService) UpdateProfile(uid string, req UpdateProfileRequest) (*ProfileUpdate, error) {
	user, err := s.Get(uid)
	if err != nil {
		return nil, err
	}
	before := ProfileCompletion(user.Profile)

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	isPublic := user.Profile.IsPublic
	user.Profile = req.Profile
	user.Profile.IsPublic = isPublic
	if req.Preferences != nil {
		user.Preferences = *req.Preferences
	}

	if err := s.Users.Update(user); err != nil {
		return nil, err
	}

	after := ProfileCompletion(user.Profile)
	done := before < 100 && after == 100
	if done {
		logger.Log.Info("Profile completed", zap.String("uid", uid))
	}
	return &ProfileUpdate{User: user, Completion: after, JustCompleted: done}, nil
}

func (s *UserService) TogglePrivacy(uid string) (*model.User, error) {
	user, err := s.Get(uid)
	if err != nil {
		return nil, err
	}
	user.Profile.IsPublic = !user.Profile.IsPublic
	if err := s.Users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
