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

type SendRequestRequest struct {
	ToUID   string `json:"toUid" binding:"required"`
	Message string `json:"message"`
}

// FriendshipService connects users addressed by MC- uid.
type FriendshipService struct {
	Requests repository.FriendRequestStore
	Users    repository.UserStore
	Notifier Notifier
}

func NewFriendshipService(requests repository.FriendRequestStore, users repository.UserStore) *FriendshipService {
	return &FriendshipService{Requests: requests, Users: users}
}

// SendRequest invites toUID. When toUID already invited fromUID the two
// become friends straight away and the accepted request is returned.
func (s *FriendshipService) SendRequest(fromUID, toUID, message string) (*model.FriendRequest, error) {
	toUID = strings.TrimSpace(toUID)
	if err := util.ValidateUID(toUID); err != nil {
		return nil, err
	}
	if toUID == fromUID {
		return nil, util.ErrSelfInvite
	}

	target, err := s.Users.FindByID(toUID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if target.HasFriend(fromUID) {
		return nil, util.ErrAlreadyFriends
	}

	if _, err := s.Requests.FindPending(fromUID, toUID); err == nil {
		return nil, util.ErrDuplicateRequest
	}

	if reciprocal, err := s.Requests.FindPending(toUID, fromUID); err == nil {
		return s.Respond(reciprocal.ID, fromUID, true)
	}

	req := &model.FriendRequest{
		FromUID: fromUID,
		ToUID:   toUID,
		Status:  model.RequestPending,
		Message: strings.TrimSpace(message),
	}
	if err := s.Requests.Create(req); err != nil {
		return nil, err
	}
	notify(s.Notifier, toUID, "New Notification", fromUID+" sent you a connection request", model.NotifyInfo)
	logger.Log.Info("Friend request sent", zap.String("from", fromUID), zap.String("to", toUID))
	return req, nil
}

// Respond accepts or rejects a pending request addressed to receiverUID.
func (s *FriendshipService) Respond(requestID, receiverUID string, accept bool) (*model.FriendRequest, error) {
	req, err := s.Requests.FindByID(requestID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	if req.ToUID != receiverUID {
		return nil, util.ErrPermissionDenied
	}
	if req.Status != model.RequestPending {
		return nil, util.ErrRequestHandled
	}

	if accept {
		if err := s.Users.AddFriendship(req.FromUID, req.ToUID); err != nil {
			return nil, err
		}
		req.Status = model.RequestAccepted
	} else {
		req.Status = model.RequestRejected
	}
	if err := s.Requests.Update(req); err != nil {
		return nil, err
	}
	if accept {
		notify(s.Notifier, req.FromUID, "New Notification", req.ToUID+" accepted your request!", model.NotifySuccess)
	}
	return req, nil
}

func (s *FriendshipService) Friends(uid string) ([]model.User, error) {
	ids, err := s.Users.FriendIDs(uid)
	if err != nil {
		return nil, err
	}
	friends, err := s.Users.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	for i := range friends {
		friends[i].Friends = nil
	}
	return friends, nil
}

func (s *FriendshipService) PendingRequests(uid string) ([]model.FriendRequest, error) {
	return s.Requests.ListPendingFor(uid)
}

func (s *FriendshipService) SentRequests(uid string) ([]model.FriendRequest, error) {
	return s.Requests.ListSentBy(uid)
}

func (s *FriendshipService) RemoveFriend(uid, friendUID string) error {
	user, err := s.Users.FindByID(uid)
	if err != nil {
		return err
	}
	if !user.HasFriend(friendUID) {
		return util.ErrUserNotFound
	}
	return s.Users.RemoveFriendship(uid, friendUID)
}
