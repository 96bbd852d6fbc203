package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrTestNotFound         = errors.New("test not found")
	ErrInvalidTransition    = errors.New("invalid test status transition")
	ErrClassroomNotFound    = errors.New("classroom not found")
	ErrInvalidClassCode     = errors.New("invalid class code")
	ErrAlreadyJoined        = errors.New("already joined")
	ErrRequestNotFound      = errors.New("friend request not found")
	ErrRequestHandled       = errors.New("friend request already handled")
	ErrAlreadyFriends       = errors.New("already connected")
	ErrDuplicateRequest     = errors.New("request already pending")
	ErrSelfInvite           = errors.New("cannot invite yourself")
	ErrItemNotFound         = errors.New("library item not found")
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrPathNotFound         = errors.New("learning path not found")
	ErrGenerationFailed     = errors.New("content generation failed, please try again")
	ErrInvalidTimeLimit     = errors.New("time limit must be between 1 and 1440 minutes")
	ErrEmptyTest            = errors.New("a test needs at least one question")
	ErrCodeExhausted        = errors.New("could not allocate a unique access code")
	ErrNotificationNotFound = errors.New("notification not found")
)
