package controller

import (
	"context"
	"errors"
	"net/http"

	"mindclass_backend/internal/generation"
	"mindclass_backend/internal/service"
	"mindclass_backend/internal/session"
	"mindclass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// errorStatus classifies domain errors. The first class err matches wins.
var errorStatus = []struct {
	status int
	errs   []error
}{
	{http.StatusNotFound, []error{
		util.ErrUserNotFound,
		util.ErrTestNotFound,
		util.ErrClassroomNotFound,
		util.ErrRequestNotFound,
		util.ErrItemNotFound,
		util.ErrAssignmentNotFound,
		util.ErrPathNotFound,
		util.ErrNotificationNotFound,
	}},
	{http.StatusForbidden, []error{util.ErrPermissionDenied}},
	{http.StatusConflict, []error{
		util.ErrInvalidTransition,
		util.ErrAlreadyJoined,
		util.ErrAlreadyFriends,
		util.ErrDuplicateRequest,
		util.ErrRequestHandled,
		session.ErrAlreadySubmitted,
	}},
	{http.StatusBadRequest, []error{
		util.ErrInvalidClassCode,
		util.ErrUIDPrefix,
		util.ErrUIDFormat,
		util.ErrSelfInvite,
		util.ErrInvalidTimeLimit,
		util.ErrEmptyTest,
		session.ErrInvalidCode,
		session.ErrNotTaking,
		session.ErrUnknownQuestion,
		session.ErrNoResult,
		session.ErrWrongView,
		session.ErrTimeLimit,
		service.ErrInvalidRole,
		service.ErrInvalidContentType,
		service.ErrDayOutOfRange,
		service.ErrUnknownAction,
		service.ErrImageTooLarge,
		service.ErrNotAnImage,
		generation.ErrInvalidPayload,
	}},
	{http.StatusBadGateway, []error{util.ErrGenerationFailed}},
	{http.StatusRequestTimeout, []error{context.Canceled}},
}

// statusOf returns the status for a known error, or 0.
func statusOf(err error) int {
	for _, class := range errorStatus {
		for _, target := range class.errs {
			if errors.Is(err, target) {
				return class.status
			}
		}
	}
	return 0
}

// respondError maps domain errors onto status codes. Anything unknown is
// logged and answered with a 500.
func respondError(ctx *gin.Context, err error) {
	switch status := statusOf(err); status {
	case 0:
		util.LogInternalError(ctx, err)
	case http.StatusForbidden:
		util.Forbidden(ctx)
	case http.StatusRequestTimeout:
		util.Error(ctx, status, "request cancelled")
	default:
		util.Error(ctx, status, err.Error())
	}
}

// currentUser aborts with 401 when the request carries no identity.
func currentUser(ctx *gin.Context) (*util.Claims, bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return nil, false
	}
	return user, true
}
