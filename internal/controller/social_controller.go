package controller

import (
	"mindclass_backend/internal/service"
	"mindclass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SocialController struct {
	FriendshipService *service.FriendshipService
}

func NewSocialController(friendships *service.FriendshipService) *SocialController {
	return &SocialController{FriendshipService: friendships}
}

type RespondRequest struct {
	Accept bool `json:"accept"`
}

// SendRequest godoc
// @Summary Invite a user by MC- id
// @Description A reciprocal pending invite is accepted instead of duplicated
// @Tags social
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SendRequestRequest true "Invite"
// @Success 201 {object} util.Response{data=model.FriendRequest}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/social/requests [post]
func (c *SocialController) SendRequest(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.SendRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	fr, err := c.FriendshipService.SendRequest(me.UserID, req.ToUID, req.Message)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, fr)
}

// Respond godoc
// @Summary Accept or reject an invite
// @Tags social
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Request ID"
// @Param body body RespondRequest true "Decision"
// @Success 200 {object} util.Response{data=model.FriendRequest}
// @Router /api/social/requests/{id} [put]
func (c *SocialController) Respond(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req RespondRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	fr, err := c.FriendshipService.Respond(ctx.Param("id"), me.UserID, req.Accept)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, fr)
}

// Requests godoc
// @Summary Pending invites
// @Tags social
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/social/requests [get]
func (c *SocialController) Requests(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	incoming, err := c.FriendshipService.PendingRequests(me.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	sent, err := c.FriendshipService.SentRequests(me.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"incoming": incoming, "sent": sent})
}

// Friends godoc
// @Summary My connections
// @Tags social
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/social/friends [get]
func (c *SocialController) Friends(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	friends, err := c.FriendshipService.Friends(me.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, friends)
}

// RemoveFriend godoc
// @Summary Remove a connection
// @Tags social
// @Produce json
// @Security ApiKeyAuth
// @Param uid path string true "Friend MC- id"
// @Success 200 {object} util.Response
// @Router /api/social/friends/{uid} [delete]
func (c *SocialController) RemoveFriend(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	if err := c.FriendshipService.RemoveFriend(me.UserID, ctx.Param("uid")); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
