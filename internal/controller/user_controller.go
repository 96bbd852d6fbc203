package controller

import (
	"mindclass_backend/internal/service"
	"mindclass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetUser godoc
// @Summary View a user
// @Description Private profiles are only shown to friends
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param uid path string true "MC- user id"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /api/users/{uid} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	user, err := c.UserService.PublicView(me.UserID, ctx.Param("uid"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UpdateProfile godoc
// @Summary Update my profile
// @Description Returns the completion percentage and whether this update completed the profile
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.UpdateProfileRequest true "Profile"
// @Success 200 {object} util.Response{data=service.ProfileUpdate}
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	res, err := c.UserService.UpdateProfile(me.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// TogglePrivacy godoc
// @Summary Toggle profile visibility
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/user/privacy [post]
func (c *UserController) TogglePrivacy(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	user, err := c.UserService.TogglePrivacy(me.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
