package controller

import (
	"mindclass_backend/internal/service"
	"mindclass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Login godoc
// @Summary Sign in
// @Description Signs in as the account owning the email, creating it with a fresh MC- uid on first use
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.LoginRequest true "Identity"
// @Success 200 {object} util.Response{data=service.LoginResponse}
// @Failure 400 {object} util.Response
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Login(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// GetProfile godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user, err := c.AuthService.GetCurrentUser(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
