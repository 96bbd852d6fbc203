package controller

import (
	"mindclass_backend/internal/service"
	"mindclass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
	AuthService      *service.AuthService
}

func NewDashboardController(dashboard *service.DashboardService, auth *service.AuthService) *DashboardController {
	return &DashboardController{DashboardService: dashboard, AuthService: auth}
}

// GetDashboard godoc
// @Summary Role specific dashboard
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Dashboard}
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	user, err := c.AuthService.GetCurrentUser(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	d, err := c.DashboardService.GetUserDashboard(user)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, d)
}
