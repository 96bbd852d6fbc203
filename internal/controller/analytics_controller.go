package controller

import (
	"mindclass_backend/internal/service"
	"mindclass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analytics *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analytics}
}

// Overview godoc
// @Summary Summary of all my tests
// @Tags analytics
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.TestAnalytics}
// @Router /api/teacher/analytics [get]
func (c *AnalyticsController) Overview(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	list, err := c.AnalyticsService.ForCreator(me.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// ForTest godoc
// @Summary Results sheet of one test
// @Tags analytics
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Success 200 {object} util.Response{data=service.TestAnalytics}
// @Router /api/teacher/analytics/tests/{id} [get]
func (c *AnalyticsController) ForTest(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	a, err := c.AnalyticsService.ForTest(me.UserID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, a)
}
