package controller

import (
	"mindclass_backend/internal/service"
	"mindclass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notifications *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notifications}
}

// List godoc
// @Summary My notifications, newest first
// @Tags notifications
// @Produce json
// @Security ApiKeyAuth
// @Param unread query bool false "Only unread entries"
// @Success 200 {object} util.Response{data=[]model.Notification}
// @Router /api/notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	items, err := c.NotificationService.List(me.UserID, ctx.Query("unread") == "true")
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// MarkRead godoc
// @Summary Mark one notification read
// @Tags notifications
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	if err := c.NotificationService.MarkRead(me.UserID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// MarkAllRead godoc
// @Summary Mark every notification read
// @Tags notifications
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/notifications/read [put]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	if err := c.NotificationService.MarkAllRead(me.UserID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
