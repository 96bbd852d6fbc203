package controller

import (
	"mindclass_backend/internal/service"
	"mindclass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignments *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignments}
}

// Create godoc
// @Summary Create an assignment
// @Description AI assignments draw their questions from the generator; the due date defaults to a week from now
// @Tags assignments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateAssignmentRequest true "Assignment"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Router /api/teacher/assignments [post]
func (c *AssignmentController) Create(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	a, err := c.AssignmentService.Create(ctx.Request.Context(), me.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, a)
}

// List godoc
// @Summary Assignments of my classrooms
// @Tags assignments
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.AssignmentView}
// @Router /api/assignments [get]
func (c *AssignmentController) List(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	list, err := c.AssignmentService.ListForUser(me.UserID, me.Role)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// Submit godoc
// @Summary Mark an assignment as submitted
// @Tags assignments
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Assignment ID"
// @Success 200 {object} util.Response{data=service.AssignmentView}
// @Router /api/student/assignments/{id}/submit [post]
func (c *AssignmentController) Submit(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	view, err := c.AssignmentService.Submit(me.UserID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
