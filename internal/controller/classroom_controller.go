package controller

import (
	"mindclass_backend/internal/service"
	"mindclass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ClassroomController struct {
	ClassroomService  *service.ClassroomService
	AssignmentService *service.AssignmentService
}

func NewClassroomController(classrooms *service.ClassroomService, assignments *service.AssignmentService) *ClassroomController {
	return &ClassroomController{ClassroomService: classrooms, AssignmentService: assignments}
}

type JoinClassroomRequest struct {
	Code string `json:"code" binding:"required"`
}

// Create godoc
// @Summary Create a classroom
// @Tags classrooms
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateClassroomRequest true "Classroom"
// @Success 201 {object} util.Response{data=model.Classroom}
// @Router /api/teacher/classrooms [post]
func (c *ClassroomController) Create(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.CreateClassroomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	class, err := c.ClassroomService.Create(me.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, class)
}

// Join godoc
// @Summary Join a classroom by code
// @Tags classrooms
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body JoinClassroomRequest true "Class code"
// @Success 200 {object} util.Response{data=model.Classroom}
// @Failure 400 {object} util.Response "invalid class code"
// @Failure 409 {object} util.Response "already joined"
// @Router /api/student/classrooms/join [post]
func (c *ClassroomController) Join(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req JoinClassroomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	class, err := c.ClassroomService.Join(me.UserID, req.Code)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, class)
}

// List godoc
// @Summary My classrooms
// @Description Teachers get the classrooms they own, students the ones they joined
// @Tags classrooms
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Classroom}
// @Router /api/classrooms [get]
func (c *ClassroomController) List(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	list, err := c.ClassroomService.ListForUser(me.UserID, me.Role)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// Get godoc
// @Summary Classroom detail with its assignments
// @Tags classrooms
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Classroom ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id} [get]
func (c *ClassroomController) Get(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	class, err := c.ClassroomService.Get(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if class.TeacherID != me.UserID && !class.HasStudent(me.UserID) {
		util.Forbidden(ctx)
		return
	}
	assignments, err := c.AssignmentService.ListByClassroom(class.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"classroom": class, "assignments": assignments})
}
