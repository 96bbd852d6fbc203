package controller

import (
	"strconv"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/service"
	"mindclass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningPathController struct {
	LearningPathService *service.LearningPathService
}

func NewLearningPathController(paths *service.LearningPathService) *LearningPathController {
	return &LearningPathController{LearningPathService: paths}
}

type GeneratePathRequest struct {
	Goal string `json:"goal" binding:"required"`
}

type MarkDayRequest struct {
	Completed bool `json:"completed"`
}

// Generate godoc
// @Summary Draft a five day plan
// @Tags learning-paths
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body GeneratePathRequest true "Goal"
// @Success 200 {object} util.Response{data=model.LearningPath}
// @Router /api/learning-paths/generate [post]
func (c *LearningPathController) Generate(ctx *gin.Context) {
	var req GeneratePathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	path, err := c.LearningPathService.Generate(ctx.Request.Context(), req.Goal)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, path)
}

// Save godoc
// @Summary Save a plan
// @Tags learning-paths
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.LearningPath true "Plan"
// @Success 201 {object} util.Response{data=model.LearningPath}
// @Router /api/learning-paths [post]
func (c *LearningPathController) Save(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req model.LearningPath
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	path, err := c.LearningPathService.Save(me.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, path)
}

// List godoc
// @Summary My plans
// @Tags learning-paths
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.LearningPath}
// @Router /api/learning-paths [get]
func (c *LearningPathController) List(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	paths, err := c.LearningPathService.List(me.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, paths)
}

// Get godoc
// @Summary Plan detail
// @Tags learning-paths
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Plan ID"
// @Success 200 {object} util.Response
// @Router /api/learning-paths/{id} [get]
func (c *LearningPathController) Get(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	path, err := c.LearningPathService.Get(me.UserID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"path": path, "progress": path.Progress()})
}

// MarkDay godoc
// @Summary Mark a day done or not done
// @Tags learning-paths
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Plan ID"
// @Param day path int true "Day number"
// @Param body body MarkDayRequest true "State"
// @Success 200 {object} util.Response{data=model.LearningPath}
// @Router /api/learning-paths/{id}/days/{day} [put]
func (c *LearningPathController) MarkDay(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	day, err := strconv.Atoi(ctx.Param("day"))
	if err != nil {
		util.BadRequest(ctx, "day must be a number")
		return
	}
	var req MarkDayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	path, err := c.LearningPathService.MarkDay(me.UserID, ctx.Param("id"), day, req.Completed)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, path)
}
