package controller

import (
	"strconv"

	"mindclass_backend/internal/model"
	"mindclass_backend/internal/service"
	"mindclass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	TestService *service.TestService
}

func NewTestController(testService *service.TestService) *TestController {
	return &TestController{TestService: testService}
}

// TestSummary is a live test as listed to students. Questions and the
// access code stay hidden.
type TestSummary struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Subject       string             `json:"subject"`
	QuestionCount int                `json:"questionCount"`
	Settings      model.TestSettings `json:"settings"`
}

// CreateManual godoc
// @Summary Create a manual test
// @Description Questions are free text; the test starts as DRAFT with a fresh access code
// @Tags tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateManualTestRequest true "Test"
// @Success 201 {object} util.Response{data=model.Test}
// @Failure 400 {object} util.Response
// @Router /api/teacher/tests [post]
func (c *TestController) CreateManual(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.CreateManualTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	test, err := c.TestService.CreateManual(me.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, test)
}

// CreateAI godoc
// @Summary Generate a test
// @Tags tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateAITestRequest true "Topic"
// @Success 201 {object} util.Response{data=model.Test}
// @Failure 502 {object} util.Response
// @Router /api/teacher/tests/ai [post]
func (c *TestController) CreateAI(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.CreateAITestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	test, err := c.TestService.CreateFromAI(ctx.Request.Context(), me.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, test)
}

// ListMine godoc
// @Summary My tests
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Test}
// @Router /api/teacher/tests [get]
func (c *TestController) ListMine(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	tests, err := c.TestService.ListByCreator(me.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// Get godoc
// @Summary Test detail
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Success 200 {object} util.Response{data=model.Test}
// @Failure 404 {object} util.Response
// @Router /api/teacher/tests/{id} [get]
func (c *TestController) Get(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	test, err := c.TestService.Get(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if test.CreatorID != me.UserID && me.Role != model.Admin {
		util.Forbidden(ctx)
		return
	}
	util.Success(ctx, test)
}

// GoLive godoc
// @Summary Publish a draft test
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Success 200 {object} util.Response{data=model.Test}
// @Failure 409 {object} util.Response
// @Router /api/teacher/tests/{id}/live [post]
func (c *TestController) GoLive(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	test, err := c.TestService.GoLive(me.UserID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// End godoc
// @Summary End a live test
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Success 200 {object} util.Response{data=model.Test}
// @Failure 409 {object} util.Response
// @Router /api/teacher/tests/{id}/end [post]
func (c *TestController) End(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	test, err := c.TestService.End(me.UserID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// ExportPDF godoc
// @Summary Export a printable paper
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Test ID"
// @Param answers query bool false "Include the answer key"
// @Success 200 {object} util.Response
// @Router /api/teacher/tests/{id}/pdf [post]
func (c *TestController) ExportPDF(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	withAnswers, _ := strconv.ParseBool(ctx.DefaultQuery("answers", "false"))
	url, err := c.TestService.ExportPDF(ctx.Request.Context(), me.UserID, ctx.Param("id"), withAnswers)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// ListLive godoc
// @Summary Live tests
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]TestSummary}
// @Router /api/tests/live [get]
func (c *TestController) ListLive(ctx *gin.Context) {
	tests, err := c.TestService.ListLive()
	if err != nil {
		respondError(ctx, err)
		return
	}
	out := make([]TestSummary, 0, len(tests))
	for _, t := range tests {
		out = append(out, TestSummary{
			ID:            t.ID,
			Title:         t.Title,
			Subject:       t.Subject,
			QuestionCount: len(t.Questions),
			Settings:      t.Settings,
		})
	}
	util.Success(ctx, out)
}
