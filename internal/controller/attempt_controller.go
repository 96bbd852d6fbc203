package controller

import (
	"errors"
	"net/http"

	"mindclass_backend/internal/service"
	"mindclass_backend/internal/session"
	"mindclass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	Sessions *service.SessionService
}

func NewAttemptController(sessions *service.SessionService) *AttemptController {
	return &AttemptController{Sessions: sessions}
}

type JoinRequest struct {
	Code string `json:"code" binding:"required"`
}

type AnswerRequest struct {
	QuestionID *int   `json:"questionId" binding:"required"`
	Value      string `json:"value"`
}

type AuthorRequest struct {
	Action string `json:"action" binding:"required,oneof=begin ai manual finish cancel"`
}

// reply answers with the snapshot and maps err when present.
func reply(ctx *gin.Context, snap session.Snapshot, err error) {
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, snap)
}

// Join godoc
// @Summary Join a live test
// @Description The code must match a LIVE test exactly
// @Tags attempt
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body JoinRequest true "Access code"
// @Success 200 {object} util.Response{data=session.Snapshot}
// @Failure 400 {object} util.Response
// @Router /api/student/attempt/join [post]
func (c *AttemptController) Join(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req JoinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	snap, err := c.Sessions.Join(me.UserID, req.Code)
	reply(ctx, snap, err)
}

// State godoc
// @Summary Current attempt
// @Tags attempt
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=session.Snapshot}
// @Router /api/student/attempt [get]
func (c *AttemptController) State(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	util.Success(ctx, c.Sessions.State(me.UserID))
}

// Answer godoc
// @Summary Select an answer
// @Tags attempt
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AnswerRequest true "Answer"
// @Success 200 {object} util.Response{data=session.Snapshot}
// @Router /api/student/attempt/answer [put]
func (c *AttemptController) Answer(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	snap, err := c.Sessions.Answer(me.UserID, *req.QuestionID, req.Value)
	reply(ctx, snap, err)
}

// RequestSubmit godoc
// @Summary Open the submit confirmation
// @Tags attempt
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=session.Snapshot}
// @Router /api/student/attempt/confirm [post]
func (c *AttemptController) RequestSubmit(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	snap, err := c.Sessions.RequestSubmit(me.UserID)
	reply(ctx, snap, err)
}

// CancelSubmit godoc
// @Summary Close the submit confirmation
// @Tags attempt
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=session.Snapshot}
// @Router /api/student/attempt/confirm [delete]
func (c *AttemptController) CancelSubmit(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	snap, err := c.Sessions.CancelSubmit(me.UserID)
	reply(ctx, snap, err)
}

// Submit godoc
// @Summary Submit the attempt
// @Description A repeated submit answers 409 with the original result
// @Tags attempt
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.TestResult}
// @Failure 409 {object} util.Response{data=model.TestResult}
// @Router /api/student/attempt/submit [post]
func (c *AttemptController) Submit(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	result, err := c.Sessions.Submit(me.UserID)
	if errors.Is(err, session.ErrAlreadySubmitted) {
		ctx.JSON(http.StatusConflict, util.Response{Code: http.StatusConflict, Message: err.Error(), Data: result})
		return
	}
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// ReturnToList godoc
// @Summary Leave the result view
// @Tags attempt
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=session.Snapshot}
// @Router /api/student/attempt/return [post]
func (c *AttemptController) ReturnToList(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	snap, err := c.Sessions.ReturnToList(me.UserID)
	reply(ctx, snap, err)
}

// Leave godoc
// @Summary Abandon the attempt
// @Tags attempt
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/student/attempt [delete]
func (c *AttemptController) Leave(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	c.Sessions.Leave(me.UserID)
	util.Success(ctx, nil)
}

// Results godoc
// @Summary My results
// @Tags attempt
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.TestResult}
// @Router /api/student/results [get]
func (c *AttemptController) Results(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	results, err := c.Sessions.ResultsFor(me.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// Stream godoc
// @Summary Live countdown
// @Description Streams the attempt snapshot every countdown second and accepts ANSWER, REQUEST_SUBMIT, CANCEL_SUBMIT and SUBMIT messages
// @Tags attempt
// @Security ApiKeyAuth
// @Param token query string true "JWT Token"
// @Success 101 {string} string "Switching Protocols"
// @Router /api/student/attempt/ws [get]
func (c *AttemptController) Stream(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	service.ServeAttempt(c.Sessions, ctx.Writer, ctx.Request, me.UserID)
}

// Author godoc
// @Summary Move through the test authoring views
// @Tags attempt
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AuthorRequest true "Step"
// @Success 200 {object} util.Response{data=session.Snapshot}
// @Router /api/teacher/authoring [post]
func (c *AttemptController) Author(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req AuthorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	snap, err := c.Sessions.Author(me.UserID, req.Action)
	reply(ctx, snap, err)
}
