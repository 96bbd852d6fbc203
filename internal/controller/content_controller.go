package controller

import (
	"io"
	"net/http"

	"mindclass_backend/internal/service"
	"mindclass_backend/internal/util"
	"mindclass_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(content *service.ContentService) *ContentController {
	return &ContentController{ContentService: content}
}

type EbookRequest struct {
	Topic string `json:"topic" binding:"required"`
	Save  bool   `json:"save"`
}

type CareerRequest struct {
	Interests string `json:"interests" binding:"required"`
}

// Video godoc
// @Summary Generate a video script
// @Tags content
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.VideoScriptRequest true "Topic and format"
// @Success 200 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/content/video [post]
func (c *ContentController) Video(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.VideoScriptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	out, err := c.ContentService.VideoScript(ctx.Request.Context(), me.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// Presentation godoc
// @Summary Generate slides
// @Tags content
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.PresentationRequest true "Topic"
// @Success 200 {object} util.Response
// @Router /api/content/presentation [post]
func (c *ContentController) Presentation(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.PresentationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	out, err := c.ContentService.Presentation(ctx.Request.Context(), me.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// Notes godoc
// @Summary Generate revision notes
// @Tags content
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.NotesRequest true "Topic"
// @Success 200 {object} util.Response
// @Router /api/content/notes [post]
func (c *ContentController) Notes(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.NotesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	out, err := c.ContentService.Notes(ctx.Request.Context(), me.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// Ebook godoc
// @Summary Stream an ebook
// @Description Server-sent events: "chunk" events carry markdown, a final "done" event carries the saved item if any
// @Tags content
// @Accept json
// @Produce text/event-stream
// @Security ApiKeyAuth
// @Param body body EbookRequest true "Topic"
// @Success 200 {string} string "event stream"
// @Router /api/content/ebook [post]
func (c *ContentController) Ebook(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req EbookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Status(http.StatusOK)

	item, err := c.ContentService.Ebook(ctx.Request.Context(), me.UserID, req.Topic, req.Save, func(chunk string) error {
		ctx.SSEvent("chunk", chunk)
		ctx.Writer.Flush()
		return nil
	})
	if err != nil {
		logger.Log.Warn("Ebook stream ended early", zap.String("topic", req.Topic), zap.Error(err))
		ctx.SSEvent("error", err.Error())
		ctx.Writer.Flush()
		return
	}
	ctx.SSEvent("done", gin.H{"item": item})
	ctx.Writer.Flush()
}

// Doubt godoc
// @Summary Ask a question, optionally with a photo
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param question formData string true "Question"
// @Param image formData file false "Image"
// @Success 200 {object} util.Response
// @Router /api/content/doubt [post]
func (c *ContentController) Doubt(ctx *gin.Context) {
	question := ctx.PostForm("question")
	if question == "" {
		util.BadRequest(ctx, "question is required")
		return
	}

	var image []byte
	if fh, err := ctx.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
		defer f.Close()
		image, err = io.ReadAll(io.LimitReader(f, util.MaxDoubtImageBytes+1))
		if err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	answer, err := c.ContentService.Doubt(ctx.Request.Context(), question, image)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"answer": answer})
}

// Career godoc
// @Summary Suggest career paths
// @Tags content
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CareerRequest true "Interests"
// @Success 200 {object} util.Response
// @Router /api/content/career [post]
func (c *ContentController) Career(ctx *gin.Context) {
	var req CareerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	advice, err := c.ContentService.CareerPath(ctx.Request.Context(), req.Interests)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"markdown": advice})
}

// VideoPreview godoc
// @Summary Render a short preview clip
// @Description Blocks until the clip is ready, which can take minutes.
// @Tags content
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.VideoPreviewRequest true "Prompt"
// @Success 200 {object} util.Response{data=model.VideoClip}
// @Failure 502 {object} util.Response
// @Router /api/content/video/preview [post]
func (c *ContentController) VideoPreview(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.VideoPreviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	clip, err := c.ContentService.VideoPreview(ctx.Request.Context(), me.UserID, req.Prompt)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, clip)
}

// PracticeTest godoc
// @Summary Generate a self-graded practice test
// @Tags content
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.PracticeTestRequest true "Topic and difficulty"
// @Success 200 {object} util.Response{data=model.GeneratedTest}
// @Router /api/content/practice-test [post]
func (c *ContentController) PracticeTest(ctx *gin.Context) {
	if _, ok := currentUser(ctx); !ok {
		return
	}
	var req service.PracticeTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	test, err := c.ContentService.PracticeTest(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// GradePractice godoc
// @Summary Score a practice test
// @Tags content
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.GradePracticeRequest true "Questions and answers"
// @Success 200 {object} util.Response{data=service.PracticeResult}
// @Router /api/content/practice-test/grade [post]
func (c *ContentController) GradePractice(ctx *gin.Context) {
	if _, ok := currentUser(ctx); !ok {
		return
	}
	var req service.GradePracticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	res, err := c.ContentService.GradePractice(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
