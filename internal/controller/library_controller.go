package controller

import (
	"mindclass_backend/internal/model"
	"mindclass_backend/internal/service"
	"mindclass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LibraryController struct {
	LibraryService *service.LibraryService
}

func NewLibraryController(library *service.LibraryService) *LibraryController {
	return &LibraryController{LibraryService: library}
}

// Add godoc
// @Summary Save an item to my library
// @Tags library
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AddLibraryItemRequest true "Item"
// @Success 201 {object} util.Response{data=model.LibraryItem}
// @Router /api/library [post]
func (c *LibraryController) Add(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.AddLibraryItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	item, err := c.LibraryService.Add(me.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, item)
}

// List godoc
// @Summary My library
// @Tags library
// @Produce json
// @Security ApiKeyAuth
// @Param type query string false "VIDEO, EBOOK, NOTES, PPT or SMART_NOTE"
// @Success 200 {object} util.Response{data=[]model.LibraryItem}
// @Router /api/library [get]
func (c *LibraryController) List(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	items, err := c.LibraryService.List(me.UserID, model.ContentType(ctx.Query("type")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// Get godoc
// @Summary Library item
// @Tags library
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Item ID"
// @Success 200 {object} util.Response{data=model.LibraryItem}
// @Router /api/library/{id} [get]
func (c *LibraryController) Get(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	item, err := c.LibraryService.Get(me.UserID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, item)
}

// Delete godoc
// @Summary Remove a library item
// @Tags library
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Item ID"
// @Success 200 {object} util.Response
// @Router /api/library/{id} [delete]
func (c *LibraryController) Delete(ctx *gin.Context) {
	me, ok := currentUser(ctx)
	if !ok {
		return
	}
	if err := c.LibraryService.Delete(me.UserID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
