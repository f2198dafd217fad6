package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/maximboltinov/ShareIt/internal/application"
	"github.com/maximboltinov/ShareIt/internal/common/middleware"
	"github.com/maximboltinov/ShareIt/internal/common/response"
)

const defaultItemPageSize = 20

// ItemUseCases is the part of the item service the HTTP layer needs.
type ItemUseCases interface {
	CreateItem(ctx context.Context, ownerID int64, req application.CreateItemRequest) (*application.ItemDTO, error)
	UpdateItem(ctx context.Context, ownerID, itemID int64, req application.UpdateItemRequest) (*application.ItemDTO, error)
	GetItem(ctx context.Context, itemID, userID int64) (*application.ItemDetailsDTO, error)
	GetOwnerItems(ctx context.Context, ownerID int64, from, size int) ([]application.ItemDetailsDTO, error)
	SearchItems(ctx context.Context, text string, from, size int) ([]application.ItemDTO, error)
	AddComment(ctx context.Context, authorID, itemID int64, req application.CreateCommentRequest) (*application.CommentDTO, error)
}

// ItemHandler handles HTTP requests for the item catalog and comments.
type ItemHandler struct {
	service ItemUseCases
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service ItemUseCases) *ItemHandler {
	return &ItemHandler{service: service}
}

// RegisterRoutes registers item routes. Search is public; everything else needs the caller header.
func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/items")
	items.GET("/search", h.SearchItems)

	authed := items.Group("")
	authed.Use(middleware.UserIDMiddleware())
	{
		authed.POST("", h.CreateItem)
		authed.GET("", h.ListOwnerItems)
		authed.GET("/:id", h.GetItem)
		authed.PATCH("/:id", h.UpdateItem)
		authed.POST("/:id/comment", h.AddComment)
	}
}

// CreateItem handles POST /items.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.CreateItem(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateItem handles PATCH /items/:id.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := parseID(c, "id", "item")
	if !ok {
		return
	}

	var req application.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.UpdateItem(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetItem handles GET /items/:id.
func (h *ItemHandler) GetItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := parseID(c, "id", "item")
	if !ok {
		return
	}

	result, err := h.service.GetItem(c.Request.Context(), itemID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListOwnerItems handles GET /items?from=&size=.
func (h *ItemHandler) ListOwnerItems(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	from, size, ok := parsePaging(c, defaultItemPageSize)
	if !ok {
		return
	}

	result, err := h.service.GetOwnerItems(c.Request.Context(), userID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SearchItems handles GET /items/search?text=&from=&size=.
func (h *ItemHandler) SearchItems(c *gin.Context) {
	from, size, ok := parsePaging(c, defaultItemPageSize)
	if !ok {
		return
	}

	result, err := h.service.SearchItems(c.Request.Context(), c.Query("text"), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddComment handles POST /items/:id/comment.
func (h *ItemHandler) AddComment(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := parseID(c, "id", "item")
	if !ok {
		return
	}

	var req application.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.AddComment(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
