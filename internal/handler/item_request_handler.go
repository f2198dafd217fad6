package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/maximboltinov/ShareIt/internal/application"
	"github.com/maximboltinov/ShareIt/internal/common/middleware"
	"github.com/maximboltinov/ShareIt/internal/common/response"
)

const defaultRequestPageSize = 20

// ItemRequestUseCases is the part of the item request service the HTTP layer needs.
type ItemRequestUseCases interface {
	CreateRequest(ctx context.Context, authorID int64, req application.CreateItemRequestRequest) (*application.ItemRequestDTO, error)
	GetOwnRequests(ctx context.Context, authorID int64) ([]application.ItemRequestDTO, error)
	GetOtherRequests(ctx context.Context, userID int64, from, size int) ([]application.ItemRequestDTO, error)
	GetRequest(ctx context.Context, requestID, userID int64) (*application.ItemRequestDTO, error)
}

// ItemRequestHandler handles HTTP requests for item requests.
type ItemRequestHandler struct {
	service ItemRequestUseCases
}

// NewItemRequestHandler creates a new ItemRequestHandler.
func NewItemRequestHandler(service ItemRequestUseCases) *ItemRequestHandler {
	return &ItemRequestHandler{service: service}
}

// RegisterRoutes registers item request routes.
func (h *ItemRequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/requests")
	requests.Use(middleware.UserIDMiddleware())
	{
		requests.POST("", h.CreateRequest)
		requests.GET("", h.ListOwnRequests)
		requests.GET("/all", h.ListOtherRequests)
		requests.GET("/:id", h.GetRequest)
	}
}

// CreateRequest handles POST /requests.
func (h *ItemRequestHandler) CreateRequest(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateItemRequestRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.CreateRequest(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListOwnRequests handles GET /requests.
func (h *ItemRequestHandler) ListOwnRequests(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.service.GetOwnRequests(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListOtherRequests handles GET /requests/all?from=&size=.
func (h *ItemRequestHandler) ListOtherRequests(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	from, size, ok := parsePaging(c, defaultRequestPageSize)
	if !ok {
		return
	}

	result, err := h.service.GetOtherRequests(c.Request.Context(), userID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetRequest handles GET /requests/:id.
func (h *ItemRequestHandler) GetRequest(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	requestID, ok := parseID(c, "id", "request")
	if !ok {
		return
	}

	result, err := h.service.GetRequest(c.Request.Context(), requestID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
