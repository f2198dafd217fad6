package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maximboltinov/ShareIt/internal/application"
	"github.com/maximboltinov/ShareIt/internal/common/middleware"
	"github.com/maximboltinov/ShareIt/internal/common/response"
	bookingDomain "github.com/maximboltinov/ShareIt/internal/domain/booking"
)

const (
	defaultBookerPageSize = 10
	defaultOwnerPageSize  = 20
)

// BookingUseCases is the part of the booking service the HTTP layer needs.
type BookingUseCases interface {
	CreateBooking(ctx context.Context, bookerID int64, req application.CreateBookingRequest) (*application.BookingDTO, error)
	ApproveBooking(ctx context.Context, ownerID, bookingID int64, approved bool) (*application.BookingDTO, error)
	GetBooking(ctx context.Context, userID, bookingID int64) (*application.BookingDTO, error)
	GetBookerBookings(ctx context.Context, bookerID int64, state bookingDomain.State, from, size int) ([]application.BookingDTO, error)
	GetOwnerBookings(ctx context.Context, ownerID int64, state bookingDomain.State, from, size int) ([]application.BookingDTO, error)
}

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service BookingUseCases
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service BookingUseCases) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.UserIDMiddleware())
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookerBookings)
		bookings.GET("/owner", h.ListOwnerBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.ApproveBooking)
	}
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ApproveBooking handles PATCH /bookings/:id?approved=true|false.
func (h *BookingHandler) ApproveBooking(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	bookingID, ok := parseID(c, "id", "booking")
	if !ok {
		return
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "approved must be true or false")
		return
	}

	result, err := h.service.ApproveBooking(c.Request.Context(), userID, bookingID, approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBooking handles GET /bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	bookingID, ok := parseID(c, "id", "booking")
	if !ok {
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListBookerBookings handles GET /bookings?state=&from=&size=.
func (h *BookingHandler) ListBookerBookings(c *gin.Context) {
	h.list(c, defaultBookerPageSize, h.service.GetBookerBookings)
}

// ListOwnerBookings handles GET /bookings/owner?state=&from=&size=.
func (h *BookingHandler) ListOwnerBookings(c *gin.Context) {
	h.list(c, defaultOwnerPageSize, h.service.GetOwnerBookings)
}

type listFunc func(ctx context.Context, userID int64, state bookingDomain.State, from, size int) ([]application.BookingDTO, error)

func (h *BookingHandler) list(c *gin.Context, defaultSize int, fetch listFunc) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	state, err := bookingDomain.ParseState(c.DefaultQuery("state", string(bookingDomain.StateAll)))
	if err != nil {
		response.Error(c, err)
		return
	}
	from, size, ok := parsePaging(c, defaultSize)
	if !ok {
		return
	}

	result, err := fetch(c.Request.Context(), userID, state, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
