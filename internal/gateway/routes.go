package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/maximboltinov/ShareIt/internal/common/jsontime"
	"github.com/maximboltinov/ShareIt/internal/common/middleware"
	"github.com/maximboltinov/ShareIt/internal/common/validation"
	bookingDomain "github.com/maximboltinov/ShareIt/internal/domain/booking"
	"github.com/maximboltinov/ShareIt/internal/domain/itemrequest"
)

type bookItemRequest struct {
	ItemID int64          `json:"itemId" binding:"required,gt=0"`
	Start  *jsontime.Time `json:"start" binding:"required"`
	End    *jsontime.Time `json:"end" binding:"required"`
}

type userRequest struct {
	Name  string `json:"name" binding:"required,notblank"`
	Email string `json:"email" binding:"required,email"`
}

type userPatchRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type itemRequest struct {
	Name        string `json:"name" binding:"required,notblank"`
	Description string `json:"description" binding:"required,notblank"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId" binding:"omitempty,gt=0"`
}

type itemPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type commentRequest struct {
	Text string `json:"text" binding:"required,notblank"`
}

type itemRequestRequest struct {
	Description string `json:"description" binding:"required,notblank"`
}

// Gateway validates requests before handing them to the proxy.
type Gateway struct {
	proxy *Proxy
	now   func() time.Time
}

// NewGateway creates a Gateway forwarding through proxy.
func NewGateway(proxy *Proxy) *Gateway {
	validation.Register()
	return &Gateway{proxy: proxy, now: time.Now}
}

// RegisterRoutes registers the public API with its validation chain.
func (g *Gateway) RegisterRoutes(r *gin.RouterGroup) {
	caller := middleware.UserIDMiddleware()
	fwd := g.proxy.Forward

	bookings := r.Group("/bookings", caller)
	{
		bookings.POST("", g.validateBooking, fwd)
		bookings.PATCH("/:id", positiveID("id"), requireBool("approved"), fwd)
		bookings.GET("/:id", positiveID("id"), fwd)
		bookings.GET("", validState, validPaging, fwd)
		bookings.GET("/owner", validState, validPaging, fwd)
	}

	users := r.Group("/users")
	{
		users.POST("", validBody(func() interface{} { return &userRequest{} }), fwd)
		users.GET("", fwd)
		users.GET("/:id", positiveID("id"), fwd)
		users.PATCH("/:id", positiveID("id"), validBody(func() interface{} { return &userPatchRequest{} }), fwd)
		users.DELETE("/:id", positiveID("id"), fwd)
	}

	items := r.Group("/items")
	{
		items.GET("/search", validPaging, fwd)
		items.POST("", caller, validBody(func() interface{} { return &itemRequest{} }), fwd)
		items.GET("", caller, validPaging, fwd)
		items.GET("/:id", caller, positiveID("id"), fwd)
		items.PATCH("/:id", caller, positiveID("id"), validBody(func() interface{} { return &itemPatchRequest{} }), fwd)
		items.POST("/:id/comment", caller, positiveID("id"), validBody(func() interface{} { return &commentRequest{} }), fwd)
	}

	requests := r.Group("/requests", caller)
	{
		requests.POST("", validItemRequest, fwd)
		requests.GET("", fwd)
		requests.GET("/all", validPaging, fwd)
		requests.GET("/:id", positiveID("id"), fwd)
	}
}

// validateBooking checks the booking body against the same instant the server uses:
// start not before now, end after now.
func (g *Gateway) validateBooking(c *gin.Context) {
	var req bookItemRequest
	if !decodeBody(c, &req) {
		return
	}
	now := g.now()
	if req.Start.Before(now) {
		rejected(c, "start must not be in the past")
		return
	}
	if !req.End.After(now) {
		rejected(c, "end must be in the future")
		return
	}
	c.Next()
}

func validItemRequest(c *gin.Context) {
	var req itemRequestRequest
	if !decodeBody(c, &req) {
		return
	}
	if n := len([]rune(req.Description)); n > itemrequest.MaxDescriptionLength {
		rejected(c, fmt.Sprintf("description must be at most %d characters", itemrequest.MaxDescriptionLength))
		return
	}
	c.Next()
}

func validBody(newBody func() interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !decodeBody(c, newBody()) {
			return
		}
		c.Next()
	}
}

// decodeBody validates the JSON body into obj and restores it for the proxy.
func decodeBody(c *gin.Context, obj interface{}) bool {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		rejected(c, "failed to read request body")
		return false
	}
	_ = c.Request.Body.Close()
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	if err := json.Unmarshal(raw, obj); err != nil {
		rejected(c, "malformed JSON body: "+err.Error())
		return false
	}
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		rejected(c, validation.Message(err))
		return false
	}
	return true
}

func positiveID(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param(name), 10, 64)
		if err != nil || id <= 0 {
			rejected(c, name+" must be a positive integer")
			return
		}
		c.Next()
	}
}

func requireBool(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := strconv.ParseBool(c.Query(name)); err != nil {
			rejected(c, name+" must be true or false")
			return
		}
		c.Next()
	}
}

func validState(c *gin.Context) {
	if _, err := bookingDomain.ParseState(c.Query("state")); err != nil {
		rejected(c, err.Error())
		return
	}
	c.Next()
}

func validPaging(c *gin.Context) {
	if raw, ok := c.GetQuery("from"); ok {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			rejected(c, "from must not be negative")
			return
		}
	}
	if raw, ok := c.GetQuery("size"); ok {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			rejected(c, "size must be positive")
			return
		}
	}
	c.Next()
}
