package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/maximboltinov/ShareIt/internal/application"
	"github.com/maximboltinov/ShareIt/internal/common/validation"
	bookingDomain "github.com/maximboltinov/ShareIt/internal/domain/booking"
)

type stubBookings struct {
	createReq  application.CreateBookingRequest
	approved   *bool
	listState  bookingDomain.State
	listFrom   int
	listSize   int
	listCaller int64
	err        error
}

func (s *stubBookings) CreateBooking(_ context.Context, _ int64, req application.CreateBookingRequest) (*application.BookingDTO, error) {
	s.createReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &application.BookingDTO{ID: 1, Status: "WAITING"}, nil
}

func (s *stubBookings) ApproveBooking(_ context.Context, _, id int64, approved bool) (*application.BookingDTO, error) {
	s.approved = &approved
	if s.err != nil {
		return nil, s.err
	}
	return &application.BookingDTO{ID: id, Status: "APPROVED"}, nil
}

func (s *stubBookings) GetBooking(_ context.Context, _, id int64) (*application.BookingDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &application.BookingDTO{ID: id}, nil
}

func (s *stubBookings) GetBookerBookings(_ context.Context, userID int64, state bookingDomain.State, from, size int) ([]application.BookingDTO, error) {
	s.listCaller, s.listState, s.listFrom, s.listSize = userID, state, from, size
	return []application.BookingDTO{}, s.err
}

func (s *stubBookings) GetOwnerBookings(ctx context.Context, userID int64, state bookingDomain.State, from, size int) ([]application.BookingDTO, error) {
	return s.GetBookerBookings(ctx, userID, state, from, size)
}

type stubUsers struct {
	created application.CreateUserRequest
	err     error
}

func (s *stubUsers) CreateUser(_ context.Context, req application.CreateUserRequest) (*application.UserDTO, error) {
	s.created = req
	if s.err != nil {
		return nil, s.err
	}
	return &application.UserDTO{ID: 1, Name: req.Name, Email: req.Email}, nil
}

func (s *stubUsers) GetUser(_ context.Context, id int64) (*application.UserDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &application.UserDTO{ID: id}, nil
}

func (s *stubUsers) ListUsers(context.Context) ([]application.UserDTO, error) {
	return []application.UserDTO{}, s.err
}

func (s *stubUsers) UpdateUser(_ context.Context, id int64, _ application.UpdateUserRequest) (*application.UserDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &application.UserDTO{ID: id}, nil
}

func (s *stubUsers) DeleteUser(context.Context, int64) error { return s.err }

type stubItems struct {
	searchText string
	from, size int
	err        error
}

func (s *stubItems) CreateItem(_ context.Context, _ int64, req application.CreateItemRequest) (*application.ItemDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &application.ItemDTO{ID: 1, Name: req.Name, Available: *req.Available}, nil
}

func (s *stubItems) UpdateItem(_ context.Context, _, id int64, _ application.UpdateItemRequest) (*application.ItemDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &application.ItemDTO{ID: id}, nil
}

func (s *stubItems) GetItem(_ context.Context, id, _ int64) (*application.ItemDetailsDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &application.ItemDetailsDTO{ID: id, Comments: []application.CommentDTO{}}, nil
}

func (s *stubItems) GetOwnerItems(_ context.Context, _ int64, from, size int) ([]application.ItemDetailsDTO, error) {
	s.from, s.size = from, size
	return []application.ItemDetailsDTO{}, s.err
}

func (s *stubItems) SearchItems(_ context.Context, text string, from, size int) ([]application.ItemDTO, error) {
	s.searchText, s.from, s.size = text, from, size
	return []application.ItemDTO{}, s.err
}

func (s *stubItems) AddComment(_ context.Context, _, _ int64, req application.CreateCommentRequest) (*application.CommentDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &application.CommentDTO{ID: 1, Text: req.Text}, nil
}

type stubRequests struct {
	from, size int
	err        error
}

func (s *stubRequests) CreateRequest(_ context.Context, _ int64, req application.CreateItemRequestRequest) (*application.ItemRequestDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &application.ItemRequestDTO{ID: 1, Description: req.Description, Items: []application.ItemDTO{}}, nil
}

func (s *stubRequests) GetOwnRequests(context.Context, int64) ([]application.ItemRequestDTO, error) {
	return []application.ItemRequestDTO{}, s.err
}

func (s *stubRequests) GetOtherRequests(_ context.Context, _ int64, from, size int) ([]application.ItemRequestDTO, error) {
	s.from, s.size = from, size
	return []application.ItemRequestDTO{}, s.err
}

func (s *stubRequests) GetRequest(_ context.Context, id, _ int64) (*application.ItemRequestDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &application.ItemRequestDTO{ID: id}, nil
}

type stubs struct {
	bookings *stubBookings
	users    *stubUsers
	items    *stubItems
	requests *stubRequests
}

func newTestRouter() (*gin.Engine, *stubs) {
	gin.SetMode(gin.TestMode)
	validation.Register()

	s := &stubs{
		bookings: &stubBookings{},
		users:    &stubUsers{},
		items:    &stubItems{},
		requests: &stubRequests{},
	}
	r := gin.New()
	NewBookingHandler(s.bookings).RegisterRoutes(&r.RouterGroup)
	NewUserHandler(s.users).RegisterRoutes(&r.RouterGroup)
	NewItemHandler(s.items).RegisterRoutes(&r.RouterGroup)
	NewItemRequestHandler(s.requests).RegisterRoutes(&r.RouterGroup)
	return r, s
}

func doRequest(t *testing.T, r http.Handler, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-Sharer-User-Id", userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}
