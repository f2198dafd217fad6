package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/maximboltinov/ShareIt/internal/common/domain"
	"github.com/maximboltinov/ShareIt/internal/common/jsontime"
	"github.com/maximboltinov/ShareIt/internal/common/kafka"
	"github.com/maximboltinov/ShareIt/internal/common/metrics"
	bookingDomain "github.com/maximboltinov/ShareIt/internal/domain/booking"
	itemDomain "github.com/maximboltinov/ShareIt/internal/domain/item"
	userDomain "github.com/maximboltinov/ShareIt/internal/domain/user"
	"github.com/maximboltinov/ShareIt/internal/events"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	ItemID int64          `json:"itemId" binding:"required,gt=0"`
	Start  *jsontime.Time `json:"start" binding:"required"`
	End    *jsontime.Time `json:"end" binding:"required"`
}

// BookerDTO identifies the booker in a booking response.
type BookerDTO struct {
	ID int64 `json:"id"`
}

// BookedItemDTO identifies the booked item in a booking response.
type BookedItemDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID     int64         `json:"id"`
	Start  jsontime.Time `json:"start"`
	End    jsontime.Time `json:"end"`
	Status string        `json:"status"`
	Booker BookerDTO     `json:"booker"`
	Item   BookedItemDTO `json:"item"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	repo      bookingDomain.BookingRepository
	users     userDomain.UserRepository
	items     itemDomain.ItemRepository
	publisher kafka.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	users userDomain.UserRepository,
	items itemDomain.ItemRepository,
	publisher kafka.Publisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:      repo,
		users:     users,
		items:     items,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateBooking places a WAITING booking on an item for the given booker.
func (s *BookingService) CreateBooking(ctx context.Context, bookerID int64, req CreateBookingRequest) (*BookingDTO, error) {
	if err := ensureUserExists(ctx, s.users, bookerID); err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	var start, end time.Time
	if req.Start != nil {
		start = req.Start.Time
	}
	if req.End != nil {
		end = req.End.Time
	}

	bk, err := bookingDomain.NewBooking(bookerID, toItemRef(it), start, end, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, bk); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("create_booking").Inc()
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}
	metrics.BookingsCreatedTotal.Inc()

	s.logger.Info("booking created",
		zap.Int64("booking_id", bk.ID()),
		zap.Int64("item_id", it.ID()),
		zap.Int64("booker_id", bookerID),
	)

	s.publishEvent(ctx, events.BookingCreated, bk.ID(), events.BookingCreatedEvent{
		BookingID:   bk.ID(),
		ItemID:      it.ID(),
		BookerID:    bookerID,
		ItemOwnerID: it.OwnerID(),
		Start:       bk.Start(),
		End:         bk.End(),
		OccurredAt:  s.now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// ApproveBooking records the item owner's approval or rejection.
func (s *BookingService) ApproveBooking(ctx context.Context, ownerID, bookingID int64, approved bool) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError(fmt.Sprintf("booking %d not found", bookingID))
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	if err := bk.Decide(ownerID, approved, s.now()); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		if domain.IsConflict(err) {
			return nil, err
		}
		metrics.OperationErrorsTotal.WithLabelValues("approve_booking").Inc()
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	metrics.BookingDecisionsTotal.WithLabelValues(bk.Status().String()).Inc()

	s.logger.Info("booking decided",
		zap.Int64("booking_id", bk.ID()),
		zap.String("status", bk.Status().String()),
	)

	eventType := events.BookingRejected
	if bk.Status() == bookingDomain.StatusApproved {
		eventType = events.BookingApproved
	}
	s.publishEvent(ctx, eventType, bk.ID(), events.BookingDecidedEvent{
		BookingID:   bk.ID(),
		ItemID:      bk.Item().ID,
		BookerID:    bk.BookerID(),
		ItemOwnerID: bk.ItemOwnerID(),
		Status:      bk.Status().String(),
		OccurredAt:  s.now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking returns a booking visible to its booker or the item owner.
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID int64) (*BookingDTO, error) {
	if err := ensureUserExists(ctx, s.users, userID); err != nil {
		return nil, err
	}
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.IsVisibleTo(userID) {
		return nil, domain.NewNotFoundMessage(
			fmt.Sprintf("booking %d is not visible to user %d", bookingID, userID))
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetBookerBookings lists the booker's bookings in the given state, newest start first.
func (s *BookingService) GetBookerBookings(ctx context.Context, bookerID int64, state bookingDomain.State, from, size int) ([]BookingDTO, error) {
	if err := ensureUserExists(ctx, s.users, bookerID); err != nil {
		return nil, err
	}
	page, criteria, err := s.listParams(state, from, size)
	if err != nil {
		return nil, err
	}
	bookings, err := s.repo.FindByBooker(ctx, bookerID, criteria, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list booker bookings: %w", err)
	}
	return toBookingDTOs(bookings), nil
}

// GetOwnerBookings lists bookings on the owner's items in the given state, newest start first.
func (s *BookingService) GetOwnerBookings(ctx context.Context, ownerID int64, state bookingDomain.State, from, size int) ([]BookingDTO, error) {
	if err := ensureUserExists(ctx, s.users, ownerID); err != nil {
		return nil, err
	}
	page, criteria, err := s.listParams(state, from, size)
	if err != nil {
		return nil, err
	}
	bookings, err := s.repo.FindByOwner(ctx, ownerID, criteria, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner bookings: %w", err)
	}
	return toBookingDTOs(bookings), nil
}

func (s *BookingService) listParams(state bookingDomain.State, from, size int) (domain.Page, bookingDomain.Criteria, error) {
	page, err := domain.NewPage(from, size)
	if err != nil {
		return domain.Page{}, bookingDomain.Criteria{}, err
	}
	criteria, err := state.Criteria(s.now())
	if err != nil {
		return domain.Page{}, bookingDomain.Criteria{}, err
	}
	return page, criteria, nil
}

func (s *BookingService) publishEvent(ctx context.Context, eventType string, bookingID int64, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(events.EventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.PublishEvent(ctx, events.TopicBookingEvents, idString(bookingID), cloudEvent); err != nil {
		metrics.EventsPublishFailedTotal.Inc()
		s.logger.Error("failed to publish event",
			zap.String("topic", events.TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toItemRef(it *itemDomain.Item) bookingDomain.ItemRef {
	return bookingDomain.ItemRef{
		ID:        it.ID(),
		Name:      it.Name(),
		OwnerID:   it.OwnerID(),
		Available: it.Available(),
	}
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:     bk.ID(),
		Start:  jsontime.New(bk.Start()),
		End:    jsontime.New(bk.End()),
		Status: bk.Status().String(),
		Booker: BookerDTO{ID: bk.BookerID()},
		Item:   BookedItemDTO{ID: bk.Item().ID, Name: bk.Item().Name},
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}
