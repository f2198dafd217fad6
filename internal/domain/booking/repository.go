package booking

import (
	"context"
	"time"

	"github.com/maximboltinov/ShareIt/internal/common/domain"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// Save persists a new booking and assigns its ID.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error

	// FindByID retrieves a booking, returning a NotFoundError if absent.
	FindByID(ctx context.Context, id int64) (*Booking, error)


	// FindByBooker lists a booker's bookings matching criteria, ordered by start descending.
	FindByBooker(ctx context.Context, bookerID int64, criteria Criteria, page domain.Page) ([]*Booking, error)

	// FindByOwner lists bookings on the owner's items matching criteria, ordered by start descending.
	FindByOwner(ctx context.Context, ownerID int64, criteria Criteria, page domain.Page) ([]*Booking, error)

	// FindApprovedShortByItem returns approved bookings of one item.
	FindApprovedShortByItem(ctx context.Context, itemID int64) ([]ShortBooking, error)

	// FindApprovedShortByOwner returns approved bookings across all items of an owner.
	FindApprovedShortByOwner(ctx context.Context, ownerID int64) ([]ShortBooking, error)

	// CountApprovedEndedBefore counts the booker's approved bookings of the item that ended before instant.
	CountApprovedEndedBefore(ctx context.Context, bookerID, itemID int64, instant time.Time) (int64, error)
}
