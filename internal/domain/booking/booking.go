package booking

import (
	"time"

	"github.com/maximboltinov/ShareIt/internal/common/domain"
)

// ItemRef is the read-only view of an item that a booking needs.
type ItemRef struct {
	ID        int64
	Name      string
	OwnerID   int64
	Available bool
}

// Booking is the aggregate root for the booking domain.
type Booking struct {
	id       int64
	start    time.Time
	end      time.Time
	status   BookingStatus
	bookerID int64
	item     ItemRef

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking with status WAITING. The first failing check wins:
// self-booking, item availability, dates in the past, end not after start.
func NewBooking(bookerID int64, item ItemRef, start, end, now time.Time) (*Booking, error) {
	if bookerID == item.OwnerID {
		return nil, domain.NewNotFoundMessage("cannot book own item")
	}
	if !item.Available {
		return nil, domain.NewValidationError("item unavailable")
	}
	if start.IsZero() || end.IsZero() {
		return nil, domain.NewValidationError("start and end are required")
	}
	if start.Before(now) || end.Before(now) {
		return nil, domain.NewValidationError("dates in the past")
	}
	if !end.After(start) {
		return nil, domain.NewValidationError("end not after start")
	}

	return &Booking{
		start:     start,
		end:       end,
		status:    StatusWaiting,
		bookerID:  bookerID,
		item:      item,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id int64,
	start, end time.Time,
	status BookingStatus,
	bookerID int64,
	item ItemRef,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		start:     start,
		end:       end,
		status:    status,
		bookerID:  bookerID,
		item:      item,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

// ID returns the store-assigned identifier, zero until saved.
func (b *Booking) ID() int64 { return b.id }

// Start returns the beginning of the rental window.
func (b *Booking) Start() time.Time { return b.start }

// End returns the end of the rental window.
func (b *Booking) End() time.Time { return b.end }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// BookerID returns the renting user's ID.
func (b *Booking) BookerID() int64 { return b.bookerID }

// Item returns the booked item reference.
func (b *Booking) Item() ItemRef { return b.item }

// ItemOwnerID returns the ID of the user who owns the booked item.
func (b *Booking) ItemOwnerID() int64 { return b.item.OwnerID }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// AssignID sets the identifier issued by the store on first save.
func (b *Booking) AssignID(id int64) {
	b.id = id
}

// IsVisibleTo reports whether userID is the booker or the item owner.
func (b *Booking) IsVisibleTo(userID int64) bool {
	return b.bookerID == userID || b.item.OwnerID == userID
}

// Decide applies the item owner's decision. Only the owner may decide, and an approved
// booking cannot be changed again.
func (b *Booking) Decide(ownerID int64, approved bool, now time.Time) error {
	if b.item.OwnerID != ownerID {
		return domain.NewNotFoundMessage("owner mismatch")
	}

	target := StatusRejected
	if approved {
		target = StatusApproved
	}
	if !b.status.CanTransitionTo(target) {
		if b.status.IsTerminal() {
			return domain.NewValidationError("cannot change status after approval")
		}
		return domain.NewInvalidStateError(string(b.status), string(target))
	}
	b.status = target
	b.updatedAt = now
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
}

// Short returns the aggregation projection of the booking.
func (b *Booking) Short() ShortBooking {
	return ShortBooking{
		ID:       b.id,
		BookerID: b.bookerID,
		ItemID:   b.item.ID,
		Start:    b.start,
		End:      b.end,
	}
}
