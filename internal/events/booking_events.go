package events

import "time"

// TopicBookingEvents carries the booking lifecycle stream.
const TopicBookingEvents = "booking.events"

// EventSource identifies this service in CloudEvent envelopes.
const EventSource = "shareit-server"

const (
	BookingCreated  = "booking.created"
	BookingApproved = "booking.approved"
	BookingRejected = "booking.rejected"
)

// BookingCreatedEvent is published when a booker places a booking.
type BookingCreatedEvent struct {
	BookingID   int64     `json:"booking_id"`
	ItemID      int64     `json:"item_id"`
	BookerID    int64     `json:"booker_id"`
	ItemOwnerID int64     `json:"item_owner_id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// BookingDecidedEvent is published when the item owner approves or rejects a booking.
type BookingDecidedEvent struct {
	BookingID   int64     `json:"booking_id"`
	ItemID      int64     `json:"item_id"`
	BookerID    int64     `json:"booker_id"`
	ItemOwnerID int64     `json:"item_owner_id"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}
