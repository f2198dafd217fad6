package booking

import "time"

// ShortBooking is the lightweight projection used for last/next aggregation.
type ShortBooking struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	ItemID   int64     `json:"itemId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// Compare orders short bookings by start only: -1, 0 or +1.
func (s ShortBooking) Compare(other ShortBooking) int {
	return s.Start.Compare(other.Start)
}
