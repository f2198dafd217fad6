package booking

import (
	"strings"
	"time"

	"github.com/maximboltinov/ShareIt/internal/common/domain"
)

// State classifies bookings for list queries. It is never persisted.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

var knownStates = map[State]struct{}{
	StateAll:      {},
	StateCurrent:  {},
	StatePast:     {},
	StateFuture:   {},
	StateWaiting:  {},
	StateRejected: {},
}

// ParseState reads a state filter case-insensitively. An empty string means ALL.
func ParseState(raw string) (State, error) {
	if strings.TrimSpace(raw) == "" {
		return StateAll, nil
	}
	s := State(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := knownStates[s]; !ok {
		return "", domain.NewValidationError("Unknown state: " + raw)
	}
	return s, nil
}

// Criteria is a storage-neutral booking filter. Zero-valued fields do not filter.
type Criteria struct {
	StartBefore *time.Time
	StartAfter  *time.Time
	EndBefore   *time.Time
	EndAfter    *time.Time
	Status      BookingStatus
}

// Criteria builds the filter for s relative to now.
func (s State) Criteria(now time.Time) (Criteria, error) {
	switch s {
	case StateAll:
		return Criteria{}, nil
	case StateCurrent:
		return Criteria{StartBefore: &now, EndAfter: &now}, nil
	case StatePast:
		return Criteria{EndBefore: &now}, nil
	case StateFuture:
		return Criteria{StartAfter: &now, EndAfter: &now}, nil
	case StateWaiting:
		return Criteria{Status: StatusWaiting}, nil
	case StateRejected:
		return Criteria{Status: StatusRejected}, nil
	default:
		return Criteria{}, domain.NewValidationError("Unknown state: UNSUPPORTED_STATUS")
	}
}

// Matches evaluates the filter against b. Bounds are strict.
func (c Criteria) Matches(b *Booking) bool {
	if c.StartBefore != nil && !b.start.Before(*c.StartBefore) {
		return false
	}
	if c.StartAfter != nil && !b.start.After(*c.StartAfter) {
		return false
	}
	if c.EndBefore != nil && !b.end.Before(*c.EndBefore) {
		return false
	}
	if c.EndAfter != nil && !b.end.After(*c.EndAfter) {
		return false
	}
	if c.Status != "" && b.status != c.Status {
		return false
	}
	return true
}
