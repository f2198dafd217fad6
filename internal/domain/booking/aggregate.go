package booking

import "time"

// LastNext holds the aggregation result for one item.
type LastNext struct {
	Last *ShortBooking
	Next *ShortBooking
}

// LastAndNext picks the latest booking starting before ref and the earliest starting
// after it. A booking starting exactly at ref is neither. Equal starts resolve to the
// lowest booking id.
func LastAndNext(bookings []ShortBooking, ref time.Time) LastNext {
	var result LastNext
	for i := range bookings {
		b := bookings[i]
		switch {
		case b.Start.Before(ref):
			if result.Last == nil || prefer(b, *result.Last, 1) {
				result.Last = &b
			}
		case b.Start.After(ref):
			if result.Next == nil || prefer(b, *result.Next, -1) {
				result.Next = &b
			}
		}
	}
	return result
}

// LastAndNextByItem groups bookings by item and aggregates each group against the same ref.
func LastAndNextByItem(bookings []ShortBooking, ref time.Time) map[int64]LastNext {
	grouped := make(map[int64][]ShortBooking)
	for _, b := range bookings {
		grouped[b.ItemID] = append(grouped[b.ItemID], b)
	}
	result := make(map[int64]LastNext, len(grouped))
	for itemID, group := range grouped {
		result[itemID] = LastAndNext(group, ref)
	}
	return result
}

// prefer reports whether candidate beats current, where want is the Compare sign that wins.
func prefer(candidate, current ShortBooking, want int) bool {
	c := candidate.Compare(current)
	if c == 0 {
		return candidate.ID < current.ID
	}
	return c == want
}
