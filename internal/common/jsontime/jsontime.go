// Package jsontime provides the zone-less timestamp format used on the wire.
package jsontime

import (
	"bytes"
	"fmt"
	"time"
)

// Layout is the wire format for timestamps: no zone, second precision.
const Layout = "2006-01-02T15:04:05"

// Time is a time.Time that (un)marshals using Layout in the local zone.
type Time struct {
	time.Time
}

// New wraps t.
func New(t time.Time) Time {
	return Time{Time: t}
}

// Ptr wraps t, or returns nil for a nil input.
func Ptr(t *time.Time) *Time {
	if t == nil {
		return nil
	}
	v := New(*t)
	return &v
}

// Parse reads a wire timestamp in the local zone.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q does not match %s", s, Layout)
	}
	return t, nil
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.In(time.Local).Format(Layout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves the value zero.
func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("timestamp must be a JSON string")
	}
	parsed, err := Parse(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
