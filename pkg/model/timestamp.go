package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Timestamp is a time.Time that reads both RFC 3339 and the zone-less
// ISO 8601 form older task files were written with.
type Timestamp struct {
	time.Time
}

// Zone-less layouts are interpreted in local time.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// NewTimestamp strips the monotonic clock reading so that a value survives
// a save/load cycle unchanged.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Round(0)}
}

// ParseTimestamp parses s as RFC 3339, falling back to zone-less ISO 8601.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{Time: t}, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("failed to parse timestamp '%s'", s)
}

// MarshalText implements encoding.TextMarshaler. JSON, YAML and TOML all
// pick it up.
func (ts Timestamp) MarshalText() ([]byte, error) {
	if ts.Time.IsZero() {
		return []byte{}, nil
	}
	return []byte(ts.Time.Format(time.RFC3339Nano)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ts *Timestamp) UnmarshalText(b []byte) error {
	parsed, err := ParseTimestamp(string(b))
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// MarshalJSON overrides the method promoted from the embedded time.Time so
// that JSON goes through the same layout as the other formats.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	b, _ := ts.MarshalText()
	return json.Marshal(string(b))
}

// UnmarshalJSON implements the json.Unmarshaler interface for Timestamp.
func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("failed to decode timestamp %s: %w", b, err)
	}
	return ts.UnmarshalText([]byte(s))
}
