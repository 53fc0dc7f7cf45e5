package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeLayout is the wall-clock format used in configuration and instance files.
const TimeLayout = "2006-01-02 15:04:05"

// Timestamp is an absolute second-resolution instant serialized as
// "YYYY-MM-DD HH:MM:SS" in UTC.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses s using TimeLayout.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.ParseInLocation(TimeLayout, s, time.UTC)
	if err != nil {
		return Timestamp{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return Timestamp{t}, nil
}

// At wraps t truncated to whole seconds.
func At(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Second)}
}

// Add returns the timestamp shifted by the given number of seconds.
func (t Timestamp) Add(seconds int) Timestamp {
	return Timestamp{t.Time.Add(time.Duration(seconds) * time.Second)}
}

// String formats the timestamp with TimeLayout.
func (t Timestamp) String() string {
	return t.Time.Format(TimeLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a %q string: %w", TimeLayout, err)
	}
	ts, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}
