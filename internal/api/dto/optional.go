package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// OptionalID distinguishes an absent field from an explicit null.
type OptionalID struct {
	Set   bool
	Value *int64
}

// UnmarshalJSON accepts null, a number or a numeric string.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		var raw string
		if json.Unmarshal(data, &raw) != nil {
			return errors.New("id must be an integer or null")
		}
		parsed, perr := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if perr != nil {
			return errors.New("id must be an integer or null")
		}
		id = parsed
	}
	o.Value = &id
	return nil
}

// Date is a calendar day serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// UnmarshalJSON accepts YYYY-MM-DD or a full RFC 3339 timestamp.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.New("date must be a string")
	}
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dateLayout, raw); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return errors.New("date must be in YYYY-MM-DD format")
	}
	d.Time = t.UTC()
	return nil
}

// MarshalJSON writes the day only.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.UTC().Format(dateLayout))
}

// Ptr returns the time or nil for a nil date.
func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// DatePtr wraps an optional time for responses.
func DatePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{Time: *t}
}
