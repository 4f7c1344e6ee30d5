package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

var ErrEventNotInView = errors.New("event is not in the loaded collection")

// Event is an events-platform event. NumAttend, Attend and Mine are
// per-caller projections computed by the server; Distance is in km.
type Event struct {
	ID          int64    `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       Price    `json:"price"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Address     string   `json:"address"`
	Image       string   `json:"image"`
	Date        string   `json:"date"`
	Creator     *User    `json:"creator,omitempty"`
	Distance    *float64 `json:"distance,omitempty"`
	NumAttend   int      `json:"numAttend"`
	Attend      bool     `json:"attend"`
	Mine        bool     `json:"mine"`
}

// Price is a decimal amount. Some servers send it as a JSON string, so both
// encodings are accepted on decode; it is always encoded as a number.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("price %q: %w", s, err)
		}
		*p = Price(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	*p = Price(f)
	return nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses the ISO-ish date strings the API produces.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Clone returns a deep copy so callers cannot mutate shared state through
// the Creator or Distance pointers.
func (e Event) Clone() Event {
	if e.Creator != nil {
		c := *e.Creator
		e.Creator = &c
	}
	if e.Distance != nil {
		d := *e.Distance
		e.Distance = &d
	}
	return e
}

// Sanitized returns a copy whose creator carries no password.
func (e Event) Sanitized() Event {
	e = e.Clone()
	if e.Creator != nil {
		*e.Creator = e.Creator.Sanitized()
	}
	return e
}
