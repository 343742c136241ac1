package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// PickupPoint is where and (optionally) when travellers are collected.
// Stored data comes in two shapes, a bare location string and a
// {location, time} object; UnmarshalJSON folds both into this one type so
// nothing past the decode step branches on shape.
type PickupPoint struct {
	Location string  `json:"location" validate:"required"`
	Time     *string `json:"time"`
}

// UnmarshalJSON accepts "Majestic Bus Stand" as well as
// {"location":"Majestic Bus Stand","time":"5:00 AM"}.
func (p *PickupPoint) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PickupPoint{Location: strings.TrimSpace(s)}
		return nil
	}

	var obj struct {
		Location string  `json:"location"`
		Time     *string `json:"time"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	p.Location = strings.TrimSpace(obj.Location)
	p.Time = nil
	if obj.Time != nil {
		if t := strings.TrimSpace(*obj.Time); t != "" {
			p.Time = &t
		}
	}
	return nil
}

// String renders the point the way the booking form lists it.
func (p PickupPoint) String() string {
	if p.Time == nil {
		return p.Location
	}
	return p.Location + " - " + *p.Time
}
