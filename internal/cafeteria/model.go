package cafeteria

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("cafeteria not found")
	ErrInvalidHours = errors.New("invalid opening and closing hours")
)

// minutesPerDay bounds opening hours (minutes from midnight).
const minutesPerDay = 1440

// Cafeteria is a user-owned cafeteria. StartTime and CloseTime are minutes
// from midnight.
type Cafeteria struct {
	ID           int64     `json:"cafe_id"`
	OwnerID      int64     `json:"-"`
	Name         string    `json:"name"`
	City         string    `json:"city"`
	Address      string    `json:"address"`
	Pincode      int       `json:"pincode"`
	StartTime    int       `json:"cafe_start_time"`
	CloseTime    int       `json:"cafe_close_time"`
	RegisteredOn time.Time `json:"registered_on"`
}

// ValidateHours checks an opening-hours pair: both within a day, close not
// before open.
func ValidateHours(startTime, closeTime int) error {
	if startTime < 0 || startTime > minutesPerDay {
		return ErrInvalidHours
	}
	if closeTime < 0 || closeTime > minutesPerDay {
		return ErrInvalidHours
	}
	if closeTime < startTime {
		return ErrInvalidHours
	}
	return nil
}
