package item

import (
	"errors"
	"time"

	"github.com/pardha-bandaru/cafeteria-api/internal/database"
)

var (
	ErrNotFound            = errors.New("item not found")
	ErrIncompleteWeek      = errors.New("availability must cover all seven week days")
	ErrInvalidWindow       = errors.New("invalid opening and closing hours")
	ErrDuplicateWindowDays = errors.New("availability has more than one window for the same day")
)

const (
	daysPerWeek   = 7
	minutesPerDay = 1440
)

// Item is a menu item served by a cafeteria, with one availability window
// per weekday.
type Item struct {
	ID             int64                         `json:"item_id"`
	CafeteriaID    int64                         `json:"cafe_id"`
	Name           string                        `json:"item_name"`
	AvailableHours []database.AvailabilityWindow `json:"item_available_hours"`
}

// ValidateAvailability checks a weekly schedule: exactly one window per
// weekday, each within a day and with close not before open.
func ValidateAvailability(windows []database.AvailabilityWindow) error {
	if len(windows) != daysPerWeek {
		return ErrIncompleteWeek
	}

	seen := make(map[int]bool, daysPerWeek)
	for _, w := range windows {
		if w.Day < 0 || w.Day >= daysPerWeek {
			return ErrInvalidWindow
		}
		if seen[w.Day] {
			return ErrDuplicateWindowDays
		}
		seen[w.Day] = true

		if w.OpensAt < 0 || w.OpensAt > minutesPerDay {
			return ErrInvalidWindow
		}
		if w.ClosesAt < 0 || w.ClosesAt > minutesPerDay {
			return ErrInvalidWindow
		}
		if w.ClosesAt < w.OpensAt {
			return ErrInvalidWindow
		}
	}

	return nil
}

// AvailableAt reports whether the item is being served at the given moment,
// based on the window for that weekday.
func (i *Item) AvailableAt(now time.Time) bool {
	day := int(now.Weekday())
	minute := now.Hour()*60 + now.Minute()

	for _, w := range i.AvailableHours {
		if w.Day == day && minute > w.OpensAt && minute < w.ClosesAt {
			return true
		}
	}
	return false
}

// FilterAvailable returns the items currently being served.
func FilterAvailable(items []*Item, now time.Time) []*Item {
	available := make([]*Item, 0, len(items))
	for _, it := range items {
		if it.AvailableAt(now) {
			available = append(available, it)
		}
	}
	return available
}
