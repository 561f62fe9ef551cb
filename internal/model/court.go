package model

import (
	"time"

	"github.com/iliyamo/court-reserve/internal/schedule"
)

// Court is a bookable resource inside a club. Its operating window
// bounds when bookings may start and end; when the window columns are
// NULL the system-wide default (07:00-22:00) applies. AllowedDurations
// is the set of booking lengths in minutes the court accepts.
//
// Courts are referenced, never mutated, by the scheduler; administrative
// create/update goes through the owner endpoints which must keep the
// window non-empty (from < to) and every duration positive.
type Court struct {
	ID           uint64                // courts.id
	ClubID       uint64                // courts.club_id
	Name         string                // courts.name
	Surface      string                // courts.surface (clay, hard, grass, carpet)
	BookableFrom *schedule.TimeOfDay   // courts.bookable_from_min (nullable)
	BookableTo   *schedule.TimeOfDay   // courts.bookable_to_min (nullable)
	Durations    []int                 // courts.allowed_durations, minutes
	IsActive     bool                  // courts.is_active
	CreatedAt    time.Time             // courts.created_at
	UpdatedAt    time.Time             // courts.updated_at
}

// Window returns the court's operating window, falling back to the
// default when either bound is unset.
func (c *Court) Window() schedule.Window {
	if c.BookableFrom == nil || c.BookableTo == nil {
		return schedule.DefaultWindow()
	}
	return schedule.Window{From: *c.BookableFrom, To: *c.BookableTo}
}

// AllowsDuration reports whether the given duration in minutes is one of
// the court's allowed booking lengths.
func (c *Court) AllowsDuration(minutes int) bool {
	for _, d := range c.Durations {
		if d == minutes {
			return true
		}
	}
	return false
}
