package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/court-reserve/internal/schedule"
)

// Series is a named group of reservations generated from one weekly
// recurring request: same court, same weekday and time, for Weeks
// consecutive weeks starting at StartDate.
//
// A series is created as a batch of independent reservation attempts
// and is kept even when some occurrences could not be booked; partial
// creation is an accepted outcome, not an error.
type Series struct {
	ID          uint64             // series.id
	PublicID    uuid.UUID          // series.public_id, exposed instead of the row id
	Name        string             // series.name
	CourtID     uint64             // series.court_id
	OwnerID     uint64             // series.owner_id
	StartDate   time.Time          // series.start_date (date of occurrence 0)
	Weekday     time.Weekday       // derived from StartDate, stored for querying
	StartMin    schedule.TimeOfDay // series.start_min
	DurationMin int                // series.duration_min
	Weeks       int                // series.weeks (requested occurrence count)
	CreatedAt   time.Time          // series.created_at
}
