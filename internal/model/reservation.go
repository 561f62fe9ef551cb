package model

import (
	"time"

	"github.com/iliyamo/court-reserve/internal/schedule"
)

// Visibility controls who may see the details of a reservation.
type Visibility string

const (
	// VisibilityPrivate reservations show up as occupied slots only; the
	// owner's identity and notes are redacted for other members.
	VisibilityPrivate Visibility = "private"
	// VisibilityPublic reservations are shown with name and color so other
	// members can recognise open sessions. Creating one requires the
	// public-booking permission.
	VisibilityPublic Visibility = "public"
)

// Valid reports whether v is one of the two known visibility values.
func (v Visibility) Valid() bool {
	return v == VisibilityPrivate || v == VisibilityPublic
}

// Reservation is a committed, non-overlapping occupation of a court for
// a time range on one calendar day. Reservations are never updated in
// place; a change is a cancel followed by a new booking.
//
// StartMin/EndMin are minutes since midnight; EndMin is derived from the
// requested duration at creation time. SeriesID and OccurrenceIdx are
// set only for reservations materialised from a weekly series.
type Reservation struct {
	ID            uint64             // reservations.id
	CourtID       uint64             // reservations.court_id
	PlayDate      time.Time          // reservations.play_date (date only, UTC midnight)
	StartMin      schedule.TimeOfDay // reservations.start_min
	EndMin        schedule.TimeOfDay // reservations.end_min
	Visibility    Visibility         // reservations.visibility
	OwnerID       uint64             // reservations.owner_id
	Notes         *string            // reservations.notes (nullable)
	Color         *string            // reservations.color (nullable, public only)
	SeriesID      *uint64            // reservations.series_id (nullable)
	OccurrenceIdx *int               // reservations.occurrence_idx (nullable)
	CreatedAt     time.Time          // reservations.created_at
}

// Range implements schedule.Occupancy.
func (r *Reservation) Range() (schedule.TimeOfDay, schedule.TimeOfDay) {
	return r.StartMin, r.EndMin
}

// CreatedOrder implements schedule.Occupancy; row ids are assigned in
// insertion order which is what the evaluator's tie-break needs.
func (r *Reservation) CreatedOrder() uint64 { return r.ID }

// DateString formats the play date the way the wire contract expects.
func (r *Reservation) DateString() string { return r.PlayDate.Format("2006-01-02") }
