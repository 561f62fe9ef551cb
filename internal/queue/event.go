// Package queue defines message payloads exchanged over the message broker.
package queue

// Event kinds carried on the reservation.events queue.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationCancelled = "reservation.cancelled"
	EventSeriesCreated        = "series.created"
)

// ReservationEvent is published when the booking ledger creates or
// cancels a reservation. It carries enough for downstream consumers to
// log or notify without querying the primary database. Cancellation
// events only fill the id fields.
type ReservationEvent struct {
	Kind          string `json:"kind"`
	ReservationID uint64 `json:"reservation_id"`
	CourtID       uint64 `json:"court_id,omitempty"`
	OwnerID       uint64 `json:"owner_id"`
	Date          string `json:"date,omitempty"`
	Start         string `json:"start,omitempty"`
	End           string `json:"end,omitempty"`
	Visibility    string `json:"visibility,omitempty"`
	SeriesID      string `json:"series_id,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}
