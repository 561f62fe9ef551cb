package booking

import (
	"context"
	"time"

	"github.com/iliyamo/court-reserve/internal/model"
	"github.com/iliyamo/court-reserve/internal/schedule"
)

// Ledger is the authoritative booking service. All mutation of the
// reservation set goes through CreateReservation and CancelReservation;
// these two methods are the only synchronisation boundary of the
// system.
type Ledger struct {
	courts       CourtStore
	reservations ReservationStore
	series       SeriesStore
	perms        PermissionChecker
}

// NewLedger wires the ledger to its stores and the permission service.
// All dependencies must be non-nil except series, which is only needed
// when CreateSeries is used.
func NewLedger(courts CourtStore, reservations ReservationStore, series SeriesStore, perms PermissionChecker) *Ledger {
	if courts == nil || reservations == nil || perms == nil {
		panic("nil dependency passed to NewLedger")
	}
	return &Ledger{courts: courts, reservations: reservations, series: series, perms: perms}
}

// CreateRequest describes one standalone booking attempt.
type CreateRequest struct {
	CourtID     uint64
	Date        time.Time // calendar day, time part ignored
	Start       schedule.TimeOfDay
	DurationMin int
	Visibility  model.Visibility
	Notes       *string
	Color       *string // only meaningful for public visibility

	// set by the series expander, nil for standalone bookings
	seriesID      *uint64
	occurrenceIdx *int
}

// CreateReservation validates and persists one booking. Constraints are
// checked in a fixed order so every failure maps to exactly one error
// kind: court exists, input well-formed, range inside the operating
// window, duration allowed, permission for the requested visibility,
// and finally no overlap (enforced atomically by the store).
func (l *Ledger) CreateReservation(ctx context.Context, actor Actor, req CreateRequest) (*model.Reservation, error) {
	court, err := l.courts.GetCourt(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	start := req.Start
	end := start + schedule.TimeOfDay(req.DurationMin)
	if !court.Window().Contains(start, end) {
		return nil, ErrOutOfWindow
	}
	if !court.AllowsDuration(req.DurationMin) {
		return nil, ErrInvalidDuration
	}
	if !l.perms.CanBook(ctx, actor) {
		return nil, ErrForbidden
	}
	if req.Visibility == model.VisibilityPublic && !l.perms.CanBookPublic(ctx, actor) {
		return nil, ErrForbidden
	}

	res := &model.Reservation{
		CourtID:       court.ID,
		PlayDate:      dateOnly(req.Date),
		StartMin:      start,
		EndMin:        end,
		Visibility:    req.Visibility,
		OwnerID:       actor.ID,
		Notes:         req.Notes,
		SeriesID:      req.seriesID,
		OccurrenceIdx: req.occurrenceIdx,
	}
	if req.Visibility == model.VisibilityPublic {
		res.Color = req.Color
	}
	if err := l.reservations.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// CancelReservation deletes a reservation. Only the owner or an admin
// may cancel; no time-based cutoff is enforced here. Cancelling twice
// yields ErrNotFound on the second call.
func (l *Ledger) CancelReservation(ctx context.Context, actor Actor, id uint64) error {
	res, err := l.reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if res.OwnerID != actor.ID && !actor.IsAdmin() {
		return ErrForbidden
	}
	return l.reservations.Delete(ctx, id)
}

// ListReservations returns all reservations for a court and day, public
// and private alike; the presentation layer decides what to disclose
// based on the viewing actor.
func (l *Ledger) ListReservations(ctx context.Context, courtID uint64, date time.Time) ([]*model.Reservation, error) {
	if _, err := l.courts.GetCourt(ctx, courtID); err != nil {
		return nil, err
	}
	return l.reservations.ListByCourtDate(ctx, courtID, dateOnly(date))
}

func validateRequest(req CreateRequest) error {
	if req.DurationMin <= 0 {
		return ErrValidation
	}
	if !req.Start.Valid() {
		return ErrValidation
	}
	if int(req.Start)+req.DurationMin > schedule.MinutesPerDay {
		return ErrValidation
	}
	if !req.Visibility.Valid() {
		return ErrValidation
	}
	if req.Date.IsZero() {
		return ErrValidation
	}
	if req.Color != nil && req.Visibility != model.VisibilityPublic {
		return ErrValidation
	}
	return nil
}

// dateOnly truncates a timestamp to its UTC calendar day so dates
// compare and store consistently.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
