package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/court-reserve/internal/model"
	"github.com/iliyamo/court-reserve/internal/schedule"
)

// MaxSeriesWeeks bounds how many occurrences one series request may
// materialise.
const MaxSeriesWeeks = 28

// SeriesRequest describes a weekly recurring booking: the same court,
// time and duration for Weeks consecutive weeks starting at StartDate.
type SeriesRequest struct {
	CourtID     uint64
	Name        string
	StartDate   time.Time
	Start       schedule.TimeOfDay
	DurationMin int
	Visibility  model.Visibility
	Weeks       int
	Notes       *string
	Color       *string
}

// OccurrenceStatus tags the outcome of one occurrence attempt.
type OccurrenceStatus string

const (
	OccurrenceCreated         OccurrenceStatus = "created"
	OccurrenceSlotTaken       OccurrenceStatus = "slot_taken"
	OccurrenceOutOfWindow     OccurrenceStatus = "out_of_window"
	OccurrenceInvalidDuration OccurrenceStatus = "invalid_duration"
	OccurrenceForbidden       OccurrenceStatus = "forbidden"
	// OccurrenceInvalid should be unreachable: CreateSeries rejects a
	// malformed request before any occurrence is attempted. The tag
	// exists so a validation failure can never be mistaken for a
	// storage failure.
	OccurrenceInvalid OccurrenceStatus = "invalid_request"
	OccurrenceFailed  OccurrenceStatus = "failed"
)

// Occurrence reports the outcome of one week's booking attempt so the
// caller can tell the user exactly which dates could not be booked.
type Occurrence struct {
	Index       int
	Date        time.Time
	Status      OccurrenceStatus
	Reservation *model.Reservation // non-nil only when Status == OccurrenceCreated
}

// SeriesResult aggregates the series row and the per-occurrence
// outcomes. CreatedCount + FailedCount == len(Occurrences).
type SeriesResult struct {
	Series       *model.Series
	CreatedCount int
	FailedCount  int
	Occurrences  []Occurrence
}

// CreateSeries materialises a weekly recurring request into individual
// reservations. Each occurrence is an independent create on its own
// date; a failed occurrence is recorded and skipped, never retried or
// rolled back, since weekly slots are independent resources in time.
// Partial success is the expected outcome and the series row persists
// regardless of how many occurrences were booked.
func (l *Ledger) CreateSeries(ctx context.Context, actor Actor, req SeriesRequest) (*SeriesResult, error) {
	if l.series == nil {
		panic("ledger constructed without a series store")
	}
	if req.Weeks <= 0 || req.Weeks > MaxSeriesWeeks {
		return nil, ErrValidation
	}
	if req.StartDate.IsZero() {
		return nil, ErrValidation
	}
	// A malformed request would fail identically every week, so it fails
	// the whole call before anything is persisted. Same checks the
	// standalone path runs.
	if err := validateRequest(CreateRequest{
		CourtID:     req.CourtID,
		Date:        req.StartDate,
		Start:       req.Start,
		DurationMin: req.DurationMin,
		Visibility:  req.Visibility,
		Notes:       req.Notes,
		Color:       req.Color,
	}); err != nil {
		return nil, err
	}
	// Validate court existence up front so a bad court id fails the whole
	// call instead of producing N identical occurrence failures.
	if _, err := l.courts.GetCourt(ctx, req.CourtID); err != nil {
		return nil, err
	}

	start := dateOnly(req.StartDate)
	s := &model.Series{
		PublicID:    uuid.New(),
		Name:        req.Name,
		CourtID:     req.CourtID,
		OwnerID:     actor.ID,
		StartDate:   start,
		Weekday:     start.Weekday(),
		StartMin:    req.Start,
		DurationMin: req.DurationMin,
		Weeks:       req.Weeks,
	}
	if err := l.series.Create(ctx, s); err != nil {
		return nil, err
	}

	result := &SeriesResult{Series: s, Occurrences: make([]Occurrence, 0, req.Weeks)}
	for i := 0; i < req.Weeks; i++ {
		date := start.AddDate(0, 0, 7*i)
		idx := i
		res, err := l.CreateReservation(ctx, actor, CreateRequest{
			CourtID:       req.CourtID,
			Date:          date,
			Start:         req.Start,
			DurationMin:   req.DurationMin,
			Visibility:    req.Visibility,
			Notes:         req.Notes,
			Color:         req.Color,
			seriesID:      &s.ID,
			occurrenceIdx: &idx,
		})
		occ := Occurrence{Index: i, Date: date}
		if err != nil {
			occ.Status = occurrenceStatus(err)
			result.FailedCount++
		} else {
			occ.Status = OccurrenceCreated
			occ.Reservation = res
			result.CreatedCount++
		}
		result.Occurrences = append(result.Occurrences, occ)
	}
	return result, nil
}

// occurrenceStatus maps a ledger error to its occurrence tag. Unknown
// errors (storage failures) collapse to OccurrenceFailed rather than
// aborting the remaining weeks.
func occurrenceStatus(err error) OccurrenceStatus {
	switch {
	case errors.Is(err, ErrSlotTaken):
		return OccurrenceSlotTaken
	case errors.Is(err, ErrOutOfWindow):
		return OccurrenceOutOfWindow
	case errors.Is(err, ErrInvalidDuration):
		return OccurrenceInvalidDuration
	case errors.Is(err, ErrForbidden):
		return OccurrenceForbidden
	case errors.Is(err, ErrValidation):
		return OccurrenceInvalid
	default:
		return OccurrenceFailed
	}
}
