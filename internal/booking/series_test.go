package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/iliyamo/court-reserve/internal/model"
)

func TestCreateSeriesAllWeeksFree(t *testing.T) {
	ledger, store := newTestLedger(testCourt(1))
	ctx := context.Background()
	start := day(t, "2026-09-07") // a Monday

	result, err := ledger.CreateSeries(ctx, trainer, SeriesRequest{
		CourtID:     1,
		Name:        "Monday drills",
		StartDate:   start,
		Start:       td(t, "18:00"),
		DurationMin: 60,
		Visibility:  model.VisibilityPublic,
		Weeks:       8,
	})
	if err != nil {
		t.Fatalf("CreateSeries failed: %v", err)
	}
	if result.CreatedCount != 8 || result.FailedCount != 0 {
		t.Fatalf("created/failed = %d/%d, want 8/0", result.CreatedCount, result.FailedCount)
	}
	if result.Series.PublicID == uuid.Nil {
		t.Fatal("series has no public id")
	}

	// every occurrence lands on the same weekday, seven days apart
	for i, occ := range result.Occurrences {
		want := start.AddDate(0, 0, 7*i)
		if !occ.Date.Equal(want) {
			t.Errorf("occurrence %d date = %s, want %s", i, occ.Date.Format("2006-01-02"), want.Format("2006-01-02"))
		}
		if occ.Reservation == nil {
			t.Errorf("occurrence %d has no reservation", i)
			continue
		}
		if occ.Reservation.SeriesID == nil || *occ.Reservation.SeriesID != result.Series.ID {
			t.Errorf("occurrence %d not linked to series", i)
		}
	}

	all, _ := store.ListByOwner(ctx, trainer.ID)
	if len(all) != 8 {
		t.Fatalf("stored reservations = %d, want 8", len(all))
	}
}

func TestCreateSeriesPartialSuccess(t *testing.T) {
	ledger, _ := newTestLedger(testCourt(1))
	ctx := context.Background()
	start := day(t, "2026-09-07")

	// week 3 (index 2) is already taken by someone else
	blockedDate := start.AddDate(0, 0, 14)
	if _, err := ledger.CreateReservation(ctx, member, CreateRequest{
		CourtID: 1, Date: blockedDate, Start: td(t, "18:00"), DurationMin: 60, Visibility: model.VisibilityPrivate,
	}); err != nil {
		t.Fatalf("setup booking failed: %v", err)
	}

	result, err := ledger.CreateSeries(ctx, trainer, SeriesRequest{
		CourtID:     1,
		Name:        "Monday drills",
		StartDate:   start,
		Start:       td(t, "18:00"),
		DurationMin: 60,
		Visibility:  model.VisibilityPrivate,
		Weeks:       8,
	})
	if err != nil {
		t.Fatalf("CreateSeries failed: %v", err)
	}
	if result.CreatedCount != 7 || result.FailedCount != 1 {
		t.Fatalf("created/failed = %d/%d, want 7/1", result.CreatedCount, result.FailedCount)
	}

	failed := result.Occurrences[2]
	if failed.Status != OccurrenceSlotTaken {
		t.Fatalf("occurrence 2 status = %s, want slot_taken", failed.Status)
	}
	if !failed.Date.Equal(blockedDate) {
		t.Fatalf("failed occurrence date = %s, want %s", failed.Date.Format("2006-01-02"), blockedDate.Format("2006-01-02"))
	}
	for i, occ := range result.Occurrences {
		if i == 2 {
			continue
		}
		if occ.Status != OccurrenceCreated {
			t.Errorf("occurrence %d status = %s, want created", i, occ.Status)
		}
	}
}

func TestCreateSeriesMemberPublicAllFail(t *testing.T) {
	ledger, _ := newTestLedger(testCourt(1))
	ctx := context.Background()

	// members cannot create public bookings, so every occurrence fails
	// but the series row itself still persists
	result, err := ledger.CreateSeries(ctx, member, SeriesRequest{
		CourtID:     1,
		StartDate:   day(t, "2026-09-07"),
		Start:       td(t, "18:00"),
		DurationMin: 60,
		Visibility:  model.VisibilityPublic,
		Weeks:       4,
	})
	if err != nil {
		t.Fatalf("CreateSeries failed: %v", err)
	}
	if result.CreatedCount != 0 || result.FailedCount != 4 {
		t.Fatalf("created/failed = %d/%d, want 0/4", result.CreatedCount, result.FailedCount)
	}
	for i, occ := range result.Occurrences {
		if occ.Status != OccurrenceForbidden {
			t.Errorf("occurrence %d status = %s, want forbidden", i, occ.Status)
		}
	}
	if result.Series.ID == 0 {
		t.Fatal("series row was not persisted")
	}
}

func TestCreateSeriesValidation(t *testing.T) {
	ledger, _ := newTestLedger(testCourt(1))
	ctx := context.Background()
	start := day(t, "2026-09-07")

	cases := []struct {
		name string
		req  SeriesRequest
		want error
	}{
		{"zero weeks", SeriesRequest{CourtID: 1, StartDate: start, Start: 600, DurationMin: 60, Visibility: model.VisibilityPrivate}, ErrValidation},
		{"too many weeks", SeriesRequest{CourtID: 1, StartDate: start, Start: 600, DurationMin: 60, Visibility: model.VisibilityPrivate, Weeks: MaxSeriesWeeks + 1}, ErrValidation},
		{"zero start date", SeriesRequest{CourtID: 1, Start: 600, DurationMin: 60, Visibility: model.VisibilityPrivate, Weeks: 4}, ErrValidation},
		{"zero duration", SeriesRequest{CourtID: 1, StartDate: start, Start: 600, Visibility: model.VisibilityPrivate, Weeks: 4}, ErrValidation},
		{"negative duration", SeriesRequest{CourtID: 1, StartDate: start, Start: 600, DurationMin: -30, Visibility: model.VisibilityPrivate, Weeks: 4}, ErrValidation},
		{"invalid start time", SeriesRequest{CourtID: 1, StartDate: start, Start: 1500, DurationMin: 60, Visibility: model.VisibilityPrivate, Weeks: 4}, ErrValidation},
		{"bad visibility", SeriesRequest{CourtID: 1, StartDate: start, Start: 600, DurationMin: 60, Visibility: "secret", Weeks: 4}, ErrValidation},
		{"color on private series", SeriesRequest{CourtID: 1, StartDate: start, Start: 600, DurationMin: 60, Visibility: model.VisibilityPrivate, Weeks: 4, Color: strPtr("#ff0000")}, ErrValidation},
		{"unknown court", SeriesRequest{CourtID: 99, StartDate: start, Start: 600, DurationMin: 60, Visibility: model.VisibilityPrivate, Weeks: 4}, ErrNotFound},
	}
	for _, c := range cases {
		if _, err := ledger.CreateSeries(ctx, trainer, c.req); !errors.Is(err, c.want) {
			t.Errorf("%s: err = %v, want %v", c.name, err, c.want)
		}
	}
}

func TestCreateSeriesMalformedPersistsNothing(t *testing.T) {
	cs := &memCourts{courts: map[uint64]*model.Court{1: testCourt(1)}}
	rs := newMemReservations()
	ss := &memSeries{}
	ledger := NewLedger(cs, rs, ss, RolePermissions{})
	ctx := context.Background()

	_, err := ledger.CreateSeries(ctx, trainer, SeriesRequest{
		CourtID:     1,
		StartDate:   day(t, "2026-09-07"),
		Start:       td(t, "18:00"),
		DurationMin: -30,
		Visibility:  model.VisibilityPrivate,
		Weeks:       4,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("negative duration series: err = %v, want ErrValidation", err)
	}
	if len(ss.items) != 0 {
		t.Fatalf("series rows persisted for malformed request: %d", len(ss.items))
	}
	all, _ := rs.ListByOwner(ctx, trainer.ID)
	if len(all) != 0 {
		t.Fatalf("reservations persisted for malformed request: %d", len(all))
	}
}

func TestOccurrenceStatusMapping(t *testing.T) {
	cases := map[error]OccurrenceStatus{
		ErrSlotTaken:       OccurrenceSlotTaken,
		ErrOutOfWindow:     OccurrenceOutOfWindow,
		ErrInvalidDuration: OccurrenceInvalidDuration,
		ErrForbidden:       OccurrenceForbidden,
		ErrValidation:      OccurrenceInvalid,
		errors.New("connection reset"): OccurrenceFailed,
	}
	for err, want := range cases {
		if got := occurrenceStatus(err); got != want {
			t.Errorf("occurrenceStatus(%v) = %s, want %s", err, got, want)
		}
	}
}
