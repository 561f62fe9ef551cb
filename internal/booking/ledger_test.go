package booking

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/court-reserve/internal/model"
	"github.com/iliyamo/court-reserve/internal/schedule"
)

// In-memory stores standing in for the MySQL repositories. memReservations
// reproduces the store contract: Create checks for overlap and inserts
// atomically under one lock.

type memCourts struct {
	courts map[uint64]*model.Court
}

func (m *memCourts) GetCourt(_ context.Context, id uint64) (*model.Court, error) {
	c, ok := m.courts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

type memReservations struct {
	mu     sync.Mutex
	nextID uint64
	items  map[uint64]*model.Reservation
}

func newMemReservations() *memReservations {
	return &memReservations{items: make(map[uint64]*model.Reservation)}
}

func (m *memReservations) Create(_ context.Context, res *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.CourtID != res.CourtID || !existing.PlayDate.Equal(res.PlayDate) {
			continue
		}
		if schedule.Overlaps(existing.StartMin, existing.EndMin, res.StartMin, res.EndMin) {
			return ErrSlotTaken
		}
	}
	m.nextID++
	res.ID = m.nextID
	res.CreatedAt = time.Now()
	m.items[res.ID] = res
	return nil
}

func (m *memReservations) GetByID(_ context.Context, id uint64) (*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return res, nil
}

func (m *memReservations) Delete(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memReservations) ListByCourtDate(_ context.Context, courtID uint64, date time.Time) ([]*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Reservation
	for _, res := range m.items {
		if res.CourtID == courtID && res.PlayDate.Equal(date) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (m *memReservations) ListByOwner(_ context.Context, ownerID uint64) ([]*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Reservation
	for _, res := range m.items {
		if res.OwnerID == ownerID {
			out = append(out, res)
		}
	}
	return out, nil
}

type memSeries struct {
	mu     sync.Mutex
	nextID uint64
	items  []*model.Series
}

func (m *memSeries) Create(_ context.Context, s *model.Series) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s.ID = m.nextID
	s.CreatedAt = time.Now()
	m.items = append(m.items, s)
	return nil
}

func td(t *testing.T, s string) schedule.TimeOfDay {
	t.Helper()
	v, err := schedule.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
	}
	return v
}

func testCourt(id uint64) *model.Court {
	return &model.Court{
		ID:        id,
		ClubID:    1,
		Name:      "Court 1",
		Durations: []int{60, 90, 120},
		IsActive:  true,
	}
}

func newTestLedger(courts ...*model.Court) (*Ledger, *memReservations) {
	cs := &memCourts{courts: make(map[uint64]*model.Court)}
	for _, c := range courts {
		cs.courts[c.ID] = c
	}
	rs := newMemReservations()
	return NewLedger(cs, rs, &memSeries{}, RolePermissions{}), rs
}

var (
	member  = Actor{ID: 10, Role: RoleMember}
	trainer = Actor{ID: 20, Role: RoleTrainer}
	admin   = Actor{ID: 30, Role: RoleAdmin}
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestCreateReservationConflicts(t *testing.T) {
	ledger, _ := newTestLedger(testCourt(1))
	ctx := context.Background()
	date := day(t, "2026-09-01")

	// A books 10:00-11:00
	a, err := ledger.CreateReservation(ctx, member, CreateRequest{
		CourtID: 1, Date: date, Start: td(t, "10:00"), DurationMin: 60, Visibility: model.VisibilityPrivate,
	})
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if a.StartMin != 600 || a.EndMin != 660 {
		t.Fatalf("first booking range = %s-%s, want 10:00-11:00", a.StartMin, a.EndMin)
	}

	// B asks 10:30-11:30 and must be rejected
	other := Actor{ID: 11, Role: RoleMember}
	_, err = ledger.CreateReservation(ctx, other, CreateRequest{
		CourtID: 1, Date: date, Start: td(t, "10:30"), DurationMin: 60, Visibility: model.VisibilityPrivate,
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("overlapping booking: err = %v, want ErrSlotTaken", err)
	}

	// C books 11:00-12:00, adjacent to A, and must succeed
	third := Actor{ID: 12, Role: RoleMember}
	c, err := ledger.CreateReservation(ctx, third, CreateRequest{
		CourtID: 1, Date: date, Start: td(t, "11:00"), DurationMin: 60, Visibility: model.VisibilityPrivate,
	})
	if err != nil {
		t.Fatalf("adjacent booking failed: %v", err)
	}
	if c.StartMin != 660 {
		t.Fatalf("adjacent booking start = %s, want 11:00", c.StartMin)
	}
}

func TestCreateReservationBoundary(t *testing.T) {
	ledger, _ := newTestLedger(testCourt(1))
	ctx := context.Background()
	date := day(t, "2026-09-01")

	// ends exactly at the window close (22:00): accepted
	if _, err := ledger.CreateReservation(ctx, member, CreateRequest{
		CourtID: 1, Date: date, Start: td(t, "21:00"), DurationMin: 60, Visibility: model.VisibilityPrivate,
	}); err != nil {
		t.Fatalf("booking ending at window close rejected: %v", err)
	}

	// extends past the window close: rejected
	if _, err := ledger.CreateReservation(ctx, member, CreateRequest{
		CourtID: 1, Date: day(t, "2026-09-02"), Start: td(t, "21:30"), DurationMin: 60, Visibility: model.VisibilityPrivate,
	}); !errors.Is(err, ErrOutOfWindow) {
		t.Fatalf("booking past window close: err = %v, want ErrOutOfWindow", err)
	}

	// starts before the window opens: rejected
	if _, err := ledger.CreateReservation(ctx, member, CreateRequest{
		CourtID: 1, Date: day(t, "2026-09-02"), Start: td(t, "06:30"), DurationMin: 60, Visibility: model.VisibilityPrivate,
	}); !errors.Is(err, ErrOutOfWindow) {
		t.Fatalf("booking before window open: err = %v, want ErrOutOfWindow", err)
	}
}

func TestCreateReservationCustomWindow(t *testing.T) {
	court := testCourt(2)
	from, to := td(t, "08:00"), td(t, "20:00")
	court.BookableFrom = &from
	court.BookableTo = &to
	ledger, _ := newTestLedger(court)
	ctx := context.Background()

	if _, err := ledger.CreateReservation(ctx, member, CreateRequest{
		CourtID: 2, Date: day(t, "2026-09-01"), Start: td(t, "07:00"), DurationMin: 60, Visibility: model.VisibilityPrivate,
	}); !errors.Is(err, ErrOutOfWindow) {
		t.Fatalf("booking outside custom window: err = %v, want ErrOutOfWindow", err)
	}
	if _, err := ledger.CreateReservation(ctx, member, CreateRequest{
		CourtID: 2, Date: day(t, "2026-09-01"), Start: td(t, "08:00"), DurationMin: 60, Visibility: model.VisibilityPrivate,
	}); err != nil {
		t.Fatalf("booking at custom window open failed: %v", err)
	}
}

func TestCreateReservationValidation(t *testing.T) {
	ledger, _ := newTestLedger(testCourt(1))
	ctx := context.Background()
	date := day(t, "2026-09-01")

	cases := []struct {
		name string
		req  CreateRequest
		want error
	}{
		{"unknown court", CreateRequest{CourtID: 99, Date: date, Start: 600, DurationMin: 60, Visibility: model.VisibilityPrivate}, ErrNotFound},
		{"zero duration", CreateRequest{CourtID: 1, Date: date, Start: 600, DurationMin: 0, Visibility: model.VisibilityPrivate}, ErrValidation},
		{"negative duration", CreateRequest{CourtID: 1, Date: date, Start: 600, DurationMin: -30, Visibility: model.VisibilityPrivate}, ErrValidation},
		{"duration not allowed", CreateRequest{CourtID: 1, Date: date, Start: 600, DurationMin: 45, Visibility: model.VisibilityPrivate}, ErrInvalidDuration},
		{"bad visibility", CreateRequest{CourtID: 1, Date: date, Start: 600, DurationMin: 60, Visibility: "secret"}, ErrValidation},
		{"zero date", CreateRequest{CourtID: 1, Start: 600, DurationMin: 60, Visibility: model.VisibilityPrivate}, ErrValidation},
		{"color on private booking", CreateRequest{CourtID: 1, Date: date, Start: 600, DurationMin: 60, Visibility: model.VisibilityPrivate, Color: strPtr("#ff0000")}, ErrValidation},
	}
	for _, c := range cases {
		if _, err := ledger.CreateReservation(ctx, member, c.req); !errors.Is(err, c.want) {
			t.Errorf("%s: err = %v, want %v", c.name, err, c.want)
		}
	}
}

func strPtr(s string) *string { return &s }

func TestPublicBookingPermissions(t *testing.T) {
	ledger, _ := newTestLedger(testCourt(1))
	ctx := context.Background()
	date := day(t, "2026-09-01")

	// members may not create public bookings
	_, err := ledger.CreateReservation(ctx, member, CreateRequest{
		CourtID: 1, Date: date, Start: td(t, "10:00"), DurationMin: 60, Visibility: model.VisibilityPublic,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("member public booking: err = %v, want ErrForbidden", err)
	}

	// trainers may, and the color survives
	res, err := ledger.CreateReservation(ctx, trainer, CreateRequest{
		CourtID: 1, Date: date, Start: td(t, "10:00"), DurationMin: 60,
		Visibility: model.VisibilityPublic, Color: strPtr("#00aa00"),
	})
	if err != nil {
		t.Fatalf("trainer public booking failed: %v", err)
	}
	if res.Color == nil || *res.Color != "#00aa00" {
		t.Fatalf("public booking color = %v, want #00aa00", res.Color)
	}

	// unknown roles may not book at all
	_, err = ledger.CreateReservation(ctx, Actor{ID: 40, Role: "GUEST"}, CreateRequest{
		CourtID: 1, Date: date, Start: td(t, "12:00"), DurationMin: 60, Visibility: model.VisibilityPrivate,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("unknown role booking: err = %v, want ErrForbidden", err)
	}
}

func TestCancelReservation(t *testing.T) {
	ledger, _ := newTestLedger(testCourt(1))
	ctx := context.Background()
	date := day(t, "2026-09-01")

	res, err := ledger.CreateReservation(ctx, member, CreateRequest{
		CourtID: 1, Date: date, Start: td(t, "10:00"), DurationMin: 60, Visibility: model.VisibilityPrivate,
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	// another member may not cancel
	if err := ledger.CancelReservation(ctx, Actor{ID: 11, Role: RoleMember}, res.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign cancel: err = %v, want ErrForbidden", err)
	}

	if err := ledger.CancelReservation(ctx, member, res.ID); err != nil {
		t.Fatalf("owner cancel failed: %v", err)
	}

	// second cancel is a visible no-op
	if err := ledger.CancelReservation(ctx, member, res.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second cancel: err = %v, want ErrNotFound", err)
	}

	// the slot is free again
	if _, err := ledger.CreateReservation(ctx, member, CreateRequest{
		CourtID: 1, Date: date, Start: td(t, "10:00"), DurationMin: 60, Visibility: model.VisibilityPrivate,
	}); err != nil {
		t.Fatalf("rebooking freed slot failed: %v", err)
	}
}

func TestAdminCanCancelAnyReservation(t *testing.T) {
	ledger, _ := newTestLedger(testCourt(1))
	ctx := context.Background()

	res, err := ledger.CreateReservation(ctx, member, CreateRequest{
		CourtID: 1, Date: day(t, "2026-09-01"), Start: td(t, "10:00"), DurationMin: 60, Visibility: model.VisibilityPrivate,
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if err := ledger.CancelReservation(ctx, admin, res.ID); err != nil {
		t.Fatalf("admin cancel failed: %v", err)
	}
}

func TestNoOverlapUnderRandomLoad(t *testing.T) {
	ledger, store := newTestLedger(testCourt(1))
	ctx := context.Background()
	date := day(t, "2026-09-01")
	rng := rand.New(rand.NewSource(1))

	durations := []int{60, 90, 120}
	for i := 0; i < 300; i++ {
		start := schedule.DefaultWindowFrom + schedule.TimeOfDay(rng.Intn(30))*schedule.SlotGranularity
		_, err := ledger.CreateReservation(ctx, member, CreateRequest{
			CourtID:     1,
			Date:        date,
			Start:       start,
			DurationMin: durations[rng.Intn(len(durations))],
			Visibility:  model.VisibilityPrivate,
		})
		if err != nil && !errors.Is(err, ErrSlotTaken) && !errors.Is(err, ErrOutOfWindow) {
			t.Fatalf("attempt %d: unexpected error %v", i, err)
		}
	}

	all, _ := store.ListByCourtDate(ctx, 1, date)
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if schedule.Overlaps(all[i].StartMin, all[i].EndMin, all[j].StartMin, all[j].EndMin) {
				t.Fatalf("reservations %d and %d overlap: %s-%s vs %s-%s",
					all[i].ID, all[j].ID, all[i].StartMin, all[i].EndMin, all[j].StartMin, all[j].EndMin)
			}
		}
	}
}

func TestListReservationsUnknownCourt(t *testing.T) {
	ledger, _ := newTestLedger(testCourt(1))
	if _, err := ledger.ListReservations(context.Background(), 99, day(t, "2026-09-01")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("list for unknown court: err = %v, want ErrNotFound", err)
	}
}
