package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/court-reserve/internal/booking"
	"github.com/iliyamo/court-reserve/internal/model"
	"github.com/iliyamo/court-reserve/internal/schedule"
)

// SeriesRepo persists weekly series records. It implements
// booking.SeriesStore.
type SeriesRepo struct {
	db *sql.DB
}

// NewSeriesRepo returns a SeriesRepo bound to the given database.
func NewSeriesRepo(db *sql.DB) *SeriesRepo { return &SeriesRepo{db: db} }

// Create inserts the series row and populates ID and CreatedAt. The row
// is written before any occurrence is attempted and is kept even when
// every occurrence fails.
func (r *SeriesRepo) Create(ctx context.Context, s *model.Series) error {
	const q = `INSERT INTO series (public_id, name, court_id, owner_id, start_date, weekday, start_min, duration_min, weeks)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		s.PublicID.String(), s.Name, s.CourtID, s.OwnerID, s.StartDate, int(s.Weekday), int32(s.StartMin), s.DurationMin, s.Weeks)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)

	const sel = `SELECT created_at FROM series WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, s.ID).Scan(&s.CreatedAt)
}

// GetByPublicID resolves a series from the UUID exposed on the wire.
func (r *SeriesRepo) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*model.Series, error) {
	const q = `SELECT id, public_id, name, court_id, owner_id, start_date, weekday, start_min, duration_min, weeks, created_at
	           FROM series WHERE public_id = ?`
	var (
		s        model.Series
		pid      string
		weekday  int
		startMin int32
	)
	err := r.db.QueryRowContext(ctx, q, publicID.String()).Scan(
		&s.ID, &pid, &s.Name, &s.CourtID, &s.OwnerID, &s.StartDate, &weekday, &startMin, &s.DurationMin, &s.Weeks, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrNotFound
		}
		return nil, err
	}
	parsed, err := uuid.Parse(pid)
	if err != nil {
		return nil, err
	}
	s.PublicID = parsed
	s.Weekday = time.Weekday(weekday)
	s.StartMin = schedule.TimeOfDay(startMin)
	return &s, nil
}

// ListReservations returns the reservations attached to a series,
// ordered by occurrence index.
func (r *SeriesRepo) ListReservations(ctx context.Context, seriesID uint64) ([]*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
	           WHERE series_id = ? ORDER BY occurrence_idx`
	rows, err := r.db.QueryContext(ctx, q, seriesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
