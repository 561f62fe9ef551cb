package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/court-reserve/internal/booking"
	"github.com/iliyamo/court-reserve/internal/model"
	"github.com/iliyamo/court-reserve/internal/schedule"
)

// ReservationRepo is the MySQL implementation of
// booking.ReservationStore. Create runs the overlap check and the
// insert inside one transaction while holding the court row lock, which
// serialises concurrent booking attempts per court even when the
// service runs as multiple instances. A unique key on
// (court_id, play_date, start_min) backs the lock up for the
// identical-start race.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given
// database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, court_id, play_date, start_min, end_min, visibility, owner_id, notes, color, series_id, occurrence_idx, created_at`

func scanReservation(row interface{ Scan(...interface{}) error }) (*model.Reservation, error) {
	var (
		res           model.Reservation
		startMin      int32
		endMin        int32
		notes, color  sql.NullString
		seriesID      sql.NullInt64
		occurrenceIdx sql.NullInt32
	)
	if err := row.Scan(&res.ID, &res.CourtID, &res.PlayDate, &startMin, &endMin, &res.Visibility,
		&res.OwnerID, &notes, &color, &seriesID, &occurrenceIdx, &res.CreatedAt); err != nil {
		return nil, err
	}
	res.StartMin = schedule.TimeOfDay(startMin)
	res.EndMin = schedule.TimeOfDay(endMin)
	if notes.Valid {
		v := notes.String
		res.Notes = &v
	}
	if color.Valid {
		v := color.String
		res.Color = &v
	}
	if seriesID.Valid {
		v := uint64(seriesID.Int64)
		res.SeriesID = &v
	}
	if occurrenceIdx.Valid {
		v := int(occurrenceIdx.Int32)
		res.OccurrenceIdx = &v
	}
	return &res, nil
}

// Create inserts the reservation if and only if no existing reservation
// on the same court and date overlaps its [start, end) range. The check
// and the insert are atomic: the court row is locked FOR UPDATE first,
// so two concurrent attempts for the same slot cannot both pass the
// overlap scan. Returns booking.ErrSlotTaken on conflict and
// booking.ErrNotFound when the court disappeared underneath us.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Serialise all writers for this court. Locking the parent row is
	// coarser than per-date but avoids relying on gap-lock behaviour for
	// correctness.
	const lockQ = `SELECT id FROM courts WHERE id = ? FOR UPDATE`
	var courtID uint64
	if err := tx.QueryRowContext(ctx, lockQ, res.CourtID).Scan(&courtID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.ErrNotFound
		}
		return err
	}

	// Standard half-open interval intersection: a.start < b.end && b.start < a.end.
	const overlapQ = `SELECT id FROM reservations
	                  WHERE court_id = ? AND play_date = ? AND start_min < ? AND end_min > ?
	                  LIMIT 1`
	var clashID uint64
	err = tx.QueryRowContext(ctx, overlapQ, res.CourtID, res.PlayDate, int32(res.EndMin), int32(res.StartMin)).Scan(&clashID)
	switch {
	case err == nil:
		return booking.ErrSlotTaken
	case errors.Is(err, sql.ErrNoRows):
		// slot is free
	default:
		return err
	}

	const insertQ = `INSERT INTO reservations
	                 (court_id, play_date, start_min, end_min, visibility, owner_id, notes, color, series_id, occurrence_idx)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, insertQ,
		res.CourtID, res.PlayDate, int32(res.StartMin), int32(res.EndMin), string(res.Visibility),
		res.OwnerID, res.Notes, res.Color, res.SeriesID, res.OccurrenceIdx)
	if err != nil {
		// uq_court_date_start fired: somebody took the exact start slot.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return booking.ErrSlotTaken
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	const selectQ = `SELECT created_at FROM reservations WHERE id = ?`
	if err := tx.QueryRowContext(ctx, selectQ, res.ID).Scan(&res.CreatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID returns the reservation or booking.ErrNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

// Delete removes the reservation. The second delete of the same id
// returns booking.ErrNotFound and has no side effect.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM reservations WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// ListByCourtDate returns all reservations for one court and calendar
// day ordered by start time. Private reservations are included; the
// presentation layer redacts them per viewer.
func (r *ReservationRepo) ListByCourtDate(ctx context.Context, courtID uint64, date time.Time) ([]*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
	           WHERE court_id = ? AND play_date = ? ORDER BY start_min`
	rows, err := r.db.QueryContext(ctx, q, courtID, date)
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

// ListByOwner returns the owner's reservations, newest play date first,
// for the my-reservations endpoint.
func (r *ReservationRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
	           WHERE owner_id = ? ORDER BY play_date DESC, start_min`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
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
