package repository

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/iliyamo/court-reserve/internal/booking"
	"github.com/iliyamo/court-reserve/internal/model"
	"github.com/iliyamo/court-reserve/internal/schedule"
)

// CourtRepo provides methods to create and retrieve courts. It
// implements booking.CourtStore so the ledger can resolve courts
// without knowing about SQL.
type CourtRepo struct {
	db *sql.DB
}

// NewCourtRepo constructs a CourtRepo with the given DB handle.
func NewCourtRepo(db *sql.DB) *CourtRepo { return &CourtRepo{db: db} }

// encodeDurations serialises the allowed duration set as a sorted CSV
// string for the allowed_durations column.
func encodeDurations(ds []int) string {
	sorted := append([]int(nil), ds...)
	sort.Ints(sorted)
	parts := make([]string, 0, len(sorted))
	for _, d := range sorted {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ",")
}

// decodeDurations parses the allowed_durations column. Malformed
// entries are skipped rather than failing the whole scan.
func decodeDurations(s string) []int {
	var out []int
	for _, p := range strings.Split(s, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil && n > 0 {
			out = append(out, n)
		}
	}
	return out
}

func scanWindow(from, to sql.NullInt32) (*schedule.TimeOfDay, *schedule.TimeOfDay) {
	var f, t *schedule.TimeOfDay
	if from.Valid {
		v := schedule.TimeOfDay(from.Int32)
		f = &v
	}
	if to.Valid {
		v := schedule.TimeOfDay(to.Int32)
		t = &v
	}
	return f, t
}

func windowArgs(c *model.Court) (interface{}, interface{}) {
	var from, to interface{}
	if c.BookableFrom != nil {
		from = int32(*c.BookableFrom)
	}
	if c.BookableTo != nil {
		to = int32(*c.BookableTo)
	}
	return from, to
}

const courtColumns = `id, club_id, name, surface, bookable_from_min, bookable_to_min, allowed_durations, is_active, created_at, updated_at`

func scanCourt(row interface{ Scan(...interface{}) error }) (*model.Court, error) {
	var (
		c         model.Court
		from, to  sql.NullInt32
		durations string
	)
	if err := row.Scan(&c.ID, &c.ClubID, &c.Name, &c.Surface, &from, &to, &durations, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.BookableFrom, c.BookableTo = scanWindow(from, to)
	c.Durations = decodeDurations(durations)
	return &c, nil
}

// Create inserts a new court. The caller must have validated the
// operating window (from < to) and that all durations are positive.
// After the insert the record is read back to fill defaults.
func (r *CourtRepo) Create(ctx context.Context, c *model.Court) error {
	from, to := windowArgs(c)
	const qInsert = `INSERT INTO courts (club_id, name, surface, bookable_from_min, bookable_to_min, allowed_durations)
	                 VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, c.ClubID, c.Name, c.Surface, from, to, encodeDurations(c.Durations))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)

	got, err := r.GetCourt(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = *got
	return nil
}

// GetCourt implements booking.CourtStore. It returns booking.ErrNotFound
// for unknown or deactivated courts.
func (r *CourtRepo) GetCourt(ctx context.Context, id uint64) (*model.Court, error) {
	const q = `SELECT ` + courtColumns + ` FROM courts WHERE id = ? AND is_active = 1`
	c, err := scanCourt(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListByClub returns all active courts of a club ordered by id.
func (r *CourtRepo) ListByClub(ctx context.Context, clubID uint64) ([]*model.Court, error) {
	const q = `SELECT ` + courtColumns + ` FROM courts WHERE club_id = ? AND is_active = 1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Court
	for rows.Next() {
		c, err := scanCourt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update rewrites the mutable court fields (name, surface, window,
// durations) when the court belongs to a club of the given owner.
// Returns booking.ErrNotFound when nothing matched.
func (r *CourtRepo) Update(ctx context.Context, ownerID uint64, c *model.Court) error {
	from, to := windowArgs(c)
	const q = `UPDATE courts co
	           JOIN clubs cl ON cl.id = co.club_id
	           SET co.name = ?, co.surface = ?, co.bookable_from_min = ?, co.bookable_to_min = ?,
	               co.allowed_durations = ?, co.updated_at = CURRENT_TIMESTAMP
	           WHERE co.id = ? AND cl.owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Surface, from, to, encodeDurations(c.Durations), c.ID, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// Deactivate soft-deletes a court so existing reservations stay
// readable while new bookings are refused (GetCourt filters on
// is_active).
func (r *CourtRepo) Deactivate(ctx context.Context, ownerID, courtID uint64) error {
	const q = `UPDATE courts co
	           JOIN clubs cl ON cl.id = co.club_id
	           SET co.is_active = 0, co.updated_at = CURRENT_TIMESTAMP
	           WHERE co.id = ? AND cl.owner_id = ? AND co.is_active = 1`
	res, err := r.db.ExecContext(ctx, q, courtID, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return booking.ErrNotFound
	}
	return nil
}
