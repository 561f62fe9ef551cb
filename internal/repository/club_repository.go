// Package repository contains the MySQL data access layer. Repositories
// return the sentinel errors from internal/booking for expected failure
// kinds so handlers and the ledger see one error taxonomy regardless of
// which store produced the failure.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/court-reserve/internal/booking"
	"github.com/iliyamo/court-reserve/internal/model"
)

// ClubRepo encapsulates all database queries related to clubs. A club
// is the tenant that owns courts; its OwnerID references the admin
// account that manages it.
type ClubRepo struct {
	db *sql.DB
}

// NewClubRepo constructs a ClubRepo with the provided DB handle.
func NewClubRepo(db *sql.DB) *ClubRepo { return &ClubRepo{db: db} }

// Create inserts a new club. On success the ID field is populated and a
// follow-up SELECT fills the timestamp defaults so callers receive a
// fully populated record.
func (r *ClubRepo) Create(ctx context.Context, c *model.Club) error {
	const qInsert = `INSERT INTO clubs (owner_id, name) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, c.OwnerID, c.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)

	const qSelect = `SELECT owner_id, name, created_at, updated_at FROM clubs WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, c.ID).Scan(&c.OwnerID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID fetches a club regardless of owner. Returns booking.ErrNotFound
// when no row exists.
func (r *ClubRepo) GetByID(ctx context.Context, id uint64) (*model.Club, error) {
	const q = `SELECT id, owner_id, name, created_at, updated_at FROM clubs WHERE id = ?`
	var c model.Club
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.OwnerID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetByIDAndOwner fetches a club only if it belongs to the given owner,
// enforcing ownership at the repository layer.
func (r *ClubRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Club, error) {
	const q = `SELECT id, owner_id, name, created_at, updated_at FROM clubs WHERE id = ? AND owner_id = ?`
	var c model.Club
	if err := r.db.QueryRowContext(ctx, q, id, ownerID).Scan(&c.ID, &c.OwnerID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListAll returns every club ordered by id; used by the public browse
// endpoint.
func (r *ClubRepo) ListAll(ctx context.Context) ([]*model.Club, error) {
	const q = `SELECT id, owner_id, name, created_at, updated_at FROM clubs ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Club
	for rows.Next() {
		c := new(model.Club)
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListByOwner returns all clubs administered by one owner ordered by id.
func (r *ClubRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Club, error) {
	const q = `SELECT id, owner_id, name, created_at, updated_at FROM clubs WHERE owner_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Club
	for rows.Next() {
		c := new(model.Club)
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateName renames the club if it belongs to the provided owner.
// Returns booking.ErrNotFound when no row was affected.
func (r *ClubRepo) UpdateName(ctx context.Context, id, ownerID uint64, name string) error {
	const q = `UPDATE clubs SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, name, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// Delete removes the club if it belongs to the provided owner. Courts
// and reservations cascade via foreign keys.
func (r *ClubRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	const q = `DELETE FROM clubs WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return booking.ErrNotFound
	}
	return nil
}
