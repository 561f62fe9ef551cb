package booking

import (
	"context"
	"time"

	"github.com/iliyamo/court-reserve/internal/model"
)

// Actor identifies who is performing a booking operation. The identity
// layer (JWT middleware) supplies it explicitly on every call; nothing
// in this package reads ambient session state.
type Actor struct {
	ID   uint64
	Role string
}

// Roles recognised by the permission layer.
const (
	RoleMember  = "MEMBER"
	RoleTrainer = "TRAINER"
	RoleAdmin   = "ADMIN"
)

// IsAdmin reports whether the actor holds the administrator role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CourtStore resolves courts for booking validation. The MySQL
// implementation lives in internal/repository.
type CourtStore interface {
	// GetCourt returns the court or ErrNotFound.
	GetCourt(ctx context.Context, id uint64) (*model.Court, error)
}

// ReservationStore is the authoritative reservation set. Create must
// perform the overlap check and the insert atomically with respect to
// concurrent Create calls on the same court and date (a transaction
// with a row lock in the MySQL implementation) and return ErrSlotTaken
// when an overlapping reservation exists.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	// GetByID returns the reservation or ErrNotFound.
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	// Delete removes the reservation, returning ErrNotFound when no row
	// was deleted so a second cancel is observably a no-op.
	Delete(ctx context.Context, id uint64) error
	// ListByCourtDate returns all reservations (public and private) for
	// one court and day, ordered by start time.
	ListByCourtDate(ctx context.Context, courtID uint64, date time.Time) ([]*model.Reservation, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Reservation, error)
}

// SeriesStore persists series records. The series row is written before
// its occurrences are attempted and is kept regardless of how many of
// them succeed.
type SeriesStore interface {
	Create(ctx context.Context, s *model.Series) error
}

// PermissionChecker is the external permission service contract. The
// production implementation is role-based (see RolePermissions); tests
// inject fakes.
type PermissionChecker interface {
	// CanBook reports whether the actor may create bookings at all.
	CanBook(ctx context.Context, actor Actor) bool
	// CanBookPublic reports whether the actor may create public
	// (member-visible) bookings.
	CanBookPublic(ctx context.Context, actor Actor) bool
}

// RolePermissions implements PermissionChecker from the role carried in
// the actor's token: every known role may book, public bookings are
// reserved for trainers and admins.
type RolePermissions struct{}

func (RolePermissions) CanBook(_ context.Context, actor Actor) bool {
	switch actor.Role {
	case RoleMember, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

func (RolePermissions) CanBookPublic(_ context.Context, actor Actor) bool {
	return actor.Role == RoleTrainer || actor.Role == RoleAdmin
}
