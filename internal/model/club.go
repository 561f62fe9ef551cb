package model

import "time"

// Club is the tenant that owns courts. Members book courts within one
// club; scoping every court and reservation to a club keeps clubs
// isolated from each other. OwnerID references the admin account that
// manages the club.
type Club struct {
	ID        uint64    `json:"id"`         // clubs.id
	OwnerID   uint64    `json:"owner_id"`   // clubs.owner_id
	Name      string    `json:"name"`       // clubs.name
	CreatedAt time.Time `json:"created_at"` // clubs.created_at
	UpdatedAt time.Time `json:"updated_at"` // clubs.updated_at
}
