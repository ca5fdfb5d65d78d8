package user

import (
	"context"
	"time"
)

// Repository provides access to user records kept by the backend under
// users/{uid}. Absent records are reported as not-found errors.
type Repository interface {
	// Get fetches the user record for the given identity.
	Get(ctx context.Context, uid string) (*User, error)

	// Save writes the full user record (sign-up).
	Save(ctx context.Context, u *User) error

	// UpdateLastAccess merges a fresh last-access timestamp into the record.
	UpdateLastAccess(ctx context.Context, uid string, at time.Time) error

	// ReplaceProfile overwrites the entire record with the profile fields.
	// This is a full write, not a merge; any other fields are dropped,
	// matching the backend's profile-save semantics.
	ReplaceProfile(ctx context.Context, uid string, name string, photo string) error
}
