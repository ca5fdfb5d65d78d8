// Package gateway defines the contract with the external managed backend:
// a hosted authentication provider and a realtime document store addressed
// by hierarchical path. Implementations live in the sub-packages; the rest
// of the application depends only on these interfaces.
package gateway

import (
	"context"

	"chamado/internal/shared/session"
)

// AuthResult is the outcome of a successful sign-in or sign-up: the
// authenticated identity plus an opaque token that can resume the session
// in a later process.
type AuthResult struct {
	Identity session.Identity
	Token    string
}

// Authenticator is the hosted authentication provider.
type Authenticator interface {
	// SignIn authenticates email/password credentials.
	// Rejected credentials surface as an authentication error.
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)

	// SignUp creates a new identity with the display name attached.
	// A duplicate email surfaces as a conflict error.
	SignUp(ctx context.Context, name, email, password string) (*AuthResult, error)

	// SendReset triggers the provider's password reset flow for the email.
	SendReset(ctx context.Context, email string) error

	// SignOut terminates the provider-side session, if any.
	SignOut(ctx context.Context) error

	// Resume validates a previously issued token and returns its identity.
	Resume(ctx context.Context, token string) (*session.Identity, error)
}

// UnsubscribeFunc cancels a subscription. Calling it more than once is
// harmless.
type UnsubscribeFunc func()

// SnapshotFunc receives the current value at the subscribed path. The value
// is a decoded JSON tree (map[string]any, []any, string, float64, bool) or
// nil when the path is absent.
type SnapshotFunc func(value any)

// Store is the realtime document store. Paths are slash-separated segments,
// e.g. "chamados/{id}/mensagens".
type Store interface {
	// Read returns the value at path one-shot; ok is false when absent.
	Read(ctx context.Context, path string) (value any, ok bool, err error)

	// Write replaces the value at path entirely.
	Write(ctx context.Context, path string, value any) error

	// Update merges the given fields into the record at path.
	Update(ctx context.Context, path string, fields map[string]any) error

	// Push appends a record under path with a generated key and returns it.
	Push(ctx context.Context, path string, value any) (string, error)

	// Subscribe registers for continuous snapshots of the value at path.
	// The callback fires once with the current value on registration, then
	// on every change affecting the path's subtree, in emission order.
	Subscribe(path string, fn SnapshotFunc) (UnsubscribeFunc, error)
}
