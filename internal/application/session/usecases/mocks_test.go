package usecases

import (
	"context"
	"io"
	"log/slog"
	"time"

	"chamado/internal/domain/user"
	"chamado/internal/infrastructure/gateway"
	"chamado/internal/shared/logger"
	"chamado/internal/shared/session"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type mockAuthenticator struct {
	SignInFunc    func(ctx context.Context, email, password string) (*gateway.AuthResult, error)
	SignUpFunc    func(ctx context.Context, name, email, password string) (*gateway.AuthResult, error)
	SendResetFunc func(ctx context.Context, email string) error
	SignOutFunc   func(ctx context.Context) error
	ResumeFunc    func(ctx context.Context, token string) (*session.Identity, error)

	signOutCalls int
}

func (m *mockAuthenticator) SignIn(ctx context.Context, email, password string) (*gateway.AuthResult, error) {
	return m.SignInFunc(ctx, email, password)
}

func (m *mockAuthenticator) SignUp(ctx context.Context, name, email, password string) (*gateway.AuthResult, error) {
	return m.SignUpFunc(ctx, name, email, password)
}

func (m *mockAuthenticator) SendReset(ctx context.Context, email string) error {
	return m.SendResetFunc(ctx, email)
}

func (m *mockAuthenticator) SignOut(ctx context.Context) error {
	m.signOutCalls++
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx)
	}
	return nil
}

func (m *mockAuthenticator) Resume(ctx context.Context, token string) (*session.Identity, error) {
	return m.ResumeFunc(ctx, token)
}

type mockUserRepository struct {
	GetFunc              func(ctx context.Context, uid string) (*user.User, error)
	SaveFunc             func(ctx context.Context, u *user.User) error
	UpdateLastAccessFunc func(ctx context.Context, uid string, at time.Time) error
	ReplaceProfileFunc   func(ctx context.Context, uid string, name string, photo string) error

	lastAccessCalls int
}

func (m *mockUserRepository) Get(ctx context.Context, uid string) (*user.User, error) {
	return m.GetFunc(ctx, uid)
}

func (m *mockUserRepository) Save(ctx context.Context, u *user.User) error {
	return m.SaveFunc(ctx, u)
}

func (m *mockUserRepository) UpdateLastAccess(ctx context.Context, uid string, at time.Time) error {
	m.lastAccessCalls++
	if m.UpdateLastAccessFunc != nil {
		return m.UpdateLastAccessFunc(ctx, uid, at)
	}
	return nil
}

func (m *mockUserRepository) ReplaceProfile(ctx context.Context, uid string, name string, photo string) error {
	return m.ReplaceProfileFunc(ctx, uid, name, photo)
}
