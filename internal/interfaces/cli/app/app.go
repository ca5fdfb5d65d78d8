// Package app wires the application together for CLI commands: config,
// logger, gateway backend, authenticator and repositories.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	sessionUsecases "chamado/internal/application/session/usecases"
	"chamado/internal/domain/ticket"
	"chamado/internal/domain/user"
	"chamado/internal/infrastructure/auth"
	"chamado/internal/infrastructure/config"
	"chamado/internal/infrastructure/email"
	"chamado/internal/infrastructure/gateway"
	"chamado/internal/infrastructure/gateway/memory"
	"chamado/internal/infrastructure/gateway/redisstore"
	"chamado/internal/infrastructure/repository"
	apperrors "chamado/internal/shared/errors"
	"chamado/internal/shared/logger"
	"chamado/internal/shared/session"
)

const tokenFileName = "session"

type App struct {
	Config    *config.Config
	Logger    logger.Interface
	Session   *session.Session
	Store     gateway.Store
	Auth      gateway.Authenticator
	LocalAuth *auth.LocalAuthenticator
	Users     user.Repository
	Tickets   ticket.Repository

	closers []func()
}

func Bootstrap() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	a := &App{
		Config:  cfg,
		Logger:  log,
		Session: session.New(),
	}

	switch strings.ToLower(cfg.Gateway.Backend) {
	case "memory":
		a.Store = memory.NewStore()
	case "redis", "":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.closers = append(a.closers, func() {
			if err := client.Close(); err != nil {
				log.Warnw("failed to close redis client", "error", err)
			}
		})
		a.Store = redisstore.NewStore(client, log)
	default:
		return nil, fmt.Errorf("unknown gateway backend: %s", cfg.Gateway.Backend)
	}

	var sender email.Sender
	if cfg.Email.Host != "" {
		sender = email.NewSMTPSender(cfg.Email)
	} else {
		sender = email.NewNoopSender(log)
	}

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.SessionExpHours)
	localAuth := auth.NewLocalAuthenticator(
		a.Store,
		hasher,
		tokens,
		sender,
		time.Duration(cfg.Auth.ResetTokenExpMinutes)*time.Minute,
		log,
	)
	a.Auth = localAuth
	a.LocalAuth = localAuth

	a.Users = repository.NewUserRepository(a.Store, log)
	a.Tickets = repository.NewTicketRepository(a.Store, log)

	return a, nil
}

func (a *App) Close() {
	for _, closer := range a.closers {
		closer()
	}
}

// Resume reinstates the session from the saved token file. Commands that
// require authentication call this first.
func (a *App) Resume(ctx context.Context) error {
	token, err := a.LoadToken()
	if err != nil {
		return apperrors.NewUnauthenticatedError("not logged in, run login first")
	}

	resume := sessionUsecases.NewResumeSessionUseCase(a.Auth, a.Users, a.Session, a.Logger)
	if _, err := resume.Execute(ctx, sessionUsecases.ResumeSessionCommand{Token: token}); err != nil {
		a.ClearToken()
		return err
	}
	return nil
}

func (a *App) SaveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}
	return nil
}

func (a *App) LoadToken() (string, error) {
	path, err := tokenPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (a *App) ClearToken() {
	path, err := tokenPath()
	if err != nil {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		a.Logger.Warnw("failed to remove session token", "error", err)
	}
}

func tokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".chamado", tokenFileName), nil
}
