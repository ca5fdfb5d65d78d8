// Package auth implements the backend authentication contract locally:
// bcrypt-hashed credentials in the gateway store, signed resume tokens and
// SMTP delivery of password reset codes.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"chamado/internal/infrastructure/email"
	"chamado/internal/infrastructure/gateway"
	"chamado/internal/shared/biztime"
	apperrors "chamado/internal/shared/errors"
	"chamado/internal/shared/id"
	"chamado/internal/shared/logger"
	"chamado/internal/shared/session"
)

const (
	accountsPath = "auth/accounts"
	resetsPath   = "auth/resets"
)

type accountRecord struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"passwordHash"`
	CreatedAt    int64  `json:"createdAt"`
}

type resetRecord struct {
	EmailKey  string `json:"emailKey"`
	ExpiresAt int64  `json:"expiresAt"`
}

// LocalAuthenticator satisfies the gateway.Authenticator contract using the
// gateway store itself for account persistence.
type LocalAuthenticator struct {
	store       gateway.Store
	hasher      *BcryptPasswordHasher
	tokens      *TokenService
	sender      email.Sender
	resetExpiry time.Duration
	logger      logger.Interface
}

var _ gateway.Authenticator = (*LocalAuthenticator)(nil)

func NewLocalAuthenticator(
	store gateway.Store,
	hasher *BcryptPasswordHasher,
	tokens *TokenService,
	sender email.Sender,
	resetExpiry time.Duration,
	log logger.Interface,
) *LocalAuthenticator {
	if resetExpiry <= 0 {
		resetExpiry = 30 * time.Minute
	}
	return &LocalAuthenticator{
		store:       store,
		hasher:      hasher,
		tokens:      tokens,
		sender:      sender,
		resetExpiry: resetExpiry,
		logger:      log,
	}
}

func (a *LocalAuthenticator) SignIn(ctx context.Context, emailAddr, password string) (*gateway.AuthResult, error) {
	account, ok, err := a.readAccount(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewAuthenticationError("invalid email or password")
	}

	if err := a.hasher.Verify(password, account.PasswordHash); err != nil {
		return nil, apperrors.NewAuthenticationError("invalid email or password")
	}

	identity := session.Identity{
		UID:         account.UID,
		Email:       account.Email,
		DisplayName: account.Name,
	}

	token, err := a.tokens.Generate(identity)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue session token", err.Error())
	}

	return &gateway.AuthResult{Identity: identity, Token: token}, nil
}

func (a *LocalAuthenticator) SignUp(ctx context.Context, name, emailAddr, password string) (*gateway.AuthResult, error) {
	_, exists, err := a.readAccount(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("email is already registered")
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err.Error())
	}

	uid, err := id.Generate(28)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to generate uid", err.Error())
	}

	account := accountRecord{
		UID:          uid,
		Email:        normalizeEmail(emailAddr),
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    biztime.ToMillis(biztime.NowUTC()),
	}

	if err := a.store.Write(ctx, accountPath(emailAddr), toRecord(account)); err != nil {
		return nil, apperrors.NewDeliveryError("failed to store account", err.Error())
	}

	identity := session.Identity{
		UID:         account.UID,
		Email:       account.Email,
		DisplayName: account.Name,
	}

	token, err := a.tokens.Generate(identity)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue session token", err.Error())
	}

	return &gateway.AuthResult{Identity: identity, Token: token}, nil
}

func (a *LocalAuthenticator) SendReset(ctx context.Context, emailAddr string) error {
	account, ok, err := a.readAccount(ctx, emailAddr)
	if err != nil {
		return err
	}
	if !ok {
		// Do not disclose whether the email is registered.
		a.logger.Infow("reset requested for unknown email", "email", normalizeEmail(emailAddr))
		return nil
	}

	token, err := id.Generate(32)
	if err != nil {
		return apperrors.NewInternalError("failed to generate reset token", err.Error())
	}

	record := resetRecord{
		EmailKey:  emailKey(emailAddr),
		ExpiresAt: biztime.ToMillis(biztime.NowUTC().Add(a.resetExpiry)),
	}
	if err := a.store.Write(ctx, resetsPath+"/"+token, toRecord(record)); err != nil {
		return apperrors.NewDeliveryError("failed to store reset token", err.Error())
	}

	if err := a.sender.SendPasswordResetEmail(account.Email, token); err != nil {
		return apperrors.NewDeliveryError("failed to send reset email", err.Error())
	}
	return nil
}

// ConfirmReset applies a previously emailed reset token and installs a new
// password. One-time use: the token record is removed on success.
func (a *LocalAuthenticator) ConfirmReset(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return apperrors.NewValidationError("password cannot be empty")
	}

	value, ok, err := a.store.Read(ctx, resetsPath+"/"+token)
	if err != nil {
		return apperrors.NewDeliveryError("failed to read reset token", err.Error())
	}
	if !ok {
		return apperrors.NewAuthenticationError("invalid or expired reset token")
	}

	var record resetRecord
	if err := decodeRecord(value, &record); err != nil {
		return apperrors.NewInternalError("malformed reset token record", err.Error())
	}
	if biztime.NowUTC().After(biztime.FromMillis(record.ExpiresAt)) {
		return apperrors.NewAuthenticationError("invalid or expired reset token")
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.NewInternalError("failed to hash password", err.Error())
	}

	if err := a.store.Update(ctx, accountsPath+"/"+record.EmailKey, map[string]any{
		"passwordHash": hash,
	}); err != nil {
		return apperrors.NewDeliveryError("failed to update password", err.Error())
	}

	if err := a.store.Write(ctx, resetsPath+"/"+token, nil); err != nil {
		a.logger.Warnw("failed to remove used reset token", "error", err)
	}
	return nil
}

func (a *LocalAuthenticator) SignOut(ctx context.Context) error {
	// Resume tokens are stateless; there is no provider-side session to end.
	return nil
}

func (a *LocalAuthenticator) Resume(ctx context.Context, token string) (*session.Identity, error) {
	claims, err := a.tokens.Verify(token)
	if err != nil {
		return nil, apperrors.NewAuthenticationError("session token rejected", err.Error())
	}

	return &session.Identity{
		UID:         claims.UID,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
	}, nil
}

func (a *LocalAuthenticator) readAccount(ctx context.Context, emailAddr string) (*accountRecord, bool, error) {
	value, ok, err := a.store.Read(ctx, accountPath(emailAddr))
	if err != nil {
		return nil, false, apperrors.NewDeliveryError("failed to read account", err.Error())
	}
	if !ok {
		return nil, false, nil
	}

	var account accountRecord
	if err := decodeRecord(value, &account); err != nil {
		return nil, false, apperrors.NewInternalError("malformed account record", err.Error())
	}
	return &account, true, nil
}

func accountPath(emailAddr string) string {
	return accountsPath + "/" + emailKey(emailAddr)
}

func normalizeEmail(emailAddr string) string {
	return strings.TrimSpace(strings.ToLower(emailAddr))
}

// emailKey turns an email into a store path segment.
func emailKey(emailAddr string) string {
	return strings.ReplaceAll(normalizeEmail(emailAddr), "/", "_")
}

func toRecord(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal record: %v", err))
	}
	record := make(map[string]any)
	if err := json.Unmarshal(data, &record); err != nil {
		panic(fmt.Sprintf("unmarshal record: %v", err))
	}
	return record
}

func decodeRecord(value any, target any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}
