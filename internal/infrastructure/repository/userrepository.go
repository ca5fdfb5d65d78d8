// Package repository maps domain aggregates onto the gateway store paths
// used by the backend: users/{uid} and the chamados collection.
package repository

import (
	"context"
	"encoding/json"
	"time"

	"chamado/internal/domain/user"
	uservo "chamado/internal/domain/user/valueobjects"
	"chamado/internal/infrastructure/gateway"
	"chamado/internal/shared/biztime"
	apperrors "chamado/internal/shared/errors"
	"chamado/internal/shared/logger"
)

const usersPath = "users"

type userRecord struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role,omitempty"`
	Photo      string `json:"photo,omitempty"`
	LastAccess int64  `json:"lastAccess,omitempty"`
	CreatedAt  int64  `json:"createdAt,omitempty"`
}

type UserRepository struct {
	store  gateway.Store
	logger logger.Interface
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(store gateway.Store, log logger.Interface) *UserRepository {
	return &UserRepository{
		store:  store,
		logger: log,
	}
}

func (r *UserRepository) Get(ctx context.Context, uid string) (*user.User, error) {
	value, ok, err := r.store.Read(ctx, userPath(uid))
	if err != nil {
		return nil, apperrors.NewDeliveryError("failed to read user record", err.Error())
	}
	if !ok {
		return nil, apperrors.NewNotFoundError("user record not found", uid)
	}

	var record userRecord
	if err := decode(value, &record); err != nil {
		return nil, apperrors.NewInternalError("malformed user record", err.Error())
	}

	return toUser(uid, record)
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	record := userRecord{
		Name:      u.Name(),
		CreatedAt: biztime.ToMillis(u.CreatedAt()),
	}
	if u.Email() != nil {
		record.Email = u.Email().String()
	}
	if u.Role() != "" {
		record.Role = u.Role().String()
	}
	if u.Photo() != "" {
		record.Photo = u.Photo()
	}
	if u.LastAccess() != nil {
		record.LastAccess = biztime.ToMillis(*u.LastAccess())
	}

	if err := r.store.Write(ctx, userPath(u.UID()), encode(record)); err != nil {
		return apperrors.NewDeliveryError("failed to save user record", err.Error())
	}
	return nil
}

func (r *UserRepository) UpdateLastAccess(ctx context.Context, uid string, at time.Time) error {
	err := r.store.Update(ctx, userPath(uid), map[string]any{
		"lastAccess": biztime.ToMillis(at),
	})
	if err != nil {
		return apperrors.NewDeliveryError("failed to update last access", err.Error())
	}
	return nil
}

func (r *UserRepository) ReplaceProfile(ctx context.Context, uid string, name string, photo string) error {
	// Full overwrite of the record, matching the backend's profile save.
	record := map[string]any{
		"name":  name,
		"photo": photo,
	}
	if err := r.store.Write(ctx, userPath(uid), record); err != nil {
		return apperrors.NewDeliveryError("failed to save profile", err.Error())
	}
	return nil
}

func toUser(uid string, record userRecord) (*user.User, error) {
	var email *uservo.Email
	if record.Email != "" {
		parsed, err := uservo.NewEmail(record.Email)
		if err == nil {
			email = parsed
		}
	}

	var lastAccess *time.Time
	if record.LastAccess != 0 {
		t := biztime.FromMillis(record.LastAccess)
		lastAccess = &t
	}

	u, err := user.ReconstructUser(
		uid,
		record.Name,
		email,
		uservo.Role(record.Role),
		record.Photo,
		lastAccess,
		biztime.FromMillis(record.CreatedAt),
	)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to reconstruct user", err.Error())
	}
	return u, nil
}

func userPath(uid string) string {
	return usersPath + "/" + uid
}

func encode(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	record := make(map[string]any)
	if err := json.Unmarshal(data, &record); err != nil {
		panic(err)
	}
	return record
}

func decode(value any, target any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}
