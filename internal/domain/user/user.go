package user

import (
	"fmt"
	"time"

	vo "chamado/internal/domain/user/valueobjects"
	"chamado/internal/shared/biztime"
)

// User is the user aggregate. The identity id is assigned by the
// authentication provider; the record itself lives under users/{uid}.
//
// A user is created at sign-up without a role; the role is assigned
// out-of-band and checked at login.
type User struct {
	uid        string
	name       string
	email      *vo.Email
	role       vo.Role
	photo      string
	lastAccess *time.Time
	createdAt  time.Time
}

// NewUser creates the user record written at sign-up.
func NewUser(uid string, name string, email *vo.Email) (*User, error) {
	if uid == "" {
		return nil, fmt.Errorf("uid is required")
	}
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}

	return &User{
		uid:       uid,
		name:      name,
		email:     email,
		createdAt: biztime.NowUTC(),
	}, nil
}

// ReconstructUser reconstructs a user from a stored record. Role and email
// may be absent; the record shape is whatever the last full overwrite left.
func ReconstructUser(
	uid string,
	name string,
	email *vo.Email,
	role vo.Role,
	photo string,
	lastAccess *time.Time,
	createdAt time.Time,
) (*User, error) {
	if uid == "" {
		return nil, fmt.Errorf("uid is required")
	}

	return &User{
		uid:        uid,
		name:       name,
		email:      email,
		role:       role,
		photo:      photo,
		lastAccess: lastAccess,
		createdAt:  createdAt,
	}, nil
}

func (u *User) UID() string {
	return u.uid
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Email() *vo.Email {
	return u.email
}

func (u *User) Role() vo.Role {
	return u.role
}

func (u *User) Photo() string {
	return u.photo
}

func (u *User) LastAccess() *time.Time {
	return u.lastAccess
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// TouchLastAccess refreshes the last-access timestamp, recorded on login.
func (u *User) TouchLastAccess(at time.Time) {
	t := at
	u.lastAccess = &t
}

// UpdateProfile overwrites the profile fields saved from the profile screen.
func (u *User) UpdateProfile(name string, photo string) {
	u.name = name
	u.photo = photo
}
