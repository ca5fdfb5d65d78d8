package valueobjects

import "fmt"

// Role is the user category gating login eligibility.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleCozinha Role = "Cozinha"
	RoleTI      Role = "T.I"
)

var validRoles = map[Role]bool{
	RoleAdmin:   true,
	RoleCozinha: true,
	RoleTI:      true,
}

func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the role is in the allowed set. The zero value
// (a user created at sign-up before a role is assigned) is not valid.
func (r Role) IsValid() bool {
	return validRoles[r]
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return r, nil
}
