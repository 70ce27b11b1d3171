package user

import (
	"strings"
	"time"

	"storefront-be/internal/address"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID        string           `json:"_id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Password  string           `json:"-"`
	Role      Role             `json:"role"`
	Address   *address.Address `json:"address,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ProfilePatch is a self-service update. Nil fields are left unchanged.
type ProfilePatch struct {
	Name            *string
	Address         *address.Address
	CurrentPassword *string
	NewPassword     *string
}

// AdminPatch is an administrator's update of another account.
type AdminPatch struct {
	Name  *string
	Email *string
	Role  *Role
}

// ApplyProfilePatch merges the non-password fields of p into u.
// Blank strings count as "not supplied".
func ApplyProfilePatch(u User, p ProfilePatch) User {
	if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Address != nil {
		addr := p.Address.Trimmed()
		u.Address = &addr
	}
	return u
}

func ApplyAdminPatch(u User, p AdminPatch) User {
	if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil && strings.TrimSpace(*p.Email) != "" {
		u.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if p.Role != nil && *p.Role != "" {
		u.Role = *p.Role
	}
	return u
}
