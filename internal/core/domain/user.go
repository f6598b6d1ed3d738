package domain

import "time"

const (
	RoleAdmin   = "admin"
	RoleAnalyst = "analyst"
	RoleSupport = "support"
	RoleIntern  = "intern"
)

// ValidRole reports whether role is one of the supported user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAnalyst, RoleSupport, RoleIntern:
		return true
	}
	return false
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
