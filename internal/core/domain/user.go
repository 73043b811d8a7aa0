package domain

import "time"

// Role is the coarse capability tag attached to every user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// User models an account that can sign in to either dashboard.
// PasswordHash never leaves the process: it is excluded from JSON.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewUser carries the fields a caller supplies when creating a user.
// The store assigns ID and CreatedAt and defaults Role to client.
type NewUser struct {
	Email        string
	PasswordHash string
	Role         Role
	Name         string
}
