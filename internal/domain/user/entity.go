package user

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

func (u User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
