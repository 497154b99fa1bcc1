// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Every other record is owned by a user.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	BudgetAlerts bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with default values.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		BudgetAlerts: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
