// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the period a budget applies to.
type BudgetPeriod string

// BudgetPeriodMonthly is the only supported period.
const BudgetPeriodMonthly BudgetPeriod = "monthly"

// Budget represents a monthly spending limit for one category of one user.
type Budget struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Category      string
	Amount        decimal.Decimal
	Period        BudgetPeriod
	AlertOnExceed bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBudget creates a new Budget entity with the monthly period.
func NewBudget(userID uuid.UUID, category string, amount decimal.Decimal, alertOnExceed bool) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:            uuid.New(),
		UserID:        userID,
		Category:      category,
		Amount:        amount,
		Period:        BudgetPeriodMonthly,
		AlertOnExceed: alertOnExceed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
