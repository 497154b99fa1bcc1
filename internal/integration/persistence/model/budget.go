package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_category"`
	Category      string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_budgets_user_category"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Period        string          `gorm:"type:varchar(20);not null;default:'monthly'"`
	AlertOnExceed bool            `gorm:"not null;default:false"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:            m.ID,
		UserID:        m.UserID,
		Category:      m.Category,
		Amount:        m.Amount,
		Period:        entity.BudgetPeriod(m.Period),
		AlertOnExceed: m.AlertOnExceed,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:            budget.ID,
		UserID:        budget.UserID,
		Category:      budget.Category,
		Amount:        budget.Amount,
		Period:        string(budget.Period),
		AlertOnExceed: budget.AlertOnExceed,
		CreatedAt:     budget.CreatedAt,
		UpdatedAt:     budget.UpdatedAt,
	}
}
