package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the database.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByUserID retrieves all budgets for a given user in creation order.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error)

	// FindByUserAndCategory retrieves the budget of a user for an exact category name.
	FindByUserAndCategory(ctx context.Context, userID uuid.UUID, category string) (*entity.Budget, error)

	// ExistsByUserAndCategory checks if a budget exists for the given user and category.
	ExistsByUserAndCategory(ctx context.Context, userID uuid.UUID, category string) (bool, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete removes a budget from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
