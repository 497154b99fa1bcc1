package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByUserID retrieves all categories of a user ordered by name.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// ExistsByUserAndName checks if the user already has a category with this exact name.
	ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error)

	// Delete removes a category from the database.
	// Transactions and budgets referring to it by name are left untouched.
	Delete(ctx context.Context, id uuid.UUID) error
}
