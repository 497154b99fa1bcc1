// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	UserID uuid.UUID
	Name   string
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	if input.UserID == uuid.Nil {
		return nil, notAuthenticated()
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameEmpty,
			"Category name cannot be empty",
			domainerror.ErrCategoryNameEmpty,
		)
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("Category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}

	exists, err := uc.categoryRepo.ExistsByUserAndName(ctx, input.UserID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, categoryExists()
	}

	category := entity.NewCategory(input.UserID, name)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		// A concurrent create can still hit the unique index.
		if errors.Is(err, domainerror.ErrCategoryNameExists) {
			return nil, categoryExists()
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}

func categoryExists() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNameExists,
		"Category already exists",
		domainerror.ErrCategoryNameExists,
	)
}

func notAuthenticated() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNotAuthenticated,
		"not authenticated",
		domainerror.ErrNotAuthenticated,
	)
}
