// Package email queues and delivers notification emails.
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue adapter.EmailQueueRepository
	now   func() time.Time
}

// NewService creates a new email service. A nil now uses the wall clock.
func NewService(queue adapter.EmailQueueRepository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		queue: queue,
		now:   now,
	}
}

// BudgetAlertDedupKey identifies the single alert allowed per budget and month.
func BudgetAlertDedupKey(budgetID uuid.UUID, month string) string {
	return fmt.Sprintf("budget:%s:%s", budgetID, month)
}

// QueueBudgetExceeded queues a budget exceeded email unless one was already
// queued for the same budget and month.
func (s *Service) QueueBudgetExceeded(ctx context.Context, input adapter.BudgetAlertInput) error {
	dedupKey := BudgetAlertDedupKey(input.BudgetID, input.Month)

	exists, err := s.queue.ExistsByDedupKey(ctx, dedupKey)
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to check queued budget alerts",
			err,
		)
	}
	if exists {
		return nil
	}

	subject := fmt.Sprintf("Budget exceeded: %s - Budget Tracker", input.Category)

	templateData := map[string]string{
		"user_name": input.UserName,
		"category":  input.Category,
		"month":     input.Month,
		"amount":    input.Amount.StringFixed(2),
		"spent":     input.Spent.StringFixed(2),
		"over_by":   input.Spent.Sub(input.Amount).StringFixed(2),
	}

	job := entity.NewEmailJob(
		entity.TemplateBudgetExceeded,
		dedupKey,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
		s.now(),
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue budget exceeded email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.BudgetAlertNotifier.
var _ adapter.BudgetAlertNotifier = (*Service)(nil)
