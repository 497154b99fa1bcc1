package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// BudgetAlertInput carries what is needed to tell a user a budget was exceeded.
type BudgetAlertInput struct {
	UserID    uuid.UUID
	UserEmail string
	UserName  string
	BudgetID  uuid.UUID
	Category  string
	Month     string
	Amount    decimal.Decimal
	Spent     decimal.Decimal
}

// BudgetAlertNotifier queues budget-exceeded notifications.
type BudgetAlertNotifier interface {
	// QueueBudgetExceeded queues at most one alert per budget and month.
	QueueBudgetExceeded(ctx context.Context, input BudgetAlertInput) error
}
