// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus represents the status of an email job in the queue.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType represents the type of email template.
type EmailTemplateType string

// TemplateBudgetExceeded is sent when a month's spend goes over a budget.
const TemplateBudgetExceeded EmailTemplateType = "budget_exceeded"

// defaultMaxEmailAttempts bounds delivery retries for a single job.
const defaultMaxEmailAttempts = 3

// EmailJob represents an email in the queue waiting to be sent.
// DedupKey prevents the same notification from being queued twice.
type EmailJob struct {
	ID             uuid.UUID
	TemplateType   EmailTemplateType
	DedupKey       string
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]string
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ProviderID     string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewEmailJob creates a new pending EmailJob scheduled for delivery at now.
func NewEmailJob(templateType EmailTemplateType, dedupKey, recipientEmail, recipientName, subject string, data map[string]string, now time.Time) *EmailJob {
	now = now.UTC()
	return &EmailJob{
		ID:             uuid.New(),
		TemplateType:   templateType,
		DedupKey:       dedupKey,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    defaultMaxEmailAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// MarkProcessing marks the email job as currently being processed.
func (e *EmailJob) MarkProcessing() {
	e.Status = EmailStatusProcessing
}

// MarkSent marks the email job as delivered to the provider.
func (e *EmailJob) MarkSent(providerID string, at time.Time) {
	e.Status = EmailStatusSent
	e.ProviderID = providerID
	e.ProcessedAt = &at
}

// MarkFailed records a failed attempt and either schedules a retry or gives up.
func (e *EmailJob) MarkFailed(err error, permanent bool, at time.Time) {
	e.Attempts++
	e.LastError = err.Error()

	if permanent || e.Attempts >= e.MaxAttempts {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &at
		return
	}

	e.Status = EmailStatusPending
	e.ScheduledAt = at.Add(retryDelay(e.Attempts))
}

// retryDelay returns the back-off before the given attempt number: 1min, then 5min.
func retryDelay(attempts int) time.Duration {
	if attempts <= 1 {
		return time.Minute
	}
	return 5 * time.Minute
}
