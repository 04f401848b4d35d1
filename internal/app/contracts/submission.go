package contracts

import (
	"class-registration-service/internal/app/models"
	"context"
)

type SubmissionAuditRepository interface {
	Insert(ctx context.Context, audit *models.SubmissionAudit) error
	UpdateStatus(ctx context.Context, submissionID, status string, attempts int, lastError string) error
	FindByID(ctx context.Context, submissionID string) (*models.SubmissionAudit, error)
}

// SubmissionOutbox holds submissions the record store has not accepted yet.
// Dequeue returns nil when the outbox is empty.
type SubmissionOutbox interface {
	Enqueue(ctx context.Context, item *models.QueuedSubmission) error
	Dequeue(ctx context.Context) (*models.QueuedSubmission, error)
	DeadLetter(ctx context.Context, item *models.QueuedSubmission) error
	Length(ctx context.Context) (int64, error)
}
