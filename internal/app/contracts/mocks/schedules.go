package mocks

import (
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/pkg/dto/responses"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type ScheduleSessionStore struct {
	mock.Mock
}

func (m *ScheduleSessionStore) Save(ctx context.Context, session *models.ScheduleSession, ttl time.Duration) error {
	args := m.Called(ctx, session, ttl)
	return args.Error(0)
}

func (m *ScheduleSessionStore) Find(ctx context.Context, sessionID string) (*models.ScheduleSession, error) {
	args := m.Called(ctx, sessionID)
	session, _ := args.Get(0).(*models.ScheduleSession)
	return session, args.Error(1)
}

func (m *ScheduleSessionStore) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type SubmissionAuditRepository struct {
	mock.Mock
}

func (m *SubmissionAuditRepository) Insert(ctx context.Context, audit *models.SubmissionAudit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

func (m *SubmissionAuditRepository) UpdateStatus(ctx context.Context, submissionID, status string, attempts int, lastError string) error {
	args := m.Called(ctx, submissionID, status, attempts, lastError)
	return args.Error(0)
}

func (m *SubmissionAuditRepository) FindByID(ctx context.Context, submissionID string) (*models.SubmissionAudit, error) {
	args := m.Called(ctx, submissionID)
	audit, _ := args.Get(0).(*models.SubmissionAudit)
	return audit, args.Error(1)
}

type SubmissionOutbox struct {
	mock.Mock
}

func (m *SubmissionOutbox) Enqueue(ctx context.Context, item *models.QueuedSubmission) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *SubmissionOutbox) Dequeue(ctx context.Context) (*models.QueuedSubmission, error) {
	args := m.Called(ctx)
	item, _ := args.Get(0).(*models.QueuedSubmission)
	return item, args.Error(1)
}

func (m *SubmissionOutbox) DeadLetter(ctx context.Context, item *models.QueuedSubmission) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *SubmissionOutbox) Length(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type ReceiptStorage struct {
	mock.Mock
}

func (m *ReceiptStorage) UploadReceipt(ctx context.Context, objectName, contentType string, content []byte) (string, error) {
	args := m.Called(ctx, objectName, contentType, content)
	return args.String(0), args.Error(1)
}

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, event *models.RegistrationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type ScheduleExporter struct {
	mock.Mock
}

func (m *ScheduleExporter) Export(ctx context.Context, student *models.Student, format string) (*responses.ScheduleExport, error) {
	args := m.Called(ctx, student, format)
	export, _ := args.Get(0).(*responses.ScheduleExport)
	return export, args.Error(1)
}
