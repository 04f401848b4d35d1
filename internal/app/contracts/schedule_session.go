package contracts

import (
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/pkg/dto/requests"
	"class-registration-service/internal/pkg/dto/responses"
	"context"
	"time"
)

type ScheduleSessionUsecase interface {
	CreateSession(ctx context.Context, studentID string) (*responses.ScheduleSession, error)
	GetSession(ctx context.Context, studentID, sessionID string) (*responses.ScheduleSession, error)
	ApplyPointerEvents(ctx context.Context, studentID, sessionID string, request *requests.ApplyPointerEvents) (*responses.ScheduleSession, error)
	ChangeFilter(ctx context.Context, studentID, sessionID string, request *requests.ChangeFilter) (*responses.ScheduleSession, error)
	DeleteRun(ctx context.Context, studentID, sessionID string, request *requests.DeleteRun) (*responses.ScheduleSession, error)
	ResetSession(ctx context.Context, studentID, sessionID string) (*responses.ScheduleSession, error)
	SubmitSession(ctx context.Context, studentID, sessionID string) (*responses.ScheduleSubmission, error)
}

// ScheduleSessionStore persists sessions between requests. Find returns a
// not-found error once a session expired.
type ScheduleSessionStore interface {
	Save(ctx context.Context, session *models.ScheduleSession, ttl time.Duration) error
	Find(ctx context.Context, sessionID string) (*models.ScheduleSession, error)
	Delete(ctx context.Context, sessionID string) error
}
