package contracts

import (
	"class-registration-service/internal/pkg/dto/requests"
	"class-registration-service/internal/pkg/dto/responses"
	"context"
)

type RegistrationUsecase interface {
	GetRegistration(ctx context.Context, studentID string) (*responses.Registration, error)
	UpdateDetails(ctx context.Context, studentID string, request *requests.UpdateRegistrationDetails) (*responses.Registration, error)
	ConfirmReservation(ctx context.Context, studentID string) (*responses.Registration, error)
	ListAvailableClasses(ctx context.Context, studentID string) ([]responses.Class, error)
	SelectClass(ctx context.Context, studentID, classID string) (*responses.Registration, error)
	ExportSchedule(ctx context.Context, studentID string, request *requests.ExportSchedule) (*responses.ScheduleExport, error)
}
