package mocks

import (
	"class-registration-service/internal/pkg/dto/requests"
	"class-registration-service/internal/pkg/dto/responses"
	"context"

	"github.com/stretchr/testify/mock"
)

type RegistrationUsecase struct {
	mock.Mock
}

func (m *RegistrationUsecase) GetRegistration(ctx context.Context, studentID string) (*responses.Registration, error) {
	args := m.Called(ctx, studentID)
	registration, _ := args.Get(0).(*responses.Registration)
	return registration, args.Error(1)
}

func (m *RegistrationUsecase) UpdateDetails(ctx context.Context, studentID string, request *requests.UpdateRegistrationDetails) (*responses.Registration, error) {
	args := m.Called(ctx, studentID, request)
	registration, _ := args.Get(0).(*responses.Registration)
	return registration, args.Error(1)
}

func (m *RegistrationUsecase) ConfirmReservation(ctx context.Context, studentID string) (*responses.Registration, error) {
	args := m.Called(ctx, studentID)
	registration, _ := args.Get(0).(*responses.Registration)
	return registration, args.Error(1)
}

func (m *RegistrationUsecase) ListAvailableClasses(ctx context.Context, studentID string) ([]responses.Class, error) {
	args := m.Called(ctx, studentID)
	classes, _ := args.Get(0).([]responses.Class)
	return classes, args.Error(1)
}

func (m *RegistrationUsecase) SelectClass(ctx context.Context, studentID, classID string) (*responses.Registration, error) {
	args := m.Called(ctx, studentID, classID)
	registration, _ := args.Get(0).(*responses.Registration)
	return registration, args.Error(1)
}

func (m *RegistrationUsecase) ExportSchedule(ctx context.Context, studentID string, request *requests.ExportSchedule) (*responses.ScheduleExport, error) {
	args := m.Called(ctx, studentID, request)
	export, _ := args.Get(0).(*responses.ScheduleExport)
	return export, args.Error(1)
}

type ScheduleSessionUsecase struct {
	mock.Mock
}

func (m *ScheduleSessionUsecase) CreateSession(ctx context.Context, studentID string) (*responses.ScheduleSession, error) {
	args := m.Called(ctx, studentID)
	session, _ := args.Get(0).(*responses.ScheduleSession)
	return session, args.Error(1)
}

func (m *ScheduleSessionUsecase) GetSession(ctx context.Context, studentID, sessionID string) (*responses.ScheduleSession, error) {
	args := m.Called(ctx, studentID, sessionID)
	session, _ := args.Get(0).(*responses.ScheduleSession)
	return session, args.Error(1)
}

func (m *ScheduleSessionUsecase) ApplyPointerEvents(ctx context.Context, studentID, sessionID string, request *requests.ApplyPointerEvents) (*responses.ScheduleSession, error) {
	args := m.Called(ctx, studentID, sessionID, request)
	session, _ := args.Get(0).(*responses.ScheduleSession)
	return session, args.Error(1)
}

func (m *ScheduleSessionUsecase) ChangeFilter(ctx context.Context, studentID, sessionID string, request *requests.ChangeFilter) (*responses.ScheduleSession, error) {
	args := m.Called(ctx, studentID, sessionID, request)
	session, _ := args.Get(0).(*responses.ScheduleSession)
	return session, args.Error(1)
}

func (m *ScheduleSessionUsecase) DeleteRun(ctx context.Context, studentID, sessionID string, request *requests.DeleteRun) (*responses.ScheduleSession, error) {
	args := m.Called(ctx, studentID, sessionID, request)
	session, _ := args.Get(0).(*responses.ScheduleSession)
	return session, args.Error(1)
}

func (m *ScheduleSessionUsecase) ResetSession(ctx context.Context, studentID, sessionID string) (*responses.ScheduleSession, error) {
	args := m.Called(ctx, studentID, sessionID)
	session, _ := args.Get(0).(*responses.ScheduleSession)
	return session, args.Error(1)
}

func (m *ScheduleSessionUsecase) SubmitSession(ctx context.Context, studentID, sessionID string) (*responses.ScheduleSubmission, error) {
	args := m.Called(ctx, studentID, sessionID)
	submission, _ := args.Get(0).(*responses.ScheduleSubmission)
	return submission, args.Error(1)
}
