package mocks

import (
	"class-registration-service/internal/app/contracts"
	"class-registration-service/internal/app/models"
	"context"

	"github.com/stretchr/testify/mock"
)

type StudentRepository struct {
	mock.Mock
}

func (m *StudentRepository) FindByID(ctx context.Context, studentID string) (*models.Student, error) {
	args := m.Called(ctx, studentID)
	student, _ := args.Get(0).(*models.Student)
	return student, args.Error(1)
}

func (m *StudentRepository) Update(ctx context.Context, studentID string, update *models.StudentUpdate) error {
	args := m.Called(ctx, studentID, update)
	return args.Error(0)
}

type ClassRepository struct {
	mock.Mock
}

func (m *ClassRepository) FindByID(ctx context.Context, classID string) (*models.Class, error) {
	args := m.Called(ctx, classID)
	class, _ := args.Get(0).(*models.Class)
	return class, args.Error(1)
}

func (m *ClassRepository) FindOpenClasses(ctx context.Context, criteria contracts.ClassCriteria) ([]models.Class, error) {
	args := m.Called(ctx, criteria)
	classes, _ := args.Get(0).([]models.Class)
	return classes, args.Error(1)
}

func (m *ClassRepository) UpdateEnrolled(ctx context.Context, classID string, enrolled int) error {
	args := m.Called(ctx, classID, enrolled)
	return args.Error(0)
}

type RecordStoreClient struct {
	mock.Mock
}

func (m *RecordStoreClient) ListRecords(ctx context.Context, table string, query contracts.RecordQuery) (*contracts.RecordPage, error) {
	args := m.Called(ctx, table, query)
	page, _ := args.Get(0).(*contracts.RecordPage)
	return page, args.Error(1)
}

func (m *RecordStoreClient) GetRecord(ctx context.Context, table, recordID string) ([]byte, error) {
	args := m.Called(ctx, table, recordID)
	row, _ := args.Get(0).([]byte)
	return row, args.Error(1)
}

func (m *RecordStoreClient) CreateRecord(ctx context.Context, table string, fields map[string]interface{}) ([]byte, error) {
	args := m.Called(ctx, table, fields)
	row, _ := args.Get(0).([]byte)
	return row, args.Error(1)
}

func (m *RecordStoreClient) UpdateRecord(ctx context.Context, table string, fields map[string]interface{}) ([]byte, error) {
	args := m.Called(ctx, table, fields)
	row, _ := args.Get(0).([]byte)
	return row, args.Error(1)
}
