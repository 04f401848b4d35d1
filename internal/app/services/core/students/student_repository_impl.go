package students

import (
	"class-registration-service/internal/app/config"
	"class-registration-service/internal/app/contracts"
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/app/services/recordstore"
	"class-registration-service/internal/pkg/constvars"
	"class-registration-service/internal/pkg/exceptions"
	"class-registration-service/internal/pkg/utils"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var (
	studentRepositoryInstance contracts.StudentRepository
	onceStudentRepository     sync.Once
)

type studentRepository struct {
	Client contracts.RecordStoreClient
	Schema config.RecordStoreSchema
	Log    *zap.Logger
}

func NewStudentRepository(client contracts.RecordStoreClient, schema config.RecordStoreSchema, logger *zap.Logger) contracts.StudentRepository {
	onceStudentRepository.Do(func() {
		studentRepositoryInstance = &studentRepository{
			Client: client,
			Schema: schema,
			Log:    logger,
		}
	})
	return studentRepositoryInstance
}

func (r *studentRepository) FindByID(ctx context.Context, studentID string) (*models.Student, error) {
	row, err := r.Client.GetRecord(ctx, r.Schema.StudentTable, studentID)
	if err != nil {
		if recordstore.IsNotFound(err) {
			return nil, exceptions.ErrStudentNotFound(nil, studentID)
		}
		r.Log.Error("studentRepository.FindByID error calling record store",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingStudentIDKey, studentID),
			zap.Error(err),
		)
		return nil, err
	}

	student, err := r.mapRow(row)
	if err != nil {
		return nil, err
	}
	return student, nil
}

func (r *studentRepository) Update(ctx context.Context, studentID string, update *models.StudentUpdate) error {
	fields := r.mapUpdate(studentID, update)
	_, err := r.Client.UpdateRecord(ctx, r.Schema.StudentTable, fields)
	if err != nil {
		if recordstore.IsNotFound(err) {
			return exceptions.ErrStudentNotFound(nil, studentID)
		}
		r.Log.Error("studentRepository.Update error calling record store",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingStudentIDKey, studentID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *studentRepository) mapRow(row []byte) (*models.Student, error) {
	fields := r.Schema.Student
	id := gjson.GetBytes(row, fields.ID).String()
	if id == "" {
		return nil, exceptions.ErrRecordStoreMalformedRow(errors.New("student row has no id"), r.Schema.StudentTable)
	}

	student := &models.Student{
		ID:             id,
		FullName:       gjson.GetBytes(row, fields.FullName).String(),
		Email:          gjson.GetBytes(row, fields.Email).String(),
		PhoneNumber:    gjson.GetBytes(row, fields.PhoneNumber).String(),
		BirthDate:      normalizeDate(gjson.GetBytes(row, fields.BirthDate).String()),
		Product:        gjson.GetBytes(row, fields.Product).String(),
		Level:          gjson.GetBytes(row, fields.Level).String(),
		TeacherType:    gjson.GetBytes(row, fields.TeacherType).String(),
		HeldClassID:    gjson.GetBytes(row, fields.HeldClassID).String(),
		ClassID:        gjson.GetBytes(row, fields.ClassID).String(),
		CustomSchedule: gjson.GetBytes(row, fields.CustomSchedule).String(),
		Step:           gjson.GetBytes(row, fields.Step).String(),
	}
	if student.Step == "" {
		student.Step = constvars.RegistrationStepDetails
	}
	return student, nil
}

func (r *studentRepository) mapUpdate(studentID string, update *models.StudentUpdate) map[string]interface{} {
	fields := r.Schema.Student
	record := map[string]interface{}{fields.ID: studentID}

	set := func(column string, value *string) {
		if value != nil {
			record[column] = *value
		}
	}
	set(fields.FullName, update.FullName)
	set(fields.Email, update.Email)
	set(fields.PhoneNumber, update.PhoneNumber)
	set(fields.BirthDate, update.BirthDate)
	set(fields.HeldClassID, update.HeldClassID)
	set(fields.ClassID, update.ClassID)
	set(fields.CustomSchedule, update.CustomSchedule)
	set(fields.Step, update.Step)
	return record
}

// normalizeDate trims record-store timestamps down to YYYY-MM-DD.
func normalizeDate(value string) string {
	if value == "" {
		return ""
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.Format(time.DateOnly)
	}
	if len(value) > len(time.DateOnly) {
		if parsed, err := time.Parse(time.DateOnly, value[:len(time.DateOnly)]); err == nil {
			return parsed.Format(time.DateOnly)
		}
	}
	return value
}
