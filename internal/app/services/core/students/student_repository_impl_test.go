package students

import (
	"class-registration-service/internal/app/config"
	"class-registration-service/internal/app/contracts/mocks"
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/app/services/recordstore"
	"class-registration-service/internal/pkg/constvars"
	"class-registration-service/internal/pkg/exceptions"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testSchema() config.RecordStoreSchema {
	return config.RecordStoreSchema{
		StudentTable: "students",
		ClassTable:   "classes",
		Student: config.StudentFields{
			ID:             "Id",
			FullName:       "FullName",
			Email:          "Email",
			PhoneNumber:    "PhoneNumber",
			BirthDate:      "BirthDate",
			Product:        "Product",
			Level:          "Level",
			TeacherType:    "TeacherType",
			HeldClassID:    "HeldClassId",
			ClassID:        "ClassId",
			CustomSchedule: "CustomSchedule",
			Step:           "RegistrationStep",
		},
	}
}

func TestStudentRepositoryFindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Maps Row", func(t *testing.T) {
		client := new(mocks.RecordStoreClient)
		client.On("GetRecord", ctx, "students", "12").Return([]byte(`{
			"Id": 12,
			"FullName": "Nguyen Van An",
			"Email": "an@example.com",
			"PhoneNumber": "+84901234567",
			"BirthDate": "2003-09-01T00:00:00Z",
			"Product": "ielts",
			"Level": "B1",
			"TeacherType": "native",
			"HeldClassId": "c-1",
			"CustomSchedule": "Thứ 2 - 07:00 : 08:00"
		}`), nil)
		repo := &studentRepository{Client: client, Schema: testSchema(), Log: zap.NewNop()}

		student, err := repo.FindByID(ctx, "12")
		require.NoError(t, err)
		assert.Equal(t, "12", student.ID)
		assert.Equal(t, "Nguyen Van An", student.FullName)
		assert.Equal(t, "2003-09-01", student.BirthDate)
		assert.Equal(t, "c-1", student.HeldClassID)
		assert.True(t, student.HasHeldClass())
		assert.Equal(t, constvars.RegistrationStepDetails, student.Step)
	})

	t.Run("Not Found", func(t *testing.T) {
		client := new(mocks.RecordStoreClient)
		notFound := &recordstore.StatusError{Table: "students", StatusCode: 404, Message: "Record not found"}
		client.On("GetRecord", ctx, "students", "99").Return(nil, notFound)
		repo := &studentRepository{Client: client, Schema: testSchema(), Log: zap.NewNop()}

		_, err := repo.FindByID(ctx, "99")
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
	})

	t.Run("Row Without Id", func(t *testing.T) {
		client := new(mocks.RecordStoreClient)
		client.On("GetRecord", ctx, "students", "5").Return([]byte(`{"FullName":"X"}`), nil)
		repo := &studentRepository{Client: client, Schema: testSchema(), Log: zap.NewNop()}

		_, err := repo.FindByID(ctx, "5")
		assert.Equal(t, constvars.StatusBadGateway, exceptions.StatusCodeOf(err))
	})
}

func TestStudentRepositoryUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends Only Set Columns", func(t *testing.T) {
		client := new(mocks.RecordStoreClient)
		client.On("UpdateRecord", ctx, "students", mock.Anything).Return([]byte(`{"Id":"12"}`), nil)
		repo := &studentRepository{Client: client, Schema: testSchema(), Log: zap.NewNop()}

		schedule := "Thứ 3 - 09:00 : 10:30"
		step := constvars.RegistrationStepCompleted
		err := repo.Update(ctx, "12", &models.StudentUpdate{CustomSchedule: &schedule, Step: &step})
		require.NoError(t, err)

		fields := client.Calls[0].Arguments.Get(2).(map[string]interface{})
		assert.Equal(t, map[string]interface{}{
			"Id":               "12",
			"CustomSchedule":   schedule,
			"RegistrationStep": step,
		}, fields)
	})
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2001-02-03", normalizeDate("2001-02-03"))
	assert.Equal(t, "2001-02-03", normalizeDate("2001-02-03 00:00:00+00:00"))
	assert.Equal(t, "", normalizeDate(""))
	assert.Equal(t, "03/02/2001", normalizeDate("03/02/2001"))
}
