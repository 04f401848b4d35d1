package utils

import (
	"class-registration-service/internal/pkg/dto/requests"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeUpdateRegistrationDetails(t *testing.T) {
	t.Run("Trims And Lowercases", func(t *testing.T) {
		request := &requests.UpdateRegistrationDetails{
			FullName:    "  Nguyen   Van  A ",
			Email:       "  A@Example.COM ",
			PhoneNumber: " +84 901-234.567 ",
			BirthDate:   " 2004-05-06 ",
		}

		SanitizeUpdateRegistrationDetails(request)

		assert.Equal(t, "Nguyen Van A", request.FullName)
		assert.Equal(t, "a@example.com", request.Email)
		assert.Equal(t, "+84901234567", request.PhoneNumber)
		assert.Equal(t, "2004-05-06", request.BirthDate)
	})

	t.Run("Sanitized Phone Passes Validation", func(t *testing.T) {
		request := &requests.UpdateRegistrationDetails{
			FullName:    "Tran Thi B",
			Email:       "b@example.com",
			PhoneNumber: "(090) 123 4567",
			BirthDate:   "2001-01-01",
		}

		SanitizeUpdateRegistrationDetails(request)

		assert.NoError(t, ValidateStruct(request))
	})
}

func TestSanitizeApplyPointerEvents(t *testing.T) {
	request := &requests.ApplyPointerEvents{
		Events: []requests.PointerEvent{{Phase: " DOWN "}, {Phase: "Up"}},
	}

	SanitizeApplyPointerEvents(request)

	assert.Equal(t, "down", request.Events[0].Phase)
	assert.Equal(t, "up", request.Events[1].Phase)
}

func TestSanitizeChangeFilter(t *testing.T) {
	request := &requests.ChangeFilter{Filter: " Morning "}
	SanitizeChangeFilter(request)
	assert.Equal(t, "morning", request.Filter)
	assert.Equal(t, "ics", SanitizeExportFormat(" ICS"))
}
