package utils

import (
	"class-registration-service/internal/pkg/dto/requests"
	"strings"
)

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")

func collapseWhiteSpace(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// SanitizeUpdateRegistrationDetails normalizes the details form before
// validation. Phone numbers keep a leading plus and lose separators.
func SanitizeUpdateRegistrationDetails(input *requests.UpdateRegistrationDetails) {
	input.FullName = collapseWhiteSpace(input.FullName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.PhoneNumber = phoneSeparators.Replace(strings.TrimSpace(input.PhoneNumber))
	input.BirthDate = strings.TrimSpace(input.BirthDate)
}

func SanitizeApplyPointerEvents(input *requests.ApplyPointerEvents) {
	for i := range input.Events {
		input.Events[i].Phase = strings.ToLower(strings.TrimSpace(input.Events[i].Phase))
	}
}

func SanitizeChangeFilter(input *requests.ChangeFilter) {
	input.Filter = strings.ToLower(strings.TrimSpace(input.Filter))
}

func SanitizeExportFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}
