package utils

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	rePhone  = regexp.MustCompile(`^\+?\d{9,15}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("phone_number", validatePhoneNumber)
	validate.RegisterValidation("not_future", validateNotFutureDate)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return rePhone.MatchString(fl.Field().String())
}

// validateNotFutureDate accepts YYYY-MM-DD dates that are not after today.
// Unparseable values pass here and are left to the datetime tag.
func validateNotFutureDate(fl validator.FieldLevel) bool {
	date, err := time.Parse(time.DateOnly, fl.Field().String())
	if err != nil {
		return true
	}
	return !date.After(time.Now())
}
