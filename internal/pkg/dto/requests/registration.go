package requests

type UpdateRegistrationDetails struct {
	FullName    string `json:"full_name" validate:"required,min=2,max=120"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,phone_number"`
	BirthDate   string `json:"birth_date" validate:"required,datetime=2006-01-02,not_future"`
}

type ExportSchedule struct {
	Format string `validate:"required,oneof=xlsx ics"`
}
