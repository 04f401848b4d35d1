package responses

import "class-registration-service/internal/pkg/weekgrid"

type Registration struct {
	Student        Student                   `json:"student"`
	Step           string                    `json:"step"`
	HeldClass      *Class                    `json:"held_class,omitempty"`
	SelectedClass  *Class                    `json:"selected_class,omitempty"`
	CustomSchedule []weekgrid.PersistedEntry `json:"custom_schedule"`
}

type Student struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	BirthDate   string `json:"birth_date"`
	Product     string `json:"product"`
	Level       string `json:"level"`
	TeacherType string `json:"teacher_type"`
}

type Class struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Product     string `json:"product"`
	Level       string `json:"level"`
	TeacherType string `json:"teacher_type"`
	Schedule    string `json:"schedule"`
	StartDate   string `json:"start_date"`
	Capacity    int    `json:"capacity"`
	Enrolled    int    `json:"enrolled"`
	SeatsLeft   int    `json:"seats_left"`
	Status      string `json:"status"`
}

// ScheduleExport is a rendered file, written to the client as an attachment.
type ScheduleExport struct {
	FileName    string
	ContentType string
	Content     []byte
}
