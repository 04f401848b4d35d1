package models

// Student is one registration row in the record store.
type Student struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	BirthDate      string `json:"birth_date"`
	Product        string `json:"product"`
	Level          string `json:"level"`
	TeacherType    string `json:"teacher_type"`
	HeldClassID    string `json:"held_class_id,omitempty"`
	ClassID        string `json:"class_id,omitempty"`
	CustomSchedule string `json:"custom_schedule,omitempty"`
	Step           string `json:"step"`
}

func (s *Student) HasHeldClass() bool {
	return s.HeldClassID != ""
}

// StudentUpdate carries the columns to patch. Nil fields are left untouched.
type StudentUpdate struct {
	FullName       *string
	Email          *string
	PhoneNumber    *string
	BirthDate      *string
	HeldClassID    *string
	ClassID        *string
	CustomSchedule *string
	Step           *string
}
