package models

import "time"

type Class struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Product     string    `json:"product"`
	Level       string    `json:"level"`
	TeacherType string    `json:"teacher_type"`
	Schedule    string    `json:"schedule"`
	StartDate   time.Time `json:"start_date"`
	Capacity    int       `json:"capacity"`
	Enrolled    int       `json:"enrolled"`
	Status      string    `json:"status"`
}

// SeatsLeft never goes below zero.
func (c *Class) SeatsLeft() int {
	return max(c.Capacity-c.Enrolled, 0)
}
