package models

import (
	"class-registration-service/internal/pkg/weekgrid"
	"time"
)

// SubmissionAudit records every custom schedule a student submitted and what
// happened to it.
type SubmissionAudit struct {
	ID            string         `json:"id" bson:"_id"`
	StudentID     string         `json:"student_id" bson:"studentId"`
	SessionID     string         `json:"session_id" bson:"sessionId"`
	Schedule      string         `json:"schedule" bson:"schedule"`
	Runs          []weekgrid.Run `json:"runs" bson:"runs"`
	Status        string         `json:"status" bson:"status"`
	Attempts      int            `json:"attempts" bson:"attempts"`
	LastError     string         `json:"last_error,omitempty" bson:"lastError,omitempty"`
	ReceiptObject string         `json:"receipt_object,omitempty" bson:"receiptObject,omitempty"`
	RequestID     string         `json:"request_id,omitempty" bson:"requestId,omitempty"`
	TimeModel     `bson:",inline"`
}

// QueuedSubmission is an outbox entry waiting for the record store to accept it.
type QueuedSubmission struct {
	SubmissionID string    `json:"submission_id"`
	StudentID    string    `json:"student_id"`
	Schedule     string    `json:"schedule"`
	Attempts     int       `json:"attempts"`
	EnqueuedAt   time.Time `json:"enqueued_at"`
}

// RegistrationEvent is published to the staff queue.
type RegistrationEvent struct {
	Event        string    `json:"event"`
	StudentID    string    `json:"student_id"`
	ClassID      string    `json:"class_id,omitempty"`
	SubmissionID string    `json:"submission_id,omitempty"`
	Schedule     string    `json:"schedule,omitempty"`
	Status       string    `json:"status,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// SubmissionReceipt is the archived copy of a submission kept in object storage.
type SubmissionReceipt struct {
	SubmissionID string         `json:"submission_id"`
	StudentID    string         `json:"student_id"`
	StudentName  string         `json:"student_name"`
	Schedule     string         `json:"schedule"`
	Runs         []weekgrid.Run `json:"runs"`
	Status       string         `json:"status"`
	SubmittedAt  time.Time      `json:"submitted_at"`
}
