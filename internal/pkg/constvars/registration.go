package constvars

type ContextKey string

const (
	ContextStudentIDKey ContextKey = "student_id"
	ContextRequestIDKey ContextKey = "request_id"
)

// Registration steps stored on the student row.
const (
	RegistrationStepDetails        = "details"
	RegistrationStepReservation    = "reservation"
	RegistrationStepClass          = "class"
	RegistrationStepCustomSchedule = "custom_schedule"
	RegistrationStepCompleted      = "completed"
)

const (
	ClassStatusOpen   = "open"
	ClassStatusClosed = "closed"
)

const (
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusQueued    = "queued"
	SubmissionStatusFailed    = "failed"
)

const (
	ExportFormatXLSX = "xlsx"
	ExportFormatICS  = "ics"
)

const (
	EventScheduleSubmitted  = "registration.schedule_submitted"
	EventClassSelected      = "registration.class_selected"
	EventReservationConfirm = "registration.reservation_confirmed"
)

const (
	RedisKeyScheduleSession     = "schedule_session:%s"
	RedisKeyScheduleSessionLock = "lock:schedule_session:%s"
	RedisKeySubmissionOutbox    = "submission_outbox"
	RedisKeySubmissionDeadQueue = "submission_outbox:dead"
	RedisKeyClassLock           = "lock:class:%s"
	RedisKeyEnrollmentLock      = "lock:enrollment:%s"
	RedisKeyRateLimit           = "rate_limit:%s:%s:%d"

	RateLimitGroupExport = "export"
)

const (
	RegistrationTokenIssuer = "class-registration-service"
	JWTClaimStudentID       = "student_id"
)
