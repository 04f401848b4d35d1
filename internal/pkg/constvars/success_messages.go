package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	GetRegistrationSuccessMessage       = "get registration successfully"
	UpdateDetailsSuccessMessage         = "personal details confirmed successfully"
	ConfirmReservationSuccessMessage    = "reserved class confirmed successfully"
	GetAvailableClassesSuccessMessage   = "get available classes successfully"
	SelectClassSuccessMessage           = "class selected successfully"
	CreateScheduleSessionSuccessMessage = "schedule session created successfully"
	GetScheduleSessionSuccessMessage    = "get schedule session successfully"
	ApplyPointerEventsSuccessMessage    = "pointer events applied successfully"
	ChangeFilterSuccessMessage          = "time window changed successfully"
	DeleteRunSuccessMessage             = "time block removed successfully"
	ResetScheduleSuccessMessage         = "schedule cleared successfully"
	SubmitScheduleSuccessMessage        = "schedule submitted successfully"
	SubmitScheduleQueuedMessage         = "schedule received and will be saved shortly"
)
