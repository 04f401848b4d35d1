package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingDataKey               = "data"
	LoggingQueryParamsKey        = "query_params"
	LoggingResponseKey           = "response"
	LoggingRequestKey            = "request"
	LoggingResponseLengthKey     = "response_length"
	LoggingErrorKey              = "error"
	LoggingStudentIDKey          = "student_id"
	LoggingClassIDKey            = "class_id"
	LoggingSessionIDKey          = "session_id"
	LoggingSubmissionIDKey       = "submission_id"
	LoggingTableKey              = "table"
	LoggingAttemptKey            = "attempt"
	LoggingStatusCodeKey         = "status_code"
	LoggingScheduleKey           = "schedule"
	LoggingRunsCountKey          = "runs_count"
	LoggingEventsCountKey        = "events_count"
	LoggingFilterKey             = "filter"
	LoggingQueueLengthKey        = "queue_length"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration"
	LoggingObjectNameKey         = "object_name"
	LoggingEventKey              = "event"
	LoggingFormatKey             = "format"
	LoggingMethodKey             = "method"
	LoggingURLKey                = "url"
	LoggingDurationKey           = "duration"
)
