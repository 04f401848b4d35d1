package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":     "is required",
	"email":        "must be a valid email",
	"alphanum":     "must contain only alphanumeric characters",
	"min":          "must be at least %s characters long",
	"max":          "maximum at %s characters long",
	"numeric":      "must be a number",
	"len":          "must be %s characters long",
	"oneof":        "must be one of [%s]",
	"gt":           "must be greater than %s",
	"gte":          "must be greater than or equal to %s",
	"lt":           "must be less than %s",
	"lte":          "must be less than or equal to %s",
	"datetime":     "must be a date in the format %s",
	"dive":         "is invalid",
	"phone_number": "phone number must be 9 to 15 digits, optionally starting with +",
	"not_future":   "date of birth cannot be in the future",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"len":      true,
	"gt":       true,
	"gte":      true,
	"lt":       true,
	"lte":      true,
	"oneof":    true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "your registration link is invalid or has expired"
	ErrClientRegistrationNotFound          = "registration not found"
	ErrClientClassNotFound                 = "class not found"
	ErrClientClassFull                     = "this class has no seats left"
	ErrClientClassClosed                   = "this class is no longer open for registration"
	ErrClientClassNotAvailable             = "this class is not available for your registration"
	ErrClientNoHeldClass                   = "there is no reserved class to confirm"
	ErrClientClassBusy                     = "this class is being updated, please retry"
	ErrClientAlreadyEnrolled               = "you are already enrolled in a class"
	ErrClientEnrollmentBusy                = "your registration is being updated, please retry"
	ErrClientEmptySchedule                 = "select at least one time slot"
	ErrClientUnknownFilter                 = "unknown time window, use one of all, morning, afternoon, evening"
	ErrClientInvalidPointerEvent           = "invalid pointer event"
	ErrClientTooManyPointerEvents          = "too many pointer events in one request"
	ErrClientScheduleSessionNotFound       = "schedule session not found or expired"
	ErrClientScheduleSessionBusy           = "schedule is being updated, please retry"
	ErrClientScheduleSessionForbidden      = "this schedule session belongs to another registration"
	ErrClientRunNotFound                   = "time block not found"
	ErrClientUnsupportedExportFormat       = "unsupported export format, use xlsx or ics"
	ErrClientNothingToExport               = "there is no saved schedule to export"
	ErrClientRecordStoreUnavailable        = "registration data is temporarily unavailable, please retry"
	ErrClientTooManyRequests               = "too many requests, please slow down"
	ErrClientExportRateLimited             = "too many exports, please retry in a moment"
)

// Error messages for developers
const (
	ErrDevInvalidInput              = "invalid input"
	ErrDevValidationFailed          = "request validation failed"
	ErrDevURLParamValidationFailed  = "url param %s validation failed"
	ErrDevCannotParseJSON           = "failed to parse JSON request body"
	ErrDevCannotMarshalJSON         = "failed to marshal JSON"
	ErrDevCannotUnmarshalJSON       = "failed to unmarshal JSON"
	ErrDevBuildRequest              = "failed to build HTTP request"
	ErrDevSendHTTPRequest           = "failed to send HTTP request"
	ErrDevReadResponseBody          = "failed to read response body"
	ErrDevServerDeadlineExceeded    = "server deadline exceeded"
	ErrDevAuthTokenMissing          = "registration token missing"
	ErrDevAuthTokenInvalidOrExpired = "registration token invalid or expired"
	ErrDevAuthGenerateToken         = "failed to generate registration token"
	ErrDevRecordStoreRequestFailed  = "record store request to table %s failed with status %d: %s"
	ErrDevRecordStoreUnavailable    = "record store unavailable after %d attempts"
	ErrDevRecordStoreRateLimited    = "record store client rate limiter wait failed"
	ErrDevRecordStoreMalformedRow   = "record store row in table %s is malformed"
	ErrDevRecordStoreFilterValue    = "record store filter value %q for %s contains one of ,()~"
	ErrDevStudentNotFound           = "student %s not found"
	ErrDevClassNotFound             = "class %s not found"
	ErrDevClassFull                 = "class %s is full: enrolled %d of %d"
	ErrDevClassClosed               = "class %s has status %s"
	ErrDevClassNotMatching          = "class %s does not match student %s"
	ErrDevNoHeldClass               = "student %s has no held class"
	ErrDevClassBusy                 = "class %s is locked by another enrollment"
	ErrDevAlreadyEnrolled           = "student %s is already enrolled in class %s"
	ErrDevEnrollmentBusy            = "student %s has another enrollment in progress"
	ErrDevEmptySchedule             = "schedule submission has no selected slot"
	ErrDevUnknownFilter             = "unknown time window filter"
	ErrDevInvalidPointerEvent       = "pointer event %d is invalid"
	ErrDevTooManyPointerEvents      = "pointer batch of %d exceeds limit %d"
	ErrDevScheduleSessionNotFound   = "schedule session %s not found"
	ErrDevScheduleSessionBusy       = "schedule session %s is locked by another request"
	ErrDevScheduleSessionForbidden  = "schedule session %s is not owned by student %s"
	ErrDevRunNotFound               = "no run %s %d-%d in schedule session"
	ErrDevUnsupportedExportFormat   = "unsupported export format %s"
	ErrDevNothingToExport           = "student %s has no persisted schedule"
	ErrDevBuildExport               = "failed to build %s export"
	ErrDevExportRateLimited         = "student %s export quota spent, retry after %s"
	ErrDevRedisSet                  = "failed to set redis key"
	ErrDevRedisGet                  = "failed to get redis key"
	ErrDevRedisDelete               = "failed to delete redis key"
	ErrDevRedisPush                 = "failed to push to redis list"
	ErrDevRedisPop                  = "failed to pop from redis list"
	ErrDevRedisLock                 = "failed to acquire redis lock"
	ErrDevMongoDBInsertDocument     = "failed to insert mongodb document"
	ErrDevMongoDBUpdateDocument     = "failed to update mongodb document"
	ErrDevMongoDBFindDocument       = "failed to find mongodb document"
	ErrDevMinioUploadObject         = "failed to upload object to minio"
	ErrDevRabbitMQPublishMessage    = "failed to publish message to rabbitmq"
	ErrDevInvalidGridConfiguration  = "invalid grid configuration"
	ErrDevInvalidTimezone           = "invalid timezone %s"
)
