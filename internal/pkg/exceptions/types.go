package exceptions

import (
	"class-registration-service/internal/pkg/constvars"
	"fmt"
	"time"
)

var (
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrURLParamValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamValidationFailed, paramName))
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrCannotUnmarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotUnmarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrInternal = func(err error, devMessage string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, devMessage)
	}
	ErrTooManyRequests = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, constvars.ErrClientTooManyRequests)
	}
)

// Registration token
var (
	ErrTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthTokenInvalidOrExpired)
	}
	ErrTokenGenerate = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevAuthGenerateToken)
	}
)

// Record store
var (
	ErrBuildRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevBuildRequest)
	}
	ErrRecordStoreRequest = func(err error, table string, statusCode int, message string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientRecordStoreUnavailable, fmt.Sprintf(constvars.ErrDevRecordStoreRequestFailed, table, statusCode, message))
	}
	ErrRecordStoreUnavailable = func(err error, attempts int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientRecordStoreUnavailable, fmt.Sprintf(constvars.ErrDevRecordStoreUnavailable, attempts))
	}
	ErrRecordStoreRateLimited = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientRecordStoreUnavailable, constvars.ErrDevRecordStoreRateLimited)
	}
	ErrRecordStoreMalformedRow = func(err error, table string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientRecordStoreUnavailable, fmt.Sprintf(constvars.ErrDevRecordStoreMalformedRow, table))
	}
	ErrRecordStoreFilterValue = func(err error, field, value string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRecordStoreFilterValue, value, field))
	}
)

// Registration
var (
	ErrStudentNotFound = func(err error, studentID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientRegistrationNotFound, fmt.Sprintf(constvars.ErrDevStudentNotFound, studentID))
	}
	ErrClassNotFound = func(err error, classID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientClassNotFound, fmt.Sprintf(constvars.ErrDevClassNotFound, classID))
	}
	ErrClassFull = func(err error, classID string, enrolled, capacity int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientClassFull, fmt.Sprintf(constvars.ErrDevClassFull, classID, enrolled, capacity))
	}
	ErrClassClosed = func(err error, classID, status string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientClassClosed, fmt.Sprintf(constvars.ErrDevClassClosed, classID, status))
	}
	ErrClassNotMatching = func(err error, classID, studentID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnprocessableEntity, constvars.ErrClientClassNotAvailable, fmt.Sprintf(constvars.ErrDevClassNotMatching, classID, studentID))
	}
	ErrNoHeldClass = func(err error, studentID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientNoHeldClass, fmt.Sprintf(constvars.ErrDevNoHeldClass, studentID))
	}
	ErrClassBusy = func(err error, classID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientClassBusy, fmt.Sprintf(constvars.ErrDevClassBusy, classID))
	}
	ErrAlreadyEnrolled = func(err error, studentID, classID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientAlreadyEnrolled, fmt.Sprintf(constvars.ErrDevAlreadyEnrolled, studentID, classID))
	}
	ErrEnrollmentBusy = func(err error, studentID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientEnrollmentBusy, fmt.Sprintf(constvars.ErrDevEnrollmentBusy, studentID))
	}
)

// Schedule sessions
var (
	ErrEmptySchedule = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientEmptySchedule, constvars.ErrDevEmptySchedule)
	}
	ErrUnknownFilter = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientUnknownFilter, constvars.ErrDevUnknownFilter)
	}
	ErrInvalidPointerEvent = func(err error, index int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidPointerEvent, fmt.Sprintf(constvars.ErrDevInvalidPointerEvent, index))
	}
	ErrTooManyPointerEvents = func(err error, count, limit int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusRequestEntityTooLarge, constvars.ErrClientTooManyPointerEvents, fmt.Sprintf(constvars.ErrDevTooManyPointerEvents, count, limit))
	}
	ErrScheduleSessionNotFound = func(err error, sessionID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientScheduleSessionNotFound, fmt.Sprintf(constvars.ErrDevScheduleSessionNotFound, sessionID))
	}
	ErrScheduleSessionBusy = func(err error, sessionID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientScheduleSessionBusy, fmt.Sprintf(constvars.ErrDevScheduleSessionBusy, sessionID))
	}
	ErrScheduleSessionForbidden = func(err error, sessionID, studentID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrClientScheduleSessionForbidden, fmt.Sprintf(constvars.ErrDevScheduleSessionForbidden, sessionID, studentID))
	}
	ErrRunNotFound = func(err error, weekday string, start, end int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientRunNotFound, fmt.Sprintf(constvars.ErrDevRunNotFound, weekday, start, end))
	}
)

// Exports
var (
	ErrUnsupportedExportFormat = func(err error, format string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientUnsupportedExportFormat, fmt.Sprintf(constvars.ErrDevUnsupportedExportFormat, format))
	}
	ErrNothingToExport = func(err error, studentID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientNothingToExport, fmt.Sprintf(constvars.ErrDevNothingToExport, studentID))
	}
	ErrBuildExport = func(err error, format string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevBuildExport, format))
	}
	ErrExportRateLimited = func(err error, studentID string, retryAfter time.Duration) *CustomError {
		return BuildNewCustomError(err, constvars.StatusTooManyRequests, constvars.ErrClientExportRateLimited, fmt.Sprintf(constvars.ErrDevExportRateLimited, studentID, retryAfter))
	}
	ErrInvalidTimezone = func(err error, timezone string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevInvalidTimezone, timezone))
	}
)

// Infrastructure
var (
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSet)
	}
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGet)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDelete)
	}
	ErrRedisPush = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisPush)
	}
	ErrRedisPop = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisPop)
	}
	ErrRedisLock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisLock)
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMongoDBInsertDocument)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMongoDBUpdateDocument)
	}
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMongoDBFindDocument)
	}
	ErrMinioUploadObject = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMinioUploadObject)
	}
	ErrRabbitMQPublishMessage = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRabbitMQPublishMessage)
	}
)
