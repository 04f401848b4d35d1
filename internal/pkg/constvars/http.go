package constvars

const (
	MethodGet     = "GET"
	MethodHead    = "HEAD"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodPatch   = "PATCH"
	MethodDelete  = "DELETE"
	MethodOptions = "OPTIONS"
)

const (
	MIMETextPlain       = "text/plain"
	MIMETextCalendar    = "text/calendar"
	MIMEApplicationJSON = "application/json"
	MIMEOctetStream     = "application/octet-stream"
	MIMEApplicationXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	MIMETextPlainCharsetUTF8       = "text/plain; charset=utf-8"
	MIMETextCalendarCharsetUTF8    = "text/calendar; charset=utf-8"
	MIMEApplicationJSONCharsetUTF8 = "application/json; charset=utf-8"
)

const (
	StatusOK        = 200
	StatusCreated   = 201
	StatusAccepted  = 202
	StatusNoContent = 204

	StatusBadRequest            = 400
	StatusUnauthorized          = 401
	StatusForbidden             = 403
	StatusNotFound              = 404
	StatusMethodNotAllowed      = 405
	StatusConflict              = 409
	StatusGone                  = 410
	StatusRequestEntityTooLarge = 413
	StatusUnprocessableEntity   = 422
	StatusLocked                = 423
	StatusTooManyRequests       = 429

	StatusInternalServerError = 500
	StatusBadGateway          = 502
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

const (
	HeaderAuthorization      = "Authorization"
	HeaderAccept             = "Accept"
	HeaderContentType        = "Content-Type"
	HeaderContentDisposition = "Content-Disposition"
	HeaderContentLength      = "Content-Length"
	HeaderOrigin             = "Origin"
	HeaderLocation           = "Location"
	HeaderRetryAfter         = "Retry-After"
	HeaderXRequestID         = "X-Request-ID"
	HeaderXRequestedWith     = "X-Requested-With"
	HeaderXForwardedFor      = "X-Forwarded-For"

	// HeaderRecordStoreToken authenticates calls to the record-store API.
	HeaderRecordStoreToken = "xc-token"
)

const (
	AuthorizationBearerPrefix = "Bearer "
	QueryParamRegistrationKey = "token"
	QueryParamFormat          = "format"
)

const (
	URLParamSessionID = "sessionID"
	URLParamClassID   = "classID"
)
