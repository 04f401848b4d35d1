package middlewares

import (
	"class-registration-service/internal/pkg/exceptions"
	"class-registration-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimit limits each client IP to APP_MAX_REQUEST per
// APP_MAX_TIME_REQUESTS_PER_SECONDS seconds.
func (m *Middlewares) RateLimit() func(next http.Handler) http.Handler {
	window := time.Duration(max(m.InternalConfig.App.MaxTimeRequestsPerSeconds, 1)) * time.Second
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
		}),
	)
}
