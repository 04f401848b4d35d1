package middlewares

import (
	"class-registration-service/internal/pkg/constvars"
	"class-registration-service/internal/pkg/utils"
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rec *responseRecorder) WriteHeader(code int) {
	rec.statusCode = code
	rec.ResponseWriter.WriteHeader(code)
}

func (m *Middlewares) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := utils.GetRequestID(r.Context())

		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		m.Log.Info("API request completed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMethodKey, r.Method),
			zap.String(constvars.LoggingURLKey, r.URL.Path),
			zap.Int(constvars.LoggingStatusCodeKey, rec.statusCode),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
		)
	})
}

// RequestID keeps a client supplied X-Request-ID and generates one otherwise.
func (m *Middlewares) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(constvars.HeaderXRequestID)
		if requestID == "" {
			requestID = utils.GenerateID()
		}

		ctx := context.WithValue(r.Context(), constvars.ContextRequestIDKey, requestID)
		w.Header().Set(constvars.HeaderXRequestID, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BodyLimit caps request bodies at APP_REQUEST_BODY_LIMIT_IN_MEGABYTE.
func (m *Middlewares) BodyLimit(next http.Handler) http.Handler {
	limit := int64(max(m.InternalConfig.App.RequestBodyLimitInMegabyte, 1)) << 20
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		next.ServeHTTP(w, r)
	})
}
