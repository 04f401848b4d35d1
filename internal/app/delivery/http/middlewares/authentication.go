package middlewares

import (
	"class-registration-service/internal/pkg/constvars"
	"class-registration-service/internal/pkg/exceptions"
	"class-registration-service/internal/pkg/utils"
	"context"
	"net/http"

	"go.uber.org/zap"
)

// RegistrationToken resolves the student a registration link was issued for
// and puts the student id in the request context.
func (m *Middlewares) RegistrationToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := utils.ExtractBearerToken(r)
		if token == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		studentID, err := utils.ParseRegistrationJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			m.Log.Info("Middlewares.RegistrationToken rejected token",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.ContextStudentIDKey, studentID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
