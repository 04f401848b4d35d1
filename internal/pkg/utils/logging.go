package utils

import (
	"class-registration-service/internal/pkg/constvars"
	"context"
	"time"

	"go.uber.org/zap"
)

func LogBusinessEvent(logger *zap.Logger, event string, requestID string, fields ...zap.Field) {
	allFields := []zap.Field{
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("business_event", event),
		zap.Time("timestamp", time.Now()),
	}
	allFields = append(allFields, fields...)

	logger.Info("Business event occurred", allFields...)
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.ContextRequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

func GetStudentID(ctx context.Context) string {
	if studentID, ok := ctx.Value(constvars.ContextStudentIDKey).(string); ok {
		return studentID
	}
	return ""
}
