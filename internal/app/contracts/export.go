package contracts

import (
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/pkg/dto/responses"
	"context"
)

type ScheduleExporter interface {
	Export(ctx context.Context, student *models.Student, format string) (*responses.ScheduleExport, error)
}
