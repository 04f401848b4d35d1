package exports

import (
	"class-registration-service/internal/app/config"
	"class-registration-service/internal/app/contracts"
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/pkg/constvars"
	"class-registration-service/internal/pkg/dto/responses"
	"class-registration-service/internal/pkg/exceptions"
	"class-registration-service/internal/pkg/utils"
	"class-registration-service/internal/pkg/weekgrid"
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

type scheduleExporter struct {
	Grid     *weekgrid.Grid
	Location *time.Location
	Anchor   time.Time
	Now      func() time.Time
	Log      *zap.Logger
}

// NewScheduleExporter loads the app timezone once. An unset or malformed
// anchor falls back to the current week at export time.
func NewScheduleExporter(grid *weekgrid.Grid, internalConfig *config.InternalConfig, logger *zap.Logger) (contracts.ScheduleExporter, error) {
	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		return nil, exceptions.ErrInvalidTimezone(err, internalConfig.App.Timezone)
	}

	exporter := &scheduleExporter{
		Grid:     grid,
		Location: location,
		Now:      time.Now,
		Log:      logger,
	}
	if anchor := internalConfig.Registration.ExportAnchor; anchor != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, anchor, location)
		if err != nil {
			logger.Warn("NewScheduleExporter ignoring malformed export anchor",
				zap.String("anchor", anchor),
				zap.Error(err),
			)
		} else {
			exporter.Anchor = parsed
		}
	}
	return exporter, nil
}

func (e *scheduleExporter) Export(ctx context.Context, student *models.Student, format string) (*responses.ScheduleExport, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != constvars.ExportFormatXLSX && format != constvars.ExportFormatICS {
		return nil, exceptions.ErrUnsupportedExportFormat(nil, format)
	}

	bitmap := e.Grid.BitmapFromPersisted(student.CustomSchedule)
	runs := e.Grid.ExtractRuns(bitmap)
	if len(runs) == 0 {
		return nil, exceptions.ErrNothingToExport(nil, student.ID)
	}

	var (
		content     []byte
		contentType string
		err         error
	)
	switch format {
	case constvars.ExportFormatXLSX:
		content, err = buildWorkbook(e.Grid, student, bitmap, runs)
		contentType = constvars.MIMEApplicationXLSX
	case constvars.ExportFormatICS:
		content, err = buildCalendar(student, runs, e.weekStart(), e.Location)
		contentType = constvars.MIMETextCalendarCharsetUTF8
	}
	if err != nil {
		return nil, exceptions.ErrBuildExport(err, format)
	}

	e.Log.Info("scheduleExporter.Export built schedule export",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingStudentIDKey, student.ID),
		zap.String(constvars.LoggingFormatKey, format),
		zap.Int(constvars.LoggingRunsCountKey, len(runs)),
	)

	return &responses.ScheduleExport{
		FileName:    utils.GenerateFileName("schedule", student.ID, "."+format),
		ContentType: contentType,
		Content:     content,
	}, nil
}

// weekStart is the Monday 00:00 of the anchor week, or of the current week.
func (e *scheduleExporter) weekStart() time.Time {
	day := e.Anchor
	if day.IsZero() {
		day = e.Now().In(e.Location)
	}
	return mondayOf(day)
}

func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}
