package classes

import (
	"class-registration-service/internal/app/config"
	"class-registration-service/internal/app/contracts"
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/app/services/recordstore"
	"class-registration-service/internal/pkg/constvars"
	"class-registration-service/internal/pkg/exceptions"
	"class-registration-service/internal/pkg/utils"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const pageSize = 100

var (
	classRepositoryInstance contracts.ClassRepository
	onceClassRepository     sync.Once
)

type classRepository struct {
	Client contracts.RecordStoreClient
	Schema config.RecordStoreSchema
	Log    *zap.Logger
}

func NewClassRepository(client contracts.RecordStoreClient, schema config.RecordStoreSchema, logger *zap.Logger) contracts.ClassRepository {
	onceClassRepository.Do(func() {
		classRepositoryInstance = &classRepository{
			Client: client,
			Schema: schema,
			Log:    logger,
		}
	})
	return classRepositoryInstance
}

func (r *classRepository) FindByID(ctx context.Context, classID string) (*models.Class, error) {
	row, err := r.Client.GetRecord(ctx, r.Schema.ClassTable, classID)
	if err != nil {
		if recordstore.IsNotFound(err) {
			return nil, exceptions.ErrClassNotFound(nil, classID)
		}
		return nil, err
	}
	return r.mapRow(row)
}

// FindOpenClasses lists open classes whose columns equal the non-empty
// criteria, walking every page.
func (r *classRepository) FindOpenClasses(ctx context.Context, criteria contracts.ClassCriteria) ([]models.Class, error) {
	fields := r.Schema.Class
	clauses := []recordstore.Clause{recordstore.Eq(fields.Status, constvars.ClassStatusOpen)}
	if criteria.Product != "" {
		clauses = append(clauses, recordstore.Eq(fields.Product, criteria.Product))
	}
	if criteria.Level != "" {
		clauses = append(clauses, recordstore.Eq(fields.Level, criteria.Level))
	}
	if criteria.TeacherType != "" {
		clauses = append(clauses, recordstore.Eq(fields.TeacherType, criteria.TeacherType))
	}

	where, err := recordstore.Where(clauses...)
	if err != nil {
		r.Log.Error("classRepository.FindOpenClasses invalid filter",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, err
	}
	query := contracts.RecordQuery{
		Where: where,
		Sort:  fields.StartDate,
		Limit: pageSize,
	}

	var classes []models.Class
	for {
		page, err := r.Client.ListRecords(ctx, r.Schema.ClassTable, query)
		if err != nil {
			r.Log.Error("classRepository.FindOpenClasses error calling record store",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.Error(err),
			)
			return nil, err
		}
		for _, row := range page.Rows {
			class, err := r.mapRow(row)
			if err != nil {
				r.Log.Warn("classRepository.FindOpenClasses skipping malformed row",
					zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
					zap.Error(err),
				)
				continue
			}
			classes = append(classes, *class)
		}

		query.Offset += len(page.Rows)
		if len(page.Rows) == 0 || query.Offset >= page.TotalRows {
			break
		}
	}
	return classes, nil
}

func (r *classRepository) UpdateEnrolled(ctx context.Context, classID string, enrolled int) error {
	fields := r.Schema.Class
	_, err := r.Client.UpdateRecord(ctx, r.Schema.ClassTable, map[string]interface{}{
		fields.ID:       classID,
		fields.Enrolled: enrolled,
	})
	if err != nil {
		if recordstore.IsNotFound(err) {
			return exceptions.ErrClassNotFound(nil, classID)
		}
		return err
	}
	return nil
}

func (r *classRepository) mapRow(row []byte) (*models.Class, error) {
	fields := r.Schema.Class
	id := gjson.GetBytes(row, fields.ID).String()
	if id == "" {
		return nil, exceptions.ErrRecordStoreMalformedRow(errors.New("class row has no id"), r.Schema.ClassTable)
	}

	return &models.Class{
		ID:          id,
		Code:        gjson.GetBytes(row, fields.Code).String(),
		Product:     gjson.GetBytes(row, fields.Product).String(),
		Level:       gjson.GetBytes(row, fields.Level).String(),
		TeacherType: gjson.GetBytes(row, fields.TeacherType).String(),
		Schedule:    gjson.GetBytes(row, fields.Schedule).String(),
		StartDate:   parseDate(gjson.GetBytes(row, fields.StartDate).String()),
		Capacity:    int(gjson.GetBytes(row, fields.Capacity).Int()),
		Enrolled:    int(gjson.GetBytes(row, fields.Enrolled).Int()),
		Status:      strings.ToLower(gjson.GetBytes(row, fields.Status).String()),
	}, nil
}

// parseDate accepts a plain date or an RFC3339 timestamp. Anything else is the
// zero time, which sorts first.
func parseDate(value string) time.Time {
	if parsed, err := time.Parse(time.DateOnly, value); err == nil {
		return parsed
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed
	}
	return time.Time{}
}
