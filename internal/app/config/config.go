package config

import (
	"class-registration-service/internal/pkg/utils"
	"class-registration-service/internal/pkg/weekgrid"
	"log"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "class_registration"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "schedule-receipts"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Ho_Chi_Minh"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			FrontendDomain:             utils.GetEnvString("APP_FRONTEND_DOMAIN", "*"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 60),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
		},
		RecordStore: AppRecordStore{
			BaseUrl:           utils.GetEnvString("RECORD_STORE_BASE_URL", "http://localhost:8090"),
			ApiToken:          utils.GetEnvString("RECORD_STORE_API_TOKEN", ""),
			MaxAttempts:       utils.GetEnvInt("RECORD_STORE_MAX_ATTEMPTS", 3),
			BackoffInMillis:   utils.GetEnvInt("RECORD_STORE_BACKOFF_MS", 200),
			RequestsPerSecond: utils.GetEnvInt("RECORD_STORE_REQUESTS_PER_SECOND", 5),
			TimeoutInSeconds:  utils.GetEnvInt("RECORD_STORE_TIMEOUT_IN_SECONDS", 15),
			Schema:            newRecordStoreSchema(),
		},
		Grid: newGridConfig(),
		Registration: AppRegistration{
			ExportAnchor:             utils.GetEnvString("REGISTRATION_EXPORT_ANCHOR", ""),
			SessionTTLInMinutes:      utils.GetEnvInt("SCHEDULE_SESSION_TTL_MINUTES", 60),
			SessionLockTTLInSeconds:  utils.GetEnvInt("SCHEDULE_SESSION_LOCK_TTL_IN_SECONDS", 10),
			MaxPointerEventsPerBatch: utils.GetEnvInt("SCHEDULE_SESSION_MAX_POINTER_EVENTS", 500),
			ExportQuotaPerWindow:     utils.GetEnvInt("REGISTRATION_EXPORT_QUOTA", 10),
			ExportWindowInSeconds:    utils.GetEnvInt("REGISTRATION_EXPORT_WINDOW_IN_SECONDS", 60),
		},
		Submission: AppSubmission{
			RetryCronSpec:       utils.GetEnvString("SUBMISSION_RETRY_CRON", "@every 1m"),
			RetryMaxAttempts:    utils.GetEnvInt("SUBMISSION_RETRY_MAX", 5),
			RetryBatchSize:      utils.GetEnvInt("SUBMISSION_RETRY_BATCH_SIZE", 20),
			AuditCollection:     utils.GetEnvString("SUBMISSION_AUDIT_COLLECTION", "schedule_submissions"),
			ReceiptObjectPrefix: utils.GetEnvString("SUBMISSION_RECEIPT_PREFIX", "receipts"),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 72),
		},
		RabbitMQ: AppRabbitMQ{
			Exchange:          utils.GetEnvString("APP_RABBITMQ_EXCHANGE", "registration"),
			RegistrationQueue: utils.GetEnvString("APP_RABBITMQ_REGISTRATION_QUEUE", "registration.events"),
		},
	}
}

func newRecordStoreSchema() RecordStoreSchema {
	return RecordStoreSchema{
		StudentTable: utils.GetEnvString("RECORD_STORE_STUDENT_TABLE", "students"),
		ClassTable:   utils.GetEnvString("RECORD_STORE_CLASS_TABLE", "classes"),
		Student: StudentFields{
			ID:             utils.GetEnvString("RECORD_STORE_STUDENT_FIELD_ID", "Id"),
			FullName:       utils.GetEnvString("RECORD_STORE_STUDENT_FIELD_FULL_NAME", "FullName"),
			Email:          utils.GetEnvString("RECORD_STORE_STUDENT_FIELD_EMAIL", "Email"),
			PhoneNumber:    utils.GetEnvString("RECORD_STORE_STUDENT_FIELD_PHONE", "PhoneNumber"),
			BirthDate:      utils.GetEnvString("RECORD_STORE_STUDENT_FIELD_BIRTH_DATE", "BirthDate"),
			Product:        utils.GetEnvString("RECORD_STORE_STUDENT_FIELD_PRODUCT", "Product"),
			Level:          utils.GetEnvString("RECORD_STORE_STUDENT_FIELD_LEVEL", "Level"),
			TeacherType:    utils.GetEnvString("RECORD_STORE_STUDENT_FIELD_TEACHER_TYPE", "TeacherType"),
			HeldClassID:    utils.GetEnvString("RECORD_STORE_STUDENT_FIELD_HELD_CLASS", "HeldClassId"),
			ClassID:        utils.GetEnvString("RECORD_STORE_STUDENT_FIELD_CLASS", "ClassId"),
			CustomSchedule: utils.GetEnvString("RECORD_STORE_STUDENT_FIELD_CUSTOM_SCHEDULE", "CustomSchedule"),
			Step:           utils.GetEnvString("RECORD_STORE_STUDENT_FIELD_STEP", "RegistrationStep"),
		},
		Class: ClassFields{
			ID:          utils.GetEnvString("RECORD_STORE_CLASS_FIELD_ID", "Id"),
			Code:        utils.GetEnvString("RECORD_STORE_CLASS_FIELD_CODE", "Code"),
			Product:     utils.GetEnvString("RECORD_STORE_CLASS_FIELD_PRODUCT", "Product"),
			Level:       utils.GetEnvString("RECORD_STORE_CLASS_FIELD_LEVEL", "Level"),
			TeacherType: utils.GetEnvString("RECORD_STORE_CLASS_FIELD_TEACHER_TYPE", "TeacherType"),
			Schedule:    utils.GetEnvString("RECORD_STORE_CLASS_FIELD_SCHEDULE", "Schedule"),
			StartDate:   utils.GetEnvString("RECORD_STORE_CLASS_FIELD_START_DATE", "StartDate"),
			Capacity:    utils.GetEnvString("RECORD_STORE_CLASS_FIELD_CAPACITY", "Capacity"),
			Enrolled:    utils.GetEnvString("RECORD_STORE_CLASS_FIELD_ENROLLED", "Enrolled"),
			Status:      utils.GetEnvString("RECORD_STORE_CLASS_FIELD_STATUS", "Status"),
		},
	}
}

func newGridConfig() weekgrid.Config {
	defaults := weekgrid.DefaultConfig()
	return weekgrid.Config{
		StartHour:       utils.GetEnvInt("GRID_START_HOUR", defaults.StartHour),
		EndHour:         utils.GetEnvInt("GRID_END_HOUR", defaults.EndHour),
		MinutesPerSlot:  utils.GetEnvInt("GRID_MINUTES_PER_SLOT", defaults.MinutesPerSlot),
		SlotPixelHeight: utils.GetEnvFloat("GRID_SLOT_PIXEL_HEIGHT", defaults.SlotPixelHeight),
		DayColumnWidth:  utils.GetEnvFloat("GRID_DAY_COLUMN_WIDTH", defaults.DayColumnWidth),
		Morning:         getEnvHourRange("GRID_MORNING", defaults.Morning),
		Afternoon:       getEnvHourRange("GRID_AFTERNOON", defaults.Afternoon),
		Evening:         getEnvHourRange("GRID_EVENING", defaults.Evening),
	}
}

// getEnvHourRange reads a "start-end" hour pair such as "7-12".
func getEnvHourRange(key string, defaultValue weekgrid.HourRange) weekgrid.HourRange {
	value := utils.GetEnvString(key, "")
	if value == "" {
		return defaultValue
	}
	start, end, found := strings.Cut(value, "-")
	if !found {
		log.Printf("Error parsing %s: %q is not start-end, will use default value", key, value)
		return defaultValue
	}
	startHour, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil {
		log.Printf("Error parsing %s: %v, will use default value", key, err)
		return defaultValue
	}
	endHour, err := strconv.Atoi(strings.TrimSpace(end))
	if err != nil {
		log.Printf("Error parsing %s: %v, will use default value", key, err)
		return defaultValue
	}
	return weekgrid.HourRange{Start: startHour, End: endHour}
}
