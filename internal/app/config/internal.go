package config

import "class-registration-service/internal/pkg/weekgrid"

type InternalConfig struct {
	App          App             `mapstructure:"app"`
	RecordStore  AppRecordStore  `mapstructure:"record_store"`
	Grid         weekgrid.Config `mapstructure:"grid"`
	Registration AppRegistration `mapstructure:"registration"`
	Submission   AppSubmission   `mapstructure:"submission"`
	JWT          AppJWT          `mapstructure:"jwt"`
	RabbitMQ     AppRabbitMQ     `mapstructure:"rabbitmq"`
}

type App struct {
	Env                        string `mapstructure:"env"`
	Port                       string `mapstructure:"port"`
	Version                    string `mapstructure:"version"`
	Address                    string `mapstructure:"address"`
	Timezone                   string `mapstructure:"timezone"`
	EndpointPrefix             string `mapstructure:"endpoint_prefix"`
	FrontendDomain             string `mapstructure:"frontend_domain"`
	MaxRequests                int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int    `mapstructure:"shutdown_timeout_in_seconds"`
	MaxTimeRequestsPerSeconds  int    `mapstructure:"max_time_requests_per_seconds"`
	RequestBodyLimitInMegabyte int    `mapstructure:"request_body_limit_in_megabyte"`
}

// AppRecordStore configures the tabular record-store API that holds students
// and classes.
type AppRecordStore struct {
	BaseUrl           string            `mapstructure:"base_url"`
	ApiToken          string            `mapstructure:"api_token"`
	MaxAttempts       int               `mapstructure:"max_attempts"`
	BackoffInMillis   int               `mapstructure:"backoff_in_millis"`
	RequestsPerSecond int               `mapstructure:"requests_per_second"`
	TimeoutInSeconds  int               `mapstructure:"timeout_in_seconds"`
	Schema            RecordStoreSchema `mapstructure:"schema"`
}

// RecordStoreSchema names the record-store tables and columns used by the
// service.
type RecordStoreSchema struct {
	StudentTable string        `mapstructure:"student_table"`
	ClassTable   string        `mapstructure:"class_table"`
	Student      StudentFields `mapstructure:"student"`
	Class        ClassFields   `mapstructure:"class"`
}

type StudentFields struct {
	ID             string `mapstructure:"id"`
	FullName       string `mapstructure:"full_name"`
	Email          string `mapstructure:"email"`
	PhoneNumber    string `mapstructure:"phone_number"`
	BirthDate      string `mapstructure:"birth_date"`
	Product        string `mapstructure:"product"`
	Level          string `mapstructure:"level"`
	TeacherType    string `mapstructure:"teacher_type"`
	HeldClassID    string `mapstructure:"held_class_id"`
	ClassID        string `mapstructure:"class_id"`
	CustomSchedule string `mapstructure:"custom_schedule"`
	Step           string `mapstructure:"step"`
}

type ClassFields struct {
	ID          string `mapstructure:"id"`
	Code        string `mapstructure:"code"`
	Product     string `mapstructure:"product"`
	Level       string `mapstructure:"level"`
	TeacherType string `mapstructure:"teacher_type"`
	Schedule    string `mapstructure:"schedule"`
	StartDate   string `mapstructure:"start_date"`
	Capacity    string `mapstructure:"capacity"`
	Enrolled    string `mapstructure:"enrolled"`
	Status      string `mapstructure:"status"`
}

type AppRegistration struct {
	ExportAnchor             string `mapstructure:"export_anchor"`
	SessionTTLInMinutes      int    `mapstructure:"session_ttl_in_minutes"`
	SessionLockTTLInSeconds  int    `mapstructure:"session_lock_ttl_in_seconds"`
	MaxPointerEventsPerBatch int    `mapstructure:"max_pointer_events_per_batch"`
	ExportQuotaPerWindow     int    `mapstructure:"export_quota_per_window"`
	ExportWindowInSeconds    int    `mapstructure:"export_window_in_seconds"`
}

type AppSubmission struct {
	RetryCronSpec       string `mapstructure:"retry_cron_spec"`
	RetryMaxAttempts    int    `mapstructure:"retry_max_attempts"`
	RetryBatchSize      int    `mapstructure:"retry_batch_size"`
	AuditCollection     string `mapstructure:"audit_collection"`
	ReceiptObjectPrefix string `mapstructure:"receipt_object_prefix"`
}

type AppJWT struct {
	Secret        string `mapstructure:"secret"`
	ExpTimeInHour int    `mapstructure:"exp_time_in_hour"`
}

type AppRabbitMQ struct {
	Exchange          string `mapstructure:"exchange"`
	RegistrationQueue string `mapstructure:"registration_queue"`
}
