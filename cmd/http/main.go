package main

import (
	"class-registration-service/internal/app/config"
	"class-registration-service/internal/app/delivery/http/controllers"
	"class-registration-service/internal/app/delivery/http/middlewares"
	"class-registration-service/internal/app/delivery/http/routers"
	"class-registration-service/internal/app/drivers/database"
	"class-registration-service/internal/app/drivers/logger"
	"class-registration-service/internal/app/drivers/messaging"
	"class-registration-service/internal/app/drivers/storage"
	"class-registration-service/internal/app/services/core/classes"
	"class-registration-service/internal/app/services/core/exports"
	"class-registration-service/internal/app/services/core/registrations"
	"class-registration-service/internal/app/services/core/schedules"
	"class-registration-service/internal/app/services/core/students"
	"class-registration-service/internal/app/services/core/submissions"
	"class-registration-service/internal/app/services/recordstore"
	"class-registration-service/internal/app/services/shared/locker"
	"class-registration-service/internal/app/services/shared/publisher"
	"class-registration-service/internal/app/services/shared/ratelimiter"
	"class-registration-service/internal/app/services/shared/redis"
	minioStorage "class-registration-service/internal/app/services/shared/storage"
	"class-registration-service/internal/pkg/weekgrid"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	accessLogger := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Redis:          database.NewRedisClient(driverConfig),
		MongoDB:        database.NewMongoDB(driverConfig),
		Minio:          storage.NewMinio(driverConfig),
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig),
		Logger:         zapLogger,
		AccessLogger:   accessLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Error bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler: bootstrap.Router,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("port", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error while closing drivers: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	cfg := bootstrap.InternalConfig

	grid, err := weekgrid.NewGrid(cfg.Grid)
	if err != nil {
		return fmt.Errorf("grid config: %w", err)
	}

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	resourceLimiter := ratelimiter.NewResourceLimiter(redisRepository, bootstrap.Logger)

	// Record store
	recordStoreClient := recordstore.NewRecordStoreClient(cfg.RecordStore, bootstrap.Logger)
	studentRepository := students.NewStudentRepository(recordStoreClient, cfg.RecordStore.Schema, bootstrap.Logger)
	classRepository := classes.NewClassRepository(recordStoreClient, cfg.RecordStore.Schema, bootstrap.Logger)

	// Submissions
	sessionStore := schedules.NewRedisSessionStore(redisRepository)
	outbox := submissions.NewRedisOutbox(redisRepository)
	auditRepository := submissions.NewAuditMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
		cfg.Submission.AuditCollection,
	)
	receiptStorage := minioStorage.NewMinioStorage(bootstrap.Minio, bootstrap.DriverConfig.Minio.BucketName)

	eventPublisher, err := publisher.NewRabbitMQPublisher(
		bootstrap.RabbitMQ,
		cfg.RabbitMQ.Exchange,
		cfg.RabbitMQ.RegistrationQueue,
		bootstrap.Logger,
	)
	if err != nil {
		return fmt.Errorf("rabbitmq publisher: %w", err)
	}

	scheduleExporter, err := exports.NewScheduleExporter(grid, cfg, bootstrap.Logger)
	if err != nil {
		return fmt.Errorf("schedule exporter: %w", err)
	}

	// Usecases
	registrationUsecase := registrations.NewRegistrationUsecase(
		grid,
		studentRepository,
		classRepository,
		lockerService,
		scheduleExporter,
		resourceLimiter,
		eventPublisher,
		cfg,
		bootstrap.Logger,
	)
	scheduleSessionUsecase := schedules.NewScheduleSessionUsecase(
		grid,
		studentRepository,
		sessionStore,
		lockerService,
		auditRepository,
		outbox,
		receiptStorage,
		eventPublisher,
		cfg,
		bootstrap.Logger,
	)

	// Retry worker
	retryWorker := submissions.NewRetryWorker(
		bootstrap.Logger,
		cfg,
		lockerService,
		outbox,
		studentRepository,
		auditRepository,
		eventPublisher,
	)
	retryWorker.Start(context.Background())
	bootstrap.WorkerStop = retryWorker.Stop

	// Delivery
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, cfg)
	registrationController := controllers.NewRegistrationController(bootstrap.Logger, registrationUsecase)
	scheduleController := controllers.NewScheduleController(bootstrap.Logger, scheduleSessionUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		cfg,
		bootstrap.AccessLogger,
		middlewares,
		registrationController,
		scheduleController,
	)
	return nil
}
