package registrations

import (
	"class-registration-service/internal/app/config"
	"class-registration-service/internal/app/contracts"
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/app/services/core/classes"
	"class-registration-service/internal/pkg/constvars"
	"class-registration-service/internal/pkg/dto/requests"
	"class-registration-service/internal/pkg/dto/responses"
	"class-registration-service/internal/pkg/exceptions"
	"class-registration-service/internal/pkg/utils"
	"class-registration-service/internal/pkg/weekgrid"
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const classLockTTL = 10 * time.Second

type registrationUsecase struct {
	Grid              *weekgrid.Grid
	StudentRepository contracts.StudentRepository
	ClassRepository   contracts.ClassRepository
	LockerService     contracts.LockerService
	ScheduleExporter  contracts.ScheduleExporter
	ExportLimiter     contracts.ResourceLimiter
	EventPublisher    contracts.EventPublisher
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

var (
	registrationUsecaseInstance contracts.RegistrationUsecase
	onceRegistrationUsecase     sync.Once
)

func NewRegistrationUsecase(
	grid *weekgrid.Grid,
	studentRepository contracts.StudentRepository,
	classRepository contracts.ClassRepository,
	lockerService contracts.LockerService,
	scheduleExporter contracts.ScheduleExporter,
	exportLimiter contracts.ResourceLimiter,
	eventPublisher contracts.EventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.RegistrationUsecase {
	onceRegistrationUsecase.Do(func() {
		instance := &registrationUsecase{
			Grid:              grid,
			StudentRepository: studentRepository,
			ClassRepository:   classRepository,
			LockerService:     lockerService,
			ScheduleExporter:  scheduleExporter,
			ExportLimiter:     exportLimiter,
			EventPublisher:    eventPublisher,
			InternalConfig:    internalConfig,
			Log:               logger,
		}
		registrationUsecaseInstance = instance
	})
	return registrationUsecaseInstance
}

func (uc *registrationUsecase) GetRegistration(ctx context.Context, studentID string) (*responses.Registration, error) {
	student, err := uc.StudentRepository.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return uc.buildRegistration(ctx, student), nil
}

// UpdateDetails stores the confirmed personal details. A student still on the
// details step moves on to confirming a held class, or to picking one.
func (uc *registrationUsecase) UpdateDetails(ctx context.Context, studentID string, request *requests.UpdateRegistrationDetails) (*responses.Registration, error) {
	student, err := uc.StudentRepository.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	update := &models.StudentUpdate{
		FullName:    &request.FullName,
		Email:       &request.Email,
		PhoneNumber: &request.PhoneNumber,
		BirthDate:   &request.BirthDate,
	}
	if student.Step == constvars.RegistrationStepDetails {
		next := constvars.RegistrationStepClass
		if student.HasHeldClass() {
			next = constvars.RegistrationStepReservation
		}
		update.Step = &next
	}

	if err := uc.StudentRepository.Update(ctx, studentID, update); err != nil {
		return nil, err
	}

	student.FullName = request.FullName
	student.Email = request.Email
	student.PhoneNumber = request.PhoneNumber
	student.BirthDate = request.BirthDate
	if update.Step != nil {
		student.Step = *update.Step
	}

	utils.LogBusinessEvent(uc.Log, "registration.details_confirmed", utils.GetRequestID(ctx),
		zap.String(constvars.LoggingStudentIDKey, studentID),
	)
	return uc.buildRegistration(ctx, student), nil
}

// ConfirmReservation turns the held class into the student's class.
func (uc *registrationUsecase) ConfirmReservation(ctx context.Context, studentID string) (*responses.Registration, error) {
	student, err := uc.StudentRepository.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !student.HasHeldClass() {
		return nil, exceptions.ErrNoHeldClass(nil, studentID)
	}

	classID := student.HeldClassID
	if err := uc.enroll(ctx, student, classID, nil); err != nil {
		return nil, err
	}

	uc.publish(ctx, constvars.EventReservationConfirm, studentID, classID)
	student.ClassID = classID
	student.HeldClassID = ""
	student.Step = constvars.RegistrationStepCompleted
	return uc.buildRegistration(ctx, student), nil
}

func (uc *registrationUsecase) ListAvailableClasses(ctx context.Context, studentID string) ([]responses.Class, error) {
	student, err := uc.StudentRepository.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	available, err := uc.availableClasses(ctx, student)
	if err != nil {
		return nil, err
	}

	result := make([]responses.Class, 0, len(available))
	for i := range available {
		result = append(result, toClassResponse(&available[i]))
	}
	return result, nil
}

// SelectClass enrolls the student in a class from their matching list.
func (uc *registrationUsecase) SelectClass(ctx context.Context, studentID, classID string) (*responses.Registration, error) {
	student, err := uc.StudentRepository.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	match := classes.MatchStudent(student)
	if err := uc.enroll(ctx, student, classID, match); err != nil {
		return nil, err
	}

	uc.publish(ctx, constvars.EventClassSelected, studentID, classID)
	student.ClassID = classID
	student.HeldClassID = ""
	student.Step = constvars.RegistrationStepCompleted
	return uc.buildRegistration(ctx, student), nil
}

// ExportSchedule is throttled per student. A limiter outage lets the export
// through.
func (uc *registrationUsecase) ExportSchedule(ctx context.Context, studentID string, request *requests.ExportSchedule) (*responses.ScheduleExport, error) {
	limit, err := uc.ExportLimiter.Allow(ctx, &contracts.LimitInput{
		Resource: studentID,
		Group:    constvars.RateLimitGroupExport,
		Window:   time.Duration(uc.InternalConfig.Registration.ExportWindowInSeconds) * time.Second,
		MaxQuota: uc.InternalConfig.Registration.ExportQuotaPerWindow,
	})
	if err != nil {
		uc.Log.Warn("registrationUsecase.ExportSchedule limiter unavailable",
			zap.String(constvars.LoggingStudentIDKey, studentID),
			zap.Error(err),
		)
	} else if !limit.Allowed {
		return nil, exceptions.ErrExportRateLimited(nil, studentID, limit.RetryAfter)
	}

	student, err := uc.StudentRepository.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return uc.ScheduleExporter.Export(ctx, student, request.Format)
}

// enroll takes one seat of classID for student. It holds the student's
// enrollment lock and then the class lock; both the student and the class are
// re-read inside them. A non-nil match must accept the class.
func (uc *registrationUsecase) enroll(ctx context.Context, student *models.Student, classID string, match classes.Predicate) error {
	releaseStudent, err := uc.acquire(ctx, fmt.Sprintf(constvars.RedisKeyEnrollmentLock, student.ID), exceptions.ErrEnrollmentBusy(nil, student.ID))
	if err != nil {
		return err
	}
	defer releaseStudent()

	current, err := uc.StudentRepository.FindByID(ctx, student.ID)
	if err != nil {
		return err
	}
	if isEnrolled(current) {
		return exceptions.ErrAlreadyEnrolled(nil, student.ID, current.ClassID)
	}

	releaseClass, err := uc.acquire(ctx, fmt.Sprintf(constvars.RedisKeyClassLock, classID), exceptions.ErrClassBusy(nil, classID))
	if err != nil {
		return err
	}
	defer releaseClass()

	class, err := uc.ClassRepository.FindByID(ctx, classID)
	if err != nil {
		return err
	}
	if !classes.IsOpen(class) {
		return exceptions.ErrClassClosed(nil, classID, class.Status)
	}
	if !classes.HasSeats(class) {
		return exceptions.ErrClassFull(nil, classID, class.Enrolled, class.Capacity)
	}
	if match != nil && !match(class) {
		return exceptions.ErrClassNotMatching(nil, classID, student.ID)
	}

	if err := uc.ClassRepository.UpdateEnrolled(ctx, classID, class.Enrolled+1); err != nil {
		return err
	}

	empty := ""
	step := constvars.RegistrationStepCompleted
	err = uc.StudentRepository.Update(ctx, student.ID, &models.StudentUpdate{
		ClassID:     &classID,
		HeldClassID: &empty,
		Step:        &step,
	})
	if err != nil {
		uc.Log.Error("registrationUsecase.enroll error updating student, releasing seat",
			zap.String(constvars.LoggingStudentIDKey, student.ID),
			zap.String(constvars.LoggingClassIDKey, classID),
			zap.Error(err),
		)
		if rollbackErr := uc.ClassRepository.UpdateEnrolled(ctx, classID, class.Enrolled); rollbackErr != nil {
			uc.Log.Error("registrationUsecase.enroll error releasing seat",
				zap.String(constvars.LoggingClassIDKey, classID),
				zap.Error(rollbackErr),
			)
		}
		return err
	}
	return nil
}

func (uc *registrationUsecase) acquire(ctx context.Context, key string, busy error) (func(), error) {
	acquired, token, err := uc.LockerService.TryLock(ctx, key, classLockTTL)
	if err != nil {
		return nil, exceptions.ErrRedisLock(err)
	}
	if !acquired {
		return nil, busy
	}
	return func() {
		if err := uc.LockerService.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
			uc.Log.Warn("registrationUsecase.enroll error releasing lock",
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}, nil
}

// isEnrolled reports a student that already holds a seat. Selecting again
// would take a second seat without giving back the first.
func isEnrolled(student *models.Student) bool {
	return student.ClassID != "" || student.Step == constvars.RegistrationStepCompleted
}

func (uc *registrationUsecase) availableClasses(ctx context.Context, student *models.Student) ([]models.Class, error) {
	open, err := uc.ClassRepository.FindOpenClasses(ctx, classes.CriteriaFor(student))
	if err != nil {
		return nil, err
	}
	return classes.AvailableFor(student, open), nil
}

func (uc *registrationUsecase) publish(ctx context.Context, event, studentID, classID string) {
	err := uc.EventPublisher.Publish(ctx, &models.RegistrationEvent{
		Event:      event,
		StudentID:  studentID,
		ClassID:    classID,
		OccurredAt: time.Now(),
	})
	if err != nil {
		uc.Log.Warn("registrationUsecase.publish error publishing event",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEventKey, event),
			zap.Error(err),
		)
		return
	}
	utils.LogBusinessEvent(uc.Log, event, utils.GetRequestID(ctx),
		zap.String(constvars.LoggingStudentIDKey, studentID),
		zap.String(constvars.LoggingClassIDKey, classID),
	)
}

// buildRegistration resolves the held and selected classes. A class that can
// no longer be read is left out rather than failing the whole view.
func (uc *registrationUsecase) buildRegistration(ctx context.Context, student *models.Student) *responses.Registration {
	registration := &responses.Registration{
		Student: responses.Student{
			ID:          student.ID,
			FullName:    student.FullName,
			Email:       student.Email,
			PhoneNumber: student.PhoneNumber,
			BirthDate:   student.BirthDate,
			Product:     student.Product,
			Level:       student.Level,
			TeacherType: student.TeacherType,
		},
		Step:           student.Step,
		CustomSchedule: uc.Grid.ParseFromPersisted(student.CustomSchedule),
	}
	registration.HeldClass = uc.lookupClass(ctx, student.HeldClassID)
	registration.SelectedClass = uc.lookupClass(ctx, student.ClassID)
	return registration
}

func (uc *registrationUsecase) lookupClass(ctx context.Context, classID string) *responses.Class {
	if classID == "" {
		return nil
	}
	class, err := uc.ClassRepository.FindByID(ctx, classID)
	if err != nil {
		uc.Log.Warn("registrationUsecase.lookupClass error reading class",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingClassIDKey, classID),
			zap.Error(err),
		)
		return nil
	}
	response := toClassResponse(class)
	return &response
}

func toClassResponse(class *models.Class) responses.Class {
	startDate := ""
	if !class.StartDate.IsZero() {
		startDate = class.StartDate.Format(time.DateOnly)
	}
	return responses.Class{
		ID:          class.ID,
		Code:        class.Code,
		Product:     class.Product,
		Level:       class.Level,
		TeacherType: class.TeacherType,
		Schedule:    class.Schedule,
		StartDate:   startDate,
		Capacity:    class.Capacity,
		Enrolled:    class.Enrolled,
		SeatsLeft:   class.SeatsLeft(),
		Status:      class.Status,
	}
}
