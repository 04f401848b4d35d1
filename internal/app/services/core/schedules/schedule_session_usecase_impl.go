package schedules

import (
	"class-registration-service/internal/app/config"
	"class-registration-service/internal/app/contracts"
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/app/services/core/submissions"
	"class-registration-service/internal/pkg/constvars"
	"class-registration-service/internal/pkg/dto/requests"
	"class-registration-service/internal/pkg/dto/responses"
	"class-registration-service/internal/pkg/exceptions"
	"class-registration-service/internal/pkg/utils"
	"class-registration-service/internal/pkg/weekgrid"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var errPointerEventTarget = errors.New("down and move need x/y or weekday/slot")

type scheduleSessionUsecase struct {
	Grid              *weekgrid.Grid
	StudentRepository contracts.StudentRepository
	SessionStore      contracts.ScheduleSessionStore
	LockerService     contracts.LockerService
	AuditRepository   contracts.SubmissionAuditRepository
	Outbox            contracts.SubmissionOutbox
	ReceiptStorage    contracts.ReceiptStorage
	EventPublisher    contracts.EventPublisher
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

var (
	scheduleSessionUsecaseInstance contracts.ScheduleSessionUsecase
	onceScheduleSessionUsecase     sync.Once
)

func NewScheduleSessionUsecase(
	grid *weekgrid.Grid,
	studentRepository contracts.StudentRepository,
	sessionStore contracts.ScheduleSessionStore,
	lockerService contracts.LockerService,
	auditRepository contracts.SubmissionAuditRepository,
	outbox contracts.SubmissionOutbox,
	receiptStorage contracts.ReceiptStorage,
	eventPublisher contracts.EventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ScheduleSessionUsecase {
	onceScheduleSessionUsecase.Do(func() {
		instance := &scheduleSessionUsecase{
			Grid:              grid,
			StudentRepository: studentRepository,
			SessionStore:      sessionStore,
			LockerService:     lockerService,
			AuditRepository:   auditRepository,
			Outbox:            outbox,
			ReceiptStorage:    receiptStorage,
			EventPublisher:    eventPublisher,
			InternalConfig:    internalConfig,
			Log:               logger,
		}
		scheduleSessionUsecaseInstance = instance
	})
	return scheduleSessionUsecaseInstance
}

func (uc *scheduleSessionUsecase) sessionTTL() time.Duration {
	return time.Duration(uc.InternalConfig.Registration.SessionTTLInMinutes) * time.Minute
}

func (uc *scheduleSessionUsecase) lockTTL() time.Duration {
	return time.Duration(max(uc.InternalConfig.Registration.SessionLockTTLInSeconds, 1)) * time.Second
}

// CreateSession opens a grid seeded from the schedule the student saved
// before. Entries that no longer fit the grid are dropped.
func (uc *scheduleSessionUsecase) CreateSession(ctx context.Context, studentID string) (*responses.ScheduleSession, error) {
	student, err := uc.StudentRepository.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &models.ScheduleSession{
		ID:        utils.GenerateID(),
		StudentID: student.ID,
		Filter:    weekgrid.FilterAll,
		Bitmap:    uc.Grid.BitmapFromPersisted(student.CustomSchedule),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(uc.sessionTTL()),
	}
	if err := uc.SessionStore.Save(ctx, session, uc.sessionTTL()); err != nil {
		return nil, err
	}

	// A student with no fitting class proposes their own availability instead.
	if student.Step == constvars.RegistrationStepClass {
		step := constvars.RegistrationStepCustomSchedule
		if err := uc.StudentRepository.Update(ctx, studentID, &models.StudentUpdate{Step: &step}); err != nil {
			uc.Log.Warn("scheduleSessionUsecase.CreateSession error updating registration step",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingStudentIDKey, studentID),
				zap.Error(err),
			)
		}
	}

	uc.Log.Info("scheduleSessionUsecase.CreateSession created session",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingStudentIDKey, studentID),
		zap.String(constvars.LoggingSessionIDKey, session.ID),
		zap.Int(constvars.LoggingRunsCountKey, len(uc.Grid.ExtractRuns(session.Bitmap))),
	)
	return BuildSessionView(uc.Grid, session), nil
}

func (uc *scheduleSessionUsecase) GetSession(ctx context.Context, studentID, sessionID string) (*responses.ScheduleSession, error) {
	session, err := uc.findOwned(ctx, studentID, sessionID)
	if err != nil {
		return nil, err
	}
	return BuildSessionView(uc.Grid, session), nil
}

// ApplyPointerEvents feeds a batch through the drag controller in order. The
// whole batch is validated before any event is applied.
func (uc *scheduleSessionUsecase) ApplyPointerEvents(ctx context.Context, studentID, sessionID string, request *requests.ApplyPointerEvents) (*responses.ScheduleSession, error) {
	limit := uc.InternalConfig.Registration.MaxPointerEventsPerBatch
	if limit > 0 && len(request.Events) > limit {
		return nil, exceptions.ErrTooManyPointerEvents(nil, len(request.Events), limit)
	}

	phases := make([]weekgrid.Phase, len(request.Events))
	for i, event := range request.Events {
		phase, err := weekgrid.ParsePhase(event.Phase)
		if err != nil {
			return nil, exceptions.ErrInvalidPointerEvent(err, i)
		}
		needsTarget := phase == weekgrid.PhaseDown || phase == weekgrid.PhaseMove
		if needsTarget && !event.HasCell() && !event.HasCoordinates() {
			return nil, exceptions.ErrInvalidPointerEvent(errPointerEventTarget, i)
		}
		phases[i] = phase
	}

	session, err := uc.mutate(ctx, studentID, sessionID, func(session *models.ScheduleSession, controller *weekgrid.DragController) error {
		session.OriginX, session.OriginY = request.ContainerLeft, request.ContainerTop
		controller.SetOrigin(request.ContainerLeft, request.ContainerTop)

		for i, event := range request.Events {
			switch {
			case event.HasCell():
				controller.HandleCell(phases[i], weekgrid.Cell{Weekday: weekgrid.Weekday(*event.Weekday), Slot: *event.Slot})
			case event.HasCoordinates():
				controller.HandlePointer(weekgrid.PointerEvent{Phase: phases[i], X: *event.X, Y: *event.Y})
			default:
				controller.HandleCell(phases[i], weekgrid.Cell{})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.Log.Debug("scheduleSessionUsecase.ApplyPointerEvents applied batch",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
		zap.Int(constvars.LoggingEventsCountKey, len(request.Events)),
	)
	return BuildSessionView(uc.Grid, session), nil
}

// ChangeFilter switches the visible window. Selections outside it are kept.
func (uc *scheduleSessionUsecase) ChangeFilter(ctx context.Context, studentID, sessionID string, request *requests.ChangeFilter) (*responses.ScheduleSession, error) {
	filter, err := weekgrid.ParseFilter(request.Filter)
	if err != nil {
		return nil, exceptions.ErrUnknownFilter(err)
	}

	session, err := uc.mutate(ctx, studentID, sessionID, func(_ *models.ScheduleSession, controller *weekgrid.DragController) error {
		return controller.SetFilter(filter)
	})
	if err != nil {
		return nil, err
	}
	return BuildSessionView(uc.Grid, session), nil
}

// DeleteRun clears one whole run. The run must match a current run exactly.
func (uc *scheduleSessionUsecase) DeleteRun(ctx context.Context, studentID, sessionID string, request *requests.DeleteRun) (*responses.ScheduleSession, error) {
	day := weekgrid.Weekday(*request.Weekday)
	start, end := *request.Start, *request.End

	session, err := uc.mutate(ctx, studentID, sessionID, func(_ *models.ScheduleSession, controller *weekgrid.DragController) error {
		for _, run := range uc.Grid.ExtractDayRuns(controller.Bitmap(), day) {
			if run.Start == start && run.End == end {
				controller.Bitmap().ClearRun(run)
				return nil
			}
		}
		return exceptions.ErrRunNotFound(nil, day.Label(), start, end)
	})
	if err != nil {
		return nil, err
	}
	return BuildSessionView(uc.Grid, session), nil
}

func (uc *scheduleSessionUsecase) ResetSession(ctx context.Context, studentID, sessionID string) (*responses.ScheduleSession, error) {
	session, err := uc.mutate(ctx, studentID, sessionID, func(_ *models.ScheduleSession, controller *weekgrid.DragController) error {
		controller.Reset()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return BuildSessionView(uc.Grid, session), nil
}

// SubmitSession stores the selection on the student row. When the record
// store cannot take it the submission is queued for the retry worker and
// reported as queued. The session is removed either way.
func (uc *scheduleSessionUsecase) SubmitSession(ctx context.Context, studentID, sessionID string) (*responses.ScheduleSubmission, error) {
	requestID := utils.GetRequestID(ctx)

	unlock, err := uc.lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	session, err := uc.findOwned(ctx, studentID, sessionID)
	if err != nil {
		return nil, err
	}
	controller := uc.restore(session)
	controller.Cancel()

	if err := weekgrid.ValidateSubmission(controller.Bitmap()); err != nil {
		return nil, exceptions.ErrEmptySchedule(err)
	}

	runs := uc.Grid.ExtractRuns(controller.Bitmap())
	schedule := weekgrid.FormatForSubmission(runs)
	now := time.Now()

	audit := &models.SubmissionAudit{
		ID:        utils.GenerateID(),
		StudentID: studentID,
		SessionID: sessionID,
		Schedule:  schedule,
		Runs:      runs,
		Status:    constvars.SubmissionStatusSubmitted,
		Attempts:  1,
		RequestID: requestID,
	}

	err = uc.StudentRepository.Update(ctx, studentID, submissions.ScheduleUpdate(schedule))
	if err != nil {
		if exceptions.StatusCodeOf(err) < constvars.StatusInternalServerError {
			return nil, err
		}
		uc.Log.Warn("scheduleSessionUsecase.SubmitSession record store unavailable, queueing submission",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSubmissionIDKey, audit.ID),
			zap.Error(err),
		)
		queueErr := uc.Outbox.Enqueue(ctx, &models.QueuedSubmission{
			SubmissionID: audit.ID,
			StudentID:    studentID,
			Schedule:     schedule,
			Attempts:     1,
			EnqueuedAt:   now,
		})
		if queueErr != nil {
			uc.Log.Error("scheduleSessionUsecase.SubmitSession error queueing submission",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(queueErr),
			)
			return nil, err
		}
		audit.Status = constvars.SubmissionStatusQueued
		audit.LastError = err.Error()
	}

	student, findErr := uc.StudentRepository.FindByID(ctx, studentID)
	studentName := ""
	if findErr == nil {
		studentName = student.FullName
	}
	audit.ReceiptObject = uc.archiveReceipt(ctx, &models.SubmissionReceipt{
		SubmissionID: audit.ID,
		StudentID:    studentID,
		StudentName:  studentName,
		Schedule:     schedule,
		Runs:         runs,
		Status:       audit.Status,
		SubmittedAt:  now,
	})

	if err := uc.AuditRepository.Insert(ctx, audit); err != nil {
		uc.Log.Error("scheduleSessionUsecase.SubmitSession error writing audit",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSubmissionIDKey, audit.ID),
			zap.Error(err),
		)
	}

	err = uc.EventPublisher.Publish(ctx, &models.RegistrationEvent{
		Event:        constvars.EventScheduleSubmitted,
		StudentID:    studentID,
		SubmissionID: audit.ID,
		Schedule:     schedule,
		Status:       audit.Status,
		OccurredAt:   now,
	})
	if err != nil {
		uc.Log.Warn("scheduleSessionUsecase.SubmitSession error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	if err := uc.SessionStore.Delete(ctx, sessionID); err != nil {
		uc.Log.Warn("scheduleSessionUsecase.SubmitSession error deleting session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
	}

	utils.LogBusinessEvent(uc.Log, constvars.EventScheduleSubmitted, requestID,
		zap.String(constvars.LoggingStudentIDKey, studentID),
		zap.String(constvars.LoggingSubmissionIDKey, audit.ID),
		zap.String(constvars.LoggingScheduleKey, schedule),
		zap.Int(constvars.LoggingRunsCountKey, len(runs)),
	)

	return &responses.ScheduleSubmission{
		SubmissionID:  audit.ID,
		Status:        audit.Status,
		Schedule:      schedule,
		Runs:          runs,
		ReceiptObject: audit.ReceiptObject,
	}, nil
}

// archiveReceipt returns the stored object name, or "" when archiving failed.
func (uc *scheduleSessionUsecase) archiveReceipt(ctx context.Context, receipt *models.SubmissionReceipt) string {
	content, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		uc.Log.Warn("scheduleSessionUsecase.archiveReceipt error marshaling receipt", zap.Error(err))
		return ""
	}

	objectName := fmt.Sprintf("%s/%s/%s.json", uc.InternalConfig.Submission.ReceiptObjectPrefix, receipt.StudentID, receipt.SubmissionID)
	stored, err := uc.ReceiptStorage.UploadReceipt(ctx, objectName, constvars.MIMEApplicationJSON, content)
	if err != nil {
		uc.Log.Warn("scheduleSessionUsecase.archiveReceipt error uploading receipt",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return ""
	}
	return stored
}

// mutate runs fn on a restored controller under the session lock and saves
// the result. Mutations of one session never interleave; a concurrent request
// gets a busy error instead of waiting.
func (uc *scheduleSessionUsecase) mutate(
	ctx context.Context,
	studentID, sessionID string,
	fn func(session *models.ScheduleSession, controller *weekgrid.DragController) error,
) (*models.ScheduleSession, error) {
	unlock, err := uc.lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	session, err := uc.findOwned(ctx, studentID, sessionID)
	if err != nil {
		return nil, err
	}

	controller := uc.restore(session)
	if err := fn(session, controller); err != nil {
		return nil, err
	}

	now := time.Now()
	session.Bitmap = controller.Bitmap()
	session.Filter = controller.Filter()
	session.Gesture = controller.Gesture()
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(uc.sessionTTL())
	if err := uc.SessionStore.Save(ctx, session, uc.sessionTTL()); err != nil {
		return nil, err
	}
	return session, nil
}

func (uc *scheduleSessionUsecase) lock(ctx context.Context, sessionID string) (func(), error) {
	key := sessionLockKey(sessionID)
	acquired, token, err := uc.LockerService.TryLock(ctx, key, uc.lockTTL())
	if err != nil {
		return nil, exceptions.ErrRedisLock(err)
	}
	if !acquired {
		return nil, exceptions.ErrScheduleSessionBusy(nil, sessionID)
	}
	return func() {
		if err := uc.LockerService.Unlock(ctx, key, token); err != nil {
			uc.Log.Warn("scheduleSessionUsecase.lock error releasing session lock",
				zap.String(constvars.LoggingSessionIDKey, sessionID),
				zap.Error(err),
			)
		}
	}, nil
}

func (uc *scheduleSessionUsecase) findOwned(ctx context.Context, studentID, sessionID string) (*models.ScheduleSession, error) {
	session, err := uc.SessionStore.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.StudentID != studentID {
		return nil, exceptions.ErrScheduleSessionForbidden(nil, sessionID, studentID)
	}
	if session.Bitmap == nil || session.Bitmap.TotalSlots() != uc.Grid.TotalSlots() {
		session.Bitmap = uc.Grid.NewBitmap()
		session.Gesture = nil
	}
	return session, nil
}

func (uc *scheduleSessionUsecase) restore(session *models.ScheduleSession) *weekgrid.DragController {
	controller := weekgrid.RestoreDragController(uc.Grid, session.Bitmap, session.Filter, session.Gesture)
	controller.SetOrigin(session.OriginX, session.OriginY)
	return controller
}
