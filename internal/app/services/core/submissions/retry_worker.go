package submissions

import (
	"class-registration-service/internal/app/config"
	"class-registration-service/internal/app/contracts"
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/pkg/constvars"
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// workerLockKey keeps a single instance draining the outbox.
const workerLockKey = "submission_outbox:worker"

// ScheduleUpdate is the student patch that stores a submitted schedule and
// closes the registration.
func ScheduleUpdate(schedule string) *models.StudentUpdate {
	step := constvars.RegistrationStepCompleted
	return &models.StudentUpdate{
		CustomSchedule: &schedule,
		Step:           &step,
	}
}

// RetryWorker re-sends queued submissions to the record store on a cron
// schedule. An item that keeps failing is moved to the dead queue after
// RetryMaxAttempts.
type RetryWorker struct {
	log       *zap.Logger
	cfg       *config.InternalConfig
	locker    contracts.LockerService
	outbox    contracts.SubmissionOutbox
	students  contracts.StudentRepository
	audits    contracts.SubmissionAuditRepository
	publisher contracts.EventPublisher
	cron      *cron.Cron
	runCtx    context.Context
	cancel    context.CancelFunc
}

func NewRetryWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	locker contracts.LockerService,
	outbox contracts.SubmissionOutbox,
	students contracts.StudentRepository,
	audits contracts.SubmissionAuditRepository,
	publisher contracts.EventPublisher,
) *RetryWorker {
	return &RetryWorker{
		log:       log,
		cfg:       cfg,
		locker:    locker,
		outbox:    outbox,
		students:  students,
		audits:    audits,
		publisher: publisher,
	}
}

func (w *RetryWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Submission.RetryCronSpec
	_, err := c.AddFunc(spec, func() { w.RunOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("submissions.worker: invalid cron spec, falling back to @every 1m",
			zap.String("spec", spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc("@every 1m", func() { w.RunOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop waits for a running pass to finish.
func (w *RetryWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

// RunOnce drains at most one batch. Items are only taken up to the outbox
// length seen at the start so a re-queued item is not retried twice per pass.
func (w *RetryWorker) RunOnce(ctx context.Context) {
	ttl := time.Minute
	acquired, token, err := w.locker.TryLock(ctx, workerLockKey, ttl)
	if err != nil {
		w.log.Warn("submissions.worker: lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("submissions.worker: lock held by another instance")
		return
	}
	defer func() {
		// Stop cancels ctx, the lock must still be released.
		if err := w.locker.Unlock(context.WithoutCancel(ctx), workerLockKey, token); err != nil {
			w.log.Warn("submissions.worker: unlock failed", zap.Error(err))
		}
	}()

	length, err := w.outbox.Length(ctx)
	if err != nil {
		w.log.Warn("submissions.worker: outbox length failed", zap.Error(err))
		return
	}
	batch := min(int(length), max(w.cfg.Submission.RetryBatchSize, 1))
	w.log.Info("submissions.worker: pass started",
		zap.Int64(constvars.LoggingQueueLengthKey, length),
		zap.Int("batch", batch),
	)

	for i := 0; i < batch; i++ {
		if ctx.Err() != nil {
			return
		}
		item, err := w.outbox.Dequeue(ctx)
		if err != nil {
			w.log.Warn("submissions.worker: dequeue failed", zap.Error(err))
			return
		}
		if item == nil {
			return
		}
		w.process(ctx, item)

		if err := w.locker.Refresh(ctx, workerLockKey, token, ttl); err != nil {
			w.log.Warn("submissions.worker: lost worker lock, ending pass", zap.Error(err))
			return
		}
	}
}

func (w *RetryWorker) process(ctx context.Context, item *models.QueuedSubmission) {
	item.Attempts++
	fields := []zap.Field{
		zap.String(constvars.LoggingSubmissionIDKey, item.SubmissionID),
		zap.String(constvars.LoggingStudentIDKey, item.StudentID),
		zap.Int(constvars.LoggingAttemptKey, item.Attempts),
	}

	err := w.students.Update(ctx, item.StudentID, ScheduleUpdate(item.Schedule))
	if err == nil {
		w.log.Info("submissions.worker: submission delivered", fields...)
		w.updateAudit(ctx, item, constvars.SubmissionStatusSubmitted, "")
		w.publish(ctx, item, constvars.SubmissionStatusSubmitted)
		return
	}

	if item.Attempts >= max(w.cfg.Submission.RetryMaxAttempts, 1) {
		w.log.Error("submissions.worker: giving up on submission", append(fields, zap.Error(err))...)
		if dlqErr := w.outbox.DeadLetter(ctx, item); dlqErr != nil {
			w.log.Error("submissions.worker: dead letter failed", append(fields, zap.Error(dlqErr))...)
		}
		w.updateAudit(ctx, item, constvars.SubmissionStatusFailed, err.Error())
		w.publish(ctx, item, constvars.SubmissionStatusFailed)
		return
	}

	w.log.Warn("submissions.worker: submission still failing, re-queued", append(fields, zap.Error(err))...)
	if enqueueErr := w.outbox.Enqueue(ctx, item); enqueueErr != nil {
		w.log.Error("submissions.worker: re-queue failed", append(fields, zap.Error(enqueueErr))...)
	}
	w.updateAudit(ctx, item, constvars.SubmissionStatusQueued, err.Error())
}

func (w *RetryWorker) updateAudit(ctx context.Context, item *models.QueuedSubmission, status, lastError string) {
	err := w.audits.UpdateStatus(ctx, item.SubmissionID, status, item.Attempts, lastError)
	if err != nil {
		w.log.Warn("submissions.worker: audit update failed",
			zap.String(constvars.LoggingSubmissionIDKey, item.SubmissionID),
			zap.Error(err),
		)
	}
}

func (w *RetryWorker) publish(ctx context.Context, item *models.QueuedSubmission, status string) {
	err := w.publisher.Publish(ctx, &models.RegistrationEvent{
		Event:        constvars.EventScheduleSubmitted,
		StudentID:    item.StudentID,
		SubmissionID: item.SubmissionID,
		Schedule:     item.Schedule,
		Status:       status,
		OccurredAt:   time.Now(),
	})
	if err != nil {
		w.log.Warn("submissions.worker: publish failed",
			zap.String(constvars.LoggingSubmissionIDKey, item.SubmissionID),
			zap.Error(err),
		)
	}
}
