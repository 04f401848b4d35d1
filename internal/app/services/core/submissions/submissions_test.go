package submissions

import (
	"class-registration-service/internal/app/config"
	"class-registration-service/internal/app/contracts/mocks"
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/pkg/constvars"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisOutbox(t *testing.T) {
	ctx := context.Background()
	item := &models.QueuedSubmission{
		SubmissionID: "sub-1",
		StudentID:    "12",
		Schedule:     "Thứ 2 - 07:00 : 08:00",
		Attempts:     1,
		EnqueuedAt:   time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC),
	}
	encoded, _ := json.Marshal(item)

	t.Run("Enqueue Pushes JSON", func(t *testing.T) {
		repo := new(mocks.RedisRepository)
		repo.On("PushToList", ctx, constvars.RedisKeySubmissionOutbox, []interface{}{string(encoded)}).Return(nil)

		require.NoError(t, NewRedisOutbox(repo).Enqueue(ctx, item))
		repo.AssertExpectations(t)
	})

	t.Run("Dequeue Decodes", func(t *testing.T) {
		repo := new(mocks.RedisRepository)
		repo.On("PopFromList", ctx, constvars.RedisKeySubmissionOutbox).Return(string(encoded), nil)

		got, err := NewRedisOutbox(repo).Dequeue(ctx)
		require.NoError(t, err)
		assert.Equal(t, item.SubmissionID, got.SubmissionID)
		assert.Equal(t, item.Schedule, got.Schedule)
		assert.True(t, item.EnqueuedAt.Equal(got.EnqueuedAt))
	})

	t.Run("Dequeue Empty", func(t *testing.T) {
		repo := new(mocks.RedisRepository)
		repo.On("PopFromList", ctx, constvars.RedisKeySubmissionOutbox).Return("", nil)

		got, err := NewRedisOutbox(repo).Dequeue(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Dequeue Moves Malformed Value To Dead Queue", func(t *testing.T) {
		repo := new(mocks.RedisRepository)
		repo.On("PopFromList", ctx, constvars.RedisKeySubmissionOutbox).Return("{not json", nil).Once()
		repo.On("PopFromList", ctx, constvars.RedisKeySubmissionOutbox).Return(string(encoded), nil).Once()
		repo.On("PushToList", ctx, constvars.RedisKeySubmissionDeadQueue, []interface{}{"{not json"}).Return(nil)

		got, err := NewRedisOutbox(repo).Dequeue(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, item.SubmissionID, got.SubmissionID)
		repo.AssertExpectations(t)
	})

	t.Run("Dequeue Fails When Dead Queue Is Unreachable", func(t *testing.T) {
		repo := new(mocks.RedisRepository)
		repo.On("PopFromList", ctx, constvars.RedisKeySubmissionOutbox).Return("{not json", nil).Once()
		repo.On("PushToList", ctx, constvars.RedisKeySubmissionDeadQueue, mock.Anything).Return(errors.New("redis down"))

		got, err := NewRedisOutbox(repo).Dequeue(ctx)
		assert.Error(t, err)
		assert.Nil(t, got)
		repo.AssertNumberOfCalls(t, "PopFromList", 1)
	})

	t.Run("Dead Letter Uses Dead Queue", func(t *testing.T) {
		repo := new(mocks.RedisRepository)
		repo.On("PushToList", ctx, constvars.RedisKeySubmissionDeadQueue, mock.Anything).Return(nil)

		require.NoError(t, NewRedisOutbox(repo).DeadLetter(ctx, item))
		repo.AssertExpectations(t)
	})
}

type workerFixture struct {
	locker    *mocks.LockerService
	outbox    *mocks.SubmissionOutbox
	students  *mocks.StudentRepository
	audits    *mocks.SubmissionAuditRepository
	publisher *mocks.EventPublisher
	worker    *RetryWorker
}

func newWorkerFixture(maxAttempts int) *workerFixture {
	f := &workerFixture{
		locker:    new(mocks.LockerService),
		outbox:    new(mocks.SubmissionOutbox),
		students:  new(mocks.StudentRepository),
		audits:    new(mocks.SubmissionAuditRepository),
		publisher: new(mocks.EventPublisher),
	}
	cfg := &config.InternalConfig{Submission: config.AppSubmission{RetryMaxAttempts: maxAttempts, RetryBatchSize: 10}}
	f.worker = NewRetryWorker(zap.NewNop(), cfg, f.locker, f.outbox, f.students, f.audits, f.publisher)
	f.locker.On("TryLock", mock.Anything, workerLockKey, time.Minute).Return(true, "token", nil)
	f.locker.On("Unlock", mock.Anything, workerLockKey, "token").Return(nil)
	f.locker.On("Refresh", mock.Anything, workerLockKey, "token", time.Minute).Return(nil)
	return f
}

func TestRetryWorkerRunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("Delivers Queued Submission", func(t *testing.T) {
		f := newWorkerFixture(3)
		item := &models.QueuedSubmission{SubmissionID: "sub-1", StudentID: "12", Schedule: "Thứ 2 - 07:00 : 08:00"}
		f.outbox.On("Length", ctx).Return(int64(1), nil)
		f.outbox.On("Dequeue", ctx).Return(item, nil).Once()
		f.students.On("Update", ctx, "12", ScheduleUpdate(item.Schedule)).Return(nil)
		f.audits.On("UpdateStatus", ctx, "sub-1", constvars.SubmissionStatusSubmitted, 1, "").Return(nil)
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(e *models.RegistrationEvent) bool {
			return e.Event == constvars.EventScheduleSubmitted && e.Status == constvars.SubmissionStatusSubmitted
		})).Return(nil)

		f.worker.RunOnce(ctx)

		f.students.AssertExpectations(t)
		f.audits.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
		f.outbox.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	})

	t.Run("Requeues On Failure", func(t *testing.T) {
		f := newWorkerFixture(3)
		item := &models.QueuedSubmission{SubmissionID: "sub-2", StudentID: "13", Schedule: "x", Attempts: 1}
		f.outbox.On("Length", ctx).Return(int64(1), nil)
		f.outbox.On("Dequeue", ctx).Return(item, nil).Once()
		f.students.On("Update", ctx, "13", mock.Anything).Return(errors.New("record store down"))
		f.outbox.On("Enqueue", ctx, item).Return(nil)
		f.audits.On("UpdateStatus", ctx, "sub-2", constvars.SubmissionStatusQueued, 2, "record store down").Return(nil)

		f.worker.RunOnce(ctx)

		assert.Equal(t, 2, item.Attempts)
		f.outbox.AssertExpectations(t)
		f.audits.AssertExpectations(t)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Dead Letters After Max Attempts", func(t *testing.T) {
		f := newWorkerFixture(3)
		item := &models.QueuedSubmission{SubmissionID: "sub-3", StudentID: "14", Schedule: "x", Attempts: 2}
		f.outbox.On("Length", ctx).Return(int64(1), nil)
		f.outbox.On("Dequeue", ctx).Return(item, nil).Once()
		f.students.On("Update", ctx, "14", mock.Anything).Return(errors.New("still down"))
		f.outbox.On("DeadLetter", ctx, item).Return(nil)
		f.audits.On("UpdateStatus", ctx, "sub-3", constvars.SubmissionStatusFailed, 3, "still down").Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		f.worker.RunOnce(ctx)

		f.outbox.AssertExpectations(t)
		f.outbox.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
		f.audits.AssertExpectations(t)
	})

	t.Run("Processes At Most Outbox Length", func(t *testing.T) {
		f := newWorkerFixture(5)
		item := &models.QueuedSubmission{SubmissionID: "sub-4", StudentID: "15", Schedule: "x"}
		f.outbox.On("Length", ctx).Return(int64(1), nil)
		f.outbox.On("Dequeue", ctx).Return(item, nil)
		f.students.On("Update", ctx, "15", mock.Anything).Return(errors.New("down"))
		f.outbox.On("Enqueue", ctx, item).Return(nil)
		f.audits.On("UpdateStatus", ctx, "sub-4", constvars.SubmissionStatusQueued, 1, "down").Return(nil)

		f.worker.RunOnce(ctx)

		f.outbox.AssertNumberOfCalls(t, "Dequeue", 1)
	})

	t.Run("Releases Lock After Cancellation", func(t *testing.T) {
		f := &workerFixture{locker: new(mocks.LockerService), outbox: new(mocks.SubmissionOutbox)}
		f.worker = NewRetryWorker(zap.NewNop(), &config.InternalConfig{Submission: config.AppSubmission{RetryBatchSize: 10}}, f.locker, f.outbox, nil, nil, nil)
		runCtx, cancel := context.WithCancel(ctx)
		f.locker.On("TryLock", runCtx, workerLockKey, time.Minute).Return(true, "token", nil)
		f.locker.On("Unlock", mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }), workerLockKey, "token").Return(nil)
		f.outbox.On("Length", runCtx).Return(int64(3), nil).Run(func(mock.Arguments) { cancel() })

		f.worker.RunOnce(runCtx)

		f.locker.AssertExpectations(t)
		f.outbox.AssertNotCalled(t, "Dequeue", mock.Anything)
	})

	t.Run("Ends Pass When Worker Lock Is Lost", func(t *testing.T) {
		f := &workerFixture{
			locker:   new(mocks.LockerService),
			outbox:   new(mocks.SubmissionOutbox),
			students: new(mocks.StudentRepository),
			audits:   new(mocks.SubmissionAuditRepository),
		}
		cfg := &config.InternalConfig{Submission: config.AppSubmission{RetryMaxAttempts: 5, RetryBatchSize: 10}}
		f.worker = NewRetryWorker(zap.NewNop(), cfg, f.locker, f.outbox, f.students, f.audits, nil)
		item := &models.QueuedSubmission{SubmissionID: "sub-5", StudentID: "16", Schedule: "x"}
		f.locker.On("TryLock", ctx, workerLockKey, time.Minute).Return(true, "token", nil)
		f.locker.On("Unlock", mock.Anything, workerLockKey, "token").Return(nil)
		f.locker.On("Refresh", ctx, workerLockKey, "token", time.Minute).Return(errors.New("lock expired"))
		f.outbox.On("Length", ctx).Return(int64(2), nil)
		f.outbox.On("Dequeue", ctx).Return(item, nil)
		f.students.On("Update", ctx, "16", mock.Anything).Return(errors.New("down"))
		f.outbox.On("Enqueue", ctx, item).Return(nil)
		f.audits.On("UpdateStatus", ctx, "sub-5", constvars.SubmissionStatusQueued, 1, "down").Return(nil)

		f.worker.RunOnce(ctx)

		f.outbox.AssertNumberOfCalls(t, "Dequeue", 1)
	})

	t.Run("Skips When Lock Is Held", func(t *testing.T) {
		f := &workerFixture{locker: new(mocks.LockerService), outbox: new(mocks.SubmissionOutbox)}
		f.worker = NewRetryWorker(zap.NewNop(), &config.InternalConfig{}, f.locker, f.outbox, nil, nil, nil)
		f.locker.On("TryLock", ctx, workerLockKey, time.Minute).Return(false, "", nil)

		f.worker.RunOnce(ctx)

		f.outbox.AssertNotCalled(t, "Length", mock.Anything)
	})
}
