package schedules

import (
	"class-registration-service/internal/app/config"
	"class-registration-service/internal/app/contracts/mocks"
	"class-registration-service/internal/app/models"
	"class-registration-service/internal/pkg/constvars"
	"class-registration-service/internal/pkg/dto/requests"
	"class-registration-service/internal/pkg/exceptions"
	"class-registration-service/internal/pkg/weekgrid"
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

const sessionTTL = 30 * time.Minute

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

type usecaseFixture struct {
	grid      *weekgrid.Grid
	students  *mocks.StudentRepository
	store     *mocks.ScheduleSessionStore
	locker    *mocks.LockerService
	audits    *mocks.SubmissionAuditRepository
	outbox    *mocks.SubmissionOutbox
	storage   *mocks.ReceiptStorage
	publisher *mocks.EventPublisher
	usecase   *scheduleSessionUsecase
}

func newUsecaseFixture() *usecaseFixture {
	f := &usecaseFixture{
		grid:      weekgrid.MustNewGrid(weekgrid.DefaultConfig()),
		students:  new(mocks.StudentRepository),
		store:     new(mocks.ScheduleSessionStore),
		locker:    new(mocks.LockerService),
		audits:    new(mocks.SubmissionAuditRepository),
		outbox:    new(mocks.SubmissionOutbox),
		storage:   new(mocks.ReceiptStorage),
		publisher: new(mocks.EventPublisher),
	}
	f.usecase = &scheduleSessionUsecase{
		Grid:              f.grid,
		StudentRepository: f.students,
		SessionStore:      f.store,
		LockerService:     f.locker,
		AuditRepository:   f.audits,
		Outbox:            f.outbox,
		ReceiptStorage:    f.storage,
		EventPublisher:    f.publisher,
		InternalConfig: &config.InternalConfig{
			Registration: config.AppRegistration{
				SessionTTLInMinutes:      30,
				SessionLockTTLInSeconds:  5,
				MaxPointerEventsPerBatch: 4,
			},
			Submission: config.AppSubmission{ReceiptObjectPrefix: "receipts"},
		},
		Log: zap.NewNop(),
	}
	return f
}

func (f *usecaseFixture) expectLock(sessionID string) {
	f.locker.On("TryLock", mock.Anything, sessionLockKey(sessionID), 5*time.Second).Return(true, "token", nil)
	f.locker.On("Unlock", mock.Anything, sessionLockKey(sessionID), "token").Return(nil)
}

func (f *usecaseFixture) session(id, studentID string) *models.ScheduleSession {
	return &models.ScheduleSession{ID: id, StudentID: studentID, Filter: weekgrid.FilterAll, Bitmap: f.grid.NewBitmap()}
}

func TestRedisSessionStore(t *testing.T) {
	ctx := context.Background()
	grid := weekgrid.MustNewGrid(weekgrid.DefaultConfig())

	t.Run("Save Uses Session Key And TTL", func(t *testing.T) {
		repo := new(mocks.RedisRepository)
		session := &models.ScheduleSession{ID: "s1", Bitmap: grid.NewBitmap()}
		repo.On("Set", ctx, "schedule_session:s1", session, sessionTTL).Return(nil)

		require.NoError(t, NewRedisSessionStore(repo).Save(ctx, session, sessionTTL))
		repo.AssertExpectations(t)
	})

	t.Run("Find Decodes Stored Session", func(t *testing.T) {
		bitmap := grid.NewBitmap()
		bitmap.SetRange(weekgrid.Tuesday, 2, 4, true)
		stored, err := json.Marshal(&models.ScheduleSession{ID: "s1", StudentID: "12", Filter: weekgrid.FilterEvening, Bitmap: bitmap})
		require.NoError(t, err)
		repo := new(mocks.RedisRepository)
		repo.On("Get", ctx, "schedule_session:s1").Return(string(stored), nil)

		session, err := NewRedisSessionStore(repo).Find(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "12", session.StudentID)
		assert.Equal(t, weekgrid.FilterEvening, session.Filter)
		assert.True(t, bitmap.Equal(session.Bitmap))
	})

	t.Run("Find Missing Session", func(t *testing.T) {
		repo := new(mocks.RedisRepository)
		repo.On("Get", ctx, "schedule_session:gone").Return("", nil)

		_, err := NewRedisSessionStore(repo).Find(ctx, "gone")
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
	})
}

func TestBuildSessionView(t *testing.T) {
	grid := weekgrid.MustNewGrid(weekgrid.DefaultConfig())
	bitmap := grid.NewBitmap()
	// 11:00-13:00 on Monday straddles the morning/afternoon boundary.
	bitmap.SetRange(weekgrid.Monday, 8, 11, true)

	t.Run("Afternoon Filter Cuts Display Runs Only", func(t *testing.T) {
		view := BuildSessionView(grid, &models.ScheduleSession{ID: "s1", Filter: weekgrid.FilterAfternoon, Bitmap: bitmap})

		assert.Equal(t, "afternoon", view.Filter)
		assert.Equal(t, string(weekgrid.StateIdle), view.State)
		assert.Equal(t, 4, view.SelectedSlots)
		require.Len(t, view.Runs, 1)
		assert.Equal(t, "Thứ 2 - 11:00 : 13:00", view.Summary)

		require.Len(t, view.Days, weekgrid.DaysPerWeek)
		monday := view.Days[0]
		require.Len(t, monday.Blocks, 1)
		assert.Equal(t, 10, monday.Blocks[0].Start)
		assert.Equal(t, 11, monday.Blocks[0].End)
		assert.Equal(t, float64(0), monday.Blocks[0].Top)
		assert.Equal(t, 48.0, monday.Blocks[0].Height)
		assert.Empty(t, view.Days[1].Blocks)
	})

	t.Run("Layout Labels Cover The Window", func(t *testing.T) {
		view := BuildSessionView(grid, &models.ScheduleSession{Filter: weekgrid.FilterMorning, Bitmap: bitmap})

		assert.Equal(t, 30, view.Layout.TotalSlots)
		assert.Equal(t, 0, view.Layout.FilterStartSlot)
		assert.Equal(t, 9, view.Layout.FilterEndSlot)
		require.Len(t, view.Layout.SlotLabels, 10)
		assert.Equal(t, "07:00", view.Layout.SlotLabels[0].Time)
		assert.True(t, view.Layout.SlotLabels[0].IsHour)
		assert.False(t, view.Layout.SlotLabels[1].IsHour)
	})

	t.Run("Gesture Shows Preview", func(t *testing.T) {
		session := &models.ScheduleSession{
			Filter: weekgrid.FilterAll,
			Bitmap: grid.NewBitmap(),
			Gesture: &weekgrid.Gesture{
				Start:   weekgrid.Cell{Weekday: weekgrid.Wednesday, Slot: 5},
				Current: weekgrid.Cell{Weekday: weekgrid.Monday, Slot: 2},
				Mode:    weekgrid.ModeSelect,
			},
		}
		view := BuildSessionView(grid, session)

		assert.Equal(t, string(weekgrid.StateDragging), view.State)
		require.NotNil(t, view.Preview)
		assert.Equal(t, weekgrid.Monday, view.Preview.FromWeekday)
		assert.Equal(t, weekgrid.Wednesday, view.Preview.ToWeekday)
		assert.Equal(t, 2, view.Preview.FromSlot)
		assert.Equal(t, 5, view.Preview.ToSlot)
		assert.Equal(t, string(weekgrid.ModeSelect), view.PreviewMode)
	})
}

func TestCreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Seeds Bitmap From Saved Schedule", func(t *testing.T) {
		f := newUsecaseFixture()
		f.students.On("FindByID", ctx, "12").Return(&models.Student{ID: "12", CustomSchedule: "Thứ 3 - 18:00 : 19:30 / Thứ 9 - 07:00 : 08:00"}, nil)
		f.store.On("Save", ctx, mock.MatchedBy(func(s *models.ScheduleSession) bool {
			return s.StudentID == "12" && s.ID != "" && s.Filter == weekgrid.FilterAll
		}), sessionTTL).Return(nil)

		view, err := f.usecase.CreateSession(ctx, "12")
		require.NoError(t, err)
		assert.Equal(t, 3, view.SelectedSlots)
		assert.Equal(t, "Thứ 3 - 18:00 : 19:30", view.Summary)
		f.store.AssertExpectations(t)
	})

	t.Run("Moves Class Step To Custom Schedule", func(t *testing.T) {
		f := newUsecaseFixture()
		f.students.On("FindByID", ctx, "12").Return(&models.Student{ID: "12", Step: constvars.RegistrationStepClass}, nil)
		f.store.On("Save", ctx, mock.Anything, sessionTTL).Return(nil)
		f.students.On("Update", ctx, "12", mock.MatchedBy(func(u *models.StudentUpdate) bool {
			return u.Step != nil && *u.Step == constvars.RegistrationStepCustomSchedule && u.CustomSchedule == nil
		})).Return(nil)

		view, err := f.usecase.CreateSession(ctx, "12")
		require.NoError(t, err)
		assert.Equal(t, 0, view.SelectedSlots)
		f.students.AssertExpectations(t)
	})

	t.Run("Unknown Student", func(t *testing.T) {
		f := newUsecaseFixture()
		f.students.On("FindByID", ctx, "404").Return(nil, exceptions.ErrStudentNotFound(nil, "404"))

		_, err := f.usecase.CreateSession(ctx, "404")
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
		f.store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestApplyPointerEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("Drag By Cell Selects Rectangle", func(t *testing.T) {
		f := newUsecaseFixture()
		f.expectLock("s1")
		f.store.On("Find", ctx, "s1").Return(f.session("s1", "12"), nil)
		f.store.On("Save", ctx, mock.Anything, sessionTTL).Return(nil)

		view, err := f.usecase.ApplyPointerEvents(ctx, "12", "s1", &requests.ApplyPointerEvents{
			Events: []requests.PointerEvent{
				{Phase: "down", Weekday: intPtr(0), Slot: intPtr(0)},
				{Phase: "move", Weekday: intPtr(1), Slot: intPtr(3)},
				{Phase: "up"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 8, view.SelectedSlots)
		assert.Equal(t, "Thứ 2 - 07:00 : 09:00 / Thứ 3 - 07:00 : 09:00", view.Summary)
		assert.Equal(t, string(weekgrid.StateIdle), view.State)
		f.locker.AssertExpectations(t)
	})

	t.Run("Open Gesture Is Kept Between Batches", func(t *testing.T) {
		f := newUsecaseFixture()
		f.expectLock("s1")
		f.store.On("Find", ctx, "s1").Return(f.session("s1", "12"), nil)
		var saved *models.ScheduleSession
		f.store.On("Save", ctx, mock.Anything, sessionTTL).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*models.ScheduleSession)
		}).Return(nil)

		view, err := f.usecase.ApplyPointerEvents(ctx, "12", "s1", &requests.ApplyPointerEvents{
			ContainerLeft: 100,
			ContainerTop:  50,
			Events: []requests.PointerEvent{
				{Phase: "down", X: floatPtr(100 + 96 + 10), Y: floatPtr(50 + 24*2 + 5)},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, view.SelectedSlots)
		assert.Equal(t, string(weekgrid.StateDragging), view.State)
		require.NotNil(t, saved.Gesture)
		assert.Equal(t, weekgrid.Cell{Weekday: weekgrid.Tuesday, Slot: 2}, saved.Gesture.Start)
		assert.Equal(t, 100.0, saved.OriginX)
	})

	t.Run("Rejects Batch With Bad Event Before Applying", func(t *testing.T) {
		f := newUsecaseFixture()

		_, err := f.usecase.ApplyPointerEvents(ctx, "12", "s1", &requests.ApplyPointerEvents{
			Events: []requests.PointerEvent{
				{Phase: "down", Weekday: intPtr(0), Slot: intPtr(0)},
				{Phase: "move"},
			},
		})
		assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))
		f.locker.AssertNotCalled(t, "TryLock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Rejects Oversized Batch", func(t *testing.T) {
		f := newUsecaseFixture()
		events := make([]requests.PointerEvent, 5)
		for i := range events {
			events[i] = requests.PointerEvent{Phase: "up"}
		}

		_, err := f.usecase.ApplyPointerEvents(ctx, "12", "s1", &requests.ApplyPointerEvents{Events: events})
		assert.Equal(t, constvars.StatusRequestEntityTooLarge, exceptions.StatusCodeOf(err))
	})

	t.Run("Busy Session", func(t *testing.T) {
		f := newUsecaseFixture()
		f.locker.On("TryLock", ctx, sessionLockKey("s1"), 5*time.Second).Return(false, "", nil)

		_, err := f.usecase.ApplyPointerEvents(ctx, "12", "s1", &requests.ApplyPointerEvents{
			Events: []requests.PointerEvent{{Phase: "up"}},
		})
		assert.Equal(t, constvars.StatusConflict, exceptions.StatusCodeOf(err))
		f.store.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	})

	t.Run("Session Of Another Student", func(t *testing.T) {
		f := newUsecaseFixture()
		f.expectLock("s1")
		f.store.On("Find", ctx, "s1").Return(f.session("s1", "99"), nil)

		_, err := f.usecase.ApplyPointerEvents(ctx, "12", "s1", &requests.ApplyPointerEvents{
			Events: []requests.PointerEvent{{Phase: "up"}},
		})
		assert.Equal(t, constvars.StatusForbidden, exceptions.StatusCodeOf(err))
		f.store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		f.locker.AssertCalled(t, "Unlock", mock.Anything, sessionLockKey("s1"), "token")
	})
}

func TestChangeFilterAndDeleteRun(t *testing.T) {
	ctx := context.Background()

	t.Run("Filter Change Keeps Selection", func(t *testing.T) {
		f := newUsecaseFixture()
		session := f.session("s1", "12")
		session.Bitmap.SetRange(weekgrid.Friday, 0, 1, true)
		f.expectLock("s1")
		f.store.On("Find", ctx, "s1").Return(session, nil)
		f.store.On("Save", ctx, mock.Anything, sessionTTL).Return(nil)

		view, err := f.usecase.ChangeFilter(ctx, "12", "s1", &requests.ChangeFilter{Filter: "Evening"})
		require.NoError(t, err)
		assert.Equal(t, "evening", view.Filter)
		assert.Equal(t, 2, view.SelectedSlots)
		assert.Empty(t, view.Days[weekgrid.Friday].Blocks)
	})

	t.Run("Unknown Filter", func(t *testing.T) {
		f := newUsecaseFixture()

		_, err := f.usecase.ChangeFilter(ctx, "12", "s1", &requests.ChangeFilter{Filter: "night"})
		assert.Error(t, err)
		f.locker.AssertNotCalled(t, "TryLock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Delete Exact Run", func(t *testing.T) {
		f := newUsecaseFixture()
		session := f.session("s1", "12")
		session.Bitmap.SetRange(weekgrid.Sunday, 4, 6, true)
		session.Bitmap.SetRange(weekgrid.Sunday, 10, 10, true)
		f.expectLock("s1")
		f.store.On("Find", ctx, "s1").Return(session, nil)
		f.store.On("Save", ctx, mock.Anything, sessionTTL).Return(nil)

		view, err := f.usecase.DeleteRun(ctx, "12", "s1", &requests.DeleteRun{Weekday: intPtr(6), Start: intPtr(4), End: intPtr(6)})
		require.NoError(t, err)
		assert.Equal(t, 1, view.SelectedSlots)
		assert.Equal(t, "Chủ nhật - 12:00 : 12:30", view.Summary)
	})

	t.Run("Delete Partial Run Is Not Found", func(t *testing.T) {
		f := newUsecaseFixture()
		session := f.session("s1", "12")
		session.Bitmap.SetRange(weekgrid.Sunday, 4, 6, true)
		f.expectLock("s1")
		f.store.On("Find", ctx, "s1").Return(session, nil)

		_, err := f.usecase.DeleteRun(ctx, "12", "s1", &requests.DeleteRun{Weekday: intPtr(6), Start: intPtr(4), End: intPtr(5)})
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
		f.store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Reset Clears Everything", func(t *testing.T) {
		f := newUsecaseFixture()
		session := f.session("s1", "12")
		session.Bitmap.SetRange(weekgrid.Monday, 0, 29, true)
		f.expectLock("s1")
		f.store.On("Find", ctx, "s1").Return(session, nil)
		f.store.On("Save", ctx, mock.Anything, sessionTTL).Return(nil)

		view, err := f.usecase.ResetSession(ctx, "12", "s1")
		require.NoError(t, err)
		assert.Equal(t, 0, view.SelectedSlots)
		assert.Empty(t, view.Runs)
	})
}

func TestSubmitSession(t *testing.T) {
	ctx := context.Background()
	schedule := "Thứ 2 - 07:00 : 08:00"

	prepare := func(f *usecaseFixture) {
		session := f.session("s1", "12")
		session.Bitmap.SetRange(weekgrid.Monday, 0, 1, true)
		f.expectLock("s1")
		f.store.On("Find", ctx, "s1").Return(session, nil)
		f.students.On("FindByID", ctx, "12").Return(&models.Student{ID: "12", FullName: "Nguyen Van A"}, nil)
		f.storage.On("UploadReceipt", ctx, mock.MatchedBy(func(name string) bool {
			return len(name) > len("receipts/12/") && name[:len("receipts/12/")] == "receipts/12/"
		}), constvars.MIMEApplicationJSON, mock.Anything).Return("receipts/12/x.json", nil)
		f.store.On("Delete", ctx, "s1").Return(nil)
	}

	t.Run("Stores Schedule And Completes Registration", func(t *testing.T) {
		f := newUsecaseFixture()
		prepare(f)
		f.students.On("Update", ctx, "12", mock.MatchedBy(func(u *models.StudentUpdate) bool {
			return u.CustomSchedule != nil && *u.CustomSchedule == schedule &&
				u.Step != nil && *u.Step == constvars.RegistrationStepCompleted
		})).Return(nil)
		f.audits.On("Insert", ctx, mock.MatchedBy(func(a *models.SubmissionAudit) bool {
			return a.Status == constvars.SubmissionStatusSubmitted && a.Schedule == schedule && a.SessionID == "s1"
		})).Return(nil)
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(e *models.RegistrationEvent) bool {
			return e.Event == constvars.EventScheduleSubmitted && e.Schedule == schedule
		})).Return(nil)

		result, err := f.usecase.SubmitSession(ctx, "12", "s1")
		require.NoError(t, err)
		assert.Equal(t, constvars.SubmissionStatusSubmitted, result.Status)
		assert.Equal(t, schedule, result.Schedule)
		assert.Equal(t, "receipts/12/x.json", result.ReceiptObject)
		f.students.AssertExpectations(t)
		f.audits.AssertExpectations(t)
		f.store.AssertCalled(t, "Delete", ctx, "s1")
		f.outbox.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	})

	t.Run("Queues When Record Store Is Down", func(t *testing.T) {
		f := newUsecaseFixture()
		prepare(f)
		f.students.On("Update", ctx, "12", mock.Anything).Return(exceptions.ErrRecordStoreUnavailable(errors.New("timeout"), 3))
		f.outbox.On("Enqueue", ctx, mock.MatchedBy(func(q *models.QueuedSubmission) bool {
			return q.StudentID == "12" && q.Schedule == schedule && q.Attempts == 1
		})).Return(nil)
		f.audits.On("Insert", ctx, mock.MatchedBy(func(a *models.SubmissionAudit) bool {
			return a.Status == constvars.SubmissionStatusQueued && a.LastError != ""
		})).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		result, err := f.usecase.SubmitSession(ctx, "12", "s1")
		require.NoError(t, err)
		assert.Equal(t, constvars.SubmissionStatusQueued, result.Status)
		f.outbox.AssertExpectations(t)
	})

	t.Run("Client Error Is Returned As Is", func(t *testing.T) {
		f := newUsecaseFixture()
		prepare(f)
		f.students.On("Update", ctx, "12", mock.Anything).Return(exceptions.ErrStudentNotFound(nil, "12"))

		_, err := f.usecase.SubmitSession(ctx, "12", "s1")
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
		f.outbox.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
		f.store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Empty Selection", func(t *testing.T) {
		f := newUsecaseFixture()
		f.expectLock("s1")
		f.store.On("Find", ctx, "s1").Return(f.session("s1", "12"), nil)

		_, err := f.usecase.SubmitSession(ctx, "12", "s1")
		assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))
		f.students.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("In Flight Gesture Is Committed", func(t *testing.T) {
		f := newUsecaseFixture()
		session := f.session("s1", "12")
		session.Gesture = &weekgrid.Gesture{
			Start:   weekgrid.Cell{Weekday: weekgrid.Monday, Slot: 0},
			Current: weekgrid.Cell{Weekday: weekgrid.Monday, Slot: 1},
			Mode:    weekgrid.ModeSelect,
		}
		f.expectLock("s1")
		f.store.On("Find", ctx, "s1").Return(session, nil)
		f.students.On("Update", ctx, "12", mock.Anything).Return(nil)
		f.students.On("FindByID", ctx, "12").Return(nil, errors.New("lookup failed"))
		f.storage.On("UploadReceipt", ctx, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("minio down"))
		f.audits.On("Insert", ctx, mock.Anything).Return(errors.New("mongo down"))
		f.publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down"))
		f.store.On("Delete", ctx, "s1").Return(nil)

		result, err := f.usecase.SubmitSession(ctx, "12", "s1")
		require.NoError(t, err)
		assert.Equal(t, schedule, result.Schedule)
		assert.Empty(t, result.ReceiptObject)
	})
}
