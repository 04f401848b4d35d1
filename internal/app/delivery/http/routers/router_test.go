package routers

import (
	"bytes"
	"class-registration-service/internal/app/config"
	"class-registration-service/internal/app/contracts/mocks"
	"class-registration-service/internal/app/delivery/http/controllers"
	"class-registration-service/internal/app/delivery/http/middlewares"
	"class-registration-service/internal/pkg/constvars"
	"class-registration-service/internal/pkg/dto/requests"
	"class-registration-service/internal/pkg/dto/responses"
	"class-registration-service/internal/pkg/exceptions"
	"class-registration-service/internal/pkg/utils"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-registration-secret"

type testServer struct {
	router       *chi.Mux
	registration *mocks.RegistrationUsecase
	schedule     *mocks.ScheduleSessionUsecase
	token        string
}

func newTestServer(t *testing.T) *testServer {
	logger := zap.NewNop()
	accessLogger := logrus.New()
	accessLogger.SetOutput(io.Discard)

	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:             "api",
			Version:                    "v1",
			FrontendDomain:             "*",
			Timezone:                   "UTC",
			MaxRequests:                1000,
			MaxTimeRequestsPerSeconds:  1,
			RequestBodyLimitInMegabyte: 1,
		},
		JWT: config.AppJWT{Secret: testSecret, ExpTimeInHour: 1},
	}

	token, err := utils.GenerateRegistrationJWT("12", testSecret, 1)
	require.NoError(t, err)

	s := &testServer{
		router:       chi.NewRouter(),
		registration: new(mocks.RegistrationUsecase),
		schedule:     new(mocks.ScheduleSessionUsecase),
		token:        token,
	}
	SetupRoutes(
		s.router,
		internalConfig,
		accessLogger,
		middlewares.NewMiddlewares(logger, internalConfig),
		controllers.NewRegistrationController(logger, s.registration),
		controllers.NewScheduleController(logger, s.schedule),
	)
	return s
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	if s.token != "" {
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+s.token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func TestRegistrationToken(t *testing.T) {
	t.Run("Missing Token", func(t *testing.T) {
		s := newTestServer(t)
		s.token = ""

		rr := s.do(http.MethodGet, "/api/v1/registrations/me", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		s.registration.AssertNotCalled(t, "GetRegistration", mock.Anything, mock.Anything)
	})

	t.Run("Token Signed With Another Secret", func(t *testing.T) {
		s := newTestServer(t)
		forged, err := utils.GenerateRegistrationJWT("12", "other-secret", 1)
		require.NoError(t, err)
		s.token = forged

		rr := s.do(http.MethodGet, "/api/v1/registrations/me", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Token From Query Parameter", func(t *testing.T) {
		s := newTestServer(t)
		s.registration.On("GetRegistration", mock.Anything, "12").Return(&responses.Registration{Step: constvars.RegistrationStepDetails}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/registrations/me?token="+s.token, nil)
		req.Header.Set(constvars.HeaderXRequestID, "req-1")
		rr := httptest.NewRecorder()
		s.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "req-1", rr.Header().Get(constvars.HeaderXRequestID))
		s.registration.AssertExpectations(t)
	})
}

func TestRegistrationRoutes(t *testing.T) {
	t.Run("Get Registration", func(t *testing.T) {
		s := newTestServer(t)
		s.registration.On("GetRegistration", mock.Anything, "12").Return(&responses.Registration{Step: constvars.RegistrationStepClass}, nil)

		rr := s.do(http.MethodGet, "/api/v1/registrations/me", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))

		var body struct {
			Success bool                   `json:"success"`
			Data    responses.Registration `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, constvars.RegistrationStepClass, body.Data.Step)
	})

	t.Run("Update Details Validation", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(http.MethodPut, "/api/v1/registrations/me/details", requests.UpdateRegistrationDetails{
			FullName:    "Nguyen Van A",
			Email:       "not-an-email",
			PhoneNumber: "0901234567",
			BirthDate:   "2004-05-06",
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		s.registration.AssertNotCalled(t, "UpdateDetails", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Update Details Normalizes Email", func(t *testing.T) {
		s := newTestServer(t)
		s.registration.On("UpdateDetails", mock.Anything, "12", mock.MatchedBy(func(r *requests.UpdateRegistrationDetails) bool {
			return r.Email == "a@example.com" && r.FullName == "Nguyen Van A"
		})).Return(&responses.Registration{}, nil)

		rr := s.do(http.MethodPut, "/api/v1/registrations/me/details", requests.UpdateRegistrationDetails{
			FullName:    "  Nguyen Van A ",
			Email:       " A@Example.com",
			PhoneNumber: "+84901234567",
			BirthDate:   "2004-05-06",
		})
		assert.Equal(t, http.StatusOK, rr.Code)
		s.registration.AssertExpectations(t)
	})

	t.Run("Select Class Conflict", func(t *testing.T) {
		s := newTestServer(t)
		s.registration.On("SelectClass", mock.Anything, "12", "7").Return(nil, exceptions.ErrClassFull(nil, "7", 10, 10))

		rr := s.do(http.MethodPost, "/api/v1/registrations/me/classes/7", nil)
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), constvars.ErrClientClassFull)
	})

	t.Run("Export Writes Attachment", func(t *testing.T) {
		s := newTestServer(t)
		s.registration.On("ExportSchedule", mock.Anything, "12", &requests.ExportSchedule{Format: "ics"}).Return(&responses.ScheduleExport{
			FileName:    "schedule_12.ics",
			ContentType: constvars.MIMETextCalendarCharsetUTF8,
			Content:     []byte("BEGIN:VCALENDAR"),
		}, nil)

		rr := s.do(http.MethodGet, "/api/v1/registrations/me/schedule/export?format=ICS", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, `attachment; filename="schedule_12.ics"`, rr.Header().Get(constvars.HeaderContentDisposition))
		assert.Equal(t, "BEGIN:VCALENDAR", rr.Body.String())
	})

	t.Run("Export Rejects Unknown Format", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(http.MethodGet, "/api/v1/registrations/me/schedule/export?format=pdf", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestScheduleSessionRoutes(t *testing.T) {
	t.Run("Create Session", func(t *testing.T) {
		s := newTestServer(t)
		s.schedule.On("CreateSession", mock.Anything, "12").Return(&responses.ScheduleSession{ID: "s1"}, nil)

		rr := s.do(http.MethodPost, "/api/v1/registrations/me/schedule/sessions", nil)
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Pointer Batch", func(t *testing.T) {
		s := newTestServer(t)
		s.schedule.On("ApplyPointerEvents", mock.Anything, "12", "s1", mock.MatchedBy(func(r *requests.ApplyPointerEvents) bool {
			return len(r.Events) == 2 && r.Events[0].Phase == "down" && *r.Events[0].Slot == 3
		})).Return(&responses.ScheduleSession{ID: "s1"}, nil)

		rr := s.do(http.MethodPost, "/api/v1/schedule-sessions/s1/pointer", map[string]interface{}{
			"events": []map[string]interface{}{
				{"phase": "DOWN", "weekday": 0, "slot": 3},
				{"phase": "up"},
			},
		})
		assert.Equal(t, http.StatusOK, rr.Code)
		s.schedule.AssertExpectations(t)
	})

	t.Run("Pointer Batch Rejects Unknown Fields", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(http.MethodPost, "/api/v1/schedule-sessions/s1/pointer", map[string]interface{}{
			"events":  []map[string]interface{}{{"phase": "up"}},
			"unknown": true,
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Delete Run Needs All Fields", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(http.MethodDelete, "/api/v1/schedule-sessions/s1/runs", map[string]interface{}{"weekday": 0, "start": 2})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		s.schedule.AssertNotCalled(t, "DeleteRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Submit Queued Is Accepted", func(t *testing.T) {
		s := newTestServer(t)
		s.schedule.On("SubmitSession", mock.Anything, "12", "s1").Return(&responses.ScheduleSubmission{
			SubmissionID: "sub-1",
			Status:       constvars.SubmissionStatusQueued,
		}, nil)

		rr := s.do(http.MethodPost, "/api/v1/schedule-sessions/s1/submit", nil)
		assert.Equal(t, http.StatusAccepted, rr.Code)
		assert.Contains(t, rr.Body.String(), constvars.SubmitScheduleQueuedMessage)
	})

	t.Run("Submit Empty Schedule", func(t *testing.T) {
		s := newTestServer(t)
		s.schedule.On("SubmitSession", mock.Anything, "12", "s1").Return(nil, exceptions.ErrEmptySchedule(nil))

		rr := s.do(http.MethodPost, "/api/v1/schedule-sessions/s1/submit", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), constvars.ErrClientEmptySchedule)
	})

	t.Run("Busy Session", func(t *testing.T) {
		s := newTestServer(t)
		s.schedule.On("ResetSession", mock.Anything, "12", "s1").Return(nil, exceptions.ErrScheduleSessionBusy(nil, "s1"))

		rr := s.do(http.MethodPost, "/api/v1/schedule-sessions/s1/reset", nil)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}
