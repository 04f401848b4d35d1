package controllers

import (
	"class-registration-service/internal/app/contracts"
	"class-registration-service/internal/pkg/constvars"
	"class-registration-service/internal/pkg/dto/requests"
	"class-registration-service/internal/pkg/exceptions"
	"class-registration-service/internal/pkg/utils"
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScheduleController struct {
	Log                    *zap.Logger
	ScheduleSessionUsecase contracts.ScheduleSessionUsecase
}

func NewScheduleController(logger *zap.Logger, scheduleSessionUsecase contracts.ScheduleSessionUsecase) *ScheduleController {
	return &ScheduleController{
		Log:                    logger,
		ScheduleSessionUsecase: scheduleSessionUsecase,
	}
}

func (ctrl *ScheduleController) CreateSession(w http.ResponseWriter, r *http.Request) {
	studentID := utils.GetStudentID(r.Context())
	ctrl.Log.Info("ScheduleController.CreateSession called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
		zap.String(constvars.LoggingStudentIDKey, studentID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.ScheduleSessionUsecase.CreateSession(ctx, studentID)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateScheduleSessionSuccessMessage, result)
}

func (ctrl *ScheduleController) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := ctrl.sessionID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.ScheduleSessionUsecase.GetSession(ctx, utils.GetStudentID(r.Context()), sessionID)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetScheduleSessionSuccessMessage, result)
}

func (ctrl *ScheduleController) ApplyPointerEvents(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := ctrl.sessionID(w, r)
	if !ok {
		return
	}

	// Bind body to request
	request := new(requests.ApplyPointerEvents)
	err := utils.ParseJSONBody(r.Body, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeApplyPointerEvents(request)

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.ScheduleSessionUsecase.ApplyPointerEvents(ctx, utils.GetStudentID(r.Context()), sessionID, request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ApplyPointerEventsSuccessMessage, result)
}

func (ctrl *ScheduleController) ChangeFilter(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := ctrl.sessionID(w, r)
	if !ok {
		return
	}

	request := new(requests.ChangeFilter)
	err := utils.ParseJSONBody(r.Body, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeChangeFilter(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.ScheduleSessionUsecase.ChangeFilter(ctx, utils.GetStudentID(r.Context()), sessionID, request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ChangeFilterSuccessMessage, result)
}

func (ctrl *ScheduleController) DeleteRun(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := ctrl.sessionID(w, r)
	if !ok {
		return
	}

	request := new(requests.DeleteRun)
	err := utils.ParseJSONBody(r.Body, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.ScheduleSessionUsecase.DeleteRun(ctx, utils.GetStudentID(r.Context()), sessionID, request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteRunSuccessMessage, result)
}

func (ctrl *ScheduleController) ResetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := ctrl.sessionID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.ScheduleSessionUsecase.ResetSession(ctx, utils.GetStudentID(r.Context()), sessionID)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResetScheduleSuccessMessage, result)
}

// SubmitSession answers 202 when the schedule was accepted but is still
// waiting in the retry queue.
func (ctrl *ScheduleController) SubmitSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := ctrl.sessionID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.ScheduleSessionUsecase.SubmitSession(ctx, utils.GetStudentID(r.Context()), sessionID)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, err)
		return
	}

	if result.Status == constvars.SubmissionStatusQueued {
		utils.BuildSuccessResponse(w, constvars.StatusAccepted, constvars.SubmitScheduleQueuedMessage, result)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SubmitScheduleSuccessMessage, result)
}

func (ctrl *ScheduleController) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := strings.TrimSpace(chi.URLParam(r, constvars.URLParamSessionID))
	ctrl.Log.Info("ScheduleController called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
		zap.String(constvars.LoggingMethodKey, r.Method),
		zap.String(constvars.LoggingURLKey, r.URL.Path),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)
	if sessionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamSessionID))
		return "", false
	}
	return sessionID, true
}
