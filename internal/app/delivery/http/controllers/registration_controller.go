package controllers

import (
	"class-registration-service/internal/app/contracts"
	"class-registration-service/internal/pkg/constvars"
	"class-registration-service/internal/pkg/dto/requests"
	"class-registration-service/internal/pkg/exceptions"
	"class-registration-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const usecaseTimeout = 10 * time.Second

type RegistrationController struct {
	Log                 *zap.Logger
	RegistrationUsecase contracts.RegistrationUsecase
}

func NewRegistrationController(logger *zap.Logger, registrationUsecase contracts.RegistrationUsecase) *RegistrationController {
	return &RegistrationController{
		Log:                 logger,
		RegistrationUsecase: registrationUsecase,
	}
}

func (ctrl *RegistrationController) GetRegistration(w http.ResponseWriter, r *http.Request) {
	studentID := utils.GetStudentID(r.Context())
	ctrl.Log.Info("RegistrationController.GetRegistration called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
		zap.String(constvars.LoggingStudentIDKey, studentID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.RegistrationUsecase.GetRegistration(ctx, studentID)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetRegistrationSuccessMessage, result)
}

func (ctrl *RegistrationController) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	studentID := utils.GetStudentID(r.Context())
	ctrl.Log.Info("RegistrationController.UpdateDetails called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStudentIDKey, studentID),
	)

	// Bind body to request
	request := new(requests.UpdateRegistrationDetails)
	err := utils.ParseJSONBody(r.Body, request)
	if err != nil {
		ctrl.Log.Error("RegistrationController.UpdateDetails error parsing body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeUpdateRegistrationDetails(request)

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.RegistrationUsecase.UpdateDetails(ctx, studentID, request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateDetailsSuccessMessage, result)
}

func (ctrl *RegistrationController) ConfirmReservation(w http.ResponseWriter, r *http.Request) {
	studentID := utils.GetStudentID(r.Context())
	ctrl.Log.Info("RegistrationController.ConfirmReservation called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
		zap.String(constvars.LoggingStudentIDKey, studentID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.RegistrationUsecase.ConfirmReservation(ctx, studentID)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ConfirmReservationSuccessMessage, result)
}

func (ctrl *RegistrationController) ListAvailableClasses(w http.ResponseWriter, r *http.Request) {
	studentID := utils.GetStudentID(r.Context())
	ctrl.Log.Info("RegistrationController.ListAvailableClasses called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
		zap.String(constvars.LoggingStudentIDKey, studentID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.RegistrationUsecase.ListAvailableClasses(ctx, studentID)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAvailableClassesSuccessMessage, result)
}

func (ctrl *RegistrationController) SelectClass(w http.ResponseWriter, r *http.Request) {
	studentID := utils.GetStudentID(r.Context())
	classID := chi.URLParam(r, constvars.URLParamClassID)
	ctrl.Log.Info("RegistrationController.SelectClass called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
		zap.String(constvars.LoggingStudentIDKey, studentID),
		zap.String(constvars.LoggingClassIDKey, classID),
	)
	if strings.TrimSpace(classID) == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamClassID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.RegistrationUsecase.SelectClass(ctx, studentID, classID)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SelectClassSuccessMessage, result)
}

func (ctrl *RegistrationController) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	studentID := utils.GetStudentID(r.Context())
	request := &requests.ExportSchedule{
		Format: utils.SanitizeExportFormat(r.URL.Query().Get(constvars.QueryParamFormat)),
	}
	ctrl.Log.Info("RegistrationController.ExportSchedule called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
		zap.String(constvars.LoggingStudentIDKey, studentID),
		zap.String(constvars.LoggingFormatKey, request.Format),
	)

	err := utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	export, err := ctrl.RegistrationUsecase.ExportSchedule(ctx, studentID, request)
	if err != nil {
		respondUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildFileResponse(w, export.ContentType, export.FileName, export.Content)
}

func respondUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
