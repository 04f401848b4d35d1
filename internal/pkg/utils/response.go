package utils

import (
	"class-registration-service/internal/pkg/constvars"
	"class-registration-service/internal/pkg/dto/responses"
	"class-registration-service/internal/pkg/exceptions"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// BuildFileResponse streams an export as an attachment.
func BuildFileResponse(w http.ResponseWriter, contentType, fileName string, content []byte) {
	w.Header().Set(constvars.HeaderContentType, contentType)
	w.Header().Set(constvars.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	w.Header().Set(constvars.HeaderContentLength, strconv.Itoa(len(content)))
	w.WriteHeader(constvars.StatusOK)
	w.Write(content)
}

func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	code := constvars.StatusInternalServerError
	clientMessage := constvars.ErrClientSomethingWrongWithApplication

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		code = customErr.StatusCode
		clientMessage = customErr.ClientMessage
		for _, location := range customErr.Locations {
			location := map[string]interface{}{
				"file":          location.File,
				"line":          location.Line,
				"function_name": location.FunctionName,
			}
			log.Error(customErr.DevMessage,
				zap.Int(constvars.LoggingStatusCodeKey, code),
				zap.Any("location", location),
			)
		}
	} else {
		log.Error(err.Error())
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	response := exceptions.CustomError{
		StatusCode:    code,
		Success:       false,
		ClientMessage: clientMessage,
	}

	appEnvironment := GetEnvString("APP_ENV", "development")
	if customErr != nil && appEnvironment != "production" {
		response.DevMessage = customErr.DevMessage
		response.Locations = customErr.Locations
	}
	json.NewEncoder(w).Encode(response)
}
