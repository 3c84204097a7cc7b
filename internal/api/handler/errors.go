package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ZertGraf/team-feedback/internal/domain"
	"github.com/ZertGraf/team-feedback/internal/pkg/logger"
)

type ErrorCode string

const (
	CodeModerationRejected ErrorCode = "MODERATION_REJECTED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeBadRequest         ErrorCode = "BAD_REQUEST"
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func WriteError(w http.ResponseWriter, err error, logger *logger.Logger) {
	status, response := mapError(err)

	if status < http.StatusInternalServerError {
		logger.Warn("domain error",
			"error", err.Error(),
			"code", response.Error.Code,
		)
	} else {
		logger.Error("unexpected error",
			"error", err.Error(),
		)
	}

	writeJSON(w, status, response, logger)
}

// WriteBadRequest reports a malformed request body or parameter.
func WriteBadRequest(w http.ResponseWriter, message string, logger *logger.Logger) {
	logger.Warn("bad request", "message", message)
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{Code: CodeBadRequest, Message: message},
	}, logger)
}

func mapError(err error) (int, ErrorResponse) {
	detail := func(code ErrorCode) ErrorResponse {
		return ErrorResponse{Error: ErrorDetail{Code: code, Message: err.Error()}}
	}

	switch {
	case errors.Is(err, domain.ErrModerationRejected):
		return http.StatusUnprocessableEntity, detail(CodeModerationRejected)

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidTier):
		return http.StatusBadRequest, detail(CodeValidationFailed)

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, detail(CodeForbidden)

	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, detail(CodeUnauthorized)

	case errors.Is(err, domain.ErrMemberNotFound):
		return http.StatusNotFound, detail(CodeNotFound)

	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{
				Code:    CodeInternal,
				Message: "internal server error",
			},
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any, logger *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}
