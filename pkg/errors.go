package pkg

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Reusable errors
var (
	ErrBusy             = errors.New("request already in progress")
	ErrSessionNotFound  = errors.New("session not found")
	ErrMissingSessionID = errors.New("session id is empty")
)

// ErrorCode defines a standardized error code
type ErrorCode struct {
	Code    string
	Status  int
	Message string // default message
}

var (
	// Client side
	ErrValidationCode = ErrorCode{Code: "CLIENT_VALIDATION", Status: http.StatusBadRequest, Message: "invalid input"}
	ErrBusyCode       = ErrorCode{Code: "CLIENT_BUSY", Status: http.StatusConflict, Message: "Request already in progress"}

	// Backend
	ErrBackendRejectedCode    = ErrorCode{Code: "BACKEND_REJECTED", Status: http.StatusUnprocessableEntity, Message: "request rejected"}
	ErrBackendUnreachableCode = ErrorCode{Code: "BACKEND_UNREACHABLE", Status: http.StatusBadGateway, Message: "Backend unreachable"}

	// Session layer
	ErrSessionStoreCode = ErrorCode{Code: "SESSION_STORE", Status: http.StatusInternalServerError, Message: "session unavailable"}
	ErrServerCode       = ErrorCode{Code: "APP_INTERNAL", Status: http.StatusInternalServerError, Message: "internal server error"}
)

type AppError struct {
	Code    ErrorCode
	Message string // public-facing message
	Status  int    // overrides Code.Status when set
	Cause   error  // internal cause (wrapped)
}

func (e AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}
func (e AppError) Unwrap() error { return e.Cause }

func NewAppError(code ErrorCode, msg string, cause error) error {
	if msg == "" {
		msg = code.Message
	}
	return AppError{Code: code, Message: msg, Cause: cause}
}

// NewAppErrorWithStatus is NewAppError carrying the upstream HTTP status.
func NewAppErrorWithStatus(code ErrorCode, status int, msg string, cause error) error {
	if msg == "" {
		msg = code.Message
	}
	return AppError{Code: code, Message: msg, Status: status, Cause: cause}
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Code.Code == code.Code
	}
	return false
}

// Notice is the user-facing rendition of an error.
type Notice struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ToNotice converts an error into a Notice and logs it.
// Errors that are not an AppError become a generic 500 notice.
func ToNotice(logger *zap.Logger, traceID string, err error) Notice {
	var appErr AppError
	if errors.As(err, &appErr) {
		status := appErr.Code.Status
		if appErr.Status >= http.StatusBadRequest {
			status = appErr.Status
		}
		if status >= http.StatusInternalServerError {
			logger.Error("request failed", zap.String(TraceId, traceID), zap.String("code", appErr.Code.Code), zap.Error(err))
		} else {
			logger.Warn("request rejected", zap.String(TraceId, traceID), zap.String("code", appErr.Code.Code), zap.Error(err))
		}
		return Notice{Status: status, Code: appErr.Code.Code, Message: appErr.Message}
	}
	logger.Error("unexpected error", zap.String(TraceId, traceID), zap.Error(err))
	return Notice{
		Status:  ErrServerCode.Status,
		Code:    ErrServerCode.Code,
		Message: ErrServerCode.Message,
	}
}
