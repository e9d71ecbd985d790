package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")

	// Wallet provider failures
	ErrProviderMissing = errors.New("wallet provider not available")
	ErrUserRejected    = errors.New("request rejected by user")
	ErrProviderFault   = errors.New("unexpected wallet provider fault")

	// Submission flow failures
	ErrInvalidInput       = errors.New("invalid transfer input")
	ErrAlreadyInProgress  = errors.New("a submission is already in progress")
	ErrSubmissionFailed   = errors.New("transaction submission failed")
	ErrConfirmationFailed = errors.New("transaction confirmation failed")
	ErrPersistenceFailed  = errors.New("transaction record persistence failed")
)

// Machine-readable error codes returned to clients
const (
	CodeNotFound           = "ERR_NOT_FOUND"
	CodeProviderMissing    = "ERR_PROVIDER_MISSING"
	CodeInvalidInput       = "ERR_INVALID_INPUT"
	CodeAlreadyInProgress  = "ERR_ALREADY_IN_PROGRESS"
	CodeSubmissionFailed   = "ERR_SUBMISSION_FAILED"
	CodeConfirmationFailed = "ERR_CONFIRMATION_FAILED"
	CodePersistenceFailed  = "ERR_PERSISTENCE_FAILED"
	CodeInternalError      = "ERR_INTERNAL"
)

// AppError represents an application error with an HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeAlreadyInProgress, message, ErrAlreadyInProgress)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// FromDomain maps a domain error onto the AppError the UI-facing
// surface should report.
func FromDomain(err error) *AppError {
	switch {
	case errors.Is(err, ErrProviderMissing):
		return NewAppError(http.StatusFailedDependency, CodeProviderMissing, "no wallet provider available, please install a wallet", err)
	case errors.Is(err, ErrInvalidInput):
		return NewAppError(http.StatusBadRequest, CodeInvalidInput, "invalid transfer input", err)
	case errors.Is(err, ErrAlreadyInProgress):
		return NewAppError(http.StatusConflict, CodeAlreadyInProgress, "a submission is already in progress", err)
	case errors.Is(err, ErrSubmissionFailed):
		return NewAppError(http.StatusBadGateway, CodeSubmissionFailed, "transaction submission failed", err)
	case errors.Is(err, ErrConfirmationFailed):
		return NewAppError(http.StatusBadGateway, CodeConfirmationFailed, "transaction confirmation failed", err)
	case errors.Is(err, ErrPersistenceFailed):
		return NewAppError(http.StatusInternalServerError, CodePersistenceFailed, "transaction confirmed on-chain but could not be recorded", err)
	case errors.Is(err, ErrNotFound):
		return NotFound("resource not found")
	default:
		return InternalError(err)
	}
}
