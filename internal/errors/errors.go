package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeDatabase   ErrorType = "database"
	ErrorTypeExternal   ErrorType = "external_api"
	ErrorTypeStorage    ErrorType = "storage"
	ErrorTypeInternal   ErrorType = "internal"
	ErrorTypePermission ErrorType = "permission"
	ErrorTypeNotFound   ErrorType = "not_found"
)

// Error codes shared by the report pipeline
const (
	CodeNotAuthenticated = "NOT_AUTHENTICATED"
	CodeStorageWrite     = "STORAGE_WRITE"
	CodeAnalysis         = "ANALYSIS_FAILED"
	CodeAnalysisParse    = "ANALYSIS_PARSE"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Message  string
	Code     string
	Internal error
	Context  map[string]interface{}
	Source   string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogFields returns structured logging fields
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
		"source", e.Source,
	}

	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}

	for k, v := range e.Context {
		fields = append(fields, k, v)
	}

	return fields
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  caller(2),
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   caller(2),
		Context:  make(map[string]interface{}),
	}
}

func caller(skip int) string {
	_, file, line, _ := runtime.Caller(skip)
	return fmt.Sprintf("%s:%d", file, line)
}

// Handler provides error handling strategies
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle processes an error according to its type
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		h.handleAppError(ctx, appErr)
	} else {
		h.handleGenericError(ctx, err)
	}
}

func (h *Handler) handleAppError(ctx context.Context, err *AppError) {
	switch err.Type {
	case ErrorTypeValidation, ErrorTypeNotFound:
		h.logger.WarnContext(ctx, "Validation error", err.LogFields()...)
	case ErrorTypePermission:
		h.logger.WarnContext(ctx, "Permission error", err.LogFields()...)
	case ErrorTypeDatabase, ErrorTypeExternal, ErrorTypeStorage, ErrorTypeInternal:
		h.logger.ErrorContext(ctx, "Critical error", err.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Unknown error type", err.LogFields()...)
	}
}

func (h *Handler) handleGenericError(ctx context.Context, err error) {
	h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
}

// Predefined errors. Use them as errors.Is targets only; never mutate them.
var (
	ErrInvalidInput     = New(ErrorTypeValidation, "INVALID_INPUT", "Invalid input provided")
	ErrNotFound         = New(ErrorTypeNotFound, "NOT_FOUND", "Record not found")
	ErrNotAuthenticated = New(ErrorTypePermission, CodeNotAuthenticated, "User not authenticated")
	ErrStorageWrite     = New(ErrorTypeStorage, CodeStorageWrite, "File upload failed")
	ErrAnalysis         = New(ErrorTypeExternal, CodeAnalysis, "Report analysis failed")
	ErrAnalysisParse    = New(ErrorTypeExternal, CodeAnalysisParse, "Report analysis could not be parsed")
)

// Convenience functions for common errors
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, "INVALID_INPUT", message)
}

func NewNotFoundError(entity string) *AppError {
	return New(ErrorTypeNotFound, "NOT_FOUND", fmt.Sprintf("%s not found", entity)).
		WithContext("entity", entity)
}

func NewDatabaseError(err error) *AppError {
	return Wrap(err, ErrorTypeDatabase, "DB_ERROR", "Database operation failed")
}

func NewNotAuthenticatedError() *AppError {
	return New(ErrorTypePermission, CodeNotAuthenticated, "User not authenticated")
}

func NewExternalAPIError(err error, api string) *AppError {
	return Wrap(err, ErrorTypeExternal, "EXTERNAL_API", fmt.Sprintf("%s API error", api)).
		WithContext("api", api)
}

func NewStorageWriteError(err error) *AppError {
	return Wrap(err, ErrorTypeStorage, CodeStorageWrite, "File upload failed")
}

func NewAnalysisError(err error, provider string) *AppError {
	return Wrap(err, ErrorTypeExternal, CodeAnalysis, "Report analysis failed").
		WithContext("provider", provider)
}

func NewAnalysisParseError(reason string, err error) *AppError {
	return Wrap(err, ErrorTypeExternal, CodeAnalysisParse, reason)
}

// IsAnalysisFailure reports whether err is any failure of the analysis step,
// either the provider call or parsing its reply.
func IsAnalysisFailure(err error) bool {
	return errors.Is(err, ErrAnalysis) || errors.Is(err, ErrAnalysisParse)
}
