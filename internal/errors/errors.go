package errors

import (
	"errors"
	"net/http"
)

// Numeric error codes carried in the error_code field of failed responses.
const (
	CodeMissingRequestBody       = 4000
	CodeMissingRequiredFields    = 4001
	CodeInvalidRequestBodyFormat = 4002
	CodeValidationFailure        = 4003
	CodeIDNotExist               = 4004
	CodeInvalidOperation         = 4005

	CodeInvalidCredentials = 4100
	CodeInvalidAccess      = 4101
	CodeTokenExpired       = 4102
	CodeTokenInvalid       = 4103
	CodeTokenMissing       = 4104

	CodeDBError         = 5000
	CodeUnexpectedError = 5001

	CodeNotExists     = 2001
	CodeAlreadyExists = 2002
)

var (
	// ErrNotExists is returned when an entity is absent.
	ErrNotExists = errors.New("does not exist")
	// ErrAlreadyExists is returned when a unique entity is created twice.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidCredentials is returned when login email or password is wrong.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrInvalidOperation is returned when a business rule forbids an action.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrInvalidRequestBody is returned when the body cannot be decoded.
	ErrInvalidRequestBody = errors.New("invalid request body format")
	// ErrValidation is returned when a decoded body fails validation.
	ErrValidation = errors.New("validation failure")
	// ErrTokenMissing is returned when the Authorization header is absent or malformed.
	ErrTokenMissing = errors.New("token is missing")
	// ErrTokenExpired is returned when a token's exp has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid is returned for every other token verification failure.
	ErrTokenInvalid = errors.New("token is invalid")
	// ErrInvalidAccess is returned when the principal's role is not allowed.
	ErrInvalidAccess = errors.New("invalid access")
	// ErrDatabase matches every DatabaseError.
	ErrDatabase = errors.New("database error")
)

var (
	ErrUserExists      = New(ErrAlreadyExists, "user already exists")
	ErrBookExists      = New(ErrAlreadyExists, "book already exists")
	ErrBookNotExists   = New(ErrNotExists, "book doesn't exist")
	ErrLoanNotExists   = New(ErrNotExists, "issued book doesn't exist")
	ErrBookUnavailable = New(ErrInvalidOperation, "book is not available")
	ErrNoCopyToRemove  = New(ErrInvalidOperation, "no available copy to remove")
	ErrAdminRequired   = New(ErrInvalidAccess, "Unauthorized: Admin role required")
	ErrUserRequired    = New(ErrInvalidAccess, "Unauthorized: User role required")
)

// domainError is a specific error of a broader kind, e.g. a missing book is a NotExists.
type domainError struct {
	msg  string
	kind error
}

func (e *domainError) Error() string { return e.msg }

func (e *domainError) Unwrap() error { return e.kind }

// New returns an error with message msg that matches kind under errors.Is.
func New(kind error, msg string) error {
	return &domainError{msg: msg, kind: kind}
}

// DatabaseError hides an underlying storage failure behind an opaque type.
// Only the driver message is kept.
type DatabaseError struct {
	Message string
}

func (e *DatabaseError) Error() string {
	return "database error: " + e.Message
}

// Is makes errors.Is(err, ErrDatabase) hold for every DatabaseError.
func (e *DatabaseError) Is(target error) bool {
	return target == ErrDatabase
}

// Database converts err into a DatabaseError. Nil stays nil and an error that
// already is a DatabaseError is returned unchanged.
func Database(err error) error {
	if err == nil {
		return nil
	}
	var dbErr *DatabaseError
	if errors.As(err, &dbErr) {
		return err
	}
	return &DatabaseError{Message: err.Error()}
}

// ValidationError reports a rejected field with the message shown to the client.
type ValidationError struct {
	Message string
	Code    int
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validation returns a ValidationError with the given message and code.
func Validation(message string, code int) error {
	return &ValidationError{Message: message, Code: code}
}

// ErrorResponse is the failure envelope written to clients.
type ErrorResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	ErrorCode int    `json:"error_code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       int
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string, code int) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Status:    "fail",
		Message:   e.Message,
		ErrorCode: e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped errors are
// matched by kind; the message is taken from the most specific domain error.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return NewHTTPError(http.StatusUnprocessableEntity, valErr.Message, valErr.Code)
	}

	switch {
	case errors.Is(err, ErrInvalidRequestBody):
		return NewHTTPError(http.StatusBadRequest, message(err, ErrInvalidRequestBody), CodeInvalidRequestBodyFormat)
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusUnprocessableEntity, message(err, ErrValidation), CodeValidationFailure)
	case errors.Is(err, ErrTokenMissing):
		return NewHTTPError(http.StatusUnauthorized, ErrTokenMissing.Error(), CodeTokenMissing)
	case errors.Is(err, ErrTokenExpired):
		return NewHTTPError(http.StatusUnauthorized, ErrTokenExpired.Error(), CodeTokenExpired)
	case errors.Is(err, ErrTokenInvalid):
		return NewHTTPError(http.StatusUnauthorized, ErrTokenInvalid.Error(), CodeTokenInvalid)
	case errors.Is(err, ErrInvalidAccess):
		return NewHTTPError(http.StatusForbidden, message(err, ErrInvalidAccess), CodeInvalidAccess)
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), CodeInvalidCredentials)
	case errors.Is(err, ErrNotExists):
		return NewHTTPError(http.StatusNotFound, message(err, ErrNotExists), CodeNotExists)
	case errors.Is(err, ErrAlreadyExists):
		return NewHTTPError(http.StatusConflict, message(err, ErrAlreadyExists), CodeAlreadyExists)
	case errors.Is(err, ErrInvalidOperation):
		return NewHTTPError(http.StatusConflict, message(err, ErrInvalidOperation), CodeInvalidOperation)
	case errors.Is(err, ErrDatabase):
		return NewHTTPError(http.StatusInternalServerError, ErrDatabase.Error(), CodeDBError)
	default:
		return NewHTTPError(http.StatusInternalServerError, "unexpected error", CodeUnexpectedError)
	}
}

// CodeForStatus picks an error code for failures raised by the HTTP framework
// itself, such as unknown routes or oversized bodies.
func CodeForStatus(status int) int {
	switch {
	case status == http.StatusBadRequest:
		return CodeInvalidRequestBodyFormat
	case status == http.StatusUnauthorized:
		return CodeTokenMissing
	case status == http.StatusForbidden:
		return CodeInvalidAccess
	case status == http.StatusNotFound:
		return CodeNotExists
	case status < http.StatusInternalServerError:
		return CodeValidationFailure
	default:
		return CodeUnexpectedError
	}
}

// message returns the text of the first domain error in err's chain, or the
// kind's own text when err carries no domain error.
func message(err, kind error) string {
	var de *domainError
	if errors.As(err, &de) {
		return de.msg
	}
	return kind.Error()
}
