package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
		wantMsg    string
	}{
		{
			name:       "wrapped book not exists",
			err:        fmt.Errorf("issue book: %w", ErrBookNotExists),
			wantStatus: http.StatusNotFound,
			wantCode:   CodeNotExists,
			wantMsg:    "book doesn't exist",
		},
		{
			name:       "user exists",
			err:        ErrUserExists,
			wantStatus: http.StatusConflict,
			wantCode:   CodeAlreadyExists,
			wantMsg:    "user already exists",
		},
		{
			name:       "book unavailable",
			err:        ErrBookUnavailable,
			wantStatus: http.StatusConflict,
			wantCode:   CodeInvalidOperation,
			wantMsg:    "book is not available",
		},
		{
			name:       "invalid credentials",
			err:        ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantCode:   CodeInvalidCredentials,
			wantMsg:    "incorrect email or password",
		},
		{
			name:       "token expired",
			err:        fmt.Errorf("authenticate: %w", ErrTokenExpired),
			wantStatus: http.StatusUnauthorized,
			wantCode:   CodeTokenExpired,
			wantMsg:    "token has expired",
		},
		{
			name:       "admin required",
			err:        ErrAdminRequired,
			wantStatus: http.StatusForbidden,
			wantCode:   CodeInvalidAccess,
			wantMsg:    "Unauthorized: Admin role required",
		},
		{
			name:       "validation error",
			err:        Validation("Email is not valid", CodeValidationFailure),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   CodeValidationFailure,
			wantMsg:    "Email is not valid",
		},
		{
			name:       "invalid body",
			err:        ErrInvalidRequestBody,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidRequestBodyFormat,
			wantMsg:    "invalid request body format",
		},
		{
			name:       "database error hides driver message",
			err:        Database(errors.New("disk I/O error")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeDBError,
			wantMsg:    "database error",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeUnexpectedError,
			wantMsg:    "unexpected error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestDatabase(t *testing.T) {
	assert.Nil(t, Database(nil))

	err := Database(errors.New("constraint failed"))
	assert.True(t, errors.Is(err, ErrDatabase))
	assert.Equal(t, "database error: constraint failed", err.Error())

	wrapped := fmt.Errorf("find user: %w", err)
	assert.Equal(t, wrapped, Database(wrapped))
}

func TestDomainErrorKinds(t *testing.T) {
	assert.True(t, errors.Is(ErrUserExists, ErrAlreadyExists))
	assert.True(t, errors.Is(ErrLoanNotExists, ErrNotExists))
	assert.True(t, errors.Is(ErrNoCopyToRemove, ErrInvalidOperation))
	assert.False(t, errors.Is(ErrBookNotExists, ErrAlreadyExists))
}

func TestToErrorResponse(t *testing.T) {
	resp := NewHTTPError(http.StatusNotFound, "book doesn't exist", CodeNotExists).ToErrorResponse()
	assert.Equal(t, ErrorResponse{Status: "fail", Message: "book doesn't exist", ErrorCode: CodeNotExists}, resp)
}

func TestCodeForStatus(t *testing.T) {
	assert.Equal(t, CodeNotExists, CodeForStatus(http.StatusNotFound))
	assert.Equal(t, CodeInvalidRequestBodyFormat, CodeForStatus(http.StatusBadRequest))
	assert.Equal(t, CodeValidationFailure, CodeForStatus(http.StatusMethodNotAllowed))
	assert.Equal(t, CodeUnexpectedError, CodeForStatus(http.StatusServiceUnavailable))
}
