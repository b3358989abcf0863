package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "libraryhub/internal/errors"
	"libraryhub/internal/validators"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// Envelope is the body of every response.
type Envelope struct {
	Status    string      `json:"status"`
	Message   string      `json:"message"`
	ErrorCode int         `json:"error_code,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// TokenResponse is returned by signup and login.
type TokenResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

var tagMessages = map[string]string{
	validators.TagName:     "Name is not valid",
	validators.TagEmail:    "Email is not valid",
	validators.TagPassword: "Password is not valid",
	validators.TagYear:     "Year is not valid",
	validators.TagBranch:   "Branch is not valid",
	validators.TagRole:     "Invalid Role",
	"datetime":             "Return date is not valid",
}

type normalizer interface {
	normalize()
}

func success(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

// bind decodes the JSON body into req, trims it and validates it.
func bind(c echo.Context, req interface{}) error {
	if c.Request().ContentLength == 0 {
		return apperrors.Validation("request body is missing", apperrors.CodeMissingRequestBody)
	}
	if err := c.Bind(req); err != nil {
		return apperrors.ErrInvalidRequestBody
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	if err := c.Validate(req); err != nil {
		return validationError(err)
	}
	return nil
}

// validationError reports the first failed field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.Validation(err.Error(), apperrors.CodeValidationFailure)
	}

	fe := verrs[0]
	if fe.Tag() == "required" {
		return apperrors.Validation(fmt.Sprintf("missing required field: %s", fe.Field()), apperrors.CodeMissingRequiredFields)
	}
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return apperrors.Validation(msg, apperrors.CodeValidationFailure)
	}
	return apperrors.Validation(fmt.Sprintf("%s is not valid", fe.Field()), apperrors.CodeValidationFailure)
}

// ErrorResponse builds the status and envelope for err. Errors raised by
// echo itself keep their status.
func ErrorResponse(err error) (int, Envelope) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		return he.Code, Envelope{Status: StatusFail, Message: msg, ErrorCode: apperrors.CodeForStatus(he.Code)}
	}

	httpErr := apperrors.MapErrorToHTTP(err)
	resp := httpErr.ToErrorResponse()
	return httpErr.StatusCode, Envelope{Status: resp.Status, Message: resp.Message, ErrorCode: resp.ErrorCode}
}
