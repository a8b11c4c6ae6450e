package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/roboco-io/jww2dxf/internal/diag"
)

// APIError is the JSON body of every error response.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewBadRequestError creates a 400 error.
func NewBadRequestError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewParseError creates a 422 error for a drawing that could not be decoded.
// The code is the taxonomy name of the failure, e.g. InvalidHeader.
func NewParseError(cause error) *APIError {
	code := "PARSE_ERROR"
	if k := diag.KindOf(cause); k != 0 {
		code = k.String()
	}
	return &APIError{
		Status:  http.StatusUnprocessableEntity,
		Code:    code,
		Message: "failed to parse JWW drawing",
		Details: cause.Error(),
	}
}

// NewInternalError creates a 500 error.
func NewInternalError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// httpErrorCodes names the echo errors that reach the error handler.
var httpErrorCodes = map[int]string{
	http.StatusNotFound:              "NOT_FOUND",
	http.StatusMethodNotAllowed:      "METHOD_NOT_ALLOWED",
	http.StatusRequestEntityTooLarge: "PAYLOAD_TOO_LARGE",
}

// ErrorHandler writes every error as an APIError.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *APIError

	switch e := err.(type) {
	case *APIError:
		apiErr = e
	case *echo.HTTPError:
		code, ok := httpErrorCodes[e.Code]
		if !ok {
			code = "HTTP_ERROR"
		}
		apiErr = &APIError{
			Status:  e.Code,
			Code:    code,
			Message: fmt.Sprintf("%v", e.Message),
		}
	default:
		apiErr = NewInternalError("an unexpected error occurred", err)
	}

	_ = c.JSON(apiErr.Status, apiErr)
}
