package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Error messages the client shows verbatim
const (
	MsgNoFilePart     = "No file part"
	MsgNoSelectedFile = "No selected file"
)

// APIError is rendered as {"success": false, "error": message}
type APIError struct {
	Status  int    `json:"-"`
	Success bool   `json:"success"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// NewBadRequestError creates a 400 error
func NewBadRequestError(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

// NewNotFoundError creates a 404 error
func NewNotFoundError(resource, id string) *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// NewInternalError creates a 500 error carrying the cause text
func NewInternalError(cause error) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: cause.Error()}
}

// ErrorHandler renders every handler error in the JSON error contract.
// Usage: e.HTTPErrorHandler = ErrorHandler(log)
func ErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var apiErr *APIError
		switch e := err.(type) {
		case *APIError:
			apiErr = e
		case *echo.HTTPError:
			apiErr = &APIError{Status: e.Code, Message: fmt.Sprintf("%v", e.Message)}
		default:
			apiErr = &APIError{Status: http.StatusInternalServerError, Message: err.Error()}
		}

		entry := log.WithFields(logrus.Fields{
			"method": c.Request().Method,
			"path":   c.Request().URL.Path,
			"status": apiErr.Status,
		})
		if apiErr.Status >= http.StatusInternalServerError {
			entry.WithError(err).Error("Request failed")
		} else {
			entry.Debug(apiErr.Message)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(apiErr.Status)
		} else {
			err = c.JSON(apiErr.Status, apiErr)
		}
		if err != nil {
			log.WithError(err).Warn("Failed to write error response")
		}
	}
}
