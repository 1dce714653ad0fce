package upload

import (
	"errors"
	"fmt"
)

// ErrTransport marks failures to reach the server or to read its answer
var ErrTransport = errors.New("upload transport error")

// ServerError is returned when the server answered with success=false
type ServerError struct {
	Status  int    // HTTP status of the response
	Message string // server-provided message
}

// Error implements the error interface
func (e *ServerError) Error() string {
	return e.Message
}

// newServerError builds a ServerError, substituting a message when the server sent none
func newServerError(status int, message string) *ServerError {
	if message == "" {
		message = fmt.Sprintf("upload failed with status %d", status)
	}
	return &ServerError{Status: status, Message: message}
}

// AsServerError returns the ServerError wrapped in err, if any
func AsServerError(err error) (*ServerError, bool) {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr, true
	}
	return nil, false
}
