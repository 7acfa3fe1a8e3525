// Package errors carries HTTP status information on errors returned by
// delivery layers.
package errors

import "fmt"

// HTTPError is an error with the status code it should be rendered with.
type HTTPError struct {
	Code    int
	Message string
}

func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}
