package types

import "fmt"

// CustomError is an error that carries the HTTP status and a stable type tag
// for the global error handler to render into the JSON envelope.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("[%s] %d: %s", e.Type, e.Code, e.Message)
}
