package models

import "github.com/diamondgarment/backend/apperror"

// Response is the uniform JSON envelope for every API reply.
type Response struct {
	Success bool                  `json:"success"`
	Data    interface{}           `json:"data,omitempty"`
	Message string                `json:"message,omitempty"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
	Count   *int                  `json:"count,omitempty"`
	Token   string                `json:"token,omitempty"`
}

// OK wraps a single payload.
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// List wraps a collection and reports its size.
func List[T any](items []T) Response {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	return Response{Success: true, Data: items, Count: &n}
}

// Failure converts an application error to the envelope.
func Failure(err *apperror.Error) Response {
	return Response{Success: false, Message: err.Message, Errors: err.Fields}
}
