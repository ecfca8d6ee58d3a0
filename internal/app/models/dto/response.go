package dto

import "time"

// APIResponse is the generic envelope for single-resource responses.
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// IDResponse carries just the identifier of a newly created resource.
type IDResponse struct {
	ID int64 `json:"id" example:"17"`
}
