package dto

import "github.com/md-abdullah-92/edurecords/internal/db"

// ErrorResponse is the body of every 4xx and 5xx answer
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// RegistrationResponse acknowledges a /getdata submission
type RegistrationResponse struct {
	RegNo   string `json:"reg_no"`
	Message string `json:"message"`
}

// HealthResponse reports liveness and pool usage
type HealthResponse struct {
	Status string       `json:"status"`
	Pool   db.PoolStats `json:"pool"`
}
