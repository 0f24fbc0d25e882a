package dto

import "advisor_backend/internal/feature/status/domain/entity"

// StatusResponse is returned by GET /v1/sessions/:id/status.
type StatusResponse struct {
	Status             string         `json:"status"`
	StatusRetrieved    bool           `json:"status_retrieved"`
	PollingRecommended bool           `json:"polling_recommended"`
	Record             *entity.Record `json:"status_data"`
}

// ErrorResponse is the error body shared by the status endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewStatusResponse wraps a record for the API.
func NewStatusResponse(rec *entity.Record) StatusResponse {
	return StatusResponse{
		Status:             "success",
		StatusRetrieved:    rec.CurrentStatus != entity.CheckpointUnknown,
		PollingRecommended: rec.PollingRecommended(),
		Record:             rec,
	}
}
