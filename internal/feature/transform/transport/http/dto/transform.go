// Package dto defines the HTTP bodies of the transform endpoints.
package dto

import (
	"errors"

	"advisor_backend/internal/feature/transform/domain/entity"
	"advisor_backend/internal/feature/transform/usecase"
)

// TransformRequest is the body of POST /v1/transform.
type TransformRequest struct {
	CompanyName        string   `json:"company_name"`
	CompanyURL         string   `json:"company_url"`
	SessionID          string   `json:"session_id"`
	Action             string   `json:"action"`
	SelectedUseCaseIDs []string `json:"selected_use_case_ids"`
	ProjectID          string   `json:"project_id"`
	UserID             string   `json:"user_id"`
	Files              []string `json:"files" binding:"max=20,dive,max=2048"`
	Prompt             string   `json:"prompt" binding:"max=10000"`
	FetchType          string   `json:"fetch_type"`
}

// ToEntity converts the body to a domain request.
func (r TransformRequest) ToEntity() entity.Request {
	return entity.Request{
		CompanyName:        r.CompanyName,
		CompanyURL:         r.CompanyURL,
		SessionID:          r.SessionID,
		Action:             entity.Action(r.Action),
		SelectedUseCaseIDs: r.SelectedUseCaseIDs,
		ProjectID:          r.ProjectID,
		UserID:             r.UserID,
		Files:              r.Files,
		Prompt:             r.Prompt,
		FetchType:          r.FetchType,
	}
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	ErrorType string `json:"error_type"`
	SessionID string `json:"session_id,omitempty"`
}

// NewErrorResponse builds the error body. Only client errors expose their message.
func NewErrorResponse(sessionID string, err error) ErrorResponse {
	msg := "failed to process request"
	var reqErr *usecase.RequestError
	if errors.As(err, &reqErr) {
		msg = reqErr.Msg
	}
	return ErrorResponse{
		Status:    entity.StatusError,
		Message:   msg,
		ErrorType: usecase.ErrorType(err),
		SessionID: sessionID,
	}
}

// SessionResponse is returned by GET /v1/sessions/:id.
type SessionResponse struct {
	Status  string          `json:"status"`
	Session *entity.Session `json:"session"`
}
