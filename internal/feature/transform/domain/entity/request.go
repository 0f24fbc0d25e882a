// Package entity defines the transform request, the persisted session and the API response.
package entity

import "strings"

// Action selects what the orchestrator does with a request.
type Action string

const (
	ActionStart  Action = "start"
	ActionSelect Action = "select_use_cases"
	ActionFetch  Action = "fetch"
)

// Fetch types accepted with ActionFetch.
const (
	FetchStatus   = "status"
	FetchUseCases = "use_cases"
	FetchReports  = "wafr_report"
	FetchAll      = "all"
)

// FetchTypes lists the valid fetch types in the order shown to clients.
var FetchTypes = []string{FetchStatus, FetchUseCases, FetchReports, FetchAll}

const (
	DefaultProjectID = "default_project"
	DefaultUserID    = "default_user"
)

// Request is the payload of POST /v1/transform.
type Request struct {
	CompanyName        string   `json:"company_name"`
	CompanyURL         string   `json:"company_url"`
	SessionID          string   `json:"session_id"`
	Action             Action   `json:"action"`
	SelectedUseCaseIDs []string `json:"selected_use_case_ids"`
	ProjectID          string   `json:"project_id"`
	UserID             string   `json:"user_id"`
	Files              []string `json:"files"`
	Prompt             string   `json:"prompt"`
	FetchType          string   `json:"fetch_type"`
}

// Normalize trims the request and fills in defaults. newID generates a session id when none was
// given; status polls keep an empty id so the caller can reject them.
func (r *Request) Normalize(newID func() string) {
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.CompanyURL = strings.TrimSpace(r.CompanyURL)
	r.SessionID = strings.TrimSpace(r.SessionID)
	r.Prompt = strings.TrimSpace(r.Prompt)
	r.FetchType = strings.TrimSpace(r.FetchType)

	if r.Action == "" {
		r.Action = ActionStart
	}
	if r.Action == ActionFetch && r.FetchType == "" {
		r.FetchType = FetchStatus
	}
	if r.SessionID == "" && !r.IsStatusPoll() {
		r.SessionID = newID()
	}
	if r.ProjectID == "" {
		r.ProjectID = DefaultProjectID
	}
	if r.UserID == "" {
		r.UserID = DefaultUserID
	}
	if r.CompanyURL == "" && r.CompanyName != "" {
		r.CompanyURL = DefaultCompanyURL(r.CompanyName)
	}

	var files []string
	for _, f := range r.Files {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	r.Files = files
}

// IsStatusPoll reports whether the request only polls a session's status.
func (r *Request) IsStatusPoll() bool {
	return r.Action == ActionFetch && r.FetchType == FetchStatus
}

// DefaultCompanyURL guesses a homepage from the company name.
func DefaultCompanyURL(name string) string {
	return "https://www." + strings.ReplaceAll(strings.ToLower(name), " ", "") + ".com"
}
