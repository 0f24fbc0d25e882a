package entity

import (
	"time"

	statusentity "advisor_backend/internal/feature/status/domain/entity"
	usecasegenentity "advisor_backend/internal/feature/usecasegen/domain/entity"
)

// Response statuses.
const (
	StatusUseCasesGenerated = "use_cases_generated"
	StatusCompleted         = "completed"
	StatusInProgress        = "in_progress"
	StatusError             = "error"
	StatusCheck             = "status_check"
	StatusFoundUseCases     = "found_cached_use_cases"
	StatusFoundInCache      = "found_cached_use_cases_from_cache"
	StatusNoCachedData      = "no_cached_data"
	StatusFoundReports      = "found_cached_reports"
	StatusNoReports         = "no_cached_reports"
	StatusFoundData         = "found_cached_data"
)

// DefaultPollSeconds is the interval suggested to clients polling a session.
const DefaultPollSeconds = 5

// Response is the body of POST /v1/transform. Fields are filled per action.
type Response struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	ErrorType string `json:"error_type,omitempty"`

	SessionID             string               `json:"session_id,omitempty"`
	SessionKey            string               `json:"session_key,omitempty"`
	ProjectID             string               `json:"project_id,omitempty"`
	UserID                string               `json:"user_id,omitempty"`
	ProcessingCompletedAt *time.Time           `json:"processing_completed_at,omitempty"`
	StatusTracking        *statusentity.Record `json:"status_tracking,omitempty"`

	CurrentStatus      *statusentity.Record `json:"current_status,omitempty"`
	PollingRecommended *bool                `json:"polling_recommended,omitempty"`
	NextPollSeconds    int                  `json:"next_poll_seconds,omitempty"`
	PollingInfo        *PollingInfo         `json:"polling_info,omitempty"`

	CompanyName         string                           `json:"company_name,omitempty"`
	CompanyURL          string                           `json:"company_url,omitempty"`
	CompanyProfile      *CompanyInfo                     `json:"company_profile,omitempty"`
	StructuredProfile   *usecasegenentity.CompanyProfile `json:"structured_company_profile,omitempty"`
	UseCases            []LegacyUseCase                  `json:"use_cases,omitempty"`
	StructuredUseCases  []usecasegenentity.UseCase       `json:"structured_use_cases,omitempty"`
	AvailableUseCaseIDs []string                         `json:"available_use_case_ids,omitempty"`
	TotalUseCases       int                              `json:"total_use_cases,omitempty"`
	ReportURL           string                           `json:"report_url,omitempty"`
	Enhancement         *Enhancement                     `json:"enhancement,omitempty"`
	NextAction          string                           `json:"next_action,omitempty"`

	SelectedUseCaseIDs []string        `json:"selected_use_case_ids,omitempty"`
	SelectedUseCases   []LegacyUseCase `json:"selected_use_cases,omitempty"`

	Reports    []ReportSummary  `json:"reports,omitempty"`
	Sessions   []SessionSummary `json:"sessions_summary,omitempty"`
	CachedData *Response        `json:"cached_data,omitempty"`

	Cache *CacheInfo `json:"_cache,omitempty"`
}

// PollingInfo tells a client how to follow a request that is already running.
type PollingInfo struct {
	PollAction          string `json:"poll_action"`
	PollFetchType       string `json:"poll_fetch_type"`
	PollIntervalSeconds int    `json:"poll_interval_seconds"`
	SessionID           string `json:"session_id"`
}

// Enhancement summarises which optional inputs shaped the result.
type Enhancement struct {
	WebSources         int      `json:"web_sources"`
	URLsScraped        []string `json:"urls_scraped,omitempty"`
	FilesProcessed     int      `json:"files_processed"`
	CustomContextUsed  bool     `json:"custom_context_used"`
	CustomContextType  string   `json:"custom_context_type,omitempty"`
	CustomFocusAreas   []string `json:"custom_focus_areas,omitempty"`
	ResearchMethod     string   `json:"research_method"`
	GenerationMethod   string   `json:"generation_method"`
	ReportFromTemplate bool     `json:"report_from_template,omitempty"`
}

// ReportSummary describes one stored report.
type ReportSummary struct {
	SessionID           string    `json:"session_id"`
	ReportURL           string    `json:"report_url"`
	CompanyName         string    `json:"company_name"`
	CompanyURL          string    `json:"company_url"`
	UseCaseCount        int       `json:"use_case_count"`
	AvailableUseCaseIDs []string  `json:"available_use_case_ids"`
	FilesProcessed      int       `json:"files_processed"`
	CustomContextUsed   bool      `json:"custom_context_used"`
	CreatedAt           time.Time `json:"created_at"`
}

// SessionSummary describes one stored session.
type SessionSummary struct {
	SessionID          string    `json:"session_id"`
	CreatedAt          time.Time `json:"timestamp"`
	HasUseCases        bool      `json:"has_use_cases"`
	HasReport          bool      `json:"has_report"`
	UseCaseCount       int       `json:"use_case_count"`
	SelectedUseCaseIDs []string  `json:"selected_use_cases"`
	ReportURL          string    `json:"report_url"`
	FilesProcessed     int       `json:"files_processed"`
	CustomContextUsed  bool      `json:"custom_context_used"`
	SuccessfulScrapes  int       `json:"successful_scrapes"`
}

// CacheInfo is attached to responses served from the result cache.
type CacheInfo struct {
	Hit      bool      `json:"hit"`
	CachedAt time.Time `json:"cached_at"`
	CacheKey string    `json:"cache_key"`
}
