package entity

import (
	"time"

	researchentity "advisor_backend/internal/feature/research/domain/entity"
	usecasegenentity "advisor_backend/internal/feature/usecasegen/domain/entity"
)

// Session is the result of a start run, kept for later selection and fetches.
type Session struct {
	SessionID          string                          `json:"session_id"`
	SessionKey         string                          `json:"session_key"`
	CompanyName        string                          `json:"company_name"`
	CompanyURL         string                          `json:"company_url"`
	ProjectID          string                          `json:"project_id"`
	UserID             string                          `json:"user_id"`
	Profile            usecasegenentity.CompanyProfile `json:"company_profile"`
	UseCases           []usecasegenentity.UseCase      `json:"structured_use_cases"`
	LegacyUseCases     []LegacyUseCase                 `json:"use_cases"`
	GenerationMethod   string                          `json:"generation_method"`
	ReportURL          string                          `json:"report_url"`
	SelectedUseCaseIDs []string                        `json:"selected_use_case_ids,omitempty"`
	FilesProcessed     int                             `json:"files_processed"`
	Prompt             *researchentity.PromptContext   `json:"custom_context,omitempty"`
	URLsScraped        []string                        `json:"urls_scraped,omitempty"`
	SuccessfulScrapes  int                             `json:"successful_scrapes"`
	CreatedAt          time.Time                       `json:"created_at"`
	UpdatedAt          time.Time                       `json:"updated_at"`
}

// UseCaseIDs returns the ids of the generated use cases in order.
func (s *Session) UseCaseIDs() []string {
	ids := make([]string, len(s.UseCases))
	for i, uc := range s.UseCases {
		ids[i] = uc.ID
	}
	return ids
}
