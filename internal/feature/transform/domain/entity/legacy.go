package entity

// LegacyUseCase is the flat use case shape returned to API clients.
type LegacyUseCase struct {
	ID                     string   `json:"id"`
	Title                  string   `json:"title"`
	Description            string   `json:"description"`
	BusinessValue          string   `json:"business_value"`
	TechnicalRequirements  []string `json:"technical_requirements"`
	Priority               string   `json:"priority"`
	Complexity             string   `json:"complexity"`
	Citations              []string `json:"citations"`
	Services               []string `json:"aws_services"`
	ImplementationApproach string   `json:"implementation_approach"`
	EstimatedTimeline      string   `json:"estimated_timeline"`
	CostEstimate           string   `json:"cost_estimate"`
	CurrentImplementation  string   `json:"current_implementation"`
	ProposedSolution       string   `json:"proposed_solution"`
	URL                    string   `json:"url"`
}

// CompanyInfo is the flat company profile returned to API clients.
type CompanyInfo struct {
	Name              string   `json:"name"`
	URL               string   `json:"url"`
	Industry          string   `json:"industry"`
	Description       string   `json:"description"`
	Size              string   `json:"size"`
	Technologies      []string `json:"technologies"`
	BusinessModel     string   `json:"business_model"`
	AdditionalContext string   `json:"additional_context"`
}
