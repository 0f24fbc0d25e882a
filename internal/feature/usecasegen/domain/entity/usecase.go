// Package entity defines the company profile and transformation use case records.
package entity

// CompanyProfile は LLM が推定した企業プロファイルです。
type CompanyProfile struct {
	Name                   string   `json:"name"`
	Industry               string   `json:"industry"`
	BusinessModel          string   `json:"business_model"`
	CompanySize            string   `json:"company_size"`
	TechnologyStack        []string `json:"technology_stack"`
	CloudMaturity          string   `json:"cloud_maturity"`
	PrimaryChallenges      []string `json:"primary_challenges"`
	GrowthStage            string   `json:"growth_stage"`
	ComplianceRequirements []string `json:"compliance_requirements"`
}

// DefaultProfile returns the profile used when the LLM omits fields or fails.
func DefaultProfile(name string) CompanyProfile {
	return CompanyProfile{
		Name:                   name,
		Industry:               "Technology & Innovation",
		BusinessModel:          "Digital Platform and Services",
		CompanySize:            "Enterprise",
		TechnologyStack:        []string{"Cloud Infrastructure", "Digital Platforms", "Data Analytics", "API Services"},
		CloudMaturity:          "Advanced",
		PrimaryChallenges:      []string{"Digital Transformation", "Market Expansion", "Operational Efficiency"},
		GrowthStage:            "Scaling",
		ComplianceRequirements: []string{"Data Privacy", "Security Standards", "Regulatory Compliance"},
	}
}

// Allowed enumeration values.
var (
	Complexities = []string{"Low", "Medium", "High"}
	Priorities   = []string{"Low", "Medium", "High", "Critical"}
	RiskLevels   = []string{"Low", "Medium", "High"}
)

// UseCase は構造化されたビジネス変革ユースケースです。
type UseCase struct {
	ID                   string   `json:"dynamic_id"`
	Title                string   `json:"title"`
	Category             string   `json:"category"`
	CurrentState         string   `json:"current_state"`
	ProposedSolution     string   `json:"proposed_solution"`
	Services             []string `json:"primary_aws_services"`
	BusinessValue        string   `json:"business_value"`
	ImplementationPhases []string `json:"implementation_phases"`
	TimelineMonths       int      `json:"timeline_months"`
	MonthlyCostUSD       int      `json:"monthly_cost_usd"`
	Complexity           string   `json:"complexity"`
	Priority             string   `json:"priority"`
	RiskLevel            string   `json:"risk_level"`
	SuccessMetrics       []string `json:"success_metrics"`
}

// Generation methods reported with the generated use cases.
const (
	MethodGenerated = "llm_generated"
	MethodFallback  = "fallback_templates"
)
