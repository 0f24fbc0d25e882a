package usecase

import (
	"fmt"
	"slices"

	"advisor_backend/internal/feature/usecasegen/domain/entity"
)

const (
	minUseCases       = 5
	supplementTarget  = 8
	maxUseCases       = 10
	supplementPrefix  = "business-transformation-supplement-"
	fallbackIDPattern = "business-transformation-fallback-%d"
)

var supplementTemplates = []entity.UseCase{
	{
		Title:                "Advanced Business Intelligence and Analytics Platform",
		Category:             "Data Analytics",
		CurrentState:         "Limited data insights and analytics capabilities with fragmented data sources and manual reporting processes",
		ProposedSolution:     "Implement a business intelligence platform that consolidates data from multiple sources to provide real-time insights and predictive analytics. It enables data-driven decisions across departments and identifies new revenue opportunities, replacing fragmented data and manual reporting with a unified analytics platform with machine learning capabilities.",
		Services:             []string{"Redshift", "QuickSight", "Glue", "SageMaker"},
		BusinessValue:        "Data-driven decision making and strategic insights with 40-60% improvement in decision speed and accuracy",
		ImplementationPhases: []string{"Data Strategy", "Platform Setup", "Analytics Development", "Training"},
		TimelineMonths:       8,
		MonthlyCostUSD:       4000,
		Complexity:           "High",
		Priority:             "High",
		RiskLevel:            "Medium",
		SuccessMetrics:       []string{"Data Utilization", "Decision Speed", "Insight Generation", "Report Accuracy", "User Adoption"},
	},
	{
		Title:                "Customer Experience Optimization and Personalization",
		Category:             "Customer Experience",
		CurrentState:         "Fragmented customer touchpoints and limited personalization with inconsistent service delivery across channels",
		ProposedSolution:     "Develop a unified customer experience platform that integrates all customer touchpoints and personalizes interactions based on behavior and preferences. It improves satisfaction and retention and drives revenue growth through better engagement across channels.",
		Services:             []string{"Personalize", "Pinpoint", "Connect", "Comprehend"},
		BusinessValue:        "Improved customer satisfaction and retention with 30-50% improvement in customer engagement metrics",
		ImplementationPhases: []string{"Journey Mapping", "Platform Setup", "Personalization", "Optimization"},
		TimelineMonths:       6,
		MonthlyCostUSD:       3500,
		Complexity:           "Medium",
		Priority:             "High",
		RiskLevel:            "Low",
		SuccessMetrics:       []string{"Customer Satisfaction", "Retention Rate", "Engagement Score", "Response Time", "Personalization Accuracy"},
	},
	{
		Title:                "Intelligent Process Automation and Workflow Optimization",
		Category:             "Process Automation",
		CurrentState:         "Manual processes causing inefficiencies and errors with limited automation and workflow optimization",
		ProposedSolution:     "Implement intelligent automation across key business processes to reduce manual effort and errors. Streamlined workflows lower operational costs and let employees focus on higher-value work that drives growth.",
		Services:             []string{"Step Functions", "Lambda", "API Gateway", "SQS"},
		BusinessValue:        "Reduced operational costs and improved accuracy with 35-55% efficiency improvements and error reduction",
		ImplementationPhases: []string{"Process Analysis", "Automation Design", "Implementation", "Monitoring"},
		TimelineMonths:       5,
		MonthlyCostUSD:       2500,
		Complexity:           "Medium",
		Priority:             "Critical",
		RiskLevel:            "Medium",
		SuccessMetrics:       []string{"Process Efficiency", "Error Reduction", "Cost Savings", "Processing Time", "User Productivity"},
	},
}

var fallbackTemplates = []entity.UseCase{
	{
		Title:                "Digital Platform Modernization and Cloud Migration",
		Category:             "Platform Modernization",
		CurrentState:         "Legacy systems limiting business agility and innovation",
		ProposedSolution:     "Modernize legacy systems and migrate to a cloud-native architecture to improve agility and operational efficiency. The transformation enables faster feature delivery and better reliability at lower operating cost while positioning the organization for growth.",
		Services:             []string{"ECS", "API Gateway", "Lambda", "RDS", "CloudFront"},
		BusinessValue:        "Improved agility, scalability, and time-to-market",
		ImplementationPhases: []string{"Platform Assessment", "Architecture Design", "Migration", "Optimization"},
		TimelineMonths:       10,
		MonthlyCostUSD:       6000,
		Complexity:           "High",
		Priority:             "Critical",
		RiskLevel:            "Medium",
		SuccessMetrics:       []string{"System Performance", "Deployment Speed", "User Satisfaction"},
	},
	{
		Title:                "Enterprise Data Analytics and Business Intelligence",
		Category:             "Data Analytics",
		CurrentState:         "Limited data insights affecting strategic decision making",
		ProposedSolution:     "Establish a data analytics platform that provides real-time insights and predictive analytics. It enables data-driven decisions and surfaces new business opportunities through advanced analytics and machine learning.",
		Services:             []string{"Redshift", "QuickSight", "Kinesis", "Glue", "SageMaker"},
		BusinessValue:        "Data-driven decisions and competitive intelligence",
		ImplementationPhases: []string{"Data Strategy", "Platform Setup", "Analytics Development", "Training"},
		TimelineMonths:       8,
		MonthlyCostUSD:       4500,
		Complexity:           "High",
		Priority:             "High",
		RiskLevel:            "Medium",
		SuccessMetrics:       []string{"Data Utilization", "Decision Speed", "Business Insights"},
	},
	{
		Title:                "Comprehensive Security and Compliance Framework",
		Category:             "Security & Compliance",
		CurrentState:         "Security gaps and compliance challenges",
		ProposedSolution:     "Implement a security framework with automated compliance monitoring and threat detection. Continuous monitoring and response protect business assets and customer data and keep the organization compliant.",
		Services:             []string{"Security Hub", "Config", "GuardDuty", "Inspector", "CloudTrail"},
		BusinessValue:        "Enhanced security posture and regulatory compliance",
		ImplementationPhases: []string{"Security Assessment", "Framework Design", "Implementation", "Monitoring"},
		TimelineMonths:       6,
		MonthlyCostUSD:       3500,
		Complexity:           "Medium",
		Priority:             "Critical",
		RiskLevel:            "Low",
		SuccessMetrics:       []string{"Security Score", "Compliance Rating", "Incident Reduction"},
	},
	{
		Title:                "Unified Customer Experience Platform",
		Category:             "Customer Experience",
		CurrentState:         "Fragmented customer interactions and limited personalization",
		ProposedSolution:     "Create a customer experience platform that integrates all touchpoints and personalizes interactions through AI-powered recommendations and real-time engagement. It raises satisfaction and retention and drives revenue growth.",
		Services:             []string{"Personalize", "Pinpoint", "Connect", "Comprehend", "Lex"},
		BusinessValue:        "Improved customer satisfaction and increased retention",
		ImplementationPhases: []string{"Journey Mapping", "Platform Setup", "Personalization", "Optimization"},
		TimelineMonths:       7,
		MonthlyCostUSD:       4000,
		Complexity:           "Medium",
		Priority:             "High",
		RiskLevel:            "Low",
		SuccessMetrics:       []string{"Customer Satisfaction", "Retention Rate", "Engagement Score"},
	},
	{
		Title:                "Intelligent Process Automation and Workflow Optimization",
		Category:             "Process Automation",
		CurrentState:         "Manual processes causing inefficiencies and errors",
		ProposedSolution:     "Implement intelligent process automation across key workflows to reduce manual effort and errors. Streamlined operations cut costs and free employees for higher-value strategic work.",
		Services:             []string{"Step Functions", "Lambda", "API Gateway", "SQS", "EventBridge"},
		BusinessValue:        "Reduced operational costs and improved accuracy",
		ImplementationPhases: []string{"Process Analysis", "Automation Design", "Implementation", "Monitoring"},
		TimelineMonths:       5,
		MonthlyCostUSD:       2800,
		Complexity:           "Medium",
		Priority:             "High",
		RiskLevel:            "Medium",
		SuccessMetrics:       []string{"Process Efficiency", "Error Reduction", "Cost Savings"},
	},
}

// Supplement tops up a short list toward eight use cases from the supplement templates.
func Supplement(current []entity.UseCase) []entity.UseCase {
	if len(current) >= minUseCases {
		return current
	}
	needed := min(max(0, supplementTarget-len(current)), len(supplementTemplates))
	out := slices.Clone(current)
	for i := range needed {
		uc := cloneUseCase(supplementTemplates[i])
		uc.ID = fmt.Sprintf("%s%d", supplementPrefix, len(current)+i+1)
		out = append(out, uc)
	}
	return out
}

// FallbackUseCases returns the template use cases used when generation fails.
func FallbackUseCases() []entity.UseCase {
	out := make([]entity.UseCase, 0, len(fallbackTemplates))
	for i, t := range fallbackTemplates {
		uc := cloneUseCase(t)
		uc.ID = fmt.Sprintf(fallbackIDPattern, i+1)
		out = append(out, uc)
	}
	return out
}

func cloneUseCase(uc entity.UseCase) entity.UseCase {
	uc.Services = slices.Clone(uc.Services)
	uc.ImplementationPhases = slices.Clone(uc.ImplementationPhases)
	uc.SuccessMetrics = slices.Clone(uc.SuccessMetrics)
	return uc
}
