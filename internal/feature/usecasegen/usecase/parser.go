package usecase

import (
	"fmt"
	"log/slog"

	"advisor_backend/internal/feature/usecasegen/domain/entity"
)

const (
	maxServices    = 7
	maxPhases      = 6
	maxMetrics     = 5
	minTitleLen    = 5
	minSolutionLen = 10
)

var (
	defaultServices = []string{"Lambda", "S3", "CloudWatch"}
	defaultPhases   = []string{"Assessment", "Design", "Implementation", "Optimization"}
	defaultMetrics  = []string{"Business Performance", "Cost Reduction", "Efficiency Improvement"}
)

// ParseUseCases extracts every <usecase> block of an LLM response.
// Missing or invalid fields take their defaults and numeric fields are clamped.
func ParseUseCases(text string) []entity.UseCase {
	blocks := tagBlocks("usecase", text)
	out := make([]entity.UseCase, 0, len(blocks))
	seen := make(map[string]bool, len(blocks))
	for i, block := range blocks {
		uc := parseUseCase(block, i)
		if seen[uc.ID] {
			uc.ID = fmt.Sprintf("%s-%d", uc.ID, i)
		}
		seen[uc.ID] = true
		out = append(out, uc)
	}
	slog.Info("parsed use case blocks", "blocks", len(blocks))
	return out
}

func parseUseCase(block string, index int) entity.UseCase {
	title := tagText("name", block, "")
	if len(title) < minTitleLen {
		title = fmt.Sprintf("Business Transformation Initiative %d", index+1)
	}

	solution := tagText("description", block, "")
	if solution == "" {
		solution = tagText("proposed_solution", block, "Strategic transformation solution with technology enablers")
	}
	if len(solution) < minSolutionLen {
		solution = "Strategic transformation solution with technology enablers to drive business value"
	}

	return entity.UseCase{
		ID:                   tagText("id", block, fmt.Sprintf("business-transformation-%d", index)),
		Title:                title,
		Category:             tagText("category", block, "Business Optimization"),
		CurrentState:         tagText("current_state", block, "Current business processes with optimization opportunities"),
		ProposedSolution:     solution,
		Services:             capList(tagList("aws_services", block, defaultServices), maxServices),
		BusinessValue:        tagText("business_value", block, "Enhanced business performance and competitive advantage"),
		ImplementationPhases: capList(tagList("implementation_phases", block, defaultPhases), maxPhases),
		TimelineMonths:       clamp(tagInt("timeline_months", block, 6), 1, 24),
		MonthlyCostUSD:       clamp(tagInt("monthly_cost_usd", block, 3000), 500, 50000),
		Complexity:           oneOf(tagText("complexity", block, ""), entity.Complexities, "Medium"),
		Priority:             oneOf(tagText("priority", block, ""), entity.Priorities, "High"),
		RiskLevel:            oneOf(tagText("risk_level", block, ""), entity.RiskLevels, "Medium"),
		SuccessMetrics:       capList(tagList("success_metrics", block, defaultMetrics), maxMetrics),
	}
}
