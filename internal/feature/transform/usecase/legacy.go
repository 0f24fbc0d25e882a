package usecase

import (
	"fmt"
	"strings"

	"advisor_backend/internal/feature/transform/domain/entity"
	usecasegenentity "advisor_backend/internal/feature/usecasegen/domain/entity"
)

// sources records which optional inputs contributed to a run.
type sources struct {
	web       bool
	documents bool
	custom    bool
}

func (s sources) citations() []string {
	c := []string{"Business Analysis", "Transformation Strategy"}
	if s.web {
		c = append(c, "Web Intelligence")
	}
	if s.documents {
		c = append(c, "Document Analysis")
	}
	if s.custom {
		c = append(c, "Custom Context Analysis")
	}
	return c
}

// toLegacy flattens structured use cases into the API shape. Every entry links to the report.
func toLegacy(ucs []usecasegenentity.UseCase, reportURL string, src sources) []entity.LegacyUseCase {
	out := make([]entity.LegacyUseCase, 0, len(ucs))
	for _, uc := range ucs {
		out = append(out, entity.LegacyUseCase{
			ID:                     uc.ID,
			Title:                  uc.Title,
			Description:            uc.ProposedSolution,
			BusinessValue:          uc.BusinessValue,
			TechnicalRequirements:  uc.Services,
			Priority:               uc.Priority,
			Complexity:             uc.Complexity,
			Citations:              src.citations(),
			Services:               uc.Services,
			ImplementationApproach: strings.Join(uc.ImplementationPhases, "; "),
			EstimatedTimeline:      fmt.Sprintf("%d months", uc.TimelineMonths),
			CostEstimate:           fmt.Sprintf("$%d/month", uc.MonthlyCostUSD),
			CurrentImplementation:  uc.CurrentState,
			ProposedSolution:       uc.ProposedSolution,
			URL:                    reportURL,
		})
	}
	return out
}

func companyInfo(p usecasegenentity.CompanyProfile) *entity.CompanyInfo {
	return &entity.CompanyInfo{
		Name:              p.Name,
		Industry:          p.Industry,
		Description:       fmt.Sprintf("%s operating in %s", p.BusinessModel, p.Industry),
		Size:              p.CompanySize,
		Technologies:      p.TechnologyStack,
		BusinessModel:     p.BusinessModel,
		AdditionalContext: fmt.Sprintf("Transformation readiness: %s, Business stage: %s", p.CloudMaturity, p.GrowthStage),
	}
}
