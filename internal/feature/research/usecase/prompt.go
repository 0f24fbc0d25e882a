package usecase

import (
	"fmt"
	"strings"

	"advisor_backend/internal/feature/research/domain/entity"
)

// focusRule maps prompt keywords to a focus area. When several rules match,
// the context type of the last one wins.
type focusRule struct {
	keywords    []string
	focusArea   string
	contextType string
}

var focusRules = []focusRule{
	{[]string{"security", "compliance", "governance", "risk"}, "security_governance", entity.ContextSecurity},
	{[]string{"cost", "budget", "optimization", "efficiency"}, "cost_optimization", entity.ContextCost},
	{[]string{"customer", "experience", "user", "satisfaction"}, "customer_experience", entity.ContextCustomer},
	{[]string{"data", "analytics", "intelligence", "insights"}, "data_analytics", entity.ContextData},
	{[]string{"automation", "workflow", "process", "efficiency"}, "process_automation", entity.ContextAutomation},
	{[]string{"scale", "performance", "reliability", "availability"}, "scalability_performance", entity.ContextPerformance},
}

// ProcessPrompt analyses a free-form prompt into focus areas and a context block
// that is appended to the research and generation prompts.
func ProcessPrompt(prompt, companyName, companyContext string) *entity.PromptContext {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return &entity.PromptContext{
			ContextType:      entity.ContextNone,
			FocusAreas:       []string{},
			IntegrationNotes: "No custom prompt provided",
		}
	}

	lower := strings.ToLower(prompt)
	contextType := entity.ContextGeneral
	focus := []string{}
	for _, r := range focusRules {
		if containsAny(lower, r.keywords) {
			focus = append(focus, r.focusArea)
			contextType = r.contextType
		}
	}

	var requirements string
	if strings.Contains(lower, "must") || strings.Contains(lower, "requirement") {
		requirements = prompt
	}

	focusText := "General transformation"
	if len(focus) > 0 {
		focusText = strings.Join(focus, ", ")
	}
	reqText := requirements
	if reqText == "" {
		reqText = "None specified"
	}
	if companyContext == "" {
		companyContext = "Standard business analysis"
	}

	processed := fmt.Sprintf(`CUSTOM CONTEXT FOR %s:
%s

INTEGRATION NOTES:
- Focus Areas Identified: %s
- Context Type: %s
- Specific Requirements: %s
- Company Context: %s

Integrate this context into all analysis, research and use case generation so the recommendations follow the stated requirements and focus areas.
`, companyName, prompt, focusText, contextType, reqText, companyContext)

	return &entity.PromptContext{
		Original:             prompt,
		Processed:            processed,
		ContextType:          contextType,
		FocusAreas:           focus,
		SpecificRequirements: requirements,
		IntegrationNotes:     fmt.Sprintf("Custom prompt processed with %d focus areas identified", len(focus)),
	}
}

// WithResearchContext appends the custom context section to a research prompt.
func WithResearchContext(base string, pc *entity.PromptContext) string {
	if !pc.Active() {
		return base
	}
	return base + fmt.Sprintf(`

CUSTOM CONTEXT INTEGRATION:
%s
FOCUS AREAS TO EMPHASIZE:
%s

SPECIFIC REQUIREMENTS TO ADDRESS:
%s

Make sure all research, analysis and recommendations follow this context.
`, pc.Processed, joinOr(pc.FocusAreas, "General business transformation"), orDefault(pc.SpecificRequirements, "None specified"))
}

// WithGenerationContext appends the custom context section to a use case generation prompt.
func WithGenerationContext(base string, pc *entity.PromptContext) string {
	if !pc.Active() {
		return base
	}
	return base + fmt.Sprintf(`

CUSTOM CONTEXT FOR USE CASE GENERATION:
%s
PRIORITIZATION GUIDELINES:
- Context Type: %s
- Focus Areas: %s
- Specific Requirements: %s

MANDATORY ALIGNMENT:
Every use case must align with the custom context. Prioritise use cases that address the focus areas and requirements directly.
`, pc.Processed, orDefault(pc.ContextType, entity.ContextGeneral), joinOr(pc.FocusAreas, "General"), orDefault(pc.SpecificRequirements, "None"))
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func joinOr(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, ", ")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
