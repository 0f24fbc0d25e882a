package usecase

import (
	"fmt"
	"html"
	"strings"

	"advisor_backend/internal/feature/report/domain/entity"
)

const tagGuide = `XML TAGS:
- <heading_bold>Main report title</heading_bold>
- <sub-heading-bold>Major section title</sub-heading-bold>
- <sub-heading>Subsection title</sub-heading>
- <content>Main content paragraph with inline citations</content>
- <paragraph>Standalone paragraph</paragraph>
- <list>List container</list> with <bullet>Bullet item</bullet> or <number>Numbered item</number>
- <bold>Bold</bold>, <italic>Italic</italic>, <underline>Underline</underline>
- <citation_name>Source Name</citation_name><citation_url>https://source-url</citation_url> inline within content
`

func buildReportPrompt(in Input, cites []entity.Citation) string {
	p := in.Profile
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a comprehensive business transformation report for %s using XML-like tags for structured formatting.\n\n", p.Name)
	b.WriteString(tagGuide)
	fmt.Fprintf(&b, `
COMPANY CONTEXT:
- Industry: %s
- Business Model: %s
- Company Size: %s
- Technology Maturity: %s
- Growth Stage: %s
`, p.Industry, p.BusinessModel, p.CompanySize, p.CloudMaturity, p.GrowthStage)

	if in.Research != nil {
		fmt.Fprintf(&b, "\nRESEARCH INTELLIGENCE:\n%s\n", clip(in.Research.Text, 800))
		if in.Research.SuccessfulScrapes > 0 {
			fmt.Fprintf(&b, "This report incorporates insights from %d web sources.\n", in.Research.SuccessfulScrapes)
		}
	}
	if in.Documents != "" {
		b.WriteString("This report incorporates insights from uploaded company documents.\n")
	}
	if in.Prompt.Active() {
		fmt.Fprintf(&b, "Address the specified focus areas: %s.\n", strings.Join(in.Prompt.FocusAreas, ", "))
	}

	b.WriteString("\n")
	b.WriteString(formatCitations(cites))
	fmt.Fprintf(&b, "\nCOMPREHENSIVE ANALYSIS REQUIRED FOR ALL %d USE CASES:\n", len(in.UseCases))
	for i, uc := range in.UseCases {
		fmt.Fprintf(&b, `%d. %s
   - Category: %s
   - Current State: %s
   - Proposed Solution: %s
   - Business Value: %s
   - Services: %s
   - Implementation Phases: %s
   - Timeline: %d months
   - Monthly Cost: $%d
   - Priority: %s, Complexity: %s, Risk Level: %s
   - Success Metrics: %s
`, i+1, uc.Title, uc.Category, uc.CurrentState, uc.ProposedSolution, uc.BusinessValue,
			strings.Join(uc.Services, ", "), strings.Join(uc.ImplementationPhases, ", "),
			uc.TimelineMonths, uc.MonthlyCostUSD, uc.Priority, uc.Complexity, uc.RiskLevel,
			strings.Join(uc.SuccessMetrics, ", "))
	}

	b.WriteString(`
REPORT STRUCTURE:
1. Executive Summary and Strategic Overview
2. Strategic Context and Business Position
3. Use Case Portfolio Analysis
4. Detailed Use Case Analysis (one subsection per use case)
5. Implementation Roadmap
6. Financial Analysis and ROI Projections (qualitative or percentages only)
7. Success Metrics and Risk Management
8. Conclusion and Next Steps

REQUIREMENTS:
- Do not repeat content and do not stop mid-sentence.
- Distribute the citations naturally through the report.
- Tags must be balanced; every <paragraph>, <content> and <list> must be closed.
- Finish the report with a closing </content> or </paragraph> tag.
`)
	return b.String()
}

func buildSimplifiedPrompt(in Input, cites []entity.Citation) string {
	p := in.Profile
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a concise but complete business transformation report for %s using XML-like tags.\n\n", p.Name)
	b.WriteString(tagGuide)
	fmt.Fprintf(&b, "\nCompany: %s (%s)\nUse Cases: %d transformation initiatives:\n", p.Name, p.Industry, len(in.UseCases))
	for _, uc := range in.UseCases {
		fmt.Fprintf(&b, "- %s: %s\n", uc.Title, uc.BusinessValue)
	}
	b.WriteString(`
Sections: Executive Summary, Strategic Context, Use Case Portfolio, Detailed Use Case Analysis (one paragraph per use case), Implementation Roadmap, Financial Analysis, Success Metrics, Conclusion.
Keep each section concise and avoid repetition. Ensure the report is complete.
`)
	b.WriteString(formatCitations(cites))
	return b.String()
}

// FallbackReportXML builds a complete report from the structured data alone.
func FallbackReportXML(in Input, cites []entity.Citation) string {
	p := in.Profile
	name := html.EscapeString(p.Name)
	industry := html.EscapeString(p.Industry)

	var notes []string
	if in.Research != nil && in.Research.SuccessfulScrapes > 0 {
		notes = append(notes, fmt.Sprintf("Enhanced with Web Intelligence from %d sources", in.Research.SuccessfulScrapes))
	}
	if in.Documents != "" {
		notes = append(notes, "Enhanced with Document Analysis")
	}
	if in.Prompt.Active() {
		notes = append(notes, fmt.Sprintf("Aligned with Custom Context (%s)", in.Prompt.ContextType))
	}
	enhancement := ""
	if len(notes) > 0 {
		enhancement = " (" + strings.Join(notes, ", ") + ")"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<heading_bold>GenAI Transformation Strategy for %s</heading_bold>\n\n", name)

	b.WriteString("<sub-heading-bold>Executive Summary</sub-heading-bold>\n")
	fmt.Fprintf(&b, "<content>This strategy positions <bold>%s</bold> for innovation in <italic>%s</italic>%s. The analysis identifies <bold>%d high-impact initiatives</bold> that deliver measurable business value within 6 to 18 months %s.</content>\n\n",
		name, industry, html.EscapeString(enhancement), len(in.UseCases), citationTag(cites, 0))

	b.WriteString("<sub-heading-bold>Section 1: Strategic Context and Business Position</sub-heading-bold>\n")
	fmt.Fprintf(&b, "<content><bold>%s</bold> operates with a <italic>%s</italic> business model at <italic>%s</italic> scale and is in the <italic>%s</italic> growth stage %s.</content>\n",
		name, html.EscapeString(p.BusinessModel), html.EscapeString(p.CompanySize), html.EscapeString(p.GrowthStage), citationTag(cites, 1))
	fmt.Fprintf(&b, "<paragraph><bold>Technology Maturity</bold>: %s maturity with capabilities in %s. <bold>Strategic Challenges</bold>: %s.</paragraph>\n\n",
		html.EscapeString(p.CloudMaturity), html.EscapeString(strings.Join(p.TechnologyStack, ", ")), html.EscapeString(strings.Join(p.PrimaryChallenges, ", ")))

	b.WriteString("<sub-heading-bold>Section 2: Use Case Portfolio Analysis</sub-heading-bold>\n")
	fmt.Fprintf(&b, "<content>The portfolio balances quick wins with foundational capabilities across %d initiatives:</content>\n<list>\n", len(in.UseCases))
	for _, uc := range in.UseCases {
		fmt.Fprintf(&b, "<bullet><bold>%s</bold> - %s: %s</bullet>\n", html.EscapeString(uc.Title), html.EscapeString(uc.Category), html.EscapeString(uc.BusinessValue))
	}
	b.WriteString("</list>\n\n")

	b.WriteString("<sub-heading-bold>Section 3: Detailed Use Case Analysis</sub-heading-bold>\n")
	for i, uc := range in.UseCases {
		fmt.Fprintf(&b, "<sub-heading>3.%d: %s</sub-heading>\n", i+1, html.EscapeString(uc.Title))
		fmt.Fprintf(&b, "<content><bold>Current State</bold>: %s</content>\n", html.EscapeString(uc.CurrentState))
		fmt.Fprintf(&b, "<paragraph><bold>Proposed Solution</bold>: %s %s</paragraph>\n", html.EscapeString(uc.ProposedSolution), citationTag(cites, i+1))
		fmt.Fprintf(&b, "<list>\n<bullet><bold>Services</bold>: %s</bullet>\n<bullet><bold>Phases</bold>: %s</bullet>\n<bullet><bold>Timeline</bold>: %d months, <bold>Monthly Cost</bold>: $%d</bullet>\n<bullet><bold>Priority</bold>: %s, <bold>Complexity</bold>: %s, <bold>Risk</bold>: %s</bullet>\n<bullet><bold>Success Metrics</bold>: %s</bullet>\n</list>\n",
			html.EscapeString(strings.Join(uc.Services, ", ")), html.EscapeString(strings.Join(uc.ImplementationPhases, ", ")),
			uc.TimelineMonths, uc.MonthlyCostUSD, uc.Priority, uc.Complexity, uc.RiskLevel,
			html.EscapeString(strings.Join(uc.SuccessMetrics, ", ")))
	}
	b.WriteString("\n")

	b.WriteString("<sub-heading-bold>Section 4: Implementation Roadmap</sub-heading-bold>\n")
	b.WriteString("<list>\n<number><bold>Foundation and Quick Wins (Months 1-3)</bold>: establish governance, run pilots and validate KPIs.</number>\n<number><bold>Core Transformation (Months 4-9)</bold>: scale pilots into production and integrate with enterprise systems.</number>\n<number><bold>Optimization (Months 10-18)</bold>: expand advanced capabilities and continuous improvement.</number>\n</list>\n\n")

	b.WriteString("<sub-heading-bold>Section 5: Financial Analysis and ROI Projections</sub-heading-bold>\n")
	total := 0
	for _, uc := range in.UseCases {
		total += uc.MonthlyCostUSD
	}
	fmt.Fprintf(&b, "<content>The combined run-rate of the portfolio is approximately <underline>$%d per month</underline> at full deployment. Staggered delivery keeps early investment low while quick wins fund later phases %s.</content>\n\n", total, citationTag(cites, 2))

	b.WriteString("<sub-heading-bold>Section 6: Success Metrics and Performance Monitoring</sub-heading-bold>\n")
	b.WriteString("<paragraph>Each initiative is tracked with leading and lagging indicators covering financial, operational, customer and technical outcomes, reviewed monthly by a steering committee.</paragraph>\n\n")

	b.WriteString("<sub-heading-bold>Section 7: Conclusion and Strategic Imperatives</sub-heading-bold>\n")
	fmt.Fprintf(&b, "<content><bold>Success requires disciplined execution</bold> that focuses on quick wins while building long-term capabilities for %s %s.</content>", name, citationTag(cites, 3))
	return b.String()
}
