package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"advisor_backend/internal/feature/report/domain/entity"
	researchentity "advisor_backend/internal/feature/research/domain/entity"
)

const (
	minCitationTitle = 10
	maxCitationTitle = 80
	minWebCitations  = 5
	maxPromptCites   = 15
)

var navPrefix = regexp.MustCompile(`^(Home|About|Contact|Services|Products)\s*[-|]?\s*`)

// consultingCitations are used when web research produced no usable sources.
var consultingCitations = []entity.Citation{
	{Name: "McKinsey Digital Transformation Research", URL: "https://www.mckinsey.com/capabilities/mckinsey-digital"},
	{Name: "Deloitte Technology Transformation", URL: "https://www.deloitte.com/global/en/services/consulting/services/technology-transformation.html"},
	{Name: "AWS Digital Transformation Guide", URL: "https://aws.amazon.com/digital-transformation/"},
	{Name: "PwC Digital Strategy Framework", URL: "https://www.pwc.com/us/en/services/consulting/digital-strategy.html"},
	{Name: "BCG Digital Transformation", URL: "https://www.bcg.com/capabilities/digital-technology-data/digital-transformation"},
	{Name: "Gartner Technology Trends", URL: "https://www.gartner.com/en/topics/technology-trends"},
	{Name: "Forrester Digital Transformation", URL: "https://www.forrester.com/report-category/digital-transformation/"},
	{Name: "Accenture Technology Vision", URL: "https://www.accenture.com/us-en/insights/technology/technology-trends-2024"},
	{Name: "EY Technology Consulting", URL: "https://www.ey.com/en_us/technology-consulting"},
	{Name: "Bain Digital Transformation", URL: "https://www.bain.com/insights/topics/digital-transformation/"},
	{Name: "Capgemini Digital Innovation", URL: "https://www.capgemini.com/services/digital-innovation/"},
}

// Citations turns successful scrape results into report sources.
// With no scrape results at all the consulting list is returned; with fewer than
// five usable sources the first three consulting sources are appended.
func Citations(scrapes []researchentity.ScrapeResult) []entity.Citation {
	if len(scrapes) == 0 {
		return append([]entity.Citation(nil), consultingCitations...)
	}

	var out []entity.Citation
	for _, r := range scrapes {
		title := strings.TrimSpace(r.Title)
		link := strings.TrimSpace(r.URL)
		if !r.Success || title == "" || link == "" {
			continue
		}
		if utf8.RuneCountInString(title) < minCitationTitle || !strings.HasPrefix(link, "http") {
			continue
		}
		name := navPrefix.ReplaceAllString(title, "")
		if utf8.RuneCountInString(name) > maxCitationTitle {
			name = string([]rune(name)[:maxCitationTitle-3]) + "..."
		}
		out = append(out, entity.Citation{Name: name, URL: link, FullName: title})
	}
	if len(out) < minWebCitations {
		out = append(out, consultingCitations[:3]...)
	}
	return out
}

// citationTag renders the inline tag pair for citation i, cycling through the list.
func citationTag(cites []entity.Citation, i int) string {
	if len(cites) == 0 {
		return ""
	}
	c := cites[i%len(cites)]
	return "<citation_name>" + c.Name + "</citation_name><citation_url>" + c.URL + "</citation_url>"
}

func formatCitations(cites []entity.Citation) string {
	if len(cites) == 0 {
		return "No web citations available."
	}
	var b strings.Builder
	b.WriteString("REAL WEB CITATIONS TO USE THROUGHOUT THE REPORT:\n")
	for i, c := range cites {
		if i == maxPromptCites {
			break
		}
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, c.Name, c.URL)
	}
	return b.String()
}
