package usecase

import "fmt"

// BuildSearchQueries returns the web search queries for a company, base queries first.
func BuildSearchQueries(companyName string, focusAreas []string) []string {
	queries := []string{
		fmt.Sprintf("%s company business model", companyName),
		fmt.Sprintf("%s products services", companyName),
		fmt.Sprintf("%s industry analysis", companyName),
		fmt.Sprintf("%s technology stack", companyName),
		fmt.Sprintf("%s recent news", companyName),
	}
	for _, area := range focusAreas {
		queries = append(queries, fmt.Sprintf("%s %s", companyName, area))
	}
	return queries
}
