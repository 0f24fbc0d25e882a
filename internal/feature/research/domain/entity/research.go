// Package entity defines the inputs and outputs of the research stage.
package entity

import "time"

// Context types assigned to a custom prompt.
const (
	ContextNone        = "none"
	ContextGeneral     = "general"
	ContextSecurity    = "security_focused"
	ContextCost        = "cost_focused"
	ContextCustomer    = "customer_focused"
	ContextData        = "data_focused"
	ContextAutomation  = "automation_focused"
	ContextPerformance = "performance_focused"
)

// PromptContext is the analysed form of a user supplied prompt.
type PromptContext struct {
	Original             string   `json:"original_prompt"`
	Processed            string   `json:"processed_prompt"`
	ContextType          string   `json:"context_type"`
	FocusAreas           []string `json:"focus_areas"`
	SpecificRequirements string   `json:"specific_requirements"`
	IntegrationNotes     string   `json:"integration_notes"`
}

// Active reports whether the prompt should shape research and generation.
func (p *PromptContext) Active() bool {
	return p != nil && p.Processed != ""
}

// SearchResult is one hit from the web search backend.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// ScrapeResult is the outcome of fetching one page.
type ScrapeResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Length  int    `json:"length"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// WebResearch aggregates the pages scraped for a company.
type WebResearch struct {
	Content            string         `json:"research_content"`
	URLsScraped        []string       `json:"urls_scraped"`
	TotalURLsAttempted int            `json:"total_urls_attempted"`
	SuccessfulScrapes  int            `json:"successful_scrapes"`
	Results            []ScrapeResult `json:"scraped_results"`
	QueriesUsed        []string       `json:"search_queries_used"`
}

// Document is the text extracted from one uploaded file.
type Document struct {
	URL   string `json:"url"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// Research methods recorded on Findings.
const (
	MethodWebAndLLM = "web_scraping_with_search_and_llm_analysis"
	MethodFallback  = "fallback_business_analysis_with_web_scraping"
)

// Findings is the result of the research stage.
type Findings struct {
	Text               string       `json:"research_findings"`
	Timestamp          time.Time    `json:"research_timestamp"`
	Method             string       `json:"research_method"`
	CompanyURL         string       `json:"company_url_analyzed"`
	URLsScraped        []string     `json:"urls_scraped"`
	TotalURLsProcessed int          `json:"total_urls_processed"`
	Web                *WebResearch `json:"web_research_data,omitempty"`
	SuccessfulScrapes  int          `json:"successful_web_scrapes"`
	DocumentsUsed      bool         `json:"file_content_used"`
	DocumentLength     int          `json:"file_content_length"`
	CustomContextUsed  bool         `json:"custom_context_used"`
	CustomContextType  string       `json:"custom_context_type,omitempty"`
	CustomFocusAreas   []string     `json:"custom_focus_areas"`
}

// ScrapeResults returns the page results of the web research, if any.
func (f *Findings) ScrapeResults() []ScrapeResult {
	if f == nil || f.Web == nil {
		return nil
	}
	return f.Web.Results
}
