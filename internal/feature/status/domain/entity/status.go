// Package entity defines the status records written while a research session runs.
package entity

import (
	"fmt"
	"time"
)

// Checkpoint is a named pipeline stage.
type Checkpoint string

const (
	CheckpointInitiated               Checkpoint = "initiated"
	CheckpointCustomPromptProcessing  Checkpoint = "custom_prompt_processing"
	CheckpointFileParsingStarted      Checkpoint = "file_parsing_started"
	CheckpointFileParsingCompleted    Checkpoint = "file_parsing_completed"
	CheckpointWebScrapingStarted      Checkpoint = "web_scraping_started"
	CheckpointWebScrapingInProgress   Checkpoint = "web_scraping_in_progress"
	CheckpointWebScrapingCompleted    Checkpoint = "web_scraping_completed"
	CheckpointResearchStarted         Checkpoint = "research_started"
	CheckpointResearchInProgress      Checkpoint = "research_in_progress"
	CheckpointResearchCompleted       Checkpoint = "research_completed"
	CheckpointAgentAnalyzing          Checkpoint = "agent_analyzing"
	CheckpointUseCasesGenerating      Checkpoint = "use_cases_generating"
	CheckpointUseCasesGenerated       Checkpoint = "use_cases_generated"
	CheckpointAssessmentStarted       Checkpoint = "wafr_assessment_started"
	CheckpointAssessmentProcessing    Checkpoint = "wafr_processing"
	CheckpointAssessmentCompleted     Checkpoint = "wafr_completed"
	CheckpointReportGenerationStarted Checkpoint = "report_generation_started"
	CheckpointReportGenerated         Checkpoint = "report_generation_completed"
	CheckpointCompleted               Checkpoint = "completed"
	CheckpointError                   Checkpoint = "error"

	// CheckpointUnknown is reported for sessions that have no record.
	CheckpointUnknown Checkpoint = "unknown"
)

// Checkpoints lists every stage in pipeline order.
var Checkpoints = []Checkpoint{
	CheckpointInitiated, CheckpointCustomPromptProcessing,
	CheckpointFileParsingStarted, CheckpointFileParsingCompleted,
	CheckpointWebScrapingStarted, CheckpointWebScrapingInProgress, CheckpointWebScrapingCompleted,
	CheckpointResearchStarted, CheckpointResearchInProgress, CheckpointResearchCompleted,
	CheckpointAgentAnalyzing, CheckpointUseCasesGenerating, CheckpointUseCasesGenerated,
	CheckpointAssessmentStarted, CheckpointAssessmentProcessing, CheckpointAssessmentCompleted,
	CheckpointReportGenerationStarted, CheckpointReportGenerated,
	CheckpointCompleted, CheckpointError,
}

// Valid reports whether c is one of the known checkpoints.
func (c Checkpoint) Valid() bool {
	for _, k := range Checkpoints {
		if k == c {
			return true
		}
	}
	return false
}

// Settled reports whether a client polling this status can stop.
func (c Checkpoint) Settled() bool {
	switch c {
	case CheckpointCompleted, CheckpointError, CheckpointUseCasesGenerated, CheckpointReportGenerated:
		return true
	}
	return false
}

// Agent names recorded in agent_activity.
const (
	AgentResearch  = "research_agent"
	AgentAnalysis  = "analysis_agent"
	AgentUseCases  = "use_case_agent"
	AgentReport    = "report_agent"
	AgentDocuments = "document_agent"
)

// AgentDescriptions maps an agent to the task shown to clients.
var AgentDescriptions = map[string]string{
	AgentResearch:  "Gathering company information from the web and uploaded documents",
	AgentAnalysis:  "Analysing research findings and building the company profile",
	AgentUseCases:  "Generating business transformation use cases",
	AgentReport:    "Writing and rendering the executive report",
	AgentDocuments: "Extracting text from uploaded documents",
}

// HistoryEntry is one checkpoint transition.
type HistoryEntry struct {
	Status    Checkpoint `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
	Details   string     `json:"details,omitempty"`
	Agent     string     `json:"agent,omitempty"`
}

// AgentActivity describes the agent working on the session.
type AgentActivity struct {
	ActiveAgent       string    `json:"active_agent"`
	ActivityStartedAt time.Time `json:"activity_started_at"`
	TaskDescription   string    `json:"task_description"`
}

// ScrapingProgress lists the URLs handled by the current scraping step.
type ScrapingProgress struct {
	URLs      []string `json:"urls_being_processed"`
	TotalURLs int      `json:"total_urls"`
}

// Record is the latest status of a session.
type Record struct {
	SessionID        string            `json:"session_id"`
	CurrentStatus    Checkpoint        `json:"current_status"`
	StartedAt        time.Time         `json:"started_at"`
	LastUpdated      time.Time         `json:"last_updated"`
	ElapsedSeconds   float64           `json:"elapsed_time_seconds"`
	ElapsedFormatted string            `json:"elapsed_time_formatted"`
	Details          string            `json:"details,omitempty"`
	History          []HistoryEntry    `json:"checkpoint_history"`
	CurrentAgent     string            `json:"current_agent,omitempty"`
	AgentActivity    *AgentActivity    `json:"agent_activity,omitempty"`
	ScrapingProgress *ScrapingProgress `json:"web_scraping_progress,omitempty"`
	Extra            map[string]any    `json:"extra,omitempty"`
}

// PollingRecommended reports whether the client should keep polling.
// Unknown sessions are polled too: the first record may not be written yet.
func (r *Record) PollingRecommended() bool {
	return !r.CurrentStatus.Settled()
}

// Progress carries the optional data attached to a checkpoint update.
type Progress struct {
	Details string
	Agent   string
	URLs    []string
	Extra   map[string]any
}

// FormatElapsed renders d as "Xm Ys".
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}
