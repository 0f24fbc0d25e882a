// Package usecase は企業リサーチ（Web収集・ドキュメント・LLM分析）のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"advisor_backend/internal/feature/research/domain/entity"
	statusentity "advisor_backend/internal/feature/status/domain/entity"
)

const (
	// maxWebPromptChars はLLMプロンプトに含めるWeb収集テキストの上限です。
	maxWebPromptChars = 6000
	// maxDocPromptChars はLLMプロンプトに含めるドキュメントテキストの上限です。
	maxDocPromptChars = 4000
)

// WebResearcher は検索とスクレイピングを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type WebResearcher interface {
	Research(ctx context.Context, companyName, companyURL string, focusAreas []string) (*entity.WebResearch, error)
}

// ResearchModel はリサーチ用のLLM呼び出しを抽象化します。
type ResearchModel interface {
	Research(ctx context.Context, prompt string) (string, error)
}

// StatusUpdater はチェックポイントの記録を抽象化します。
type StatusUpdater interface {
	Update(ctx context.Context, sessionID string, cp statusentity.Checkpoint, p statusentity.Progress) *statusentity.Record
}

// Input はリサーチ1回分の入力です。
type Input struct {
	SessionID   string
	CompanyName string
	CompanyURL  string
	// Documents はアップロード資料から抽出済みのテキストです。
	Documents string
	Prompt    *entity.PromptContext
}

// researchUsecase は企業リサーチのユースケースを定義します。
type researchUsecase struct {
	web    WebResearcher
	model  ResearchModel
	status StatusUpdater
	now    func() time.Time
}

// NewResearchUsecase はresearchUsecaseの新しいインスタンスを生成します。
// web が nil の場合、Web収集は行いません。
func NewResearchUsecase(web WebResearcher, model ResearchModel, status StatusUpdater) *researchUsecase {
	return &researchUsecase{web: web, model: model, status: status, now: time.Now}
}

// Research はWeb収集とLLM分析を行い、リサーチ結果を返します。
// LLMが失敗した場合はフォールバックのリサーチ文を返すため、エラーはコンテキストの中断時のみです。
func (u *researchUsecase) Research(ctx context.Context, in Input) (*entity.Findings, error) {
	custom := in.Prompt.Active()
	u.status.Update(ctx, in.SessionID, statusentity.CheckpointResearchStarted, statusentity.Progress{
		Details: fmt.Sprintf("Starting research for %s", in.CompanyName),
		Agent:   statusentity.AgentResearch,
		Extra: map[string]any{
			"company_name":       in.CompanyName,
			"company_url":        in.CompanyURL,
			"has_files":          in.Documents != "",
			"has_custom_context": custom,
		},
	})

	web := u.collectWeb(ctx, in)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scraped := []string{}
	if web != nil {
		scraped = append(scraped, web.URLsScraped...)
	}
	if !slices.Contains(scraped, in.CompanyURL) {
		scraped = append(scraped, in.CompanyURL)
	}

	u.status.Update(ctx, in.SessionID, statusentity.CheckpointResearchInProgress, statusentity.Progress{
		Details: "Analyzing business model and operations",
		Agent:   statusentity.AgentResearch,
		URLs:    scraped,
		Extra: map[string]any{
			"using_web_content":    web != nil,
			"using_file_content":   in.Documents != "",
			"using_custom_context": custom,
		},
	})

	findings := &entity.Findings{
		Timestamp:          u.now().UTC(),
		CompanyURL:         in.CompanyURL,
		URLsScraped:        scraped,
		TotalURLsProcessed: len(scraped),
		Web:                web,
		DocumentsUsed:      in.Documents != "",
		DocumentLength:     len(in.Documents),
		CustomContextUsed:  custom,
		CustomFocusAreas:   []string{},
	}
	if web != nil {
		findings.SuccessfulScrapes = web.SuccessfulScrapes
	}
	if in.Prompt != nil {
		findings.CustomContextType = in.Prompt.ContextType
		if in.Prompt.FocusAreas != nil {
			findings.CustomFocusAreas = in.Prompt.FocusAreas
		}
	}

	prompt := WithResearchContext(buildResearchPrompt(in, web), in.Prompt)
	result, err := u.model.Research(ctx, prompt)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		slog.Warn("research analysis failed, using fallback", "session_id", in.SessionID, "error", err)
		findings.Method = entity.MethodFallback
		findings.Text = fallbackResearch(in, web)
	} else {
		findings.Method = entity.MethodWebAndLLM
		findings.Text = fmt.Sprintf("COMPREHENSIVE BUSINESS ANALYSIS FOR %s%s\n\n%s", in.CompanyName, enhancementNote(in, web), result)
	}

	u.status.Update(ctx, in.SessionID, statusentity.CheckpointResearchCompleted, statusentity.Progress{
		Details: fmt.Sprintf("Research completed with %d sources", len(scraped)),
		URLs:    scraped,
		Extra: map[string]any{
			"total_urls_scraped":        len(scraped),
			"successful_web_scrapes":    findings.SuccessfulScrapes,
			"research_method":           findings.Method,
			"web_enhanced":              web != nil,
			"custom_context_integrated": custom,
		},
	})
	return findings, nil
}

// collectWeb はWeb収集を行います。失敗してもリサーチは続行します。
func (u *researchUsecase) collectWeb(ctx context.Context, in Input) *entity.WebResearch {
	if u.web == nil {
		return nil
	}
	u.status.Update(ctx, in.SessionID, statusentity.CheckpointWebScrapingStarted, statusentity.Progress{
		Details: "Searching and scraping public sources",
		Agent:   statusentity.AgentResearch,
	})

	var focus []string
	if in.Prompt != nil {
		focus = in.Prompt.FocusAreas
	}
	web, err := u.web.Research(ctx, in.CompanyName, in.CompanyURL, focus)
	if err != nil {
		slog.Warn("web research failed", "session_id", in.SessionID, "company", in.CompanyName, "error", err)
		return nil
	}

	u.status.Update(ctx, in.SessionID, statusentity.CheckpointWebScrapingCompleted, statusentity.Progress{
		Details: fmt.Sprintf("Scraped %d of %d URLs", web.SuccessfulScrapes, web.TotalURLsAttempted),
		URLs:    web.URLsScraped,
		Extra: map[string]any{
			"urls_scraped":       len(web.URLsScraped),
			"successful_scrapes": web.SuccessfulScrapes,
			"total_attempts":     web.TotalURLsAttempted,
		},
	})
	return web
}

func buildResearchPrompt(in Input, web *entity.WebResearch) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Conduct deep business analysis for %s (website: %s) to understand their strategic transformation opportunities.\n", in.CompanyName, in.CompanyURL)

	if web != nil && web.Content != "" {
		fmt.Fprintf(&b, "\nWEB-SCRAPED BUSINESS INTELLIGENCE:\nThe following content was scraped from %d websites:\n\n%s\n", web.SuccessfulScrapes, truncate(web.Content, maxWebPromptChars))
	}
	if in.Documents != "" {
		fmt.Fprintf(&b, "\nCOMPANY DOCUMENT ANALYSIS:\nThe following content was extracted from documents uploaded by the user. Use it as primary intelligence about their operations:\n\n%s\n", truncate(in.Documents, maxDocPromptChars))
	}

	fmt.Fprintf(&b, `
BUSINESS INTELLIGENCE OBJECTIVES:
1. Core Business Analysis: primary industry, revenue model, customers, value proposition and scale of %[1]s.
2. Operational Assessment: key processes, likely bottlenecks, current technology and digital maturity.
3. Strategic Transformation Opportunities: business problems technology could solve and where automation or cloud services drive value.

Use web content as market intelligence and document content as internal intelligence. Provide actionable business intelligence for transformation planning.
`, in.CompanyName)
	return b.String()
}

func enhancementNote(in Input, web *entity.WebResearch) string {
	var notes []string
	if web != nil {
		notes = append(notes, fmt.Sprintf("Web Intelligence from %d sources", web.SuccessfulScrapes))
	}
	if in.Documents != "" {
		notes = append(notes, "Document Analysis")
	}
	if in.Prompt.Active() {
		notes = append(notes, fmt.Sprintf("Custom Context (%s)", orDefault(in.Prompt.ContextType, entity.ContextGeneral)))
	}
	if len(notes) == 0 {
		return ""
	}
	return " - Enhanced with: " + strings.Join(notes, ", ")
}

func fallbackResearch(in Input, web *entity.WebResearch) string {
	var b strings.Builder
	fmt.Fprintf(&b, `STRATEGIC BUSINESS ANALYSIS FOR %s

Based on available business intelligence and market analysis:

BUSINESS TRANSFORMATION OPPORTUNITIES:
- Business process optimization and automation
- Customer experience enhancement and personalization
- Operational intelligence and data-driven decision making
- Digital platform capabilities and API-first architecture
- Scalable infrastructure for business growth
- Security and compliance framework strengthening
- Performance optimization for customer satisfaction
- Innovation acceleration through modern development practices
- Cost optimization and resource efficiency
- Strategic business intelligence and analytics
`, in.CompanyName)

	if web != nil && web.SuccessfulScrapes > 0 {
		fmt.Fprintf(&b, "\nWeb Intelligence: Analysis enhanced with insights from %d web sources.", web.SuccessfulScrapes)
	}
	if in.Documents != "" {
		b.WriteString("\nDocument Analysis: Business context and operational insights from uploaded documents have been incorporated.")
	}
	if in.Prompt.Active() {
		fmt.Fprintf(&b, "\nCustom Context Integration: Analysis has been tailored to focus on %s as specified in the custom requirements.", strings.Join(in.Prompt.FocusAreas, ", "))
	}
	b.WriteString("\n\nThese opportunities focus on accelerating business objectives using cloud technologies as enablers.\n")
	return b.String()
}

// truncate は s を先頭 n バイトで切り詰めます。UTF-8の途中では切りません。
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
