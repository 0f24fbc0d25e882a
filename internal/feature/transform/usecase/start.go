package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	reportusecase "advisor_backend/internal/feature/report/usecase"
	researchentity "advisor_backend/internal/feature/research/domain/entity"
	researchusecase "advisor_backend/internal/feature/research/usecase"
	statusentity "advisor_backend/internal/feature/status/domain/entity"
	"advisor_backend/internal/feature/transform/domain/entity"
	usecasegenusecase "advisor_backend/internal/feature/usecasegen/usecase"
	"advisor_backend/internal/platform/metrics"
)

// start はファイル解析・リサーチ・プロファイル抽出・ユースケース生成・レポート生成を順に実行します。
// レポートの失敗は致命的ではなく、レポートURLなしでユースケースを返します。
func (u *transformUsecase) start(ctx context.Context, req entity.Request, pc *researchentity.PromptContext, sessionKey string) (*entity.Response, error) {
	slog.Info("starting transformation", "session_id", req.SessionID, "company", req.CompanyName,
		"files", len(req.Files), "custom_context", pc.Active())

	docs := u.parseFiles(ctx, req)

	began := time.Now()
	findings, err := u.research.Research(ctx, researchusecase.Input{
		SessionID:   req.SessionID,
		CompanyName: req.CompanyName,
		CompanyURL:  req.CompanyURL,
		Documents:   docs,
		Prompt:      pc,
	})
	metrics.ObserveStage("research", began, err)
	if err != nil {
		return nil, fmt.Errorf("research failed: %w", err)
	}

	u.status.Update(ctx, req.SessionID, statusentity.CheckpointAgentAnalyzing, statusentity.Progress{
		Details: "Extracting company profile",
		Agent:   statusentity.AgentAnalysis,
		Extra: map[string]any{
			"phase":                        "company_profile_extraction",
			"enhanced_with_files":          docs != "",
			"enhanced_with_custom_context": pc.Active(),
			"enhanced_with_web_scraping":   findings.SuccessfulScrapes > 0,
		},
	})

	genIn := usecasegenusecase.Input{
		SessionID:   req.SessionID,
		CompanyName: req.CompanyName,
		CompanyURL:  req.CompanyURL,
		Research:    findings,
		Documents:   docs,
		Prompt:      pc,
	}
	began = time.Now()
	profile, err := u.generator.ExtractProfile(ctx, genIn)
	if err != nil {
		return nil, fmt.Errorf("profile extraction failed: %w", err)
	}
	gen, err := u.generator.Generate(ctx, profile, genIn)
	metrics.ObserveStage("use_cases", began, err)
	if err != nil {
		return nil, fmt.Errorf("use case generation failed: %w", err)
	}

	var reportURL string
	var reportFromTemplate bool
	began = time.Now()
	rep, err := u.reporter.Generate(ctx, reportusecase.Input{
		SessionID: req.SessionID,
		Profile:   profile,
		UseCases:  gen.UseCases,
		Research:  findings,
		Documents: docs,
		Prompt:    pc,
	})
	metrics.ObserveStage("report", began, err)
	switch {
	case err == nil:
		reportURL = rep.URL
		reportFromTemplate = rep.Fallback
	case ctx.Err() != nil:
		return nil, ctx.Err()
	default:
		slog.Error("report generation failed, returning use cases without report", "session_id", req.SessionID, "error", err)
	}

	src := sources{web: findings.SuccessfulScrapes > 0, documents: docs != "", custom: pc.Active()}
	now := u.now().UTC()
	sess := &entity.Session{
		SessionID:         req.SessionID,
		SessionKey:        sessionKey,
		CompanyName:       req.CompanyName,
		CompanyURL:        req.CompanyURL,
		ProjectID:         req.ProjectID,
		UserID:            req.UserID,
		Profile:           profile,
		UseCases:          gen.UseCases,
		LegacyUseCases:    toLegacy(gen.UseCases, reportURL, src),
		GenerationMethod:  gen.Method,
		ReportURL:         reportURL,
		FilesProcessed:    len(req.Files),
		Prompt:            pc,
		URLsScraped:       findings.URLsScraped,
		SuccessfulScrapes: findings.SuccessfulScrapes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := u.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	enh := enhancement(sess)
	enh.ResearchMethod = findings.Method
	enh.ReportFromTemplate = reportFromTemplate

	return &entity.Response{
		Status:              entity.StatusUseCasesGenerated,
		Message:             fmt.Sprintf("Generated %d transformation use cases for %s%s", len(gen.UseCases), req.CompanyName, enhancementNote(sess)),
		CompanyName:         req.CompanyName,
		CompanyURL:          req.CompanyURL,
		CompanyProfile:      companyInfo(profile),
		StructuredProfile:   &sess.Profile,
		UseCases:            sess.LegacyUseCases,
		StructuredUseCases:  sess.UseCases,
		AvailableUseCaseIDs: sess.UseCaseIDs(),
		TotalUseCases:       len(sess.UseCases),
		ReportURL:           reportURL,
		Enhancement:         enh,
		NextAction:          string(entity.ActionSelect),
	}, nil
}

// parseFiles extracts text from the uploaded files. Unreadable files are skipped.
func (u *transformUsecase) parseFiles(ctx context.Context, req entity.Request) string {
	if len(req.Files) == 0 {
		return ""
	}
	u.status.Update(ctx, req.SessionID, statusentity.CheckpointFileParsingStarted, statusentity.Progress{
		Details: fmt.Sprintf("Parsing %d uploaded files", len(req.Files)),
		Agent:   statusentity.AgentDocuments,
		Extra:   map[string]any{"files_to_parse": len(req.Files)},
	})

	docs := u.documents.ParseAll(ctx, req.Files)
	parsed := researchusecase.CountParsed(docs)
	for _, d := range docs {
		if d.Error != "" {
			slog.Warn("failed to parse file", "session_id", req.SessionID, "url", d.URL, "error", d.Error)
		}
	}

	u.status.Update(ctx, req.SessionID, statusentity.CheckpointFileParsingCompleted, statusentity.Progress{
		Details: fmt.Sprintf("Parsed %d of %d files", parsed, len(req.Files)),
		Agent:   statusentity.AgentDocuments,
		Extra: map[string]any{
			"total_files":       len(req.Files),
			"successful_parses": parsed,
			"failed_parses":     len(req.Files) - parsed,
		},
	})
	return researchusecase.CombineDocuments(docs)
}

func enhancement(s *entity.Session) *entity.Enhancement {
	e := &entity.Enhancement{
		WebSources:       s.SuccessfulScrapes,
		URLsScraped:      s.URLsScraped,
		FilesProcessed:   s.FilesProcessed,
		GenerationMethod: s.GenerationMethod,
	}
	if s.Prompt.Active() {
		e.CustomContextUsed = true
		e.CustomContextType = s.Prompt.ContextType
		e.CustomFocusAreas = s.Prompt.FocusAreas
	}
	return e
}

func enhancementNote(s *entity.Session) string {
	var notes []string
	if s.SuccessfulScrapes > 0 {
		notes = append(notes, fmt.Sprintf("web intelligence from %d sources", s.SuccessfulScrapes))
	}
	if s.FilesProcessed > 0 {
		notes = append(notes, fmt.Sprintf("analysis of %d uploaded document(s)", s.FilesProcessed))
	}
	if s.Prompt.Active() {
		notes = append(notes, "custom context focusing on "+strings.Join(s.Prompt.FocusAreas, ", "))
	}
	if len(notes) == 0 {
		return ""
	}
	return " (Enhanced with " + strings.Join(notes, " and ") + ")"
}
