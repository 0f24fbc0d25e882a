// Package usecase はエグゼクティブレポートの生成・PDF化・アップロードを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"advisor_backend/internal/feature/report/domain/entity"
	researchentity "advisor_backend/internal/feature/research/domain/entity"
	statusentity "advisor_backend/internal/feature/status/domain/entity"
	usecasegenentity "advisor_backend/internal/feature/usecasegen/domain/entity"
)

const (
	contentTypePDF = "application/pdf"
	keyTimeLayout  = "20060102_150405"
)

// Model は LLM 呼び出しを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Model interface {
	Compose(ctx context.Context, prompt string) (string, error)
}

// Renderer はパース済みレポートを PDF に変換します。
type Renderer interface {
	Render(doc *entity.Document) ([]byte, error)
}

// ObjectStore はレポートの保存先です。Put は公開URLを返します。
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// StatusUpdater はチェックポイントの記録を抽象化します。
type StatusUpdater interface {
	Update(ctx context.Context, sessionID string, cp statusentity.Checkpoint, p statusentity.Progress) *statusentity.Record
}

// Input はレポート生成の入力です。
type Input struct {
	SessionID string
	Profile   usecasegenentity.CompanyProfile
	UseCases  []usecasegenentity.UseCase
	Research  *researchentity.Findings
	Documents string
	Prompt    *researchentity.PromptContext
}

// Result is the uploaded report.
type Result struct {
	URL      string
	Key      string
	XML      string
	Fallback bool
	Document *entity.Document
}

type reportUsecase struct {
	model    Model
	renderer Renderer
	store    ObjectStore
	status   StatusUpdater
	now      func() time.Time
}

// NewReportUsecase はreportUsecaseの新しいインスタンスを生成します。
func NewReportUsecase(model Model, renderer Renderer, store ObjectStore, status StatusUpdater) *reportUsecase {
	return &reportUsecase{model: model, renderer: renderer, store: store, status: status, now: time.Now}
}

// Generate はレポート本文を生成し、PDF化してオブジェクトストアにアップロードします。
// 生成結果が不完全な場合は簡略プロンプトで1度だけ再試行し、それも失敗すればテンプレートから組み立てます。
func (u *reportUsecase) Generate(ctx context.Context, in Input) (*Result, error) {
	u.status.Update(ctx, in.SessionID, statusentity.CheckpointReportGenerationStarted, statusentity.Progress{
		Details: fmt.Sprintf("Generating executive report for %d use cases", len(in.UseCases)),
		Agent:   statusentity.AgentReport,
	})

	cites := Citations(in.Research.ScrapeResults())
	xml, fallback, err := u.compose(ctx, in, cites)
	if err != nil {
		return nil, u.fail(ctx, in.SessionID, err)
	}

	doc := ParseReportXML(xml)
	if doc.Title == "" {
		doc.Title = "GenAI Transformation Strategy for " + in.Profile.Name
	}

	pdf, err := u.renderer.Render(doc)
	if err != nil {
		return nil, u.fail(ctx, in.SessionID, fmt.Errorf("%w: %w", ErrRenderFailed, err))
	}

	key := fmt.Sprintf("transformation-reports/%s/comprehensive-analysis/%s_transformation_report.pdf",
		in.SessionID, u.now().UTC().Format(keyTimeLayout))
	url, err := u.store.Put(ctx, key, pdf, contentTypePDF)
	if err != nil {
		return nil, u.fail(ctx, in.SessionID, fmt.Errorf("%w: %w", ErrUploadFailed, err))
	}

	slog.Info("report uploaded", "session_id", in.SessionID, "key", key, "bytes", len(pdf), "fallback", fallback)
	u.status.Update(ctx, in.SessionID, statusentity.CheckpointReportGenerated, statusentity.Progress{
		Details: "Executive report generated",
		Agent:   statusentity.AgentReport,
		Extra:   map[string]any{"report_url": url, "citations": len(doc.Citations)},
	})
	return &Result{URL: url, Key: key, XML: xml, Fallback: fallback, Document: doc}, nil
}

// compose returns the report XML and whether the template fallback was used.
// Only context cancellation is returned as an error.
func (u *reportUsecase) compose(ctx context.Context, in Input, cites []entity.Citation) (string, bool, error) {
	xml, err := u.model.Compose(ctx, buildReportPrompt(in, cites))
	if err == nil && !IsIncomplete(xml) {
		return xml, false, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", false, ctxErr
	}
	slog.Warn("report incomplete, retrying with simplified prompt", "session_id", in.SessionID, "error", err)

	xml, err = u.model.Compose(ctx, buildSimplifiedPrompt(in, cites))
	if err == nil && len(ParseReportXML(xml).Blocks) > 0 {
		return xml, false, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", false, ctxErr
	}
	slog.Warn("simplified report failed, using template", "session_id", in.SessionID, "error", err)
	return FallbackReportXML(in, cites), true, nil
}

func (u *reportUsecase) fail(ctx context.Context, sessionID string, err error) error {
	slog.Error("report generation failed", "session_id", sessionID, "error", err)
	details := err.Error()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		details = "report generation cancelled"
	}
	u.status.Update(context.WithoutCancel(ctx), sessionID, statusentity.CheckpointError, statusentity.Progress{
		Details: details,
		Agent:   statusentity.AgentReport,
	})
	return err
}

// clip は s を先頭 n バイトで切り詰めます。UTF-8の途中では切りません。
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
