// Package usecase は企業プロファイル抽出と変革ユースケース生成のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	researchentity "advisor_backend/internal/feature/research/domain/entity"
	researchusecase "advisor_backend/internal/feature/research/usecase"
	statusentity "advisor_backend/internal/feature/status/domain/entity"
	"advisor_backend/internal/feature/usecasegen/domain/entity"
)

// Model は LLM 呼び出しを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Model interface {
	// Analyze は低温度の分析用呼び出しです。
	Analyze(ctx context.Context, prompt string) (string, error)
	// Compose は創造的な文章生成用の呼び出しです。
	Compose(ctx context.Context, prompt string) (string, error)
}

// StatusUpdater はチェックポイントの記録を抽象化します。
type StatusUpdater interface {
	Update(ctx context.Context, sessionID string, cp statusentity.Checkpoint, p statusentity.Progress) *statusentity.Record
}

// Input はプロファイル抽出とユースケース生成の共通入力です。
type Input struct {
	SessionID   string
	CompanyName string
	CompanyURL  string
	Research    *researchentity.Findings
	Documents   string
	Prompt      *researchentity.PromptContext
}

// Result is the generated use case list and how it was produced.
type Result struct {
	UseCases []entity.UseCase
	Method   string
}

// generatorUsecase はユースケース生成のユースケースを定義します。
type generatorUsecase struct {
	model  Model
	status StatusUpdater
}

// NewGeneratorUsecase はgeneratorUsecaseの新しいインスタンスを生成します。
func NewGeneratorUsecase(model Model, status StatusUpdater) *generatorUsecase {
	return &generatorUsecase{model: model, status: status}
}

// Generate は LLM にユースケースを生成させ、解析・補完して返します。
// 5件未満なら補完テンプレートで8件まで埋め、最大10件に制限します。
// LLM が失敗した場合や1件も得られない場合はフォールバックテンプレートを返します。
func (u *generatorUsecase) Generate(ctx context.Context, profile entity.CompanyProfile, in Input) (*Result, error) {
	u.status.Update(ctx, in.SessionID, statusentity.CheckpointUseCasesGenerating, statusentity.Progress{
		Details: fmt.Sprintf("Generating transformation use cases for %s", profile.Name),
		Agent:   statusentity.AgentUseCases,
		Extra: map[string]any{
			"company":            profile.Name,
			"has_files":          in.Documents != "",
			"has_custom_context": in.Prompt.Active(),
			"web_enhanced":       in.Research != nil && in.Research.Web != nil,
		},
	})

	res := &Result{Method: entity.MethodGenerated}
	text, err := u.model.Compose(ctx, researchusecase.WithGenerationContext(buildGenerationPrompt(profile, in), in.Prompt))
	switch {
	case err != nil:
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		slog.Warn("use case generation failed, using fallback", "session_id", in.SessionID, "error", err)
	default:
		parsed := ParseUseCases(text)
		res.UseCases = Supplement(parsed)
		if len(res.UseCases) > maxUseCases {
			res.UseCases = res.UseCases[:maxUseCases]
		}
		slog.Info("use cases parsed", "session_id", in.SessionID, "parsed", len(parsed), "total", len(res.UseCases))
	}
	if len(res.UseCases) == 0 {
		res.UseCases = FallbackUseCases()
		res.Method = entity.MethodFallback
	}

	u.status.Update(ctx, in.SessionID, statusentity.CheckpointUseCasesGenerated, statusentity.Progress{
		Details: fmt.Sprintf("Generated %d use cases", len(res.UseCases)),
		Extra: map[string]any{
			"use_case_count":         len(res.UseCases),
			"generation_method":      res.Method,
			"custom_context_aligned": in.Prompt.Active(),
		},
	})
	return res, nil
}

const useCaseFormat = `MANDATORY RESPONSE FORMAT: one block per use case, using these XML tags:

<usecase>
<id>business-transformation-initiative-[number]</id>
<name>Strategic Business Transformation Name</name>
<description>Problem statement, solution approach and expected outcomes.</description>
<category>Business Transformation Category</category>
<current_state>Current business situation and challenges</current_state>
<proposed_solution>Strategic transformation solution with technology enablers</proposed_solution>
<aws_services>Service1,Service2,Service3</aws_services>
<business_value>Quantifiable business value and strategic impact</business_value>
<implementation_phases>Phase1,Phase2,Phase3,Phase4</implementation_phases>
<timeline_months>6</timeline_months>
<monthly_cost_usd>5000</monthly_cost_usd>
<complexity>Low/Medium/High</complexity>
<priority>Low/Medium/High/Critical</priority>
<risk_level>Low/Medium/High</risk_level>
<success_metrics>Metric1,Metric2,Metric3</success_metrics>
</usecase>
`

func buildGenerationPrompt(p entity.CompanyProfile, in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, `STRATEGIC BUSINESS TRANSFORMATION ANALYSIS FOR %s

You are a senior business transformation consultant designing personalized initiatives that solve %s's business challenges.

COMPANY BUSINESS PROFILE:
Company Name: %s
Industry & Market: %s
Business Model: %s
Operational Scale: %s
Technology Maturity: %s
Growth Stage: %s
Technology Capabilities: %s
Strategic Challenges: %s
Compliance Context: %s
`, p.Name, p.Name, p.Name, p.Industry, p.BusinessModel, p.CompanySize, p.CloudMaturity, p.GrowthStage,
		strings.Join(p.TechnologyStack, ", "), strings.Join(p.PrimaryChallenges, ", "), strings.Join(p.ComplianceRequirements, ", "))

	if in.Research != nil {
		fmt.Fprintf(&b, "\nBUSINESS INTELLIGENCE FROM RESEARCH:\n%s\n", clip(in.Research.Text, 2000))
		if w := in.Research.Web; w != nil && w.Content != "" {
			fmt.Fprintf(&b, "\nWEB INTELLIGENCE ANALYSIS (%d sources):\n%s\n", w.SuccessfulScrapes, clip(w.Content, 3000))
		}
	}
	if in.Documents != "" {
		fmt.Fprintf(&b, "\nCOMPANY INTERNAL DOCUMENTATION ANALYSIS:\n%s\nUse this to create highly personalized use cases.\n", clip(in.Documents, 3000))
	}

	b.WriteString(`
TRANSFORMATION MISSION:
Design 10 strategic transformation use cases covering core business optimization, customer experience, data-driven decision making, innovation, security and compliance, cost optimization, scalability, automation, strategic analytics and platform modernization.

`)
	b.WriteString(useCaseFormat)
	return b.String()
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
