package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"advisor_backend/internal/feature/usecasegen/domain/entity"
)

const profileFormat = `Respond with exactly one block in this format (lists are comma separated):

<profile>
<industry>Primary industry and market segment</industry>
<business_model>How the company creates and captures value</business_model>
<company_size>Startup/SMB/Mid-Market/Enterprise</company_size>
<technology_stack>Tech1,Tech2,Tech3</technology_stack>
<cloud_maturity>Beginner/Intermediate/Advanced</cloud_maturity>
<primary_challenges>Challenge1,Challenge2,Challenge3</primary_challenges>
<growth_stage>Early/Growth/Scaling/Mature</growth_stage>
<compliance_requirements>Requirement1,Requirement2</compliance_requirements>
</profile>
`

// ExtractProfile は リサーチ結果から企業プロファイルを推定します。
// 欠けた項目は DefaultProfile の値で補い、LLM が失敗した場合は DefaultProfile を返します。
func (u *generatorUsecase) ExtractProfile(ctx context.Context, in Input) (entity.CompanyProfile, error) {
	def := entity.DefaultProfile(in.CompanyName)

	text, err := u.model.Analyze(ctx, buildProfilePrompt(in))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return def, ctxErr
		}
		slog.Warn("profile extraction failed, using default profile", "session_id", in.SessionID, "error", err)
		return def, nil
	}
	return ParseProfile(text, in.CompanyName), nil
}

// ParseProfile reads a <profile> block, falling back to the whole text when the block is absent.
func ParseProfile(text, companyName string) entity.CompanyProfile {
	def := entity.DefaultProfile(companyName)
	block := text
	if blocks := tagBlocks("profile", text); len(blocks) > 0 {
		block = blocks[0]
	}
	return entity.CompanyProfile{
		Name:                   companyName,
		Industry:               tagText("industry", block, def.Industry),
		BusinessModel:          tagText("business_model", block, def.BusinessModel),
		CompanySize:            tagText("company_size", block, def.CompanySize),
		TechnologyStack:        tagList("technology_stack", block, def.TechnologyStack),
		CloudMaturity:          tagText("cloud_maturity", block, def.CloudMaturity),
		PrimaryChallenges:      tagList("primary_challenges", block, def.PrimaryChallenges),
		GrowthStage:            tagText("growth_stage", block, def.GrowthStage),
		ComplianceRequirements: tagList("compliance_requirements", block, def.ComplianceRequirements),
	}
}

func buildProfilePrompt(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Extract a strategic business profile from the research data.\n\nCOMPANY: %s\nURL: %s\n", in.CompanyName, in.CompanyURL)
	if in.Research != nil {
		fmt.Fprintf(&b, "\nBUSINESS RESEARCH DATA:\n%s\n", clip(in.Research.Text, 2000))
		if w := in.Research.Web; w != nil && w.Content != "" {
			fmt.Fprintf(&b, "\nWEB INTELLIGENCE ANALYSIS (%d sources):\n%s\n", w.SuccessfulScrapes, clip(w.Content, 2000))
		}
	}
	if in.Documents != "" {
		fmt.Fprintf(&b, "\nCOMPANY DOCUMENT ANALYSIS:\n%s\n", clip(in.Documents, 2000))
	}
	if in.Prompt.Active() {
		fmt.Fprintf(&b, "\nCUSTOM CONTEXT REQUIREMENTS:\n%s\nFocus Areas: %s\nContext Type: %s\n",
			clip(in.Prompt.Processed, 1000), strings.Join(in.Prompt.FocusAreas, ", "), in.Prompt.ContextType)
	}
	b.WriteString("\n")
	b.WriteString(profileFormat)
	return b.String()
}
