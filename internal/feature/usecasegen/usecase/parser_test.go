package usecase

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUseCases(t *testing.T) {
	t.Parallel()

	text := `Here are the initiatives.
<UseCase>
<id>retail-analytics</id>
<name>Retail Demand Forecasting</name>
<description>Forecast store demand with machine learning to cut stock-outs.</description>
<category>Data Analytics</category>
<aws_services>SageMaker, S3, Glue, Athena, QuickSight, Lambda, Kinesis, Redshift</aws_services>
<implementation_phases>Discovery,Pilot,Rollout</implementation_phases>
<timeline_months>about 36 months</timeline_months>
<monthly_cost_usd>$120</monthly_cost_usd>
<complexity>high</complexity>
<priority>Urgent</priority>
<risk_level>Low</risk_level>
<success_metrics>a,b,c,d,e,f</success_metrics>
</UseCase>
<usecase>
<name>BI</name>
<proposed_solution>short</proposed_solution>
<aws_services> , </aws_services>
</usecase>
<usecase>
<id>retail-analytics</id>
<name>Duplicate id initiative</name>
</usecase>`

	got := ParseUseCases(text)
	require.Len(t, got, 3)

	first := got[0]
	assert.Equal(t, "retail-analytics", first.ID)
	assert.Equal(t, "Retail Demand Forecasting", first.Title)
	assert.Equal(t, "Forecast store demand with machine learning to cut stock-outs.", first.ProposedSolution)
	assert.Equal(t, "Data Analytics", first.Category)
	assert.Len(t, first.Services, 7)
	assert.Equal(t, []string{"Discovery", "Pilot", "Rollout"}, first.ImplementationPhases)
	assert.Equal(t, 24, first.TimelineMonths)
	assert.Equal(t, 500, first.MonthlyCostUSD)
	assert.Equal(t, "High", first.Complexity)
	assert.Equal(t, "High", first.Priority)
	assert.Equal(t, "Low", first.RiskLevel)
	assert.Len(t, first.SuccessMetrics, 5)

	second := got[1]
	assert.Equal(t, "business-transformation-1", second.ID)
	assert.Equal(t, "Business Transformation Initiative 2", second.Title)
	assert.Equal(t, "Strategic transformation solution with technology enablers to drive business value", second.ProposedSolution)
	assert.Equal(t, defaultServices, second.Services)
	assert.Equal(t, defaultPhases, second.ImplementationPhases)
	assert.Equal(t, 6, second.TimelineMonths)
	assert.Equal(t, 3000, second.MonthlyCostUSD)
	assert.Equal(t, "Medium", second.Complexity)
	assert.Equal(t, "Business Optimization", second.Category)

	assert.Equal(t, "retail-analytics-2", got[2].ID)
}

func TestParseUseCases_NoBlocks(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ParseUseCases("I cannot help with that."))
}

func TestSupplement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		parsed    int
		wantTotal int
		wantFirst string
	}{
		{name: "none parsed", parsed: 0, wantTotal: 3, wantFirst: "business-transformation-supplement-1"},
		{name: "three parsed", parsed: 3, wantTotal: 6, wantFirst: "business-transformation-supplement-4"},
		{name: "four parsed", parsed: 4, wantTotal: 7, wantFirst: "business-transformation-supplement-5"},
		{name: "enough parsed", parsed: 5, wantTotal: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var blocks strings.Builder
			for i := range tt.parsed {
				fmt.Fprintf(&blocks, "<usecase><id>uc-%d</id><name>Initiative %d</name></usecase>", i, i)
			}
			got := Supplement(ParseUseCases(blocks.String()))
			require.Len(t, got, tt.wantTotal)
			if tt.wantFirst != "" {
				assert.Equal(t, tt.wantFirst, got[tt.parsed].ID)
			}
		})
	}
}

func TestFallbackUseCases(t *testing.T) {
	t.Parallel()

	got := FallbackUseCases()
	require.Len(t, got, 5)
	assert.Equal(t, "business-transformation-fallback-1", got[0].ID)
	assert.Equal(t, "business-transformation-fallback-5", got[4].ID)

	got[0].Services[0] = "changed"
	assert.NotEqual(t, "changed", FallbackUseCases()[0].Services[0])
}

func TestParseProfile(t *testing.T) {
	t.Parallel()

	got := ParseProfile(`<profile><industry>Aerospace</industry><technology_stack>C++, Go</technology_stack><growth_stage></growth_stage></profile>`, "Acme")
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, "Aerospace", got.Industry)
	assert.Equal(t, []string{"C++", "Go"}, got.TechnologyStack)
	assert.Equal(t, "Scaling", got.GrowthStage)
	assert.Equal(t, "Digital Platform and Services", got.BusinessModel)
}
