package pdf_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisor_backend/internal/feature/report/adapters/pdf"
	"advisor_backend/internal/feature/report/domain/entity"
	"advisor_backend/internal/feature/report/usecase"
	usecasegenentity "advisor_backend/internal/feature/usecasegen/domain/entity"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		doc  *entity.Document
	}{
		{
			name: "empty document",
			doc:  &entity.Document{},
		},
		{
			name: "styled blocks and references",
			doc: &entity.Document{
				Title: "Transformation Strategy for Müller AG",
				Blocks: []entity.Block{
					{Kind: entity.BlockHeading, Lines: []entity.Line{{Spans: []entity.Span{{Text: "Executive Summary"}}}}},
					{Kind: entity.BlockContent, Lines: []entity.Line{{Spans: []entity.Span{
						{Text: "Revenue grew "},
						{Text: "strongly", Bold: true, Italic: true},
						{Text: " [1]", Underline: true, Link: "https://news.example"},
					}}}},
					{Kind: entity.BlockList, Lines: []entity.Line{
						{Marker: "•", Spans: []entity.Span{{Text: "First item"}}},
						{Marker: "2.", Spans: []entity.Span{{Text: "Second item", Underline: true}}},
					}},
				},
				Citations: []entity.Citation{{Number: 1, Name: "News", URL: "https://news.example", FullName: "News about Müller"}},
			},
		},
		{
			name: "fallback report",
			doc: usecase.ParseReportXML(usecase.FallbackReportXML(usecase.Input{
				SessionID: "s-1",
				Profile:   usecasegenentity.DefaultProfile("Acme"),
				UseCases: []usecasegenentity.UseCase{
					{Title: "Smart Support", Category: "Customer", BusinessValue: "Faster answers"},
				},
			}, usecase.Citations(nil))),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := pdf.NewRenderer().Render(tc.doc)

			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
			assert.True(t, bytes.Contains(out, []byte("%%EOF")))
		})
	}
}
