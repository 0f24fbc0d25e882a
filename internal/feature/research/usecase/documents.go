package usecase

import (
	"fmt"
	"strings"

	"advisor_backend/internal/feature/research/domain/entity"
)

// CombineDocuments joins the parsed documents into one text block.
// Documents are numbered by their position in the upload list; failed ones are skipped.
func CombineDocuments(docs []entity.Document) string {
	var parts []string
	for i, d := range docs {
		if d.Error != "" || strings.TrimSpace(d.Text) == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("=== Document %d ===\n%s\n", i+1, d.Text))
	}
	return strings.Join(parts, "\n")
}

// CountParsed returns the number of documents with extracted text.
func CountParsed(docs []entity.Document) int {
	n := 0
	for _, d := range docs {
		if d.Error == "" && strings.TrimSpace(d.Text) != "" {
			n++
		}
	}
	return n
}
