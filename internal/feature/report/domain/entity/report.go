// Package entity defines the structured report produced from the LLM's tagged output.
package entity

import "strings"

// BlockKind is the tag a block was parsed from.
type BlockKind string

const (
	BlockHeading    BlockKind = "sub-heading-bold"
	BlockSubheading BlockKind = "sub-heading"
	BlockContent    BlockKind = "content"
	BlockSection    BlockKind = "section"
	BlockParagraph  BlockKind = "paragraph"
	BlockList       BlockKind = "list"
	BlockTable      BlockKind = "table"
)

// Span is a run of text with uniform formatting.
type Span struct {
	Text      string `json:"text"`
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
	// Link is set for inline citation markers.
	Link string `json:"link,omitempty"`
}

// Line is one rendered line of a block. Marker is "•" or "N." for list items.
type Line struct {
	Marker string `json:"marker,omitempty"`
	Spans  []Span `json:"spans"`
}

// Text returns the plain text of the line.
func (l Line) Text() string {
	var sb strings.Builder
	for _, sp := range l.Spans {
		sb.WriteString(sp.Text)
	}
	return sb.String()
}

// Block is a top-level report element in document order.
type Block struct {
	Kind  BlockKind `json:"kind"`
	Lines []Line    `json:"lines"`
}

// Citation is a numbered source referenced inline.
type Citation struct {
	Number   int    `json:"number,omitempty"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	FullName string `json:"full_name,omitempty"`
}

// Document is the parsed report.
type Document struct {
	Title     string     `json:"title"`
	Blocks    []Block    `json:"blocks"`
	Citations []Citation `json:"citations"`
}
