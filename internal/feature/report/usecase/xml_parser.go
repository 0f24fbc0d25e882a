package usecase

import (
	"fmt"
	"html"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"advisor_backend/internal/feature/report/domain/entity"
)

const maxCitationName = 50

var (
	firstTag     = regexp.MustCompile(`<[^>]+>`)
	titlePattern = regexp.MustCompile(`(?is)<heading_bold>(.*?)</heading_bold>`)
	citePattern  = regexp.MustCompile(`(?is)<citation_name>(.*?)</citation_name>\s*<citation_url>(.*?)</citation_url>`)
	inlineTag    = regexp.MustCompile(`<(/?)([A-Za-z_-]+)([^>]*?)(/?)>`)
	citeRef      = regexp.MustCompile(`ref="(\d+)"`)
	spaces       = regexp.MustCompile(`\s+`)

	blockPatterns = []struct {
		kind entity.BlockKind
		re   *regexp.Regexp
	}{
		{entity.BlockContent, regexp.MustCompile(`(?is)<content>(.*?)</content>`)},
		{entity.BlockHeading, regexp.MustCompile(`(?is)<sub-heading-bold>(.*?)</sub-heading-bold>`)},
		{entity.BlockSubheading, regexp.MustCompile(`(?is)<sub-heading>(.*?)</sub-heading>`)},
		{entity.BlockSection, regexp.MustCompile(`(?is)<section>(.*?)</section>`)},
		{entity.BlockParagraph, regexp.MustCompile(`(?is)<paragraph>(.*?)</paragraph>`)},
		{entity.BlockList, regexp.MustCompile(`(?is)<list>(.*?)</list>`)},
		{entity.BlockTable, regexp.MustCompile(`(?is)<table>(.*?)</table>`)},
	}
)

type blockMatch struct {
	kind                 entity.BlockKind
	start, end           int
	innerStart, innerEnd int
}

// piece is a run of block content in document order.
type piece struct {
	kind  entity.BlockKind
	start int
	inner string
}

// ParseReportXML converts the tagged report text into a Document.
// Text before the first tag is dropped. Container blocks that enclose other
// blocks are split: their own loose text is kept and the inner blocks follow in order.
func ParseReportXML(text string) *entity.Document {
	doc := &entity.Document{Blocks: []entity.Block{}, Citations: []entity.Citation{}}

	text = strings.TrimSpace(text)
	loc := firstTag.FindStringIndex(text)
	if loc == nil {
		return doc
	}
	text = text[loc[0]:]

	if m := titlePattern.FindStringSubmatch(text); m != nil {
		doc.Title = collapse(stripTags(m[1]))
	}

	var matches []blockMatch
	for _, bp := range blockPatterns {
		for _, idx := range bp.re.FindAllStringSubmatchIndex(text, -1) {
			matches = append(matches, blockMatch{kind: bp.kind, start: idx[0], end: idx[1], innerStart: idx[2], innerEnd: idx[3]})
		}
	}

	var pieces []piece
	for i, m := range matches {
		children := enclosed(matches, i)
		if len(children) == 0 {
			pieces = append(pieces, piece{kind: m.kind, start: m.start, inner: text[m.innerStart:m.innerEnd]})
			continue
		}
		pos := m.innerStart
		for _, c := range children {
			if c.start > pos {
				pieces = append(pieces, piece{kind: m.kind, start: pos, inner: text[pos:c.start]})
			}
			pos = max(pos, c.end)
		}
		if pos < m.innerEnd {
			pieces = append(pieces, piece{kind: m.kind, start: pos, inner: text[pos:m.innerEnd]})
		}
	}
	slices.SortStableFunc(pieces, func(a, b piece) int { return a.start - b.start })

	for _, p := range pieces {
		inner := titlePattern.ReplaceAllString(p.inner, "")
		inner = replaceCitations(inner, doc)
		lines := parseInline(inner, doc.Citations)
		if len(lines) == 0 {
			continue
		}
		doc.Blocks = append(doc.Blocks, entity.Block{Kind: p.kind, Lines: lines})
	}
	return doc
}

// enclosed returns the blocks strictly inside matches[i], ordered by position.
func enclosed(matches []blockMatch, i int) []blockMatch {
	outer := matches[i]
	var out []blockMatch
	for j, m := range matches {
		if j != i && m.start >= outer.start && m.end <= outer.end && (m.start != outer.start || m.end != outer.end) {
			out = append(out, m)
		}
	}
	slices.SortFunc(out, func(a, b blockMatch) int {
		if a.start != b.start {
			return a.start - b.start
		}
		return b.end - a.end
	})
	return out
}

// replaceCitations registers every citation pair and leaves a <cite ref="N"/> marker in its place.
func replaceCitations(s string, doc *entity.Document) string {
	return citePattern.ReplaceAllStringFunc(s, func(match string) string {
		m := citePattern.FindStringSubmatch(match)
		name := collapse(stripTags(m[1]))
		link := strings.TrimSpace(m[2])
		if name == "" || link == "" {
			return ""
		}
		short := name
		if r := []rune(name); len(r) > maxCitationName {
			short = string(r[:maxCitationName]) + "..."
		}
		n := len(doc.Citations) + 1
		doc.Citations = append(doc.Citations, entity.Citation{Number: n, Name: short, URL: link, FullName: name})
		return fmt.Sprintf(`<cite ref="%d"/>`, n)
	})
}

// parseInline splits block content into lines of formatted spans.
// <bullet> and <number> start list items; bold, italic and underline nest.
func parseInline(s string, citations []entity.Citation) []entity.Line {
	var (
		lines                   []entity.Line
		cur                     entity.Line
		bold, italic, underline int
		number                  int
	)

	flush := func() {
		cur.Spans = trimSpans(cur.Spans)
		if len(cur.Spans) > 0 {
			lines = append(lines, cur)
		}
		cur = entity.Line{}
	}
	addText := func(t string) {
		t = spaces.ReplaceAllString(html.UnescapeString(t), " ")
		if t == "" {
			return
		}
		cur.Spans = append(cur.Spans, entity.Span{Text: t, Bold: bold > 0, Italic: italic > 0, Underline: underline > 0})
	}

	pos := 0
	for _, idx := range inlineTag.FindAllStringSubmatchIndex(s, -1) {
		addText(s[pos:idx[0]])
		pos = idx[1]

		closing := s[idx[2]:idx[3]] == "/"
		name := strings.ToLower(s[idx[4]:idx[5]])
		attrs := s[idx[6]:idx[7]]
		delta := 1
		if closing {
			delta = -1
		}

		switch name {
		case "bold", "b", "strong":
			bold = max(0, bold+delta)
		case "italic", "i", "em":
			italic = max(0, italic+delta)
		case "underline", "u":
			underline = max(0, underline+delta)
		case "bullet":
			flush()
			if !closing {
				cur.Marker = "•"
			}
		case "number":
			flush()
			if !closing {
				number++
				cur.Marker = strconv.Itoa(number) + "."
			}
		case "cite":
			if m := citeRef.FindStringSubmatch(attrs); m != nil {
				n, _ := strconv.Atoi(m[1])
				if n >= 1 && n <= len(citations) {
					cur.Spans = append(cur.Spans, entity.Span{Text: fmt.Sprintf(" [%d]", n), Underline: true, Link: citations[n-1].URL})
				}
			}
		case "br":
			flush()
		}
	}
	addText(s[pos:])
	flush()
	return lines
}

// trimSpans trims leading and trailing whitespace of the line and drops empty spans.
func trimSpans(spans []entity.Span) []entity.Span {
	for len(spans) > 0 {
		spans[0].Text = strings.TrimLeft(spans[0].Text, " ")
		if spans[0].Text != "" {
			break
		}
		spans = spans[1:]
	}
	for len(spans) > 0 {
		last := len(spans) - 1
		spans[last].Text = strings.TrimRight(spans[last].Text, " ")
		if spans[last].Text != "" {
			break
		}
		spans = spans[:last]
	}
	return spans
}

func stripTags(s string) string {
	return html.UnescapeString(inlineTag.ReplaceAllString(s, ""))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
