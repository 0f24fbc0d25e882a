// Package pdf renders parsed reports into a single-column A4 PDF with go-pdf/fpdf.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"advisor_backend/internal/feature/report/domain/entity"
	"advisor_backend/internal/feature/report/usecase"
)

const (
	margin      = 19.0
	lineHeight  = 5.5
	listIndent  = 6.0
	markerWidth = 6.0
	fontFamily  = "Helvetica"
)

type rgb struct{ r, g, b int }

var (
	titleColor   = rgb{0x2C, 0x3E, 0x50}
	headingColor = rgb{0x34, 0x49, 0x5E}
	ruleColor    = rgb{0x34, 0x98, 0xDB}
	textColor    = rgb{0x33, 0x33, 0x33}
	linkColor    = rgb{0x1F, 0x5F, 0xA8}
	footerColor  = rgb{0x80, 0x80, 0x80}
)

// Renderer は usecase.Renderer の fpdf 実装です。
type Renderer struct{}

var _ usecase.Renderer = (*Renderer)(nil)

// NewRenderer はRendererの新しいインスタンスを生成します。
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render lays out the document and returns the PDF bytes.
func (r *Renderer) Render(doc *entity.Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(doc.Title, true)
	pdf.AliasNbPages("")

	// core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		setColor(pdf, footerColor)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	w := &writer{pdf: pdf, tr: tr}
	w.title(doc.Title)
	for _, b := range doc.Blocks {
		w.block(b)
	}
	w.references(doc.Citations)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type writer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (w *writer) title(t string) {
	if t == "" {
		return
	}
	w.pdf.SetFont(fontFamily, "B", 22)
	setColor(w.pdf, titleColor)
	w.pdf.MultiCell(0, 10, w.tr(t), "", "C", false)

	pageW, _ := w.pdf.GetPageSize()
	y := w.pdf.GetY() + 2
	w.pdf.SetDrawColor(ruleColor.r, ruleColor.g, ruleColor.b)
	w.pdf.SetLineWidth(0.6)
	w.pdf.Line(margin, y, pageW-margin, y)
	w.pdf.Ln(8)
}

func (w *writer) block(b entity.Block) {
	switch b.Kind {
	case entity.BlockHeading:
		w.heading(b, 16, 6)
	case entity.BlockSubheading:
		w.heading(b, 14, 4)
	default:
		for _, l := range b.Lines {
			w.line(l, 11)
		}
		w.pdf.Ln(3)
	}
}

func (w *writer) heading(b entity.Block, size float64, space float64) {
	w.pdf.Ln(space)
	w.pdf.SetFont(fontFamily, "B", size)
	setColor(w.pdf, headingColor)
	for _, l := range b.Lines {
		w.pdf.MultiCell(0, size*0.5, w.tr(l.Text()), "", "L", false)
	}
	w.pdf.Ln(2)
}

func (w *writer) line(l entity.Line, size float64) {
	if l.Marker != "" {
		w.pdf.SetX(margin + listIndent)
		w.pdf.SetFont(fontFamily, "", size)
		setColor(w.pdf, textColor)
		w.pdf.CellFormat(markerWidth, lineHeight, w.tr(l.Marker), "", 0, "L", false, 0, "")
		left, top, right, _ := w.pdf.GetMargins()
		w.pdf.SetLeftMargin(margin + listIndent + markerWidth)
		defer w.pdf.SetMargins(left, top, right)
	}

	for _, sp := range l.Spans {
		w.pdf.SetFont(fontFamily, style(sp), size)
		if sp.Link != "" {
			setColor(w.pdf, linkColor)
			w.pdf.WriteLinkString(lineHeight, w.tr(sp.Text), sp.Link)
			continue
		}
		setColor(w.pdf, textColor)
		w.pdf.Write(lineHeight, w.tr(sp.Text))
	}
	w.pdf.Ln(lineHeight + 1)
}

func (w *writer) references(cites []entity.Citation) {
	if len(cites) == 0 {
		return
	}
	w.pdf.Ln(6)
	w.pdf.SetFont(fontFamily, "B", 16)
	setColor(w.pdf, headingColor)
	w.pdf.MultiCell(0, 8, "References", "", "L", false)
	w.pdf.Ln(2)

	for _, c := range cites {
		name := c.FullName
		if name == "" {
			name = c.Name
		}
		w.pdf.SetFont(fontFamily, "", 10)
		setColor(w.pdf, textColor)
		w.pdf.Write(5, w.tr(fmt.Sprintf("[%d] %s. ", c.Number, name)))
		setColor(w.pdf, linkColor)
		w.pdf.SetFont(fontFamily, "U", 10)
		w.pdf.WriteLinkString(5, w.tr(c.URL), c.URL)
		w.pdf.Ln(6)
	}
}

func style(sp entity.Span) string {
	s := ""
	if sp.Bold {
		s += "B"
	}
	if sp.Italic {
		s += "I"
	}
	if sp.Underline {
		s += "U"
	}
	return s
}

func setColor(pdf *fpdf.Fpdf, c rgb) {
	pdf.SetTextColor(c.r, c.g, c.b)
}
