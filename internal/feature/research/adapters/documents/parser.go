// Package documents はアップロードされた PDF / DOCX からテキストを抽出します。
package documents

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/ledongthuc/pdf"

	"advisor_backend/internal/feature/research/domain/entity"
	"advisor_backend/internal/feature/research/usecase"
)

// ObjectReader はオブジェクトストレージ上のファイルを読み出します。
type ObjectReader interface {
	ReadObject(ctx context.Context, rawURL string) ([]byte, error)
}

// Parser extracts text from uploaded files.
type Parser struct {
	reader ObjectReader
}

// NewParser は新しい Parser を生成します。
func NewParser(reader ObjectReader) *Parser {
	return &Parser{reader: reader}
}

// ParseAll parses every url in order. Per-file failures are recorded on the result.
func (p *Parser) ParseAll(ctx context.Context, urls []string) []entity.Document {
	docs := make([]entity.Document, 0, len(urls))
	for i, u := range urls {
		text, err := p.Parse(ctx, u)
		if err != nil {
			slog.Warn("failed to parse document", "index", i+1, "url", u, "error", err)
			docs = append(docs, entity.Document{URL: u, Error: err.Error()})
			continue
		}
		slog.Info("parsed document", "index", i+1, "url", u, "chars", len(text))
		docs = append(docs, entity.Document{URL: u, Text: text})
	}
	return docs
}

// Parse downloads one file and extracts its text based on the file extension.
func (p *Parser) Parse(ctx context.Context, rawURL string) (string, error) {
	ext, err := extension(rawURL)
	if err != nil {
		return "", err
	}
	switch ext {
	case ".pdf", ".docx":
	case ".doc":
		return "", fmt.Errorf("%w: legacy .doc files must be converted to .docx", usecase.ErrUnsupportedFormat)
	default:
		return "", fmt.Errorf("%w: %q", usecase.ErrUnsupportedFormat, ext)
	}

	data, err := p.reader.ReadObject(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", rawURL, err)
	}

	var text string
	if ext == ".pdf" {
		text, err = parsePDF(data)
	} else {
		text, err = parseDOCX(data)
	}
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", usecase.ErrEmptyDocument
	}
	return text, nil
}

func extension(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid document url %q: %w", rawURL, err)
	}
	return strings.ToLower(path.Ext(u.Path)), nil
}

// parsePDF extracts the plain text of every page.
func parsePDF(data []byte) (text string, err error) {
	// ledongthuc/pdf panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		sb.WriteString(content)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
