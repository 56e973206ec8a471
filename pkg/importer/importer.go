// Package importer turns uploaded resume files into editable documents.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/pkg/ai"
)

const (
	MimeText = "text/plain"
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var ErrUnsupportedType = errors.New("unsupported file type")

// Generator produces model output for a prompt.
type Generator interface {
	Suggest(ctx context.Context, prompt string) (string, error)
}

// ExtractText returns the plain text of an uploaded file.
func ExtractText(mime string, data []byte) (string, error) {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	switch strings.TrimSpace(strings.ToLower(mime)) {
	case MimeText:
		return string(data), nil
	case MimePDF:
		return extractPDFText(data)
	case MimeDOCX:
		return extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
	}
}

func extractPDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			slog.Warn("skipping unreadable pdf page", "page", i, "error", err)
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxPlainText(doc.Editable().GetContent()), nil
}

// docxPlainText reduces document.xml content to text, one line per paragraph.
func docxPlainText(content string) string {
	content = paragraphEnd.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, "")
	lines := strings.Split(html.UnescapeString(content), "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

// Structure asks gen to convert text into a document. Output that cannot be
// parsed or fails validation degrades to an empty document; only transport
// failures are returned as errors.
func Structure(ctx context.Context, gen Generator, text string) (domain.ResumeDocument, error) {
	if strings.TrimSpace(text) == "" {
		return domain.NewResumeDocument(), nil
	}
	out, err := gen.Suggest(ctx, ai.StructurePrompt(text, model.Schema()))
	if err != nil {
		return domain.ResumeDocument{}, fmt.Errorf("structure resume: %w", err)
	}
	doc, err := decodeDocument(out)
	if err != nil {
		slog.Warn("discarding unparseable import output", "error", err)
		return domain.NewResumeDocument(), nil
	}
	return doc, nil
}

func decodeDocument(output string) (domain.ResumeDocument, error) {
	m, err := ai.DecodeObject(output)
	if err != nil {
		return domain.ResumeDocument{}, err
	}
	ai.SanitizeDocument(m)
	if err := model.ValidateMap(m); err != nil {
		return domain.ResumeDocument{}, err
	}
	b, err := json.Marshal(m)
	if err != nil {
		return domain.ResumeDocument{}, err
	}
	doc := domain.NewResumeDocument()
	if err := json.Unmarshal(b, &doc); err != nil {
		return domain.ResumeDocument{}, err
	}
	return doc, nil
}
