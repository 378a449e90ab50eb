package sources

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/veyra/skillmap/ai"
	"github.com/veyra/skillmap/core"
)

// maxDocumentRunes bounds how much converted text is sent to the oracle.
// Longer documents are truncated, not rejected.
const maxDocumentRunes = 24000

// DocumentAdapter extracts skills from an uploaded document. Plain text and
// markdown pass through unchanged; HTML is stripped to its text content.
// Binary formats are rejected before any oracle call.
type DocumentAdapter struct {
	extractor ai.SkillExtractor
	name      string
	data      []byte
}

// NewDocumentAdapter creates an adapter over a named document and its bytes.
// The extension of name selects the converter.
func NewDocumentAdapter(extractor ai.SkillExtractor, name string, data []byte) *DocumentAdapter {
	return &DocumentAdapter{
		extractor: extractor,
		name:      name,
		data:      data,
	}
}

// Label returns the source label for uploaded documents.
func (a *DocumentAdapter) Label() string {
	return LabelDocument
}

// Extract converts the document to plain text and sends it to the oracle.
func (a *DocumentAdapter) Extract(ctx context.Context) ([]core.Candidate, error) {
	text, err := a.toText()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	text = truncateRunes(text, maxDocumentRunes)
	return a.extractor.ExtractSkills(ctx, text, a.Label())
}

func (a *DocumentAdapter) toText() (string, error) {
	ext := strings.ToLower(filepath.Ext(a.name))
	switch ext {
	case ".txt", ".md", "":
		return string(a.data), nil
	case ".html", ".htm":
		return htmlToText(string(a.data))
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// htmlToText parses HTML and collects the text content of the node tree,
// skipping script and style elements.
func htmlToText(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String()), nil
}

// truncateRunes caps s at n runes without splitting a multi-byte character.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

var _ Adapter = (*DocumentAdapter)(nil)
