package sources

import (
	"context"
	"strings"

	"github.com/veyra/skillmap/ai"
	"github.com/veyra/skillmap/core"
)

// TextAdapter extracts skills from pasted free-form text such as a
// self-description or an informal note.
type TextAdapter struct {
	extractor ai.SkillExtractor
	text      string
}

// NewTextAdapter creates an adapter over pasted text.
func NewTextAdapter(extractor ai.SkillExtractor, text string) *TextAdapter {
	return &TextAdapter{
		extractor: extractor,
		text:      text,
	}
}

// Label returns the source label for pasted text.
func (a *TextAdapter) Label() string {
	return LabelText
}

// Extract sends the text to the oracle and returns its candidates.
func (a *TextAdapter) Extract(ctx context.Context) ([]core.Candidate, error) {
	if strings.TrimSpace(a.text) == "" {
		return nil, ErrEmptyText
	}
	return a.extractor.ExtractSkills(ctx, a.text, a.Label())
}

var _ Adapter = (*TextAdapter)(nil)
