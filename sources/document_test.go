package sources

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyra/skillmap/ai/mock"
	"github.com/veyra/skillmap/core"
)

func TestDocumentAdapter_PlainTextPassthrough(t *testing.T) {
	var seen string
	extractor := mock.NewSkillExtractor()
	extractor.ExtractSkillsFunc = func(ctx context.Context, text, source string) ([]core.Candidate, error) {
		seen = text
		return []core.Candidate{{Name: "Go", Kind: core.KindExplicit, Confidence: 0.9, Source: source}}, nil
	}

	adapter := NewDocumentAdapter(extractor, "resume.txt", []byte("Built services in Go."))

	candidates, err := adapter.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	assert.Equal(t, "Built services in Go.", seen)
	assert.Equal(t, "Document", candidates[0].Source)
}

func TestDocumentAdapter_MarkdownPassthrough(t *testing.T) {
	extractor := mock.NewSkillExtractor()
	adapter := NewDocumentAdapter(extractor, "notes.md", []byte("# Skills\n\nKubernetes"))

	_, err := adapter.Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, extractor.CallCount())
}

func TestDocumentAdapter_HTMLStripped(t *testing.T) {
	var seen string
	extractor := mock.NewSkillExtractor()
	extractor.ExtractSkillsFunc = func(ctx context.Context, text, source string) ([]core.Candidate, error) {
		seen = text
		return nil, nil
	}

	doc := `<html><head><style>body { color: red; }</style>
<script>alert("hi")</script></head>
<body><h1>Profile</h1><p>Shipped a payment service in Go.</p></body></html>`
	adapter := NewDocumentAdapter(extractor, "profile.html", []byte(doc))

	_, err := adapter.Extract(context.Background())
	require.NoError(t, err)

	assert.Contains(t, seen, "Profile")
	assert.Contains(t, seen, "Shipped a payment service in Go.")
	assert.NotContains(t, seen, "alert")
	assert.NotContains(t, seen, "color: red")
}

func TestDocumentAdapter_UnsupportedFormat(t *testing.T) {
	for _, name := range []string{"cv.pdf", "cv.docx", "photo.png"} {
		t.Run(name, func(t *testing.T) {
			extractor := mock.NewSkillExtractor()
			adapter := NewDocumentAdapter(extractor, name, []byte("binary"))

			_, err := adapter.Extract(context.Background())
			require.ErrorIs(t, err, ErrUnsupportedFormat)
			assert.Equal(t, 0, extractor.CallCount())
		})
	}
}

func TestDocumentAdapter_EmptyDocument(t *testing.T) {
	extractor := mock.NewSkillExtractor()
	adapter := NewDocumentAdapter(extractor, "blank.txt", []byte("   \n  "))

	_, err := adapter.Extract(context.Background())
	require.ErrorIs(t, err, ErrEmptyDocument)
}

func TestDocumentAdapter_TruncatesLongInput(t *testing.T) {
	var seen string
	extractor := mock.NewSkillExtractor()
	extractor.ExtractSkillsFunc = func(ctx context.Context, text, source string) ([]core.Candidate, error) {
		seen = text
		return nil, nil
	}

	long := strings.Repeat("a", maxDocumentRunes+500)
	adapter := NewDocumentAdapter(extractor, "big.txt", []byte(long))

	_, err := adapter.Extract(context.Background())
	require.NoError(t, err)
	assert.Len(t, []rune(seen), maxDocumentRunes)
}

func TestTruncateRunes_MultiByte(t *testing.T) {
	s := strings.Repeat("é", 10)
	assert.Equal(t, strings.Repeat("é", 4), truncateRunes(s, 4))
	assert.Equal(t, s, truncateRunes(s, 10))
	assert.Equal(t, s, truncateRunes(s, 20))
}
