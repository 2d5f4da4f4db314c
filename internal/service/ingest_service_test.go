package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vinayramesh7/matlab-ai-tutor/internal/config"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/model"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainTextExtractorFormFeedPages(t *testing.T) {
	text := "page one text\fpage two text\fpage three"
	pages, err := PlainTextExtractor{}.Extract(context.Background(), strings.NewReader(text), "notes.txt")

	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, "page one text", pages[0].Text)
	assert.Equal(t, 3, pages[2].Number)
}

func TestPlainTextExtractorNoPageStructure(t *testing.T) {
	pages, err := PlainTextExtractor{}.Extract(context.Background(), strings.NewReader("just flat text"), "notes.txt")

	require.ErrorIs(t, err, ErrNoPageStructure)
	require.Len(t, pages, 1)
	assert.Equal(t, "just flat text", pages[0].Text)
}

func TestIngestRejectsEmptyDocument(t *testing.T) {
	// Empty uploads must surface ErrEmptyDocument before any storage
	// write, so the handler can answer 400 instead of storing a failed
	// document. A service without storage or repositories proves no
	// persistence is reached.
	s := NewIngestService(nil, nil, nil, config.RetrievalConfig{})

	doc := &model.Document{CourseID: 1, Filename: "empty.txt"}
	err := s.Ingest(context.Background(), doc, strings.NewReader("  \n\t "))

	require.ErrorIs(t, err, util.ErrEmptyDocument)
	assert.Empty(t, doc.ObjectKey)
	assert.Empty(t, doc.URL)
}

func TestExtractFragments(t *testing.T) {
	s := NewIngestService(nil, nil, nil, config.RetrievalConfig{MinChunkLength: 10})

	t.Run("paged text keeps real page numbers", func(t *testing.T) {
		text := strings.Repeat("matlab vectors ", 5) + "\f" + strings.Repeat("matlab loops ", 5)
		fragments, err := s.extractFragments(context.Background(), "notes.txt", []byte(text))

		require.NoError(t, err)
		require.Len(t, fragments, 2)
		assert.Equal(t, 1, fragments[0].Page)
		assert.Equal(t, 2, fragments[1].Page)
		assert.False(t, fragments[0].PageEstimated)
	})

	t.Run("flat text falls back to estimated pages", func(t *testing.T) {
		fragments, err := s.extractFragments(context.Background(), "notes.md", []byte(strings.Repeat("matlab arrays ", 5)))

		require.NoError(t, err)
		require.NotEmpty(t, fragments)
		assert.True(t, fragments[0].PageEstimated)
	})

	t.Run("unknown extension errors", func(t *testing.T) {
		_, err := s.extractFragments(context.Background(), "slides.pptx", []byte("anything"))
		assert.Error(t, err)
	})
}

func TestPlainTextExtractorEmpty(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "  \n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlainTextExtractor{}.Extract(context.Background(), strings.NewReader(tt.text), "empty.txt")
			assert.True(t, errors.Is(err, util.ErrEmptyDocument))
		})
	}
}
