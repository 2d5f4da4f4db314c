package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	e := NewExtractor(DefaultStopWords, DefaultSynonyms)

	tests := []struct {
		name         string
		question     string
		wantPrimary  []string
		wantExpanded []string
	}{
		{
			name:        "loop question",
			question:    "How do I use a for loop to iterate?",
			wantPrimary: []string{"use", "for", "loop", "iterate"},
			// "for" is already primary, so expansion skips it.
			wantExpanded: []string{"while", "iteration", "repeat", "control flow"},
		},
		{
			name:         "punctuation and case",
			question:     "PLOT, plot... Plot!",
			wantPrimary:  []string{"plot"},
			wantExpanded: []string{"figure", "graph", "axes", "xlabel", "ylabel", "legend"},
		},
		{
			name:         "short and stop words dropped",
			question:     "what is an me to it",
			wantPrimary:  nil,
			wantExpanded: nil,
		},
		{
			name:         "dedupe preserves first seen order",
			question:     "matrix vector matrix",
			wantPrimary:  []string{"matrix", "vector"},
			wantExpanded: []string{"array", "matrices", "rows", "columns", "element", "row", "column", "linspace", "colon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kw := e.Extract(tt.question)
			assert.Equal(t, tt.wantPrimary, kw.Primary)
			assert.Equal(t, tt.wantExpanded, kw.Expanded)
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Hello, World!", []string{"hello", "world"}},
		{"a=zeros(3,4)", []string{"a", "zeros", "3", "4"}},
		{"", nil},
		{"...", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Tokenize(tt.in), tt.in)
	}
}
