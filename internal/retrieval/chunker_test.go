package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeatText(n int) string {
	// "ab " repeated, trimmed to exactly n runes.
	return strings.Repeat("ab ", n/3+1)[:n]
}

func TestChunkPagesWindowing(t *testing.T) {
	c := NewChunker(ChunkerConfig{})

	fragments := c.ChunkPages("intro.pdf", []Page{
		{Number: 3, Text: repeatText(900)},
	})

	require.Len(t, fragments, 2)
	assert.Equal(t, 0, fragments[0].StartChar)
	assert.Equal(t, 400, fragments[1].StartChar)
	for _, f := range fragments {
		assert.Equal(t, "intro.pdf", f.Filename)
		assert.Equal(t, 3, f.Page)
		assert.False(t, f.PageEstimated)
		assert.LessOrEqual(t, len([]rune(f.Content)), 500)
		assert.Greater(t, len([]rune(f.Content)), 50)
	}
}

func TestChunkPagesNeverSpansPages(t *testing.T) {
	c := NewChunker(ChunkerConfig{})

	fragments := c.ChunkPages("notes.pdf", []Page{
		{Number: 1, Text: repeatText(600)},
		{Number: 2, Text: repeatText(600)},
	})

	require.NotEmpty(t, fragments)
	for _, f := range fragments {
		assert.Contains(t, []int{1, 2}, f.Page)
	}
	// Each page restarts the window at offset zero.
	var starts []int
	for _, f := range fragments {
		if f.Page == 2 {
			starts = append(starts, f.StartChar)
		}
	}
	require.NotEmpty(t, starts)
	assert.Equal(t, 0, starts[0])
}

func TestChunkPagesDropsShortTails(t *testing.T) {
	c := NewChunker(ChunkerConfig{})

	tests := []struct {
		name string
		text string
		want int
	}{
		{"below minimum", repeatText(40), 0},
		{"exactly minimum", repeatText(50), 0},
		{"just above minimum", repeatText(52), 1},
		{"empty page", "", 0},
		{"whitespace only", "   \n\t  ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fragments := c.ChunkPages("a.txt", []Page{{Number: 1, Text: tt.text}})
			assert.Len(t, fragments, tt.want)
		})
	}
}

func TestChunkWholeEstimatesPages(t *testing.T) {
	c := NewChunker(ChunkerConfig{})

	fragments := c.ChunkWhole("dump.txt", repeatText(4000))

	require.NotEmpty(t, fragments)
	for _, f := range fragments {
		assert.True(t, f.PageEstimated)
		assert.Equal(t, f.StartChar/1800+1, f.Page)
	}
	assert.Equal(t, 1, fragments[0].Page)
	last := fragments[len(fragments)-1]
	assert.Equal(t, 3, last.Page)
}

func TestChunkerSmallWindowTerminates(t *testing.T) {
	tests := []struct {
		name string
		cfg  ChunkerConfig
	}{
		{"overlap equals window", ChunkerConfig{ChunkSize: 100, Overlap: 100, MinLength: 10}},
		{"overlap exceeds window", ChunkerConfig{ChunkSize: 80, Overlap: 90, MinLength: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChunker(tt.cfg)
			assert.Less(t, c.cfg.Overlap, c.cfg.ChunkSize)

			fragments := c.ChunkPages("tiny.txt", []Page{{Number: 1, Text: repeatText(300)}})
			require.NotEmpty(t, fragments)
			for _, f := range fragments {
				assert.LessOrEqual(t, len([]rune(f.Content)), tt.cfg.ChunkSize)
			}

			whole := c.ChunkWhole("tiny.txt", repeatText(300))
			assert.NotEmpty(t, whole)
		})
	}
}

func TestChunkerConfigDefaults(t *testing.T) {
	c := NewChunker(ChunkerConfig{ChunkSize: -1, Overlap: 600, MinLength: 0})
	assert.Equal(t, 500, c.cfg.ChunkSize)
	assert.Equal(t, 100, c.cfg.Overlap)
	assert.Equal(t, 50, c.cfg.MinLength)
	assert.Equal(t, 1800, c.cfg.CharsPerPage)
}
