package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frag(content string, page int) Fragment {
	return Fragment{Content: content, Filename: "course.pdf", Page: page}
}

func TestRankOccurrenceScore(t *testing.T) {
	idx := NewIndex([]Fragment{frag("loop loop", 1)})
	s := NewScorer()

	results := s.Rank(idx, Keywords{Primary: []string{"loop"}})

	require.Len(t, results, 1)
	// 2 occurrences * idf 1 (single-fragment corpus) * len("loop") * primary weight 5.
	assert.InDelta(t, 40.0, results[0].Score, 0.001)
}

func TestRankPrimaryDominatesExpanded(t *testing.T) {
	idx := NewIndex([]Fragment{
		frag("while appears once in this fragment of prose", 1),
		frag("loops appears once in this fragment of prose", 2),
	})
	s := NewScorer()

	results := s.Rank(idx, Keywords{
		Primary:  []string{"loops"},
		Expanded: []string{"while"},
	})

	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].Page, "primary keyword match must outrank the equally long expanded match")
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestRankProximityBonus(t *testing.T) {
	idx := NewIndex([]Fragment{frag("loop iterate", 1)})
	s := NewScorer()

	results := s.Rank(idx, Keywords{Primary: []string{"loop", "iterate"}})

	require.Len(t, results, 1)
	// Bases: loop 1*1*4*5=20, iterate 1*1*7*5=35. Adjacent positions add
	// (20-1)*2=38.
	assert.InDelta(t, 93.0, results[0].Score, 0.001)
}

func TestRankDefinitionOutranksMention(t *testing.T) {
	idx := NewIndex([]Fragment{
		frag("you can also mention loop in passing text here", 1),
		frag("a loop is defined as a repeated block of statements", 2),
	})
	s := NewScorer()

	results := s.Rank(idx, Keywords{Primary: []string{"loop"}})

	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].Page)
}

func TestRankExcludesNonMatches(t *testing.T) {
	idx := NewIndex([]Fragment{
		frag("completely unrelated prose about cooking", 1),
		frag("a loop repeats statements", 2),
	})
	s := NewScorer()

	results := s.Rank(idx, Keywords{Primary: []string{"loop"}})

	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].Page)
}

func TestRankEmptyInputs(t *testing.T) {
	s := NewScorer()

	assert.Nil(t, s.Rank(NewIndex(nil), Keywords{Primary: []string{"loop"}}))
	assert.Nil(t, s.Rank(NewIndex([]Fragment{frag("loop", 1)}), Keywords{}))
}

func TestRankDeterministicTies(t *testing.T) {
	// Identical fragments score identically; the stable sort keeps
	// corpus order on every call.
	corpus := []Fragment{
		frag("loop content duplicated", 1),
		frag("loop content duplicated", 2),
		frag("loop content duplicated", 3),
	}
	idx := NewIndex(corpus)
	s := NewScorer()
	kw := Keywords{Primary: []string{"loop"}}

	first := s.Rank(idx, kw)
	require.Len(t, first, 3)
	for i := 0; i < 10; i++ {
		again := s.Rank(idx, kw)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, 1, first[0].Page)
	assert.Equal(t, 2, first[1].Page)
	assert.Equal(t, 3, first[2].Page)
}

func TestIndexPhraseMatching(t *testing.T) {
	idx := NewIndex([]Fragment{
		frag("loops belong to control flow constructs", 1),
		frag("flow control is a different phrase order", 2),
	})

	assert.Equal(t, []int{3}, idx.positionsOf(0, "control flow"))
	assert.Nil(t, idx.positionsOf(1, "control flow"))
	assert.Equal(t, 1, idx.documentFrequency("control flow"))
}
