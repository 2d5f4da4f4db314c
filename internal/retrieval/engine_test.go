package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineSearch(t *testing.T) {
	engine := NewEngine(EngineConfig{})
	idx := NewIndex([]Fragment{
		{Content: "A for loop repeats a block of statements a fixed number of times.", Filename: "basics.pdf", Page: 12},
		{Content: "The plot command draws a line graph in the current figure.", Filename: "graphics.pdf", Page: 3},
		{Content: "Matrices are rectangular arrays of numbers.", Filename: "basics.pdf", Page: 4},
	})

	results, topic := engine.Search(idx, "How do I use a for loop to iterate?", 4)

	assert.Equal(t, "loops", topic)
	require.NotEmpty(t, results)
	assert.Equal(t, "basics.pdf", results[0].Filename)
	assert.Equal(t, 12, results[0].Page)
}

func TestEngineSearchEmptyCorpus(t *testing.T) {
	engine := NewEngine(EngineConfig{})

	results, topic := engine.Search(NewIndex(nil), "How do I use a for loop?", 4)

	assert.Empty(t, results)
	assert.Equal(t, "loops", topic, "classification works without a corpus")
}

func TestEngineSearchNoMatches(t *testing.T) {
	engine := NewEngine(EngineConfig{})
	idx := NewIndex([]Fragment{
		{Content: "Unrelated text about cooking pasta.", Filename: "a.pdf", Page: 1},
	})

	results, topic := engine.Search(idx, "xyzzy gibberish nothing", 4)

	assert.Empty(t, results)
	assert.Equal(t, TopicGeneral, topic)
}

func TestEngineCustomTopics(t *testing.T) {
	engine := NewEngine(EngineConfig{
		Topics: []Topic{{Name: "custom", Keywords: []string{"widget"}}},
	})

	_, topic := engine.Search(NewIndex(nil), "what is a widget", 4)
	assert.Equal(t, "custom", topic)
	assert.Equal(t, []string{"custom", TopicGeneral}, engine.Classifier().Topics())
}
