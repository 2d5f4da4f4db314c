package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultTopics)

	tests := []struct {
		question string
		want     string
	}{
		{"How do I use a for loop to iterate?", "loops"},
		{"What is the transpose of a matrix?", "matrices"},
		{"How do I add a legend and xlabel to my figure?", "plotting"},
		{"Explain sprintf and num2str for strings", "strings"},
		{"How do I set a breakpoint to debug an error?", "debugging"},
		{"fopen and fprintf to save data to a csv", "file_io"},
		{"What are fieldnames of a struct?", "structs"},
		{"Tell me a joke", "general"},
		{"", "general"},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.question))
		})
	}
}

func TestClassifyWordBoundaries(t *testing.T) {
	c := NewClassifier([]Topic{
		{Name: "loops", Keywords: []string{"loop"}},
	})

	// "looping" must not match the keyword "loop".
	assert.Equal(t, TopicGeneral, c.Classify("looping around"))
	assert.Equal(t, "loops", c.Classify("a loop here"))
}

func TestClassifyTieKeepsEarlierTopic(t *testing.T) {
	c := NewClassifier([]Topic{
		{Name: "first", Keywords: []string{"shared"}},
		{Name: "second", Keywords: []string{"shared"}},
	})

	assert.Equal(t, "first", c.Classify("a shared keyword"))
}

func TestClassifyWeightsByKeywordLength(t *testing.T) {
	c := NewClassifier([]Topic{
		{Name: "short", Keywords: []string{"abc"}},
		{Name: "long", Keywords: []string{"abcdefgh"}},
	})

	// One occurrence each: the longer keyword scores higher.
	assert.Equal(t, "long", c.Classify("abc and abcdefgh"))
}

func TestTopicsCatalog(t *testing.T) {
	c := NewClassifier(DefaultTopics)

	names := c.Topics()
	assert.Len(t, names, 15)
	assert.Equal(t, "variables", names[0])
	assert.Equal(t, TopicGeneral, names[14])
}
