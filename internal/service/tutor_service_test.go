package service

import (
	"strings"
	"testing"

	"github.com/vinayramesh7/matlab-ai-tutor/internal/retrieval"

	"github.com/stretchr/testify/assert"
)

func TestContextBlock(t *testing.T) {
	results := []retrieval.Result{
		{Fragment: retrieval.Fragment{Content: "A for loop repeats statements.", Filename: "basics.pdf", Page: 12}},
		{Fragment: retrieval.Fragment{Content: "While loops run until a condition fails.", Filename: "basics.pdf", Page: 13}},
	}

	block := contextBlock(results)

	assert.Contains(t, block, `Reference: "basics.pdf" - Page 12`)
	assert.Contains(t, block, `Reference: "basics.pdf" - Page 13`)
	assert.Contains(t, block, "A for loop repeats statements.")
	assert.True(t, strings.Index(block, "Page 12") < strings.Index(block, "Page 13"))
}

func TestContextBlockEmpty(t *testing.T) {
	assert.Equal(t, "", contextBlock(nil))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", excerpt("short", 200))

	long := strings.Repeat("x", 300)
	got := excerpt(long, 200)
	assert.Len(t, []rune(got), 203)
	assert.True(t, strings.HasSuffix(got, "..."))
}
