package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranked(filename string, page int, score float64) Result {
	return Result{
		Fragment: Fragment{Filename: filename, Page: page},
		Score:    score,
	}
}

func TestDiversifySpreadsAcrossPages(t *testing.T) {
	// Eight high scorers on one page, two lower scorers on another. The
	// page cap keeps two of the dominant page and pulls in the rest.
	var results []Result
	for i := 0; i < 8; i++ {
		results = append(results, ranked("a.pdf", 1, float64(100-i)))
	}
	results = append(results, ranked("a.pdf", 2, 10))
	results = append(results, ranked("a.pdf", 2, 9))

	top := Diversify(results, 4)

	require.Len(t, top, 4)
	pages := []int{top[0].Page, top[1].Page, top[2].Page, top[3].Page}
	assert.Equal(t, []int{1, 1, 2, 2}, pages)
}

func TestDiversifySamePageNumberDifferentFiles(t *testing.T) {
	// Page numbers only collide within one document.
	results := []Result{
		ranked("a.pdf", 1, 50),
		ranked("a.pdf", 1, 40),
		ranked("b.pdf", 1, 30),
		ranked("b.pdf", 1, 20),
	}

	top := Diversify(results, 4)
	require.Len(t, top, 4)
}

func TestDiversifyReturnsAtMostK(t *testing.T) {
	var results []Result
	for page := 1; page <= 10; page++ {
		results = append(results, ranked("a.pdf", page, float64(100-page)))
	}

	assert.Len(t, Diversify(results, 4), 4)
	assert.Len(t, Diversify(results, 100), 10)
}

func TestDiversifyEdgeCases(t *testing.T) {
	assert.Nil(t, Diversify(nil, 4))
	assert.Nil(t, Diversify([]Result{ranked("a.pdf", 1, 1)}, 0))
	assert.Len(t, Diversify([]Result{ranked("a.pdf", 1, 1)}, 4), 1)
}

func TestDiversifyPreservesScoreOrder(t *testing.T) {
	results := []Result{
		ranked("a.pdf", 1, 90),
		ranked("a.pdf", 2, 80),
		ranked("a.pdf", 1, 70),
		ranked("a.pdf", 3, 60),
	}

	top := Diversify(results, 4)
	require.Len(t, top, 4)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Score, top[i].Score)
	}
}
