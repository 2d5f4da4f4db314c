package retrieval

import (
	"fmt"
	"math"
	"regexp"
	"sort"
)

// Score weights. The primary/expanded multipliers keep typed keywords
// dominant over synonym expansions; the fixed boosts reward fragments
// whose structure suggests explanatory material.
const (
	primaryWeight     = 5.0
	expandedWeight    = 2.0
	sectionBoost      = 50.0
	definitionBoost   = 40.0
	exampleBoost      = 20.0
	captionBoost      = 30.0
	proximityWindow   = 20
	proximityFactor   = 2.0
	contextMultiplier = 1.3
)

// Structural patterns are keyword-independent, so they compile once at
// package load.
var (
	sectionPattern     = regexp.MustCompile(`(?im)(^\s*\d+(\.\d+)*\s+\S|\b(chapter|section)\s+\d+)`)
	examplePattern     = regexp.MustCompile(`(?i)\b(for instance|for example|e\.g\.|consider)`)
	captionPattern     = regexp.MustCompile(`(?i)\b(figure|fig\.|table)\s*\d+`)
	richContextPattern = regexp.MustCompile(`(?i)^\s*(\d+(\.\d+)*\s|chapter\b|section\b|introduction\b|definition\b|overview\b)`)
	definitionalPhrase = regexp.MustCompile(`(?i)\b(is|are)\s+(defined\s+as|called)\b|\bdefinition\s+of\b|\brefers\s+to\b|\bmeans\b`)
)

// Scorer ranks an indexed corpus against an expanded keyword set.
// It is stateless and safe for concurrent use.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Rank scores every fragment and returns matches ordered by descending
// score. The sort is stable, so equally scored fragments keep their
// corpus order and repeated calls are deterministic. Fragments scoring
// zero or below are excluded.
func (s *Scorer) Rank(idx *Index, kw Keywords) []Result {
	if idx.Len() == 0 || (len(kw.Primary) == 0 && len(kw.Expanded) == 0) {
		return nil
	}

	idf := s.inverseDocumentFrequencies(idx, kw.Primary)
	defPatterns := definitionPatterns(kw.Primary)

	var results []Result
	for i := range idx.fragments {
		score := s.scoreFragment(idx, i, kw, idf, defPatterns)
		if score <= 0 {
			continue
		}
		results = append(results, Result{
			Fragment: idx.fragments[i],
			Score:    score,
		})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	return results
}

// inverseDocumentFrequencies computes ln(N/df)+1 per primary keyword.
// A keyword absent from the whole corpus gets idf 1 so it contributes
// neutrally instead of dividing by zero.
func (s *Scorer) inverseDocumentFrequencies(idx *Index, primary []string) map[string]float64 {
	idf := make(map[string]float64, len(primary))
	total := float64(idx.Len())

	for _, kw := range primary {
		df := idx.documentFrequency(kw)
		if df == 0 {
			idf[kw] = 1
			continue
		}
		idf[kw] = math.Log(total/float64(df)) + 1
	}
	return idf
}

// definitionPatterns compiles one matcher per primary keyword for
// phrases like "a loop is ..." or "definition of loop". These depend on
// the query, so they compile once per call, never per fragment.
func definitionPatterns(primary []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(primary))
	for _, kw := range primary {
		quoted := regexp.QuoteMeta(kw)
		patterns = append(patterns, regexp.MustCompile(fmt.Sprintf(
			`(?i)\b%s\s+(is|are|means|refers\s+to|defined\s+as)\b|\bdefinition\s+of\s+%s\b`,
			quoted, quoted,
		)))
	}
	return patterns
}

func (s *Scorer) scoreFragment(idx *Index, i int, kw Keywords, idf map[string]float64, defPatterns []*regexp.Regexp) float64 {
	content := idx.fragments[i].Content
	score := 0.0

	// Keyword occurrence positions double as the proximity input.
	matched := make(map[string][]int, len(kw.Primary)+len(kw.Expanded))

	for _, p := range kw.Primary {
		positions := idx.positionsOf(i, p)
		if len(positions) == 0 {
			continue
		}
		matched[p] = positions
		score += float64(len(positions)) * idf[p] * float64(len([]rune(p))) * primaryWeight
	}

	for _, e := range kw.Expanded {
		positions := idx.positionsOf(i, e)
		if len(positions) == 0 {
			continue
		}
		matched[e] = positions
		score += float64(len(positions)) * float64(len([]rune(e))) * expandedWeight
	}

	if score == 0 {
		return 0
	}

	if sectionPattern.MatchString(content) {
		score += sectionBoost
	}
	for _, pattern := range defPatterns {
		score += float64(len(pattern.FindAllStringIndex(content, -1))) * definitionBoost
	}
	if examplePattern.MatchString(content) {
		score += exampleBoost
	}
	if captionPattern.MatchString(content) {
		score += captionBoost
	}

	score += proximityBonus(matched)

	if richContextPattern.MatchString(content) || definitionalPhrase.MatchString(content) {
		score *= contextMultiplier
	}

	return score
}

// proximityBonus rewards fragments where distinct query keywords occur
// close together: every position pair within the window adds
// (window - distance) * factor.
func proximityBonus(matched map[string][]int) float64 {
	keywords := make([]string, 0, len(matched))
	for k := range matched {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)

	bonus := 0.0
	for a := 0; a < len(keywords); a++ {
		for b := a + 1; b < len(keywords); b++ {
			for _, pa := range matched[keywords[a]] {
				for _, pb := range matched[keywords[b]] {
					d := pa - pb
					if d < 0 {
						d = -d
					}
					if d < proximityWindow {
						bonus += float64(proximityWindow-d) * proximityFactor
					}
				}
			}
		}
	}
	return bonus
}
