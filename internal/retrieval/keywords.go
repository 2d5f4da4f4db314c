package retrieval

import (
	"strings"
	"unicode"
)

// Keywords is the transient output of query analysis. Primary holds the
// words the learner actually typed; Expanded holds synonym-table terms.
// The two sets stay separate because the scorer weights them
// differently.
type Keywords struct {
	Primary  []string
	Expanded []string
}

// Extractor normalizes questions into keyword sets and expands them
// with domain synonyms.
type Extractor struct {
	stopWords map[string]struct{}
	synonyms  map[string][]string
}

func NewExtractor(stopWords []string, synonyms map[string][]string) *Extractor {
	stops := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Extractor{
		stopWords: stops,
		synonyms:  synonyms,
	}
}

// Extract lower-cases the question, strips punctuation, splits on
// whitespace, drops short and stop-word tokens, and dedupes preserving
// first-seen order. Synonym expansion adds related terms that are not
// already primary keywords.
func (e *Extractor) Extract(question string) Keywords {
	tokens := Tokenize(question)

	var kw Keywords
	primarySeen := make(map[string]struct{})

	for _, tok := range tokens {
		if len([]rune(tok)) <= 2 {
			continue
		}
		if _, stop := e.stopWords[tok]; stop {
			continue
		}
		if _, dup := primarySeen[tok]; dup {
			continue
		}
		primarySeen[tok] = struct{}{}
		kw.Primary = append(kw.Primary, tok)
	}

	expandedSeen := make(map[string]struct{})
	for _, p := range kw.Primary {
		for _, related := range e.synonyms[p] {
			related = strings.ToLower(related)
			if _, dup := primarySeen[related]; dup {
				continue
			}
			if _, dup := expandedSeen[related]; dup {
				continue
			}
			expandedSeen[related] = struct{}{}
			kw.Expanded = append(kw.Expanded, related)
		}
	}

	return kw
}

// Tokenize lower-cases text and splits it into alphanumeric tokens,
// treating every other rune as a separator.
func Tokenize(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}
