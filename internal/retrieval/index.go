package retrieval

// Index is a tokenized snapshot of one course's fragment corpus, built
// once per corpus load so scoring calls do not re-tokenize fragments.
// It is immutable after construction and safe for concurrent use.
type Index struct {
	fragments []Fragment
	docs      []indexedDoc
}

type indexedDoc struct {
	tokens []string
	// positions maps each token to its ordered positions within the
	// fragment, used for occurrence counts and the proximity bonus.
	positions map[string][]int
}

// NewIndex tokenizes every fragment of the corpus. Fragment order is
// preserved; the scorer's stable sort relies on it for deterministic
// tie-breaking.
func NewIndex(corpus []Fragment) *Index {
	idx := &Index{
		fragments: corpus,
		docs:      make([]indexedDoc, len(corpus)),
	}

	for i, f := range corpus {
		tokens := Tokenize(f.Content)
		positions := make(map[string][]int)
		for pos, tok := range tokens {
			positions[tok] = append(positions[tok], pos)
		}
		idx.docs[i] = indexedDoc{tokens: tokens, positions: positions}
	}

	return idx
}

// Len returns the number of fragments in the corpus.
func (idx *Index) Len() int {
	return len(idx.fragments)
}

// positionsOf returns the token positions of a keyword within fragment
// i. Multi-word keywords (synonym phrases like "control flow") match
// consecutive tokens and report the position of the first word.
func (idx *Index) positionsOf(i int, keyword string) []int {
	words := Tokenize(keyword)
	if len(words) == 0 {
		return nil
	}

	doc := idx.docs[i]
	if len(words) == 1 {
		return doc.positions[words[0]]
	}

	var positions []int
	for _, start := range doc.positions[words[0]] {
		if start+len(words) > len(doc.tokens) {
			continue
		}
		match := true
		for j := 1; j < len(words); j++ {
			if doc.tokens[start+j] != words[j] {
				match = false
				break
			}
		}
		if match {
			positions = append(positions, start)
		}
	}
	return positions
}

// documentFrequency counts fragments containing the keyword at least
// once.
func (idx *Index) documentFrequency(keyword string) int {
	df := 0
	for i := range idx.docs {
		if len(idx.positionsOf(i, keyword)) > 0 {
			df++
		}
	}
	return df
}
