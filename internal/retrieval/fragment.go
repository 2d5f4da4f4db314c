// Package retrieval implements the content search pipeline behind the
// tutoring chat: page-accurate chunking of uploaded documents, keyword
// extraction and expansion, multi-signal relevance ranking, page
// diversification of results and topic classification of questions.
//
// Every component is a pure function over immutable inputs. Tables and
// tuning constants are passed in at construction, so instances are safe
// for concurrent use and deterministic for a given corpus and question.
package retrieval

// Fragment is one retrieval unit: a slice of document text attributed
// to a single page. Fragments never span page boundaries, which keeps
// downstream citations to a single correct page number.
type Fragment struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
	Page     int    `json:"page"`
	// StartChar is the window offset within the page (or within the
	// whole document when the fallback chunker produced the fragment).
	StartChar int `json:"startChar"`
	// PageEstimated is true when Page was derived from a chars-per-page
	// constant instead of real page boundaries.
	PageEstimated bool `json:"pageEstimated"`
}

// Page is one page of extracted document text.
type Page struct {
	Number int
	Text   string
}

// Result is a ranked fragment.
type Result struct {
	Fragment
	Score float64 `json:"score"`
}
