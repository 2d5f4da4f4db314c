package retrieval

// Engine ties extraction, ranking, diversification and classification
// into one search call. All components hold immutable tables, so one
// engine serves concurrent requests without coordination.
type Engine struct {
	extractor  *Extractor
	scorer     *Scorer
	classifier *Classifier
}

// EngineConfig carries the tables the engine is built from. Nil table
// fields fall back to the defaults in tables.go.
type EngineConfig struct {
	StopWords []string
	Synonyms  map[string][]string
	Topics    []Topic
}

func NewEngine(cfg EngineConfig) *Engine {
	if cfg.StopWords == nil {
		cfg.StopWords = DefaultStopWords
	}
	if cfg.Synonyms == nil {
		cfg.Synonyms = DefaultSynonyms
	}
	if cfg.Topics == nil {
		cfg.Topics = DefaultTopics
	}

	return &Engine{
		extractor:  NewExtractor(cfg.StopWords, cfg.Synonyms),
		scorer:     NewScorer(),
		classifier: NewClassifier(cfg.Topics),
	}
}

// Search ranks the indexed corpus against the question and returns up
// to k page-diversified fragments plus the question's topic label.
// An empty corpus or a question with no matches yields an empty result
// list, never an error; the topic falls back to TopicGeneral.
func (e *Engine) Search(idx *Index, question string, k int) ([]Result, string) {
	topic := e.classifier.Classify(question)

	keywords := e.extractor.Extract(question)
	ranked := e.scorer.Rank(idx, keywords)
	top := Diversify(ranked, k)

	return top, topic
}

// Classifier exposes the topic catalog for dashboard reporting.
func (e *Engine) Classifier() *Classifier {
	return e.classifier
}
