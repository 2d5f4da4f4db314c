package retrieval

import (
	"regexp"
)

// Classifier assigns exactly one curriculum topic to a question by
// weighted keyword matching. All keyword matchers compile once at
// construction; classification itself allocates nothing shared and is
// safe for concurrent use.
type Classifier struct {
	topics []compiledTopic
}

type compiledTopic struct {
	name     string
	keywords []compiledKeyword
}

type compiledKeyword struct {
	pattern *regexp.Regexp
	weight  int
}

// NewClassifier compiles the topic table. Table order is significant:
// when two topics reach the same score, the one declared first wins.
func NewClassifier(topics []Topic) *Classifier {
	c := &Classifier{topics: make([]compiledTopic, 0, len(topics))}

	for _, t := range topics {
		ct := compiledTopic{name: t.Name}
		for _, kw := range t.Keywords {
			ct.keywords = append(ct.keywords, compiledKeyword{
				pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`),
				weight:  len([]rune(kw)),
			})
		}
		c.topics = append(c.topics, ct)
	}

	return c
}

// Classify returns the highest-scoring topic name, or TopicGeneral when
// nothing matches. A topic's score sums occurrences x keyword length
// over its keyword list, so longer (more specific) keywords count more.
func (c *Classifier) Classify(question string) string {
	best := TopicGeneral
	bestScore := 0

	for _, topic := range c.topics {
		score := 0
		for _, kw := range topic.keywords {
			matches := kw.pattern.FindAllStringIndex(question, -1)
			score += len(matches) * kw.weight
		}
		// Strict inequality keeps the earlier topic on ties.
		if score > bestScore {
			bestScore = score
			best = topic.name
		}
	}

	return best
}

// Topics lists the catalog's topic names in declaration order, with the
// general fallback appended. Dashboards use it to render every concept
// even before the learner has practiced it.
func (c *Classifier) Topics() []string {
	names := make([]string, 0, len(c.topics)+1)
	for _, t := range c.topics {
		names = append(names, t.name)
	}
	return append(names, TopicGeneral)
}
