package assistant

import (
	"strings"
	"unicode/utf8"

	"katalog/internal/config"
	"katalog/internal/service/assistant/lexicon"
)

// Classifier decides whether a question continues the previous turn's
// product set instead of starting a fresh search.
//
// This is a heuristic, not a semantic classifier: very short questions
// are assumed to be clarifications ("tak", "a ten drugi?"), and longer
// ones only count as follow-ups when they contain one of the fixed
// trigger phrases. It is testable only against the fixed threshold and
// phrase list, and it will misfire on adversarial input - accepted
// trade-off for a zero-latency decision.
type Classifier struct {
	lex *lexicon.Lexicon
}

// NewClassifier creates a Classifier over the given lexicon.
func NewClassifier(lex *lexicon.Lexicon) *Classifier {
	return &Classifier{lex: lex}
}

// IsFollowUp reports whether the question refers back to the
// previously shown products. An empty question counts as short and
// returns true; the retriever only acts on that when prior product IDs
// exist, so it cannot carry over from nothing.
func (c *Classifier) IsFollowUp(question string) bool {
	q := strings.ToLower(strings.TrimSpace(question))

	if utf8.RuneCountInString(q) <= config.FollowUpMaxRunes {
		return true
	}

	for _, phrase := range c.lex.FollowUpPhrases() {
		if strings.Contains(q, phrase) {
			return true
		}
	}
	return false
}
