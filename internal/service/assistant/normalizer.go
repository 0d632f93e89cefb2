package assistant

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"katalog/internal/config"
	"katalog/internal/service/assistant/lexicon"
)

// tokenPattern extracts alphanumeric runs, Latin letters plus Polish
// diacritics. Everything else (punctuation, emoji) separates tokens.
var tokenPattern = regexp.MustCompile(`[a-z0-9ąćęłńóśźż]+`)

// Normalizer turns a raw question into a short list of stemmed search
// tokens for keyword retrieval. It is a crude normalizer, not a
// morphological analyzer: one known suffix is stripped per token, and
// only when the remaining stem stays comfortably long.
type Normalizer struct {
	lex *lexicon.Lexicon
}

// NewNormalizer creates a Normalizer over the given lexicon.
func NewNormalizer(lex *lexicon.Lexicon) *Normalizer {
	return &Normalizer{lex: lex}
}

// Tokens returns up to config.MaxSearchTokens normalized tokens in
// their original order. Duplicates are kept. An empty or all-stopword
// question yields an empty slice, which callers must treat as "no
// keyword match possible".
func (n *Normalizer) Tokens(question string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(question), -1)

	var tokens []string
	for _, tok := range raw {
		if utf8.RuneCountInString(tok) < 3 || n.lex.IsStopword(tok) {
			continue
		}
		tokens = append(tokens, n.stem(tok))
		if len(tokens) == config.MaxSearchTokens {
			break
		}
	}
	return tokens
}

// stem strips the longest matching case/plural suffix, but only if the
// stem keeps more than three runes. Short words pass through unchanged
// to avoid over-stemming ("krem" must not become "kr").
func (n *Normalizer) stem(token string) string {
	for _, suffix := range n.lex.Suffixes() {
		if !strings.HasSuffix(token, suffix) {
			continue
		}
		stem := strings.TrimSuffix(token, suffix)
		if utf8.RuneCountInString(stem) > 3 {
			return stem
		}
	}
	return token
}
