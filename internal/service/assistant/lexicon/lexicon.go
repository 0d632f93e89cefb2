// Package lexicon holds the fixed Polish word lists the assistant's
// retrieval heuristics run on. The lists are embedded at build time so
// the binary has no runtime file dependencies and every deployment
// scores queries identically.
package lexicon

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Lexicon exposes the stopword set, stemming suffixes and follow-up
// trigger phrases for one language. Immutable after load.
type Lexicon struct {
	stopwords map[string]struct{}
	suffixes  []string
	phrases   []string
}

type lexiconFile struct {
	Stopwords       []string `yaml:"stopwords"`
	FollowUpPhrases []string `yaml:"follow_up_phrases"`
	Suffixes        []string `yaml:"suffixes"`
}

// New loads the embedded Polish lexicon.
func New() (*Lexicon, error) {
	return load("polish")
}

func load(language string) (*Lexicon, error) {
	filename := fmt.Sprintf("config/%s.yaml", language)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	var file lexiconFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", filename, err)
	}

	if len(file.Stopwords) == 0 || len(file.Suffixes) == 0 || len(file.FollowUpPhrases) == 0 {
		return nil, fmt.Errorf("lexicon %s: missing stopwords, suffixes or follow_up_phrases", language)
	}

	lex := &Lexicon{
		stopwords: make(map[string]struct{}, len(file.Stopwords)),
		suffixes:  append([]string(nil), file.Suffixes...),
		phrases:   append([]string(nil), file.FollowUpPhrases...),
	}
	for _, w := range file.Stopwords {
		lex.stopwords[w] = struct{}{}
	}

	// Longest suffix must win regardless of file ordering.
	sort.SliceStable(lex.suffixes, func(i, j int) bool {
		return len(lex.suffixes[i]) > len(lex.suffixes[j])
	})

	return lex, nil
}

// IsStopword reports whether the (already lower-cased) token carries
// no retrieval signal.
func (l *Lexicon) IsStopword(token string) bool {
	_, ok := l.stopwords[token]
	return ok
}

// Suffixes returns the stemming suffixes, longest first.
func (l *Lexicon) Suffixes() []string {
	return l.suffixes
}

// FollowUpPhrases returns the trigger phrases that mark a question as
// continuing the previous turn's product set.
func (l *Lexicon) FollowUpPhrases() []string {
	return l.phrases
}
