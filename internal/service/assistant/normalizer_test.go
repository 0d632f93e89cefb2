package assistant

import (
	"reflect"
	"strings"
	"testing"

	"katalog/internal/service/assistant/lexicon"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	lex, err := lexicon.New()
	if err != nil {
		t.Fatalf("load lexicon: %v", err)
	}
	return NewNormalizer(lex)
}

func TestNormalizer_Tokens(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name     string
		question string
		expected []string
	}{
		{
			name:     "stems and drops stopwords",
			question: "Szukam kremu do twarzy",
			expected: []string{"krem", "twarz"},
		},
		{
			name:     "lowercases and keeps diacritics",
			question: "SZAMPON do WŁOSÓW",
			expected: []string{"szampon", "włos"},
		},
		{
			name:     "punctuation separates tokens",
			question: "krem,twarzy!szampon?",
			expected: []string{"krem", "twarz", "szampon"},
		},
		{
			name:     "drops tokens shorter than three runes",
			question: "xy ab krem",
			expected: []string{"krem"},
		},
		{
			name:     "all stopwords yields empty",
			question: "czy macie coś dla mnie",
			expected: nil,
		},
		{
			name:     "empty question yields empty",
			question: "   ",
			expected: nil,
		},
		{
			name:     "duplicates are kept in order",
			question: "krem krem twarzy",
			expected: []string{"krem", "krem", "twarz"},
		},
		{
			name:     "caps at six tokens",
			question: "krem szampon balsam odżywka peeling maseczka tonik serum",
			expected: []string{"krem", "szampon", "balsam", "odżywk", "peeling", "maseczk"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Tokens(tt.question)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokens(%q) = %v, want %v", tt.question, got, tt.expected)
			}
		})
	}
}

func TestNormalizer_TokensDeterministic(t *testing.T) {
	n := newTestNormalizer(t)

	question := "Jaki krem do suchej twarzy polecacie na zimę?"
	first := n.Tokens(question)
	for i := 0; i < 10; i++ {
		if got := n.Tokens(question); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: Tokens changed from %v to %v", i, first, got)
		}
	}
}

func TestNormalizer_StemIdempotent(t *testing.T) {
	n := newTestNormalizer(t)

	// A stemmed token run through the normalizer again must not shrink
	// further.
	words := []string{"kremy", "szamponu", "twarzy", "odżywka", "balsamem"}
	for _, w := range words {
		once := n.Tokens(w)
		if len(once) != 1 {
			t.Fatalf("Tokens(%q) = %v, want one token", w, once)
		}
		twice := n.Tokens(once[0])
		if len(twice) != 1 || twice[0] != once[0] {
			t.Errorf("stemming %q is not idempotent: %q -> %v", w, once[0], twice)
		}
	}
}

func TestNormalizer_ShortStemsPassThrough(t *testing.T) {
	n := newTestNormalizer(t)

	// "krem" ends in a known suffix ("em") but stripping it would leave
	// a two-rune stem, so the word must survive unchanged.
	got := n.Tokens("krem")
	if len(got) != 1 || got[0] != "krem" {
		t.Errorf("Tokens(\"krem\") = %v, want [krem]", got)
	}
}

func TestNormalizer_LongQuestionStaysBounded(t *testing.T) {
	n := newTestNormalizer(t)

	question := strings.Repeat("balsam szampon krem ", 50)
	got := n.Tokens(question)
	if len(got) != 6 {
		t.Errorf("len(Tokens) = %d, want 6", len(got))
	}
}
