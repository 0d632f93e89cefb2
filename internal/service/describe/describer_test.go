package describe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"katalog/internal/domain/models"
)

type fakeCompleter struct {
	response string
	err      error
	called   bool
	gotTurns []models.Turn
	gotTemp  float32
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []models.Turn, temperature float32) (string, error) {
	f.called = true
	f.gotTurns = messages
	f.gotTemp = temperature
	return f.response, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSummarize(t *testing.T) {
	completer := &fakeCompleter{response: "  ## Podstawowe informacje\n- Nazwa: Krem  "}
	d := New(completer, discardLogger())

	got := d.Summarize(context.Background(), "Krem nawilżający 50ml, marka Example.")

	if got != "## Podstawowe informacje\n- Nazwa: Krem" {
		t.Errorf("Summarize = %q", got)
	}
	if completer.gotTemp != 0.3 {
		t.Errorf("temperature = %v, want 0.3", completer.gotTemp)
	}
	if len(completer.gotTurns) != 1 || completer.gotTurns[0].Role != models.RoleUser {
		t.Fatalf("unexpected request shape: %v", completer.gotTurns)
	}
	if !strings.Contains(completer.gotTurns[0].Content, "Krem nawilżający 50ml") {
		t.Errorf("source text missing from prompt")
	}
	if !strings.Contains(completer.gotTurns[0].Content, "## Podsumowanie") {
		t.Errorf("section requirements missing from prompt")
	}
}

func TestSummarize_EmptySource(t *testing.T) {
	completer := &fakeCompleter{}
	d := New(completer, discardLogger())

	tests := []string{"", "   ", "\n\t"}
	for _, source := range tests {
		if got := d.Summarize(context.Background(), source); got != "Brak dostępnej treści do streszczenia." {
			t.Errorf("Summarize(%q) = %q", source, got)
		}
	}
	if completer.called {
		t.Errorf("model called for empty source text")
	}
}

func TestSummarize_ModelFailure(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("timeout")}
	d := New(completer, discardLogger())

	if got := d.Summarize(context.Background(), "jakiś tekst"); got != "Błąd podczas generowania streszczenia." {
		t.Errorf("Summarize = %q", got)
	}
}
