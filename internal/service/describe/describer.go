// Package describe generates Markdown product descriptions from
// scraped source text.
package describe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"katalog/internal/domain/models"
	"katalog/internal/domain/services"
)

const summaryTemperature = 0.3

// Fallback texts shown instead of a description when there is nothing
// to summarize or the model call fails. Stored as-is, so the catalog
// never holds an empty description.
const (
	noSourceText  = "Brak dostępnej treści do streszczenia."
	generationErr = "Błąd podczas generowania streszczenia."
)

// summaryTemplate forces a fixed section structure so catalog pages
// render consistently regardless of the source material.
const summaryTemplate = `Na podstawie poniższego tekstu wygeneruj opis produktu w formacie MARKDOWN.

WYMAGANIA:
- Użyj nagłówków sekcji w formacie: ## Nazwa sekcji
- Sekcje MUSZĄ występować w tej kolejności:
  1. ## Podstawowe informacje
  2. ## Parametry techniczne
  3. ## Ergonomia i bezpieczeństwo
  4. ## Zastosowanie
  5. ## Podsumowanie
- W sekcji "Podstawowe informacje" MUSZĄ znaleźć się:
  - Nazwa produktu
  - Typ
  - Marka
- Stosuj listy punktowane tam, gdzie to możliwe
- Nie dodawaj nic poza treścią opisu

TEKST ŹRÓDŁOWY:
%s`

// Describer implements the DescriptionGenerator interface on top of a
// chat Completer.
type Describer struct {
	completer services.Completer
	logger    *slog.Logger
}

// New creates a Describer.
func New(completer services.Completer, logger *slog.Logger) services.DescriptionGenerator {
	return &Describer{completer: completer, logger: logger}
}

// Summarize produces a sectioned Markdown description. Failures
// degrade to fixed fallback text rather than an error: an ugly catalog
// entry beats a failed product import.
func (d *Describer) Summarize(ctx context.Context, sourceText string) string {
	if strings.TrimSpace(sourceText) == "" {
		return noSourceText
	}

	messages := []models.Turn{{
		Role:    models.RoleUser,
		Content: fmt.Sprintf(summaryTemplate, sourceText),
	}}

	answer, err := d.completer.Complete(ctx, messages, summaryTemperature)
	if err != nil {
		d.logger.Warn("description generation failed", "error", err)
		return generationErr
	}

	return strings.TrimSpace(answer)
}
