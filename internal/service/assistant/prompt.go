package assistant

import (
	"fmt"
	"strings"

	"katalog/internal/config"
	"katalog/internal/domain/models"
)

// systemPersona pins the assistant's role and language. Injected as
// the first message of every request, never stored in history.
const systemPersona = "Jesteś inteligentnym asystentem produktowym. Odpowiadasz po polsku."

// noReviewsMarker replaces empty review text so the model never sees a
// blank field it could hallucinate over.
const noReviewsMarker = "Brak opinii"

// emptyContextMarker is used when retrieval found nothing; the
// instruction block still forces the model to answer and emit an empty
// directive.
const emptyContextMarker = "(brak produktów w bazie pasujących do zapytania)"

// instructionTemplate is the final user message. The closing directive
// rule is load-bearing: the answer parser extracts the last line's
// {"product_ids":[...]} object to learn which candidates the model
// actually used.
const instructionTemplate = `Użytkownik pyta: %s

Oto produkty z bazy, które mogą pasować (używaj tylko tych!):
%s

Zasady odpowiedzi:
- opisuj wyłącznie produkty z listy powyżej
- uwzględniaj opinie użytkowników w rekomendacjach
- nie wymyślaj nowych produktów
- jeśli żaden produkt nie pasuje, napisz to wprost
- odpowiedź krótka i konkretna, najlepiej w punktach
- nie umieszczaj identyfikatorów (ID) produktów w treści odpowiedzi
- OSTATNIA linia odpowiedzi to dokładnie jeden obiekt w formacie {"product_ids":[2,7]} z identyfikatorami polecanych produktów
- jeśli nic nie polecasz, ostatnia linia to {"product_ids":[]}`

// BuildMessages assembles the full model request: persona, prior
// history in order, then the grounding instruction as the final user
// message. Pure construction - it does not call the model.
func BuildMessages(question string, history []models.Turn, rows []models.CandidateRow) []models.Turn {
	messages := make([]models.Turn, 0, len(history)+2)
	messages = append(messages, models.Turn{Role: models.RoleSystem, Content: systemPersona})
	messages = append(messages, history...)
	messages = append(messages, models.Turn{
		Role:    models.RoleUser,
		Content: fmt.Sprintf(instructionTemplate, question, buildContext(rows)),
	})
	return messages
}

// buildContext renders one paragraph per candidate: identity, name, a
// bounded description prefix and the aggregated review text.
func buildContext(rows []models.CandidateRow) string {
	if len(rows) == 0 {
		return emptyContextMarker
	}

	paragraphs := make([]string, 0, len(rows))
	for _, row := range rows {
		reviews := row.Reviews
		if reviews == "" {
			reviews = noReviewsMarker
		}
		paragraphs = append(paragraphs, fmt.Sprintf(
			"[ID %d] %s: %s\nOpinie użytkowników: %s",
			row.ID,
			row.Name,
			truncateRunes(row.Description, config.DescriptionPreviewRunes),
			reviews,
		))
	}
	return strings.Join(paragraphs, "\n\n")
}

// truncateRunes bounds s to max runes without splitting a character.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
