package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"katalog/internal/config"
	"katalog/internal/domain"
	"katalog/internal/domain/models"
	"katalog/internal/domain/services"
)

// answerTemperature keeps recommendations steady across retries of the
// same question while leaving room for natural phrasing.
const answerTemperature = 0.3

// Service implements the AssistantService interface: one call runs the
// full retrieve -> prompt -> complete -> parse pipeline for a turn.
//
// The service holds no session state. History and last-shown product
// IDs come in as a value and leave as a new value; concurrent sessions
// need no locking here because nothing is shared between calls.
type Service struct {
	retriever *Retriever
	completer services.Completer
	events    services.EventLogger
	logger    *slog.Logger
}

// NewService creates an assistant service.
func NewService(
	retriever *Retriever,
	completer services.Completer,
	events services.EventLogger,
	logger *slog.Logger,
) services.AssistantService {
	return &Service{
		retriever: retriever,
		completer: completer,
		events:    events,
		logger:    logger,
	}
}

// Answer runs one assistant turn. Either both the user and assistant
// messages are committed to the returned history, or neither: a model
// failure returns the caller's state untouched inside the error path,
// so an abandoned call can never leave a half-written session.
func (s *Service) Answer(ctx context.Context, question string, state models.SessionState) (*services.AskResult, error) {
	question = strings.TrimSpace(question)
	if err := validateQuestion(question); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	candidates, err := s.retriever.Retrieve(ctx, question, state.LastProductIDs)
	if err != nil {
		return nil, err
	}

	history := append(state.Clone().History, models.Turn{Role: models.RoleUser, Content: question})

	messages := BuildMessages(question, history, candidates)
	raw, err := s.completer.Complete(ctx, messages, answerTemperature)
	if err != nil {
		s.logger.Error("model call failed", "error", err)
		return nil, &domain.UpstreamError{Message: "asystent jest chwilowo niedostępny"}
	}

	parsed := ParseAnswer(raw, candidates)

	// The stored assistant turn is the clean answer only - the raw
	// directive never reaches history or the user.
	history = append(history, models.Turn{Role: models.RoleAssistant, Content: parsed.Answer})

	s.events.Log(ctx, "ASK_QUERY",
		fmt.Sprintf("Question: %q, AI answer: %q", question, parsed.Answer))

	return &services.AskResult{
		Answer: parsed.Answer,
		Rows:   parsed.Rows,
		State: models.SessionState{
			History:        history,
			LastProductIDs: parsed.ProductIDs,
		},
	}, nil
}

func validateQuestion(question string) error {
	return validation.Validate(question,
		validation.Required.Error("brak pytania"),
		validation.RuneLength(0, config.MaxQuestionLength).Error("pytanie jest zbyt długie"),
	)
}
