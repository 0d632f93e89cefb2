package assistant

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"katalog/internal/domain"
	"katalog/internal/domain/models"
)

type fakeCompleter struct {
	response    string
	err         error
	called      bool
	gotMessages []models.Turn
	gotTemp     float32
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []models.Turn, temperature float32) (string, error) {
	f.called = true
	f.gotMessages = messages
	f.gotTemp = temperature
	return f.response, f.err
}

type fakeEventLogger struct {
	actions []string
	details []string
}

func (f *fakeEventLogger) Log(ctx context.Context, action, details string) {
	f.actions = append(f.actions, action)
	f.details = append(f.details, details)
}

type serviceFixture struct {
	repo      *fakeProductRepo
	embedder  *fakeEmbedder
	completer *fakeCompleter
	events    *fakeEventLogger
	service   *Service
}

func newServiceFixture(t *testing.T, repo *fakeProductRepo, completer *fakeCompleter) *serviceFixture {
	t.Helper()
	embedder := &fakeEmbedder{embedding: []float32{0.1}}
	events := &fakeEventLogger{}
	retriever := newTestRetriever(t, repo, embedder)
	svc := NewService(retriever, completer, events, discardLogger()).(*Service)
	return &serviceFixture{
		repo:      repo,
		embedder:  embedder,
		completer: completer,
		events:    events,
		service:   svc,
	}
}

func TestService_RejectsEmptyQuestion(t *testing.T) {
	tests := []struct {
		name     string
		question string
	}{
		{name: "empty", question: ""},
		{name: "whitespace only", question: "   \n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t, &fakeProductRepo{}, &fakeCompleter{})

			_, err := f.service.Answer(context.Background(), tt.question, models.SessionState{})
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if f.completer.called {
				t.Errorf("model called for invalid question")
			}
			if f.repo.keywordCalled || f.repo.vectorCalled || f.repo.fetchCalled {
				t.Errorf("retrieval ran for invalid question")
			}
			if len(f.events.actions) != 0 {
				t.Errorf("events logged for invalid question: %v", f.events.actions)
			}
		})
	}
}

func TestService_RejectsOverlongQuestion(t *testing.T) {
	f := newServiceFixture(t, &fakeProductRepo{}, &fakeCompleter{})

	_, err := f.service.Answer(context.Background(), strings.Repeat("a", 2001), models.SessionState{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestService_SuccessfulTurn(t *testing.T) {
	repo := &fakeProductRepo{
		keywordRows: []models.CandidateRow{
			{ID: 2, Name: "Krem nawilżający", Link: "https://example.com/krem"},
			{ID: 7, Name: "Balsam", Link: "https://example.com/balsam"},
		},
	}
	completer := &fakeCompleter{response: "Polecam krem nawilżający.\n{\"product_ids\":[2]}"}
	f := newServiceFixture(t, repo, completer)

	result, err := f.service.Answer(context.Background(), "  Jaki krem do twarzy warto teraz wybrać?  ", models.SessionState{})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if result.Answer != "Polecam krem nawilżający." {
		t.Errorf("Answer = %q", result.Answer)
	}
	if got, want := rowIDs(result.Rows), []int{2}; !reflect.DeepEqual(got, want) {
		t.Errorf("Rows = %v, want %v", got, want)
	}
	if got, want := result.State.LastProductIDs, []int{2}; !reflect.DeepEqual(got, want) {
		t.Errorf("LastProductIDs = %v, want %v", got, want)
	}

	wantHistory := []models.Turn{
		{Role: models.RoleUser, Content: "Jaki krem do twarzy warto teraz wybrać?"},
		{Role: models.RoleAssistant, Content: "Polecam krem nawilżający."},
	}
	if !reflect.DeepEqual(result.State.History, wantHistory) {
		t.Errorf("History = %v, want %v", result.State.History, wantHistory)
	}

	if completer.gotTemp != 0.3 {
		t.Errorf("temperature = %v, want 0.3", completer.gotTemp)
	}
	if got, want := f.events.actions, []string{"ASK_QUERY"}; !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestService_ModelFailureCommitsNothing(t *testing.T) {
	repo := &fakeProductRepo{
		keywordRows: []models.CandidateRow{{ID: 2, Name: "Krem"}},
	}
	completer := &fakeCompleter{err: errors.New("rate limited")}
	f := newServiceFixture(t, repo, completer)

	state := models.SessionState{
		History:        []models.Turn{{Role: models.RoleUser, Content: "wcześniejsze pytanie"}},
		LastProductIDs: []int{9},
	}

	_, err := f.service.Answer(context.Background(), "Jaki krem do twarzy warto teraz wybrać?", state)

	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("err = %v, want UpstreamError", err)
	}
	if len(f.events.actions) != 0 {
		t.Errorf("events logged on model failure: %v", f.events.actions)
	}
	// Caller's state must be untouched.
	if len(state.History) != 1 || state.History[0].Content != "wcześniejsze pytanie" {
		t.Errorf("input state mutated: %v", state.History)
	}
}

func TestService_ThreadsHistory(t *testing.T) {
	repo := &fakeProductRepo{
		keywordRows: []models.CandidateRow{{ID: 2, Name: "Krem"}},
	}
	completer := &fakeCompleter{response: "Tak, sprawdzi się.\n{\"product_ids\":[2]}"}
	f := newServiceFixture(t, repo, completer)

	prior := models.SessionState{
		History: []models.Turn{
			{Role: models.RoleUser, Content: "Szukam kremu"},
			{Role: models.RoleAssistant, Content: "Polecam krem."},
		},
	}

	result, err := f.service.Answer(context.Background(), "Jaki krem do twarzy warto teraz wybrać?", prior)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if len(result.State.History) != 4 {
		t.Fatalf("history length = %d, want 4", len(result.State.History))
	}
	if !reflect.DeepEqual(result.State.History[:2], prior.History) {
		t.Errorf("prior turns not preserved: %v", result.State.History[:2])
	}

	// The model request carries the persona, the prior turns and the
	// new question before the grounding instruction.
	msgs := completer.gotMessages
	if msgs[0].Role != models.RoleSystem {
		t.Errorf("first message role = %q, want system", msgs[0].Role)
	}
	if !reflect.DeepEqual(msgs[1:3], prior.History) {
		t.Errorf("prior history missing from request: %v", msgs[1:3])
	}
	last := msgs[len(msgs)-1]
	if last.Role != models.RoleUser || !strings.Contains(last.Content, "[ID 2] Krem") {
		t.Errorf("final request message missing candidate context: %q", last.Content)
	}
}

func TestService_FollowUpCarriesProducts(t *testing.T) {
	repo := &fakeProductRepo{
		fetchRows: []models.CandidateRow{{ID: 3, Name: "B"}, {ID: 5, Name: "A"}},
	}
	completer := &fakeCompleter{response: "Ten pierwszy.\n{\"product_ids\":[5]}"}
	f := newServiceFixture(t, repo, completer)

	state := models.SessionState{
		History:        []models.Turn{{Role: models.RoleUser, Content: "pokaż produkty"}},
		LastProductIDs: []int{5, 3},
	}

	result, err := f.service.Answer(context.Background(), "a ten pierwszy?", state)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if !reflect.DeepEqual(repo.gotIDs, []int{5, 3}) {
		t.Errorf("FetchByIDs got %v, want [5 3]", repo.gotIDs)
	}
	if got, want := result.State.LastProductIDs, []int{5}; !reflect.DeepEqual(got, want) {
		t.Errorf("LastProductIDs = %v, want %v", got, want)
	}
}

func TestService_EmptyRetrievalStillAnswers(t *testing.T) {
	repo := &fakeProductRepo{} // nothing matches anywhere
	completer := &fakeCompleter{response: "Niestety nie mam nic pasującego.\n{\"product_ids\":[]}"}
	f := newServiceFixture(t, repo, completer)

	result, err := f.service.Answer(context.Background(), "Coś bardzo egzotycznego spoza oferty sklepu?", models.SessionState{})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if result.Answer != "Niestety nie mam nic pasującego." {
		t.Errorf("Answer = %q", result.Answer)
	}
	if len(result.Rows) != 0 || len(result.State.LastProductIDs) != 0 {
		t.Errorf("expected no products, got %v", result.State.LastProductIDs)
	}

	last := completer.gotMessages[len(completer.gotMessages)-1]
	if !strings.Contains(last.Content, "(brak produktów w bazie pasujących do zapytania)") {
		t.Errorf("empty-context marker missing from request: %q", last.Content)
	}
}

func TestService_MalformedDirectiveClearsProducts(t *testing.T) {
	repo := &fakeProductRepo{
		keywordRows: []models.CandidateRow{{ID: 2, Name: "Krem"}},
	}
	completer := &fakeCompleter{response: "Polecam krem.\n{\"product_ids\":[\"dwa\"]}"}
	f := newServiceFixture(t, repo, completer)

	result, err := f.service.Answer(context.Background(), "Jaki krem do twarzy warto teraz wybrać?", models.SessionState{})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if result.Answer != "Polecam krem." {
		t.Errorf("Answer = %q", result.Answer)
	}
	if len(result.State.LastProductIDs) != 0 {
		t.Errorf("LastProductIDs = %v, want empty", result.State.LastProductIDs)
	}
	// The stored assistant turn is the cleaned answer, so a later
	// follow-up never sees directive fragments.
	lastTurn := result.State.History[len(result.State.History)-1]
	if lastTurn.Content != "Polecam krem." {
		t.Errorf("stored assistant turn = %q", lastTurn.Content)
	}
}
