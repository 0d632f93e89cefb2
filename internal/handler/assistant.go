package handler

import (
	"log/slog"
	"net/http"

	"katalog/internal/domain/models"
	"katalog/internal/domain/services"
	"katalog/internal/httputil"
	"katalog/internal/session"
)

// AssistantHandler handles the chat endpoints. It owns the bridge
// between the stateless assistant core and the per-browser session
// store: read state, run a turn, persist the returned state.
type AssistantHandler struct {
	assistant services.AssistantService
	sessions  *session.Store
	logger    *slog.Logger
}

// NewAssistantHandler creates an assistant handler.
func NewAssistantHandler(assistant services.AssistantService, sessions *session.Store, logger *slog.Logger) *AssistantHandler {
	return &AssistantHandler{assistant: assistant, sessions: sessions, logger: logger}
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer   string        `json:"answer"`
	Products []productInfo `json:"products"`
}

type productInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Link string `json:"link"`
}

// Ask runs one assistant turn for the caller's session
// POST /api/ask
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := session.IDFromRequest(r)
	state := h.sessions.Get(sessionID)

	result, err := h.assistant.Answer(r.Context(), req.Question, state)
	if err != nil {
		handleError(w, err)
		return
	}

	// Session state is committed only after a fully successful turn.
	h.sessions.Put(sessionID, result.State)

	resp := askResponse{Answer: result.Answer, Products: make([]productInfo, 0, len(result.Rows))}
	for _, row := range result.Rows {
		resp.Products = append(resp.Products, productInfo{ID: row.ID, Name: row.Name, Link: row.Link})
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// History returns the session's conversation so far
// GET /api/history
func (h *AssistantHandler) History(w http.ResponseWriter, r *http.Request) {
	state := h.sessions.Get(session.IDFromRequest(r))
	if state.History == nil {
		state.History = []models.Turn{}
	}
	httputil.RespondJSON(w, http.StatusOK, state.History)
}

// NewChat clears the session's history and last-shown products
// POST /api/new-chat
func (h *AssistantHandler) NewChat(w http.ResponseWriter, r *http.Request) {
	h.sessions.Reset(session.IDFromRequest(r))
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
