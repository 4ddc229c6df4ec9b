package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Na1awut/NDLP/internal/app/chat"
	"github.com/Na1awut/NDLP/internal/domain"
)

type Server struct {
	svc *chat.Service
}

func NewServer(svc *chat.Service) http.Handler {
	s := &Server{svc: svc}
	mux := http.NewServeMux()

	// POST /chat            → run one conversation turn
	mux.HandleFunc("/chat", s.handleChat)

	// GET  /state/{user_id} → current emotional state
	mux.HandleFunc("/state/", s.handleState)

	// POST /reset/{user_id} → reset emotional state
	mux.HandleFunc("/reset/", s.handleReset)

	mux.HandleFunc("/healthz", s.handleHealthz)

	return chainMiddlewares(mux, withLogging, withCORS, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type chatRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

type chatResponse struct {
	Reply string `json:"reply"`

	// Alert is set when the turn put the user in crisis; callers are expected
	// to surface human help alongside the bot reply.
	Alert bool `json:"alert"`

	Tone    string                 `json:"tone"`
	Policy  string                 `json:"policy"`
	Note    string                 `json:"note,omitempty"`
	State   domain.State           `json:"state"`
	Emotion domain.EmotionFeatures `json:"emotion"`
	Forces  domain.Forces          `json:"forces"`
}

type stateResponse struct {
	UserID string       `json:"user_id"`
	State  domain.State `json:"state"`
}

// ─────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := s.svc.SendMessage(r.Context(), chat.SendMessageInput{
		UserID: domain.UserID(req.UserID),
		Text:   req.Text,
	})
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyUserID):
			badRequest(w, "user_id is required")
		case errors.Is(err, chat.ErrEmptyMessage):
			badRequest(w, "text is required")
		default:
			internalError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Reply:   out.Reply,
		Alert:   out.Alert,
		Tone:    out.Tone,
		Policy:  out.Policy,
		Note:    out.Note,
		State:   out.State,
		Emotion: out.Emotion,
		Forces:  out.Forces,
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	userID := pathParam(r.URL.Path, "/state/")
	if userID == "" {
		http.NotFound(w, r)
		return
	}

	state, err := s.svc.GetState(r.Context(), domain.UserID(userID))
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stateResponse{UserID: userID, State: state})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	userID := pathParam(r.URL.Path, "/reset/")
	if userID == "" {
		http.NotFound(w, r)
		return
	}

	state, err := s.svc.Reset(r.Context(), domain.UserID(userID))
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stateResponse{UserID: userID, State: state})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathParam extracts the single trailing segment after prefix, rejecting
// nested paths.
func pathParam(path, prefix string) string {
	rest := strings.TrimPrefix(path, prefix)
	if rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return rest
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
