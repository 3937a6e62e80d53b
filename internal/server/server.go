// Package server exposes the pipeline over HTTP. One endpoint matters:
// POST /chat takes a query and returns an answer. Internal failures are
// never surfaced beyond a fixed generic message.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"concierge/internal/domain"
)

// genericFailureMessage is the only thing a caller sees when a request
// fails internally.
const genericFailureMessage = "An error occurred while processing your request."

// Answerer is the server-facing subset of the pipeline.
type Answerer interface {
	Handle(ctx context.Context, query string) (string, error)
}

// Server handles the chat endpoint.
type Server struct {
	svc Answerer
	log *log.Logger
}

// New builds the HTTP handler with logging and request-id middleware.
func New(svc Answerer, logger *log.Logger) http.Handler {
	s := &Server{svc: svc, log: logger}
	mux := http.NewServeMux()
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/healthz", s.handleHealth)
	return chainMiddlewares(mux, s.withLogging, withRequestID)
}

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Response string `json:"response"`
}

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

	answer, err := s.svc.Handle(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			badRequest(w, "query is required")
			return
		}
		s.logFor(r).Error("chat request failed", "error", err)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: answer})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) logFor(r *http.Request) *log.Logger {
	if id := requestIDFrom(r.Context()); id != "" {
		return s.log.With("request_id", id)
	}
	return s.log
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func internalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": genericFailureMessage})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}
