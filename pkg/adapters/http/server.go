package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/history"
	"github.com/aretw0/easel/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes caps request bodies (commands and client logs).
const maxBodyBytes = 1 << 20

// Server exposes a session.Manager over HTTP.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager

	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger for request handling and client log ingestion.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// CommandRequest is the body of POST /documents/{doc}/commands.
type CommandRequest struct {
	Type    domain.CommandType `json:"type"`
	Payload domain.Payload     `json:"payload,omitempty"`
	// CoalesceKey opts the command into coalescing with the previous one.
	CoalesceKey string `json:"coalesceKey,omitempty"`
	// CoalesceWindowMs overrides the coalescing window.
	CoalesceWindowMs int `json:"coalesceWindowMs,omitempty"`
}

// StepResponse is returned by every mutating endpoint.
type StepResponse struct {
	// Applied is false when the operation changed nothing.
	Applied bool                   `json:"applied"`
	Command *domain.Command         `json:"command,omitempty"`
	History domain.HistorySnapshot `json:"history"`
	Diff    *domain.SceneDiff      `json:"diff,omitempty"`
}

// ClientLog is the body of POST /log.
type ClientLog struct {
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// NewHandler creates a new HTTP handler for the session manager.
func NewHandler(mgr *session.Manager, opts ...Option) http.Handler {
	server := &Server{
		Sessions: mgr,
		Streams:  NewStreamManager(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}
	server.Streams.logger = server.logger

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Post("/log", server.PostLog)
	if server.metrics != nil {
		r.Handle("/metrics", server.metrics)
	}

	r.Get("/documents", server.ListDocuments)
	r.Route("/documents/{doc}", func(r chi.Router) {
		r.Delete("/", server.DeleteDocument)
		r.Post("/commands", server.Dispatch)
		r.Post("/undo", server.Undo)
		r.Post("/redo", server.Redo)
		r.Post("/clear", server.Clear)
		r.Get("/history", server.GetHistory)
		r.Get("/shapes", server.GetScene)
		r.Get("/events", server.SubscribeEvents)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Dispatch handles POST /documents/{doc}/commands.
func (s *Server) Dispatch(w http.ResponseWriter, r *http.Request) {
	var body CommandRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Dispatch: Invalid request body", "err", err)
		return
	}

	cmd := domain.Command{Type: body.Type, Payload: body.Payload}
	if err := cmd.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		s.logger.Warn("Dispatch: Command rejected", "cmd_type", cmd.Type, "err", err)
		return
	}

	var opts []history.DispatchOption
	if body.CoalesceKey != "" {
		opts = append(opts, history.WithCoalesceKey(body.CoalesceKey))
	}
	if body.CoalesceWindowMs > 0 {
		opts = append(opts, history.WithCoalesceWindow(time.Duration(body.CoalesceWindowMs)*time.Millisecond))
	}

	s.step(w, r, func(ed *easel.Editor) *domain.Command {
		return ed.Dispatch(cmd, opts...)
	})
}

// Undo handles POST /documents/{doc}/undo.
func (s *Server) Undo(w http.ResponseWriter, r *http.Request) {
	s.step(w, r, func(ed *easel.Editor) *domain.Command { return ed.Undo() })
}

// Redo handles POST /documents/{doc}/redo.
func (s *Server) Redo(w http.ResponseWriter, r *http.Request) {
	s.step(w, r, func(ed *easel.Editor) *domain.Command { return ed.Redo() })
}

// Clear handles POST /documents/{doc}/clear.
func (s *Server) Clear(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "doc")
	if err := s.Sessions.ClearHistory(r.Context(), docID); err != nil {
		s.fail(w, "Clear", err)
		return
	}
	s.GetHistory(w, r)
}

// step runs op under the document lock and broadcasts the scene diff.
func (s *Server) step(w http.ResponseWriter, r *http.Request, op func(ed *easel.Editor) *domain.Command) {
	docID := chi.URLParam(r, "doc")

	var resp StepResponse
	err := s.Sessions.Do(r.Context(), docID, func(_ context.Context, ed *easel.Editor) error {
		before := ed.Scene()
		resp.Command = op(ed)
		resp.Applied = resp.Command != nil
		resp.History = ed.HistorySnapshot()
		resp.Diff = domain.Diff(before, ed.Scene())
		return nil
	})
	if err != nil {
		s.fail(w, "Step", err)
		return
	}

	if resp.Diff != nil {
		s.logger.Debug("Step: Diff calculated", "doc", docID, "diff", resp.Diff)
		if bytes, err := json.Marshal(resp.Diff); err == nil {
			s.Streams.Broadcast(docID, Message{Event: "scene", Data: string(bytes)})
		}
	}

	writeJSON(w, s.logger, resp)
}

// GetHistory handles GET /documents/{doc}/history.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.History(r.Context(), chi.URLParam(r, "doc"))
	if err != nil {
		s.fail(w, "GetHistory", err)
		return
	}
	writeJSON(w, s.logger, snap)
}

// GetScene handles GET /documents/{doc}/shapes.
func (s *Server) GetScene(w http.ResponseWriter, r *http.Request) {
	scene, err := s.Sessions.Scene(r.Context(), chi.URLParam(r, "doc"))
	if err != nil {
		s.fail(w, "GetScene", err)
		return
	}
	writeJSON(w, s.logger, scene)
}

// ListDocuments handles GET /documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, "ListDocuments", err)
		return
	}
	writeJSON(w, s.logger, docs)
}

// DeleteDocument handles DELETE /documents/{doc}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "doc")); err != nil {
		s.fail(w, "DeleteDocument", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]any{
		"app":      "easel-http",
		"version":  easel.Version,
		"commands": domain.CommandTypes(),
	})
}

// PostLog handles POST /log: client-side log lines are re-emitted through
// the server logger.
func (s *Server) PostLog(w http.ResponseWriter, r *http.Request) {
	var entry ClientLog
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&entry); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if entry.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	level, err := logging.ParseLevel(entry.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	args := make([]any, 0, 2+2*len(entry.Fields))
	args = append(args, "source", "client")
	for k, v := range entry.Fields {
		args = append(args, k, v)
	}
	s.logger.Log(r.Context(), level, entry.Message, args...)
	w.WriteHeader(http.StatusNoContent)
}

// SubscribeEvents handles GET /documents/{doc}/events (SSE).
// History events are sent as "history", scene diffs as "scene".
// ?watch=history or ?watch=scene restricts the stream to one kind.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	docID := chi.URLParam(r, "doc")
	watch := r.URL.Query().Get("watch")

	events := make(chan Message, streamBuffer)
	if watch == "" || watch == "history" {
		unsubscribe, err := s.Sessions.Subscribe(r.Context(), docID, func(ev domain.HistoryEvent) {
			data, err := json.Marshal(ev)
			if err != nil {
				return
			}
			select {
			case events <- Message{Event: "history", Data: string(data)}:
			default:
				s.logger.Warn("SSE: Client buffer full, dropping message", "doc", docID)
			}
		})
		if err != nil {
			s.fail(w, "SubscribeEvents", err)
			return
		}
		defer unsubscribe()
	}

	var diffs <-chan Message
	if watch == "" || watch == "scene" {
		ch, cancel := s.Streams.Subscribe(docID)
		defer cancel()
		diffs = ch
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s.logger.Info("SSE: Subscribing to document updates", "doc", docID)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		var msg Message
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "doc", docID)
			return
		case msg = <-events:
		case m, ok := <-diffs:
			if !ok {
				return
			}
			msg = m
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
		flusher.Flush()
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
		s.logger.Error(op+" failed", "err", err)
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
