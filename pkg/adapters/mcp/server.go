package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/history"
	"github.com/aretw0/easel/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefaultDocument is used when a tool call does not name a document.
const DefaultDocument = "default"

// DispatchArgs are the arguments of the dispatch_command tool.
type DispatchArgs struct {
	Document    string         `json:"document,omitempty"`
	Type        string         `json:"type"`
	Payload     map[string]any `json:"payload,omitempty"`
	CoalesceKey string         `json:"coalesce_key,omitempty"`
}

// DocumentArgs are the arguments of the document-scoped tools.
type DocumentArgs struct {
	Document string `json:"document,omitempty"`
}

// StepResponse aligns with the HTTP adapter and provides a unified structure across adapters.
type StepResponse struct {
	Applied bool                   `json:"applied" jsonschema_description:"False when the operation changed nothing"`
	Command *domain.Command         `json:"command,omitempty" jsonschema_description:"The recorded inverse (dispatch, redo) or the executed inverse (undo)"`
	History domain.HistorySnapshot `json:"history" jsonschema_description:"Stack depths after the operation"`
}

// ShapesResponse lists the shapes and the selection of a document.
type ShapesResponse struct {
	Shapes    []domain.Shape `json:"shapes"`
	Selection []string       `json:"selection"`
}

// Server exposes a session.Manager as an MCP server.
type Server struct {
	sessions  *session.Manager
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(mgr *session.Manager, opts ...Option) *Server {
	s := &Server{
		sessions:  mgr,
		mcpServer: server.NewMCPServer("easel-mcp", easel.Version, server.WithToolCapabilities(false)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func documentOption() mcp.ToolOption {
	return mcp.WithString("document", mcp.Description("Document ID (defaults to \"default\")"))
}

func (s *Server) registerTools() {
	commandTypes := make([]string, 0, len(domain.CommandTypes()))
	for _, t := range domain.CommandTypes() {
		commandTypes = append(commandTypes, string(t))
	}

	// TOOL: dispatch_command
	s.mcpServer.AddTool(mcp.NewTool("dispatch_command",
		mcp.WithDescription("Apply an editor command to a document and record it in the undo history."),
		documentOption(),
		mcp.WithString("type", mcp.Required(), mcp.Enum(commandTypes...), mcp.Description("Command type")),
		mcp.WithObject("payload", mcp.Description("Command payload, e.g. {\"dx\": 10, \"dy\": 0} for MOVE_SHAPES_DELTA")),
		mcp.WithString("coalesce_key", mcp.Description("Merge with the previous command of the same type and key")),
		mcp.WithOutputSchema[StepResponse](),
	), mcp.NewStructuredToolHandler(s.handleDispatch))

	// TOOL: undo
	s.mcpServer.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Revert the last step of a document."),
		documentOption(),
		mcp.WithOutputSchema[StepResponse](),
	), mcp.NewStructuredToolHandler(s.handleUndo))

	// TOOL: redo
	s.mcpServer.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Re-apply the last undone step of a document."),
		documentOption(),
		mcp.WithOutputSchema[StepResponse](),
	), mcp.NewStructuredToolHandler(s.handleRedo))

	// TOOL: get_history
	s.mcpServer.AddTool(mcp.NewTool("get_history",
		mcp.WithDescription("Get the undo/redo stack depths of a document."),
		documentOption(),
		mcp.WithOutputSchema[domain.HistorySnapshot](),
	), mcp.NewStructuredToolHandler(s.handleHistory))

	// TOOL: list_shapes
	s.mcpServer.AddTool(mcp.NewTool("list_shapes",
		mcp.WithDescription("List the shapes and the selection of a document."),
		documentOption(),
		mcp.WithOutputSchema[ShapesResponse](),
	), mcp.NewStructuredToolHandler(s.handleListShapes))
}

func docID(id string) string {
	if id == "" {
		return DefaultDocument
	}
	return id
}

func (s *Server) handleDispatch(ctx context.Context, request mcp.CallToolRequest, args DispatchArgs) (StepResponse, error) {
	cmd := domain.Command{Type: domain.CommandType(args.Type), Payload: domain.Payload(args.Payload)}
	if err := cmd.Validate(); err != nil {
		s.logger.Warn("MCP Dispatch: Command rejected", "cmd_type", args.Type, "err", err)
		return StepResponse{}, err
	}

	var opts []history.DispatchOption
	if args.CoalesceKey != "" {
		opts = append(opts, history.WithCoalesceKey(args.CoalesceKey))
	}
	return s.step(ctx, args.Document, func(ed *easel.Editor) *domain.Command {
		return ed.Dispatch(cmd, opts...)
	})
}

func (s *Server) handleUndo(ctx context.Context, request mcp.CallToolRequest, args DocumentArgs) (StepResponse, error) {
	return s.step(ctx, args.Document, func(ed *easel.Editor) *domain.Command { return ed.Undo() })
}

func (s *Server) handleRedo(ctx context.Context, request mcp.CallToolRequest, args DocumentArgs) (StepResponse, error) {
	return s.step(ctx, args.Document, func(ed *easel.Editor) *domain.Command { return ed.Redo() })
}

func (s *Server) handleHistory(ctx context.Context, request mcp.CallToolRequest, args DocumentArgs) (domain.HistorySnapshot, error) {
	return s.sessions.History(ctx, docID(args.Document))
}

func (s *Server) handleListShapes(ctx context.Context, request mcp.CallToolRequest, args DocumentArgs) (ShapesResponse, error) {
	scene, err := s.sessions.Scene(ctx, docID(args.Document))
	if err != nil {
		return ShapesResponse{}, err
	}
	return ShapesResponse{Shapes: scene.Shapes, Selection: scene.Selection}, nil
}

func (s *Server) step(ctx context.Context, doc string, op func(ed *easel.Editor) *domain.Command) (StepResponse, error) {
	var resp StepResponse
	err := s.sessions.Do(ctx, docID(doc), func(_ context.Context, ed *easel.Editor) error {
		resp.Command = op(ed)
		resp.Applied = resp.Command != nil
		resp.History = ed.HistorySnapshot()
		return nil
	})
	return resp, err
}

func (s *Server) registerResources() {
	// EXPOSE: easel://commands
	s.mcpServer.AddResource(mcp.NewResource("easel://commands", "Supported Command Types",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(domain.CommandTypes())
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "easel://commands",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
