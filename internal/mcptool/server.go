package mcptool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pixil98/go-adventure/internal/session"
)

const shutdownTimeout = 5 * time.Second

type CommandInput struct {
	Command string `json:"command" jsonschema:"Game command to execute, for example 'look' or 'take lamp'"`
	Reset   bool   `json:"reset,omitempty" jsonschema:"Start a new game before executing the command"`
	Load    string `json:"load,omitempty" jsonschema:"Load this save before executing the command"`
}

type CommandOutput struct {
	Output string          `json:"output" jsonschema:"Text the game printed"`
	State  session.Summary `json:"state" jsonschema:"Summary of the current game state"`
}

// Game is the single game the tool plays.
type Game interface {
	Exec(ctx context.Context, line string) (string, error)
	Reset() (string, error)
	Load(id string) (string, error)
	Summary() session.Summary
}

// Server exposes a game as an MCP "command" tool over streamable HTTP.
type Server struct {
	game    Game
	addr    string
	path    string
	token   string
	origins map[string]struct{}
}

type ServerOpt func(*Server)

// WithToken requires "Authorization: Bearer <token>" on every request.
func WithToken(token string) ServerOpt {
	return func(s *Server) {
		s.token = token
	}
}

// WithOrigins allows browser requests from these origins.
func WithOrigins(origins ...string) ServerOpt {
	return func(s *Server) {
		for _, o := range origins {
			s.origins[o] = struct{}{}
		}
	}
}

func NewServer(g Game, addr string, path string, opts ...ServerOpt) *Server {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	s := &Server{
		game:    g,
		addr:    addr,
		path:    path,
		origins: map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) HandleCommand(ctx context.Context, _ *mcp.CallToolRequest, input *CommandInput) (*mcp.CallToolResult, *CommandOutput, error) {
	if input == nil {
		input = &CommandInput{}
	}

	var sb strings.Builder

	switch {
	case input.Reset:
		out, err := s.game.Reset()
		if err != nil {
			return nil, nil, err
		}
		sb.WriteString(out + "\n")
	case input.Load != "":
		out, err := s.game.Load(input.Load)
		if err != nil {
			return nil, nil, err
		}
		sb.WriteString(out + "\n")
	}

	if cmd := strings.TrimSpace(input.Command); cmd != "" {
		out, err := s.game.Exec(ctx, cmd)
		if err != nil {
			return nil, nil, err
		}
		sb.WriteString(out)
	}

	return nil, &CommandOutput{
		Output: sb.String(),
		State:  s.game.Summary(),
	}, nil
}

// Handler returns the HTTP handler serving the tool.
func (s *Server) Handler() http.Handler {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "go-adventure",
		Version: "v1.0.0",
	}, nil)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "command",
		Description: "Send a command to the adventure game and return its output plus a state summary.",
	}, s.HandleCommand)

	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return mcpServer
	}, &mcp.StreamableHTTPOptions{
		Logger: slog.Default(),
	})

	mux := http.NewServeMux()
	mux.Handle(s.path, s.guard(handler))
	return mux
}

func (s *Server) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.allowedOrigin(r) {
			http.Error(w, "Forbidden origin", http.StatusForbidden)
			return
		}
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) allowedOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	_, ok := s.origins[origin]
	return ok
}

func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "serving mcp", "addr", s.addr, "path", s.path)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving mcp on %s: %w", s.addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutting down mcp server: %w", err)
	}
	return nil
}
