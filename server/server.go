package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/leofalp/react-agent/providers/ai"
	"github.com/leofalp/react-agent/providers/memory"
	"github.com/leofalp/react-agent/providers/observability"
)

// Version is reported by the /info endpoint.
const Version = "0.1.0"

// shutdownTimeout bounds how long graceful shutdown waits for in-flight
// requests.
const shutdownTimeout = 5 * time.Second

// Runner executes one prompt and returns the final response. The prebuilt
// react.Agent satisfies it directly; other graphs register through a small
// wrapper, which is what lets the manifest expose heterogeneous graphs side
// by side.
type Runner interface {
	Execute(ctx context.Context, prompt string) (*ai.ChatResponse, error)
}

// Factory produces a fresh runner bound to a thread's history. The server
// calls it once per run so every run sees the thread's accumulated
// conversation.
type Factory func(ctx context.Context, history memory.Provider) (Runner, error)

// Assistant is the discovery record for a registered graph.
type Assistant struct {
	AssistantID string    `json:"assistant_id"`
	GraphID     string    `json:"graph_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Server is the dev server. Construct it with [New], register graphs with
// [Server.RegisterGraph], and serve via [Server.ListenAndServe] or mount
// [Server.Handler] yourself.
type Server struct {
	config   Config
	observer observability.Observer

	mu         sync.RWMutex
	factories  map[string]Factory
	assistants []Assistant

	threads *threadStore
}

// New creates a Server with no graphs registered.
func New(config Config, opts ...Option) *Server {
	s := &Server{
		config:    config,
		factories: make(map[string]Factory),
		threads:   newThreadStore(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Option configures a [Server] at construction.
type Option func(*Server)

// WithObserver attaches an observer; it is injected into every request
// context so the agent internals log through it.
func WithObserver(observer observability.Observer) Option {
	return func(s *Server) {
		s.observer = observer
	}
}

// RegisterGraph exposes a graph under graphID. The graph becomes visible as
// one assistant in /assistants/search and runnable on threads. Registering
// the same graphID again replaces the factory but keeps the assistant
// record.
func (s *Server) RegisterGraph(graphID string, factory Factory) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.factories[graphID]; !exists {
		s.assistants = append(s.assistants, Assistant{
			AssistantID: uuid.NewString(),
			GraphID:     graphID,
			Name:        graphID,
			CreatedAt:   time.Now().UTC(),
		})
	}
	s.factories[graphID] = factory
}

// graphIDs returns the registered graph identifiers in registration order.
func (s *Server) graphIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.assistants))
	for _, assistant := range s.assistants {
		ids = append(ids, assistant.GraphID)
	}
	return ids
}

// resolveAssistant accepts either an assistant ID or a graph ID, mirroring
// how clients address assistants by the name they declared in the manifest.
func (s *Server) resolveAssistant(id string) (Assistant, Factory, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, assistant := range s.assistants {
		if assistant.AssistantID == id || assistant.GraphID == id {
			return assistant, s.factories[assistant.GraphID], true
		}
	}
	return Assistant{}, nil, false
}

// Handler builds the HTTP routing table.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(s.observerMiddleware)

	router.Get("/ok", s.handleOK)
	router.Get("/info", s.handleInfo)
	router.Post("/assistants/search", s.handleAssistantsSearch)

	router.Route("/threads", func(router chi.Router) {
		router.Post("/", s.handleCreateThread)
		router.Route("/{threadID}", func(router chi.Router) {
			router.Get("/", s.handleGetThread)
			router.Delete("/", s.handleDeleteThread)
			router.Get("/state", s.handleThreadState)
			router.Post("/runs/wait", s.handleRunWait)
		})
	})

	return router
}

// observerMiddleware puts the server's observer into the request context so
// providers, tools, and the graph executor log through it.
func (s *Server) observerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.observer != nil {
			r = r.WithContext(observability.ContextWithObserver(r.Context(), s.observer))
		}
		next.ServeHTTP(w, r)
	})
}

// ListenAndServe runs the server until the context is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.config.Addr(),
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	if s.observer != nil {
		s.observer.Info("dev server listening",
			observability.String("server.addr", s.config.Addr()),
		)
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
