package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/piste/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Static catalogs
	s.router.Get("/api/v1/blocks", s.handleBlockCatalog)
	s.router.Get("/api/v1/pace-references", s.handlePaceReferences)

	// Draft derivation without persistence
	s.router.Post("/api/v1/templates/preview", s.handlePreviewTemplate)

	// Reads
	s.router.Get("/api/v1/templates", s.handleListTemplates)
	s.router.Get("/api/v1/templates/{id}", s.handleGetTemplate)
	s.router.Get("/api/v1/sessions", s.handleListSessions)

	// Writes (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/templates", s.handleCreateTemplate)
		r.Delete("/api/v1/templates/{id}", s.handleDeleteTemplate)
		r.Post("/api/v1/sessions", s.handleCreateSession)
	})
}
