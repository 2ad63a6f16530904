package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/trainlog/internal/importer"
	"github.com/claude/trainlog/internal/logbook"
	"github.com/claude/trainlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	book   *logbook.Logbook
	db     *storage.DB
	imp    *importer.Importer
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured. db may be nil in
// tests; only the import log endpoints need it.
func New(book *logbook.Logbook, db *storage.DB, imp *importer.Importer, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		book:   book,
		db:     db,
		imp:    imp,
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

	// Ingest endpoint (API key required)
	s.router.Route("/api/v1/ingest", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/", s.handleIngest)
	})

	// Diary API (no auth — tsnet handles access)
	s.router.Get("/api/v1/exercises", s.handleQueryExercises)
	s.router.Post("/api/v1/exercises", s.handleAddExercise)
	s.router.Get("/api/v1/exercises/{id}", s.handleGetExercise)
	s.router.Delete("/api/v1/exercises/{id}", s.handleDeleteExercise)

	s.router.Get("/api/v1/sporttypes", s.handleListSportTypes)
	s.router.Post("/api/v1/sporttypes", s.handleUpsertSportType)
	s.router.Put("/api/v1/sporttypes/{id}", s.handleUpsertSportType)
	s.router.Delete("/api/v1/sporttypes/{id}", s.handleDeleteSportType)

	s.router.Get("/api/v1/notes", s.handleQueryNotes)
	s.router.Post("/api/v1/notes", s.handleAddNote)
	s.router.Delete("/api/v1/notes/{id}", s.handleDeleteNote)

	s.router.Get("/api/v1/weights", s.handleQueryWeights)
	s.router.Post("/api/v1/weights", s.handleAddWeight)
	s.router.Delete("/api/v1/weights/{id}", s.handleDeleteWeight)

	s.router.Get("/api/v1/imports", s.handleImportLogs)
}
