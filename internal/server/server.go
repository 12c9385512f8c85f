package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/liftlog/internal/ingest/textlog"
	"github.com/claude/liftlog/internal/service"
	"github.com/claude/liftlog/internal/storage"
)

// Server holds dependencies for HTTP handlers. Everything is injected via
// New; handlers never reach for ambient state.
type Server struct {
	db      *storage.DB
	svc     *service.WorkoutService
	textlog *textlog.Provider
	log     *slog.Logger
	apiKey  string
	router  chi.Router
}

// New creates a Server with all routes configured.
func New(db *storage.DB, svc *service.WorkoutService, textlogProvider *textlog.Provider, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:      db,
		svc:     svc,
		textlog: textlogProvider,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(Recovery(s.log))
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Workout record API
	s.router.Route("/workouts", func(r chi.Router) {
		r.Post("/", s.handleAddWorkout)
		r.Get("/", s.handleListWorkouts)
		r.Get("/{id}", s.handleGetWorkout)
	})

	// Text-log import (API key required) and import history
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/import/text", s.handleImportText)
		})
		r.Get("/imports", s.handleListImports)
	})
}
