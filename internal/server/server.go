package server

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/claude/aceest/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server holds dependencies for HTTP handlers.
type Server struct {
	store   *storage.Store
	service string
	log     *slog.Logger
	pages   *template.Template
	router  chi.Router
}

// New creates a new Server with all routes configured. service is the name
// reported by /health.
func New(store *storage.Store, service string, log *slog.Logger) *Server {
	s := &Server{
		store:   store,
		service: service,
		log:     log,
		pages:   template.Must(template.ParseFS(templateFS, "templates/*.html")),
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
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(Metrics)
	s.router.Use(CORS)

	// Web UI
	s.router.Get("/", s.handleIndex)
	s.router.Post("/add_workout", s.handleAddWorkoutForm)
	s.router.Post("/reset_workouts", s.handleResetForm)

	// JSON API
	s.router.Get("/api/workouts", s.handleListWorkouts)
	s.router.Post("/api/workouts", s.handleCreateWorkout)
	s.router.Delete("/api/workouts", s.handleResetWorkouts)

	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())
}

// SetMCP mounts an MCP transport handler at /mcp.
func (s *Server) SetMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
}
