package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/SuDelk/ClientLine-Backend/pkg/httputil"
	"github.com/SuDelk/ClientLine-Backend/pkg/observability"
	"github.com/SuDelk/ClientLine-Backend/pkg/organizations"
	"github.com/SuDelk/ClientLine-Backend/pkg/users"
)

// ServiceName identifies the service in the root endpoint and logs.
const ServiceName = "clientline-backend"

// Version is the API version reported by the root endpoint.
const Version = "1.0.0"

// Server is the HTTP API server. It owns the router and wires entity
// handlers plus the cross-cutting middleware chain.
type Server struct {
	router  *mux.Router
	logger  *observability.Logger
	metrics *observability.Metrics

	orgHandlers  *OrgHandlers
	userHandlers *UserHandlers
}

// NewServer creates a new API server. metrics may be nil, in which case the
// metrics middleware is skipped.
func NewServer(orgService organizations.Service, userService users.Service, logger *observability.Logger, metrics *observability.Metrics) *Server {
	s := &Server{
		router:       mux.NewRouter(),
		logger:       logger,
		metrics:      metrics,
		orgHandlers:  NewOrgHandlers(orgService),
		userHandlers: NewUserHandlers(userService),
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware attaches the middleware chain. Order matters: request IDs
// are assigned first so recovery and request logs carry them.
func (s *Server) setupMiddleware() {
	s.router.Use(httputil.RequestIDMiddleware)
	s.router.Use(httputil.RecoveryMiddleware(s.logger))
	s.router.Use(httputil.LoggingMiddleware(s.logger))
	if s.metrics != nil {
		s.router.Use(httputil.MetricsMiddleware(s.metrics))
	}
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/", s.root).Methods("GET")

	s.orgHandlers.RegisterRoutes(s.router)
	s.userHandlers.RegisterRoutes(s.router)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// root handles GET / with a service banner
func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, map[string]string{
		"service": ServiceName,
		"version": Version,
		"status":  "ok",
	})
}
