package api

import (
	"net/http"

	"github.com/cpbotha/dbwriter/api/docs"
	"github.com/cpbotha/dbwriter/api/middleware"
	"github.com/cpbotha/dbwriter/api/resources"
	"github.com/cpbotha/dbwriter/internal/config"
	"github.com/cpbotha/dbwriter/internal/monitoring"
	"github.com/cpbotha/dbwriter/internal/service"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type Router struct {
	router     *mux.Router
	handler    http.Handler
	resources  *resources.Resources
	monitoring *monitoring.Service
	metricsCfg config.MonitoringConfig
}

// NewRouter wires the HTTP surface. mon may be nil to disable request metrics.
func NewRouter(svc *service.Service, health resources.HealthChecker, mon *monitoring.Service, metricsCfg config.MonitoringConfig) *Router {
	r := &Router{
		router:     mux.NewRouter(),
		resources:  resources.NewResources(svc, health),
		monitoring: mon,
		metricsCfg: metricsCfg,
	}

	r.setupRoutes()
	// request id and recovery wrap the router so unmatched routes get them too
	r.handler = handlers.CompressHandler(middleware.RequestID(middleware.Recovery(r.router)))
	return r
}

func (r *Router) setupRoutes() {
	instrument := middleware.Instrument(r.monitoring)
	r.router.Use(instrument)

	// Public routes
	r.router.HandleFunc("/", r.resources.System.Root).Methods(http.MethodGet)
	r.router.HandleFunc("/health", r.resources.System.Health).Methods(http.MethodGet)
	r.router.HandleFunc("/docs/doc.json", docs.Handler).Methods(http.MethodGet)
	if r.monitoring != nil && r.metricsCfg.MetricsEnabled {
		r.router.Handle(r.metricsCfg.MetricsPath, r.monitoring.Handler()).Methods(http.MethodGet)
	}

	// Samples
	r.router.HandleFunc("/samples", r.resources.Samples.ListSamples).Methods(http.MethodGet)
	r.router.HandleFunc("/samples", r.resources.Samples.CreateSample).Methods(http.MethodPost)
	r.router.HandleFunc("/samples/{id}", r.resources.Samples.GetSample).Methods(http.MethodGet)

	r.router.NotFoundHandler = instrument(http.HandlerFunc(notFound))
	r.router.MethodNotAllowedHandler = instrument(http.HandlerFunc(methodNotAllowed))
}

func notFound(w http.ResponseWriter, req *http.Request) {
	writeDetail(w, http.StatusNotFound, "Not Found")
}

func methodNotAllowed(w http.ResponseWriter, req *http.Request) {
	writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write([]byte(`{"detail":"` + detail + `"}`))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}
