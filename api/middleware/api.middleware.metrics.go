package middleware

import (
	"net/http"

	"github.com/cpbotha/dbwriter/internal/monitoring"
	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"
)

// Instrument logs every request and records it in the request metrics.
// Requests are labelled by their route template so ids do not explode cardinality.
func Instrument(mon *monitoring.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)

			route := routeTemplate(r)
			if mon != nil {
				mon.RecordRequest(route, r.Method, m.Code, m.Duration)
			}
			nuts.L.Infof("[API] %s %s %d %dB %v (%s)",
				r.Method, r.URL.Path, m.Code, m.Written, m.Duration, w.Header().Get(RequestIDHeader))
		})
	}
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
