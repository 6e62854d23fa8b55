package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/cpbotha/dbwriter/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

// Recovery turns handler panics into a 500 with the usual {"detail"} body.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			apiErr := errors.NewInternalError("internal server error", fmt.Errorf("panic: %v", rec)).
				WithRequestID(GetRequestID(r.Context()))
			nuts.L.Errorf("[API] Recovered from panic in %s %s (request %s): %v\n%s",
				r.Method, r.URL.Path, apiErr.RequestID, rec, debug.Stack())

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(apiErr.Code)
			json.NewEncoder(w).Encode(apiErr)
		}()

		next.ServeHTTP(w, r)
	})
}
