package resources

import (
	"encoding/json"
	"net/http"

	"github.com/cpbotha/dbwriter/api/middleware"
	"github.com/cpbotha/dbwriter/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr, ok := errors.AsAPIError(err)
	if !ok {
		apiErr = errors.NewInternalError("internal server error", err)
	}
	if apiErr.RequestID == "" {
		apiErr = apiErr.WithRequestID(middleware.GetRequestID(r.Context()))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Code)
	json.NewEncoder(w).Encode(apiErr)

	if apiErr.Code >= http.StatusInternalServerError {
		nuts.L.Errorf("[API] %s (request %s)", apiErr.Error(), apiErr.RequestID)
	} else {
		nuts.L.Debugf("[API] %s (request %s)", apiErr.Error(), apiErr.RequestID)
	}
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
