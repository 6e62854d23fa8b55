package docs

import (
	"net/http"

	"github.com/swaggo/swag"
	nuts "github.com/vaudience/go-nuts"
)

// Handler serves the rendered swagger document
func Handler(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		nuts.L.Errorf("[Docs] Failed to render swagger document: %v", err)
		http.Error(w, `{"detail":"failed to render api documentation"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
