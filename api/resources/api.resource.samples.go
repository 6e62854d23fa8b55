package resources

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/cpbotha/dbwriter/internal/errors"
	"github.com/cpbotha/dbwriter/internal/models"
	"github.com/cpbotha/dbwriter/internal/repository"
	"github.com/cpbotha/dbwriter/internal/service"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
)

const maxBodyBytes = 1 << 20

// SampleHandlers encapsulates the sample-related HTTP handlers
type SampleHandlers struct {
	service *service.Service
	forms   *schema.Decoder
}

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// @Summary Create a new sample
// @Description Store a sample. The id is assigned by the server; any id in the body is ignored.
// @Tags samples
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param sample body models.SampleCreate true "Sample details"
// @Success 201 {object} models.Sample
// @Failure 422 {object} errors.APIError
// @Failure 500 {object} errors.APIError
// @Router /samples [post]
func (h *SampleHandlers) CreateSample(w http.ResponseWriter, r *http.Request) {
	in, err := h.decodeCreate(w, r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	sample, err := h.service.CreateSample(r.Context(), in)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, sample)
}

// @Summary List samples
// @Description List every stored sample in ascending id order
// @Tags samples
// @Produce json
// @Success 200 {array} models.SampleRead
// @Failure 500 {object} errors.APIError
// @Router /samples [get]
func (h *SampleHandlers) ListSamples(w http.ResponseWriter, r *http.Request) {
	samples, err := h.service.ListSamples(r.Context())
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, samples)
}

// @Summary Get a sample
// @Description Get a single sample by id
// @Tags samples
// @Produce json
// @Param id path int true "Sample ID"
// @Success 200 {object} models.SampleRead
// @Failure 404 {object} errors.APIError
// @Failure 422 {object} errors.APIError
// @Router /samples/{id} [get]
func (h *SampleHandlers) GetSample(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// an integer beyond int64 can never have been assigned
		if stderrors.Is(err, strconv.ErrRange) {
			respondWithError(w, r, errors.NewNotFoundError(fmt.Sprintf("sample with id %s not found", raw), repository.ErrNotFound))
			return
		}
		respondWithError(w, r, errors.NewValidationError(fmt.Sprintf("id must be an integer, got %q", raw), err))
		return
	}

	sample, err := h.service.GetSample(r.Context(), id)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sample)
}

// decodeCreate reads a SampleCreate from a JSON or form encoded body
func (h *SampleHandlers) decodeCreate(w http.ResponseWriter, r *http.Request) (models.SampleCreate, error) {
	var in models.SampleCreate
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && err != http.ErrNotMultipart {
			return in, errors.NewValidationError("invalid form body", err)
		}
		if err := h.forms.Decode(&in, nonEmpty(r.PostForm)); err != nil {
			return in, errors.NewValidationError("invalid form body: "+err.Error(), err)
		}
	default:
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&in); err != nil {
			return in, errors.NewValidationError("invalid request body: "+err.Error(), err)
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			return in, errors.NewValidationError("invalid request body: unexpected data after JSON object", err)
		}
	}
	return in, nil
}

// nonEmpty drops blank form values so optional readings stay null
func nonEmpty(form map[string][]string) map[string][]string {
	out := make(map[string][]string, len(form))
	for key, values := range form {
		for _, v := range values {
			if v != "" {
				out[key] = append(out[key], v)
			}
		}
	}
	return out
}
