// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	apierrors "github.com/cpbotha/dbwriter/internal/errors"
	"github.com/cpbotha/dbwriter/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
)

// SampleRepository defines the interface for sample storage.
// Samples are create-then-read-only: there is no update or delete.
type SampleRepository interface {
	// Create inserts the sample atomically and assigns sample.ID
	Create(ctx context.Context, sample *models.Sample) error
	// Get fails with a NotFound error wrapping ErrNotFound when id is unknown
	Get(ctx context.Context, id int64) (*models.Sample, error)
	// List returns every sample in ascending id order
	List(ctx context.Context) ([]*models.Sample, error)
}

// SampleNotFound builds the NotFound error every repository returns for a missing id
func SampleNotFound(id int64) *apierrors.APIError {
	return apierrors.NewNotFoundError(fmt.Sprintf("sample with id %d not found", id), ErrNotFound).
		WithDetails(map[string]any{"id": id})
}
