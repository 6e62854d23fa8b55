// FilePath: api/resources/resources.go
package resources

import (
	"context"

	"github.com/cpbotha/dbwriter/internal/service"
)

// HealthChecker reports whether the storage backend is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Resources holds all HTTP resource handlers
type Resources struct {
	Samples *SampleHandlers
	System  *SystemHandlers
}

// NewResources creates a new Resources instance.
// health may be nil when the backend has nothing to ping.
func NewResources(svc *service.Service, health HealthChecker) *Resources {
	return &Resources{
		Samples: &SampleHandlers{service: svc, forms: newFormDecoder()},
		System:  &SystemHandlers{health: health},
	}
}
