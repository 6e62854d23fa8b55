// FilePath: internal/repository/memory/memory.sample.go
package memory

import (
	"context"
	"sync"

	"github.com/cpbotha/dbwriter/internal/models"
	"github.com/cpbotha/dbwriter/internal/repository"
)

// SampleRepo is a thread-safe in-process sample store, used for local runs and tests.
// Records are kept in insertion order, which is also ascending id order.
type SampleRepo struct {
	mu      sync.RWMutex
	nextID  int64
	entries []models.Sample
	byID    map[int64]int
}

var _ repository.SampleRepository = (*SampleRepo)(nil)

func NewSampleRepository() *SampleRepo {
	return &SampleRepo{
		nextID: 1,
		byID:   make(map[int64]int),
	}
}

func (r *SampleRepo) Create(ctx context.Context, sample *models.Sample) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sample.ID = r.nextID
	r.nextID++

	stored := *sample
	stored.SampleBase = cloneBase(sample.SampleBase)
	r.byID[stored.ID] = len(r.entries)
	r.entries = append(r.entries, stored)
	return nil
}

func (r *SampleRepo) Get(ctx context.Context, id int64) (*models.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, repository.SampleNotFound(id)
	}
	out := r.entries[idx]
	out.SampleBase = cloneBase(out.SampleBase)
	return &out, nil
}

func (r *SampleRepo) List(ctx context.Context) ([]*models.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Sample, 0, len(r.entries))
	for _, s := range r.entries {
		s.SampleBase = cloneBase(s.SampleBase)
		out = append(out, &s)
	}
	return out, nil
}

// Len reports how many samples are stored
func (r *SampleRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func cloneBase(b models.SampleBase) models.SampleBase {
	c := b
	if b.V0 != nil {
		c.V0 = models.Float(*b.V0)
	}
	if b.V1 != nil {
		c.V1 = models.Float(*b.V1)
	}
	return c
}
