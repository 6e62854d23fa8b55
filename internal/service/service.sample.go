package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/cpbotha/dbwriter/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// SampleService handles sample-related business logic
type SampleService interface {
	CreateSample(ctx context.Context, in models.SampleCreate) (models.SampleRead, error)
	ListSamples(ctx context.Context) ([]models.SampleRead, error)
	GetSample(ctx context.Context, id int64) (models.SampleRead, error)
}

var _ SampleService = (*Service)(nil)

var handlerSeq atomic.Int64

// CreateSample validates the payload, persists it and returns the stored view with its new id
func (s *Service) CreateSample(ctx context.Context, in models.SampleCreate) (models.SampleRead, error) {
	if err := in.Validate(); err != nil {
		return models.SampleRead{}, err
	}

	sample := in.ToSample()
	if err := s.samples.Create(ctx, &sample); err != nil {
		nuts.L.Errorf("[SampleService] Failed to create sample %q: %v", sample.Name, err)
		return models.SampleRead{}, err
	}

	s.events.Emit(EventSampleCreated, sample.ID)
	return sample.ToRead(), nil
}

// ListSamples returns every stored sample in ascending id order
func (s *Service) ListSamples(ctx context.Context) ([]models.SampleRead, error) {
	samples, err := s.samples.List(ctx)
	if err != nil {
		return nil, err
	}
	return models.ReadSamples(samples), nil
}

func (s *Service) GetSample(ctx context.Context, id int64) (models.SampleRead, error) {
	sample, err := s.samples.Get(ctx, id)
	if err != nil {
		return models.SampleRead{}, err
	}
	return sample.ToRead(), nil
}

// OnSampleCreated registers a callback invoked with the id of each created sample
func (s *Service) OnSampleCreated(handler func(id int64)) {
	handlerID := fmt.Sprintf("sample_created_%d", handlerSeq.Add(1))
	s.events.On(EventSampleCreated, handlerID, func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(int64); ok {
				handler(id)
			}
		}
	})
}
