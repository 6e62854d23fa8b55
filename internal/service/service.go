package service

import (
	"github.com/cpbotha/dbwriter/internal/errors"
	"github.com/cpbotha/dbwriter/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// EventSampleCreated is emitted with the new sample id after a successful create
const EventSampleCreated = "sample.created"

// Service contains all repositories and service-wide dependencies
type Service struct {
	samples repository.SampleRepository
	events  *nuts.EventEmitter
}

// New creates a new service instance
func New(samples repository.SampleRepository) *Service {
	return &Service{
		samples: samples,
		events:  nuts.NewEventEmitter(),
	}
}

// Validate checks if all required repositories are initialized
func (s *Service) Validate() error {
	if s.samples == nil {
		return ErrMissingRepository("samples")
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}
