// FilePath: internal/models/models.sample.go
package models

import (
	"math"
	"strings"
	"time"

	"github.com/cpbotha/dbwriter/internal/errors"
)

// SampleBase holds the fields shared by every view of a sample
type SampleBase struct {
	Name      string    `json:"name" db:"name" schema:"name"`
	Timestamp time.Time `json:"timestamp" db:"timestamp" schema:"timestamp"`
	// V0 is the first optional sensor value
	V0 *float64 `json:"v0" db:"v0" schema:"v0"`
	V1 *float64 `json:"v1" db:"v1" schema:"v1"`
}

// SampleCreate is the payload accepted when creating a sample.
// It never carries an id; the storage backend assigns one.
type SampleCreate struct {
	SampleBase
}

// Sample is the durable representation of a sample
type Sample struct {
	ID int64 `json:"id" db:"id"`
	SampleBase
}

// SampleRead is the representation returned to clients
type SampleRead struct {
	ID int64 `json:"id"`
	SampleBase
}

// Validate checks required fields and rejects values JSON cannot carry
func (c SampleCreate) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.NewValidationError("name is required", nil)
	}
	if c.Timestamp.IsZero() {
		return errors.NewValidationError("timestamp is required", nil)
	}
	if !finite(c.V0) {
		return errors.NewValidationError("v0 must be a finite number", nil)
	}
	if !finite(c.V1) {
		return errors.NewValidationError("v1 must be a finite number", nil)
	}
	return nil
}

// ToSample builds a stored record without an id.
// Optional values are copied so the record does not alias the request.
func (c SampleCreate) ToSample() Sample {
	return Sample{
		SampleBase: c.SampleBase.clone(),
	}
}

// ToRead converts a stored record into its client view
func (s Sample) ToRead() SampleRead {
	return SampleRead{
		ID:         s.ID,
		SampleBase: s.SampleBase.clone(),
	}
}

// ReadSamples converts stored records into client views, preserving order.
// The result is never nil so it encodes as [] when empty.
func ReadSamples(samples []*Sample) []SampleRead {
	out := make([]SampleRead, 0, len(samples))
	for _, s := range samples {
		out = append(out, s.ToRead())
	}
	return out
}

func (b SampleBase) clone() SampleBase {
	return SampleBase{
		Name:      b.Name,
		Timestamp: b.Timestamp,
		V0:        copyFloat(b.V0),
		V1:        copyFloat(b.V1),
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func finite(v *float64) bool {
	return v == nil || !(math.IsNaN(*v) || math.IsInf(*v, 0))
}

// Float returns a pointer to v, for building optional readings
func Float(v float64) *float64 {
	return &v
}
