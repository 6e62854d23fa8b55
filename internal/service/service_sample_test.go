package service

import (
	"context"
	"testing"
	"time"

	"github.com/cpbotha/dbwriter/internal/errors"
	"github.com/cpbotha/dbwriter/internal/models"
	"github.com/cpbotha/dbwriter/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingRepo fails every operation with a database error
type failingRepo struct{}

func (failingRepo) Create(context.Context, *models.Sample) error {
	return errors.NewDatabaseError("failed to create sample", nil)
}
func (failingRepo) Get(context.Context, int64) (*models.Sample, error) {
	return nil, errors.NewDatabaseError("failed to get sample", nil)
}
func (failingRepo) List(context.Context) ([]*models.Sample, error) {
	return nil, errors.NewDatabaseError("failed to list samples", nil)
}

func newCreate(name string, ts time.Time, v0, v1 *float64) models.SampleCreate {
	return models.SampleCreate{SampleBase: models.SampleBase{Name: name, Timestamp: ts, V0: v0, V1: v1}}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, New(memory.NewSampleRepository()).Validate())

	err := New(nil).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing repository: samples")
}

func TestCreateListGet(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.NewSampleRepository())

	ts, err := time.Parse(time.RFC3339, "2024-01-01T10:00:00+02:00")
	require.NoError(t, err)

	first, err := svc.CreateSample(ctx, newCreate("sensor-A", ts, models.Float(3.5), nil))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "sensor-A", first.Name)
	assert.Nil(t, first.V1)

	second, err := svc.CreateSample(ctx, newCreate("sensor-B", ts, nil, models.Float(-1)))
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	list, err := svc.ListSamples(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	got, err := svc.GetSample(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)
	assert.Equal(t, "2024-01-01T10:00:00+02:00", got.Timestamp.Format(time.RFC3339))
}

func TestListEmpty(t *testing.T) {
	list, err := New(memory.NewSampleRepository()).ListSamples(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCreateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSampleRepository()
	svc := New(repo)

	_, err := svc.CreateSample(ctx, newCreate("", time.Now(), nil, nil))
	assert.True(t, errors.IsValidation(err))

	_, err = svc.CreateSample(ctx, newCreate("x", time.Time{}, nil, nil))
	assert.True(t, errors.IsValidation(err))

	assert.Equal(t, 0, repo.Len())
}

func TestGetUnknown(t *testing.T) {
	_, err := New(memory.NewSampleRepository()).GetSample(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	apiErr, ok := errors.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "sample with id 999 not found", apiErr.Message)
}

func TestRepositoryFailuresPropagate(t *testing.T) {
	ctx := context.Background()
	svc := New(failingRepo{})

	_, err := svc.CreateSample(ctx, newCreate("x", time.Now(), nil, nil))
	apiErr, ok := errors.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeDatabase, apiErr.Type)

	_, err = svc.ListSamples(ctx)
	assert.Error(t, err)

	_, err = svc.GetSample(ctx, 1)
	assert.Error(t, err)
}

func TestOnSampleCreated(t *testing.T) {
	svc := New(memory.NewSampleRepository())

	created := make(chan int64, 1)
	svc.OnSampleCreated(func(id int64) { created <- id })

	out, err := svc.CreateSample(context.Background(), newCreate("evt", time.Now(), nil, nil))
	require.NoError(t, err)

	select {
	case id := <-created:
		assert.Equal(t, out.ID, id)
	case <-time.After(2 * time.Second):
		t.Fatal("sample.created handler was not invoked")
	}
}
