// FilePath: internal/repository/cache/cache.sample.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cpbotha/dbwriter/internal/config"
	"github.com/cpbotha/dbwriter/internal/models"
	"github.com/cpbotha/dbwriter/internal/repository"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

const (
	keyPrefix  = "dbwriter:sample:"
	defaultTTL = time.Hour
)

// SampleRepo decorates another SampleRepository with a redis cache for
// single-sample lookups. Get is read-through, Create is write-through and
// List always goes to the inner repository. Redis failures are logged and
// never fail a request; the inner repository stays the source of truth.
type SampleRepo struct {
	inner  repository.SampleRepository
	client *redis.Client
	ttl    time.Duration
	mu     sync.Mutex
	closed bool
}

var _ repository.SampleRepository = (*SampleRepo)(nil)

// NewRedisClient connects to the configured redis server and verifies it answers
func NewRedisClient(ctx context.Context, cfg config.CacheConfig) (*redis.Client, error) {
	if cfg.Host == "" {
		return nil, errors.New("redis address cannot be empty")
	}
	if cfg.DB < 0 {
		return nil, errors.New("redis database number must be >= 0")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr(), err)
	}

	nuts.L.Infof("[Cache] Connected to redis at %s (db %d)", cfg.Addr(), cfg.DB)
	return client, nil
}

// NewSampleRepository wraps inner with client. A ttl of 0 uses one hour.
func NewSampleRepository(inner repository.SampleRepository, client *redis.Client, ttl time.Duration) *SampleRepo {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &SampleRepo{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}
}

func sampleKey(id int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, id)
}

func (r *SampleRepo) Create(ctx context.Context, sample *models.Sample) error {
	if err := r.inner.Create(ctx, sample); err != nil {
		return err
	}
	r.store(ctx, sample)
	return nil
}

func (r *SampleRepo) Get(ctx context.Context, id int64) (*models.Sample, error) {
	if cached, ok := r.load(ctx, id); ok {
		return cached, nil
	}

	sample, err := r.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, sample)
	return sample, nil
}

func (r *SampleRepo) List(ctx context.Context) ([]*models.Sample, error) {
	return r.inner.List(ctx)
}

// Ping checks that redis is reachable
func (r *SampleRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the redis client. It is safe to call more than once.
func (r *SampleRepo) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	if err := r.client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return err
	}
	return nil
}

func (r *SampleRepo) load(ctx context.Context, id int64) (*models.Sample, bool) {
	data, err := r.client.Get(ctx, sampleKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			nuts.L.Warnf("[Cache] Failed to read sample %d: %v", id, err)
		}
		return nil, false
	}

	var sample models.Sample
	if err := json.Unmarshal(data, &sample); err != nil {
		nuts.L.Warnf("[Cache] Dropping undecodable entry for sample %d: %v", id, err)
		r.client.Del(ctx, sampleKey(id))
		return nil, false
	}
	return &sample, true
}

func (r *SampleRepo) store(ctx context.Context, sample *models.Sample) {
	data, err := json.Marshal(sample)
	if err != nil {
		nuts.L.Warnf("[Cache] Failed to encode sample %d: %v", sample.ID, err)
		return
	}
	if err := r.client.Set(ctx, sampleKey(sample.ID), data, r.ttl).Err(); err != nil {
		nuts.L.Warnf("[Cache] Failed to store sample %d: %v", sample.ID, err)
	}
}
