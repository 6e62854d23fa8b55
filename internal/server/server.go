// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/cpbotha/dbwriter/api"
	"github.com/cpbotha/dbwriter/api/resources"
	"github.com/cpbotha/dbwriter/internal/config"
	"github.com/cpbotha/dbwriter/internal/database"
	"github.com/cpbotha/dbwriter/internal/monitoring"
	"github.com/cpbotha/dbwriter/internal/repository"
	"github.com/cpbotha/dbwriter/internal/repository/cache"
	"github.com/cpbotha/dbwriter/internal/repository/memory"
	"github.com/cpbotha/dbwriter/internal/repository/sqldb"
	"github.com/cpbotha/dbwriter/internal/service"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	service    *service.Service
	monitoring *monitoring.Service
	db         *database.DB
	cache      *cache.SampleRepo
	health     backendHealth
}

// backendHealth pings each storage layer in order, stopping at the first failure
type backendHealth []resources.HealthChecker

func (h backendHealth) Ping(ctx context.Context) error {
	for _, checker := range h {
		if err := checker.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config: cfg,
		srv:    srv,
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err := s.initialize(ctx)
	cancel()
	if err != nil {
		s.close()
		return err
	}

	// Start server
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// Handler returns the fully wired HTTP handler, initializing dependencies on first use
func (s *Server) Handler(ctx context.Context) (http.Handler, error) {
	if s.srv.Handler == nil {
		if err := s.initialize(ctx); err != nil {
			return nil, err
		}
	}
	return s.srv.Handler, nil
}

func (s *Server) initialize(ctx context.Context) error {
	samples, err := s.initializeRepository(ctx)
	if err != nil {
		return err
	}

	s.service = service.New(samples)
	if err := s.service.Validate(); err != nil {
		return err
	}
	s.monitoring = monitoring.NewService(nil)

	// Set up event handlers
	s.setupEventHandlers()

	s.srv.Handler = api.NewRouter(s.service, s.health, s.monitoring, s.config.Monitoring)

	s.monitoring.RecordEvent("startup", map[string]string{
		"backend": s.config.Database.Driver,
		"cache":   strconv.FormatBool(s.cache != nil),
		"version": nuts.GetVersion(),
	})
	return nil
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	s.close()

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// close releases the cache and database after the HTTP server has drained
func (s *Server) close() {
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			nuts.L.Warnf("[Server] Failed to close redis client: %v", err)
		}
		s.cache = nil
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			nuts.L.Warnf("[Server] Failed to close database: %v", err)
		}
		s.db = nil
	}
}

func (s *Server) setupEventHandlers() {
	s.service.OnSampleCreated(func(id int64) {
		nuts.L.Debugf("[Events] Sample %d created", id)
		s.monitoring.RecordSampleCreated()
		s.monitoring.RecordEvent(service.EventSampleCreated, map[string]string{
			"backend": s.config.Database.Driver,
		})
	})
}

// initializeRepository builds the configured storage backend, optionally fronted by redis
func (s *Server) initializeRepository(ctx context.Context) (repository.SampleRepository, error) {
	var samples repository.SampleRepository

	switch s.config.Database.Driver {
	case config.DriverMemory:
		nuts.L.Warnf("[Server] Using in-memory storage; samples are lost on restart")
		samples = memory.NewSampleRepository()
	default:
		db, err := initAppDB(ctx, s.config.Database)
		if err != nil {
			return nil, err
		}
		s.db = db
		repo := sqldb.NewSampleRepository(db)
		s.health = append(s.health, repo)
		samples = repo
	}

	if s.config.Cache.Enabled {
		client, err := cache.NewRedisClient(ctx, s.config.Cache)
		if err != nil {
			return nil, err
		}
		s.cache = cache.NewSampleRepository(samples, client, s.config.Cache.TTL)
		s.health = append(s.health, s.cache)
		samples = s.cache
	}

	return samples, nil
}

func initAppDB(ctx context.Context, cfg config.DatabaseConfig) (*database.DB, error) {
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	nuts.L.Infof("[Server] Using %s", cfg.Location())
	return db, nil
}
