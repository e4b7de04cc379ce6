// Package server defines the Server container that composes the
// application's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the table store (postgrest, postgres or memory driver)
//   - Prometheus metrics
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/carpool/internal/config"
	"github.com/deppfellow/carpool/internal/database"
	"github.com/deppfellow/carpool/internal/metrics"
	"github.com/deppfellow/carpool/internal/model"
	"github.com/deppfellow/carpool/internal/store"
	"github.com/deppfellow/carpool/internal/store/memstore"
	"github.com/deppfellow/carpool/internal/store/postgres"
	"github.com/deppfellow/carpool/internal/store/postgrest"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/carpool/internal/logger"
)

// Server is the application container. It is not the HTTP server itself
// but holds everything handlers and middleware share.
type Server struct {
	Config *config.Config
	Logger *zerolog.Logger

	// LoggerService holds the New Relic application, nil inside when
	// New Relic is disabled.
	LoggerService *loggerPkg.LoggerService

	// Store is the instrumented table store every repository uses.
	Store store.Store

	Metrics *metrics.Metrics

	httpServer *http.Server
}

// New opens the configured store and builds the container.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	st, err := NewStore(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return NewWithStore(cfg, logger, loggerService, st), nil
}

// NewWithStore builds the container around an already opened store.
func NewWithStore(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService, st store.Store) *Server {
	m := metrics.New(config.ServiceName)

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		Store:         metrics.InstrumentStore(st, m, logger, cfg.Observability.Logging.SlowQueryThreshold),
		Metrics:       m,
	}
}

// NewStore opens the store driver selected by cfg.Store.Driver.
func NewStore(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (store.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgREST:
		client, err := postgrest.New(postgrest.Config{
			URL:     cfg.Store.URL,
			Key:     cfg.Store.Key,
			Timeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		logger.Info().Str("driver", cfg.Store.Driver).Str("url", cfg.Store.URL).Msg("using hosted table store")
		return client, nil

	case config.DriverPostgres:
		db, err := database.New(cfg, logger, loggerService)
		if err != nil {
			return nil, err
		}
		return postgres.New(db), nil

	case config.DriverMemory:
		logger.Warn().Msg("using in-memory table store, data is lost on restart")
		return memstore.New(model.CarsTable, model.PersonsTable, model.CommutesTable), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// SetupHTTPServer configures the internal net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         s.Config.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("store", s.Config.Store.Driver).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires and then releases the store.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	s.Store.Close()

	return nil
}
