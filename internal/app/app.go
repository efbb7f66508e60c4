package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/pocketledger/pocketledger/internal/config"
	"github.com/pocketledger/pocketledger/internal/database"
	"github.com/pocketledger/pocketledger/internal/event_bus"
	"github.com/pocketledger/pocketledger/pkg/kvstore"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, the record store, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
	close  func()
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	store, closeStore, err := openStore(cfg.Database)
	if err != nil {
		return nil, err
	}

	bus := event_bus.NewEventBus()
	deps, err := BuildDependencies(kvstore.NewNotifyingStore(store, bus), bus, cfg)
	if err != nil {
		closeStore()
		return nil, err
	}

	if _, err := deps.ThemeService.Load(context.Background()); err != nil {
		log.Warnf("Unable to load theme preference, using default: %v", err)
	}

	r := mux.NewRouter()

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + strconv.Itoa(cfg.Port),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv, close: closeStore}, nil
}

// openStore connects to the configured backend and applies its migrations.
func openStore(cfg config.Database) (kvstore.Store, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		if err := database.MigratePostgres(cfg); err != nil {
			return nil, nil, err
		}
		pool, err := database.OpenPostgres(cfg)
		if err != nil {
			return nil, nil, err
		}
		log.Infof("Using postgres record store at %s:%d/%s", cfg.Host, cfg.Port, cfg.Name)
		return kvstore.NewPostgresStore(pool), pool.Close, nil
	default:
		db, err := database.OpenSQLite(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := database.MigrateSQLite(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Infof("Using sqlite record store at %s", cfg.Path)
		return kvstore.NewSQLiteStore(db), func() { db.Close() }, nil
	}
}

// Run starts the limit watcher and the HTTP server and blocks until the
// process is interrupted.
func (a *Application) Run() error {
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.deps.LimitWatcher.Start(ctx); err != nil {
		return err
	}
	defer a.deps.LimitWatcher.Stop()

	go func() {
		<-ctx.Done()
		log.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := a.srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Server shutdown error: %v", err)
		}
	}()

	log.Infof("Starting server on %s", a.srv.Addr)
	if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
