package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"pantry/internal/config"
	"pantry/internal/db"
	"pantry/internal/db/mock"
	"pantry/internal/server"

	applog "pantry/internal/log"
)

// serverLifecycle is the slice of server.Server that run depends on.
type serverLifecycle interface {
	Start() error
	Stop() error
}

// Seams for the run tests.
var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		return db.Configure(cfg)
	}
	newServerFunc = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		return sigCh, func() { signal.Stop(sigCh) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		log.Printf("failed to load configuration: %v", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.LogLevel); err != nil {
		log.Printf("invalid log level %q: %v", cfg.LogLevel, err)
		return 1
	}

	var database *gorm.DB
	if cfg.Database.UseMock {
		database, err = newMockDatabaseFunc(ctx)
		if err != nil {
			log.Printf("failed to initialise mock database: %v", err)
			return 1
		}
	} else {
		database, err = configureDatabase(cfg.Database)
		if err != nil {
			log.Printf("failed to configure database: %v", err)
			return 1
		}
	}

	srv, err := newServerFunc(server.Config{
		Addr:     cfg.Server.Addr,
		Database: database,
	})
	if err != nil {
		log.Printf("failed to build server: %v", err)
		return 1
	}

	startErr := make(chan error, 1)
	go func() {
		log.Printf("starting http server on %s", cfg.Server.Addr)
		startErr <- srv.Start()
	}()

	sigCh, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	select {
	case err := <-startErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server encountered an error: %v", err)
			return 1
		}
	case <-sigCh:
		log.Println("shutting down http server")
		if err := srv.Stop(); err != nil {
			log.Printf("graceful shutdown failed: %v", err)
			return 1
		}
	}

	return 0
}
