package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"clientsapi/internal/config"
	"clientsapi/internal/handlers"
	"clientsapi/internal/middleware"
	"clientsapi/internal/mockdata"
	"clientsapi/internal/repositories"
	"clientsapi/internal/routes"
	"clientsapi/internal/services"
)

type App struct {
	cfg    *config.Config
	Router *gin.Engine
	server *http.Server
	db     *sql.DB
}

// New wires the store, service, handlers and router. The store is seeded
// with mock clients when empty.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	gin.SetMode(cfg.Server.Mode)
	a := &App{cfg: cfg}

	// === Store ===
	var repo repositories.ClientRepository
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := sql.Open("postgres", cfg.Storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping db: %w", err)
		}
		a.db = db
		repo, err = repositories.NewClientPostgresRepository(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
	default:
		repo = repositories.NewClientMemoryRepository()
	}

	log.Printf("[app] creating mock data (driver=%s)", cfg.Storage.Driver)
	if _, err := mockdata.Seed(ctx, repo, mockdata.Options{Count: cfg.Mock.Count, Seed: cfg.Mock.Seed}); err != nil {
		a.Close()
		return nil, err
	}

	// === Services / Handlers ===
	clientService := services.NewClientService(repo)
	clientHandler := handlers.NewClientHandler(clientService)

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	routes.SetupRoutes(router, clientHandler, routes.Options{
		JWTSecret: cfg.Auth.JWTSecret,
		Swagger:   true,
	})
	a.Router = router

	a.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}
	return a, nil
}

// Serve blocks until ctx is cancelled or the server fails, then shuts
// down within the configured timeout.
func (a *App) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[app] listening on %s", a.server.Addr)
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		log.Printf("[app] shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (a *App) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		log.Printf("[app] close db: %v", err)
	}
}

func Run() error {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Serve(ctx)
}
