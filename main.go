package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"betpromo/internal/config"
	"betpromo/internal/container"
	"betpromo/internal/domain"
	"betpromo/internal/handler"
	"betpromo/internal/middleware"
	"betpromo/pkg/logger"
	"betpromo/pkg/pocketbase"
	"betpromo/pkg/redis"
)

// Resources holds all resources that need cleanup
type Resources struct {
	redisClient *redis.Client
	server      *http.Server
	log         *logger.Logger
	mu          sync.Mutex
	closed      bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error

	r.log.Info("Starting graceful shutdown...")

	if r.server != nil {
		r.log.Info("Shutting down HTTP server...")
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	if r.redisClient != nil {
		r.log.Info("Closing Redis connection...")
		if err := r.redisClient.Close(); err != nil {
			r.log.WithError(err).Error("Failed to close Redis connection")
			errs = append(errs, fmt.Errorf("Redis close: %w", err))
		} else {
			r.log.Info("Redis connection closed successfully")
		}
	}

	if len(errs) > 0 {
		r.log.WithField("error_count", len(errs)).Error("Cleanup completed with errors")
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errs), errs)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting betpromo server")

	deps, err := container.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	rootCtx, cancelLoad := context.WithCancel(context.Background())
	defer cancelLoad()

	// The store loads in the background; every data endpoint answers 503
	// until the load completes, and the load retries until it does.
	go loadStore(rootCtx, deps)

	router := setupRouter(deps)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	resources := &Resources{
		redisClient: deps.RedisClient,
		server:      server,
		log:         log,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	cancelLoad()
	log.Info("Initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// loadStore authenticates the service account and runs the startup load,
// retrying until it succeeds or the process shuts down.
func loadStore(ctx context.Context, deps *container.Container) {
	cfg := deps.GetConfig()
	log := deps.GetLogger()

	for {
		if cfg.PocketBaseIdentity != "" {
			resp, err := deps.PocketBase.AuthWithPassword(ctx,
				pocketbase.CollectionSuperusers, cfg.PocketBaseIdentity, cfg.PocketBasePassword)
			if err != nil {
				log.WithError(err).Error("Service account authentication failed")
			} else {
				deps.PocketBase.SetToken(resp.Token)
			}
		}

		if err := deps.Store.Load(ctx); err == nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(15 * time.Second):
			log.Info("Retrying data store load")
		}
	}
}

// setupRouter configures and returns the HTTP router
func setupRouter(deps *container.Container) *chi.Mux {
	cfg := deps.GetConfig()
	log := deps.GetLogger()

	r := chi.NewRouter()

	corsConfig := &middleware.CORSConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           86400,
	}

	r.Use(middleware.CORS(corsConfig, log))
	r.Use(middleware.RequestID(log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	healthHandler := handler.NewHealthHandler(deps)
	authHandler := handler.NewAuthHandler(deps)
	publicHandler := handler.NewPublicHandler(deps)
	partnerHandler := handler.NewPartnerHandler(deps)
	userHandler := handler.NewUserHandler(deps)
	notificationHandler := handler.NewNotificationHandler(deps)
	messageHandler := handler.NewMessageHandler(deps)
	settingsHandler := handler.NewSettingsHandler(deps)
	dashboardHandler := handler.NewDashboardHandler(deps)
	reportHandler := handler.NewReportHandler(deps)

	// Health check (reachable even while the store loads)
	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.StoreGate(deps.Store.Loaded, log))

		// Public site endpoints
		r.Get("/partners", publicHandler.ListPartners)
		r.Get("/partners/{id}", publicHandler.GetPartner)
		r.Post("/partners/{id}/click", publicHandler.RecordClick)
		r.Post("/partners/{id}/conversion", publicHandler.RecordConversion)
		r.Post("/visit", publicHandler.RecordVisit)
		r.Post("/contact", publicHandler.SubmitContact)

		// Sessions
		r.Post("/auth/login", authHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(deps.Sessions, log))
			r.Get("/auth/me", authHandler.Me)
			r.Post("/auth/logout", authHandler.Logout)
		})

		// Back office
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Session(deps.Sessions, log))
			r.Use(middleware.RequireRole(domain.RoleViewer, log))

			r.Get("/partners", partnerHandler.List)
			r.Get("/dashboard", dashboardHandler.Overview)
			r.Get("/stats", dashboardHandler.Stats)
			r.Get("/analytics", dashboardHandler.Analytics)
			r.Get("/activities", dashboardHandler.Activities)
			r.Get("/monthly-stats", dashboardHandler.Monthly)
			r.Get("/notifications", notificationHandler.List)
			r.Get("/messages", messageHandler.List)
			r.Get("/settings", settingsHandler.Get)
			r.Get("/reports/pdf", reportHandler.ExportPDF)
			r.Get("/reports/xlsx", reportHandler.ExportXLSX)

			// Content mutations require the editor role
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleEditor, log))

				r.Post("/partners", partnerHandler.Create)
				r.Patch("/partners/{id}", partnerHandler.Update)
				r.Delete("/partners/{id}", partnerHandler.Delete)

				r.Post("/notifications/{id}/read", notificationHandler.MarkRead)
				r.Post("/notifications/read-all", notificationHandler.MarkAllRead)
				r.Delete("/notifications/{id}", notificationHandler.Delete)

				r.Post("/messages/{id}/read", messageHandler.MarkRead)
				r.Delete("/messages/{id}", messageHandler.Delete)
			})

			// Account and settings management requires the admin role
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleAdmin, log))

				r.Get("/users", userHandler.List)
				r.Post("/users", userHandler.Create)
				r.Patch("/users/{id}", userHandler.Update)
				r.Delete("/users/{id}", userHandler.Delete)

				r.Patch("/settings", settingsHandler.Update)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"type":"not_found","message":"Endpoint not found"}}`))
	})

	log.Info("Router configured successfully")
	return r
}
