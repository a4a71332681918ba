package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"

	"github.com/skolar/auth-gateway/internal/auth"
	"github.com/skolar/auth-gateway/internal/config"
	"github.com/skolar/auth-gateway/internal/handlers"
	"github.com/skolar/auth-gateway/internal/logger"
	"github.com/skolar/auth-gateway/internal/middleware"
	"github.com/skolar/auth-gateway/internal/models"
	"github.com/skolar/auth-gateway/internal/providers"
	"github.com/skolar/auth-gateway/internal/store"
	"github.com/skolar/auth-gateway/internal/telemetry"
	"github.com/skolar/auth-gateway/internal/token"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		if cfg.IsProduction() {
			zapLogger.Fatal("missing_required_credentials",
				zap.String("variables", strings.Join(missing, ", ")),
			)
		}
		zapLogger.Warn("missing_credentials_oauth_logins_will_fail",
			zap.String("variables", strings.Join(missing, ", ")),
		)
	}

	zapLogger.Info("starting_gateway",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(context.Background(), "auth-gateway", cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				zapLogger.Info("otel_tracer_initialized", zap.String("endpoint", cfg.OTELEndpoint))
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := telemetry.Shutdown(shutdownCtx, tp); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	// Wire the core: provider adapters -> identity store -> token service.
	registry := providers.Registry{
		models.ProviderGoogle: providers.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI),
		models.ProviderGitHub: providers.NewGitHub(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.GitHubRedirectURI),
	}
	userStore := store.NewMemory()
	tokenService := token.NewService(cfg.JWTSecret)
	orchestrator := auth.New(registry, userStore, tokenService, cfg.FrontendURL, zapLogger)

	authHandler := handlers.NewAuthHandler(orchestrator, zapLogger)

	r := mux.NewRouter()

	// Middleware executes outermost-first in registration order.
	if cfg.OTELEnabled {
		r.Use(otelmux.Middleware("auth-gateway"))
	}
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	r.Use(middleware.CORS(cfg.FrontendURL))
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	r.Use(middleware.Timeout(middleware.DefaultRequestTimeout))
	r.Use(middleware.Recovery(zapLogger))
	r.Use(middleware.Logging(zapLogger))

	r.HandleFunc("/", handlers.Root).Methods("GET")
	r.HandleFunc("/healthz", handlers.Health).Methods("GET")
	r.HandleFunc("/version", handlers.Version).Methods("GET")
	authHandler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		zapLogger.Info("server_starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}
