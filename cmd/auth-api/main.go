package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auth-api/config"
	"auth-api/internal"
	"auth-api/internal/handler"
	"auth-api/internal/logging"
	"auth-api/internal/metrics"
	"auth-api/internal/notifier"
	"auth-api/internal/repository"
	"auth-api/internal/security"
	"auth-api/internal/service"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Env, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer logger.Sync()

	accessTokenTTL, err := cfg.JWT.ParseAccessTokenTTL()
	if err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}
	refreshTokenTTL, err := cfg.JWT.ParseRefreshTokenTTL()
	if err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}
	refreshRecordTTL, err := cfg.JWT.ParseRefreshRecordTTL()
	if err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	database, err := internal.NewDatabaseConnection(cfg.Database.Driver, cfg.Database.ConnectionString)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer database.Close()
	logger.Info("database connection established")

	jwtService := security.NewJWTService([]byte(cfg.JWT.SecretKey), accessTokenTTL, refreshTokenTTL)
	gate := security.NewAuthenticationGate(jwtService, cfg.Auth.PublicPathPrefixes, logger)

	userRepository := repository.NewUserRepository(database)
	refreshTokenRepository := repository.NewRefreshTokenRepository(database)

	webhookNotifier := notifier.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.ParseTimeout(), logger)

	userService := service.NewUserService(userRepository, logger)
	authenticationService := service.NewAuthenticationService(
		userRepository,
		refreshTokenRepository,
		jwtService,
		webhookNotifier,
		refreshRecordTTL,
		logger,
	)

	authenticationHandler := handler.NewAuthenticationHandler(authenticationService, userService, logger)
	userHandler := handler.NewUserHandler(userService, logger)

	router := chi.NewRouter()
	router.Use(metrics.Middleware)
	router.Use(gate.Middleware)

	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", authenticationHandler.Signup)
		r.Post("/login", authenticationHandler.Login)
		r.Post("/logout", authenticationHandler.Logout)
		r.Post("/token", authenticationHandler.RefreshToken)
	})

	router.Route("/api/v1/users", func(r chi.Router) {
		r.Use(security.RequireIdentity)
		r.Get("/", userHandler.GetUsers)
		r.Get("/me", userHandler.GetCurrentUser)
		r.Put("/{id}", userHandler.UpdateUser)
		r.Delete("/{id}", userHandler.DeleteUser)
	})

	router.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: router,
	}

	runServer(server, logger)
}

func runServer(server *http.Server, logger *zap.Logger) {
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-signalChannel:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
