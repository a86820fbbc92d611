package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"noti-server/internal/config"
	"noti-server/internal/handler"
	"noti-server/internal/middleware"
	"noti-server/internal/repository"
	"noti-server/internal/service"
	"noti-server/internal/token"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		logger = logger.Level(level)
	}

	if dir := filepath.Dir(cfg.Database.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Fatal().Err(err).Str("dir", dir).Msg("Failed to create data directory")
		}
	}

	db, err := repository.OpenDB(cfg.Database.Path, cfg.Database.EncryptionKey)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("Failed to open database")
	}
	defer db.Close()

	noteRepo := repository.NewNoteRepository(db)
	noteService := service.NewNoteService(noteRepo)

	noteHandler := handler.NewNoteHandler(noteService, logger)
	authHandler := handler.NewAuthHandler()

	var verifier token.Verifier
	if cfg.Auth.OIDCIssuer != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		oidcVerifier, err := token.NewOIDCVerifier(ctx, cfg.Auth.OIDCIssuer, cfg.Auth.OIDCClientID)
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Str("issuer", cfg.Auth.OIDCIssuer).Msg("Failed to set up OIDC verifier")
		}
		verifier = oidcVerifier
		logger.Info().Str("issuer", cfg.Auth.OIDCIssuer).Msg("Verifying bearer tokens against OIDC provider")
	} else {
		verifier = token.NewStaticVerifier(cfg.Auth.JWTSecret)
		logger.Warn().Msg("No OIDC issuer configured, using static HMAC token verification")
	}

	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(middleware.CORSMiddleware(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))
	r.Use(middleware.Identity(verifier))

	notes := r.PathPrefix("/notes").Subrouter()
	if cfg.Auth.Required {
		notes.Use(middleware.RequireAuth)
	}

	// Fixed paths registered before the {id} route so mux does not capture
	// "search" or "title" as an id.
	notes.HandleFunc("/search", noteHandler.Search).Methods("GET", "OPTIONS")
	notes.HandleFunc("/title", noteHandler.SearchByTitle).Methods("GET", "OPTIONS")
	notes.HandleFunc("", noteHandler.List).Methods("GET", "OPTIONS")
	notes.HandleFunc("", noteHandler.Create).Methods("POST", "OPTIONS")
	notes.HandleFunc("/{id}", noteHandler.Get).Methods("GET", "OPTIONS")
	notes.HandleFunc("/{id}", noteHandler.Update).Methods("PUT", "OPTIONS")
	notes.HandleFunc("/{id}", noteHandler.Delete).Methods("DELETE", "OPTIONS")

	r.HandleFunc("/auth/user-info", authHandler.UserInfo).Methods("GET", "OPTIONS")

	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.HandleFunc("/", rootHandler).Methods("GET")

	addr := cfg.Server.Host + ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Str("env", cfg.Server.Env).Msg("Starting noti server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server stopped gracefully")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"noti-server"}`))
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message":"Noti API","version":"1.0.0","endpoints":{"/notes":"GET, POST","/notes/{id}":"GET, PUT, DELETE","/notes/search?keyword=":"GET","/notes/title?titre=":"GET","/auth/user-info":"GET"}}`))
}
