package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/markjakearzadon/cohorttools-gobackend/internal/auth"
	"github.com/markjakearzadon/cohorttools-gobackend/internal/config"
	"github.com/markjakearzadon/cohorttools-gobackend/internal/db"
	"github.com/markjakearzadon/cohorttools-gobackend/internal/handlers"
	"github.com/markjakearzadon/cohorttools-gobackend/internal/logger"
	"github.com/markjakearzadon/cohorttools-gobackend/internal/services"
	"github.com/markjakearzadon/cohorttools-gobackend/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	lg := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB
	client, err := db.Connect(ctx, lg, cfg.Mongo.URI)
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := db.Disconnect(client, cfg.ShutdownTimeout); err != nil {
			lg.Error().Err(err).Msg("error disconnecting from MongoDB")
		}
	}()

	database := client.Database(cfg.Mongo.Database)

	// Initialize services and handlers
	hasher := auth.NewPasswordHasher(cfg.PasswordHasher)
	studentService := services.NewStudentService(database)
	cohortService := services.NewCohortService(database)
	userService := services.NewUserService(database, hasher)

	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	for _, ensure := range []func(context.Context) error{
		studentService.EnsureIndexes,
		cohortService.EnsureIndexes,
		userService.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			cancel()
			lg.Fatal().Err(err).Msg("failed to create indexes")
		}
	}
	cancel()

	validator, err := validation.New()
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to build validator")
	}

	authenticator := auth.NewJWTAuthenticator(cfg.Token.Secret, cfg.Token.Audience, cfg.Token.Issuer, cfg.Token.ExpiresIn)
	var verifier auth.Verifier = auth.NewTokenVerifier(authenticator)
	if cfg.AuthVerifyURL != "" {
		verifier = auth.NewRemoteVerifier(cfg.AuthVerifyURL, cfg.AuthVerifyTimeout)
		lg.Info().Str("url", cfg.AuthVerifyURL).Msg("verifying identities with remote auth service")
	}

	router := handlers.Router{
		Logger:      lg,
		CORSOrigins: cfg.CORSOrigins,
		Verifier:    verifier,
		Students:    handlers.NewStudentHandler(studentService, cohortService, validator),
		Cohorts:     handlers.NewCohortHandler(cohortService, validator),
		Auth:        handlers.NewAuthHandler(userService, authenticator, validator),
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	lg.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Error().Err(err).Msg("server stopped")
		return
	}
	<-shutdownDone
}
