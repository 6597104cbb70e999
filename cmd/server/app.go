package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/notewell/notewell-api/internal/cache"
	"github.com/notewell/notewell-api/internal/config"
	"github.com/notewell/notewell-api/internal/platform/gemini"
	"github.com/notewell/notewell-api/internal/platform/postgres"
	"github.com/notewell/notewell-api/internal/refdata"
	"github.com/notewell/notewell-api/internal/service"
	"github.com/notewell/notewell-api/internal/service/auth"
	"github.com/notewell/notewell-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	noteStore store.NoteStore
	quizStore store.QuizStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	noteService      service.NoteService
	quizService      service.QuizService

	// Reference data
	cacheStore cache.Store
	countries  *refdata.Countries
	frameworks *refdata.Frameworks
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts the core dependencies that must be established
// before application wiring can happen.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	bcryptCost := cfg.Auth.BcryptCost
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	app.userStore = postgres.NewPostgresUserStore(db, bcryptCost, logger)
	app.noteStore = postgres.NewPostgresNoteStore(db, logger)
	app.quizStore = postgres.NewPostgresQuizStore(db, logger)

	app.noteService, err = service.NewNoteService(app.noteStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create note service: %w", err)
	}

	generator, err := gemini.NewGenerator(ctx, logger.With("component", "llm_generator"), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized")

	app.quizService, err = service.NewQuizService(app.quizStore, app.noteService, generator, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz service: %w", err)
	}

	if err := app.setupRefData(); err != nil {
		return nil, err
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// setupRefData wires the reference-data cache and loaders. The cache
// backend is Redis when an address is configured, otherwise process
// memory.
func (app *application) setupRefData() error {
	cfg := app.config

	if cfg.Cache.RedisAddr != "" {
		app.cacheStore = cache.NewRedisStore(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		app.logger.Info("reference-data cache backed by redis",
			"addr", cfg.Cache.RedisAddr)
	} else {
		app.cacheStore = cache.NewMemoryStore()
		app.logger.Info("reference-data cache held in process memory")
	}

	client := refdata.NewClient(refdata.ClientConfig{
		BaseURL:   cfg.RefData.BaseURL,
		APIKey:    cfg.RefData.APIKey,
		Timeout:   time.Duration(cfg.RefData.TimeoutSeconds) * time.Second,
		RateLimit: cfg.RefData.RateLimit,
		Burst:     cfg.RefData.Burst,
	})

	ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	app.countries = refdata.NewCountries(client, app.cacheStore, ttl, app.logger)
	app.frameworks = refdata.NewFrameworks(client, app.cacheStore, ttl, app.logger)
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if closer, ok := app.cacheStore.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			app.logger.Error("error closing cache store", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
