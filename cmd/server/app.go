package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/gabinete-digital/gabinete-api/internal/api"
	"github.com/gabinete-digital/gabinete-api/internal/api/shared"
	"github.com/gabinete-digital/gabinete-api/internal/config"
	"github.com/gabinete-digital/gabinete-api/internal/domain"
	"github.com/gabinete-digital/gabinete-api/internal/platform/postgres"
	"github.com/gabinete-digital/gabinete-api/internal/sanitize"
	"github.com/gabinete-digital/gabinete-api/internal/service"
	"github.com/gabinete-digital/gabinete-api/internal/service/auth"
	"github.com/gabinete-digital/gabinete-api/internal/store"
	"github.com/gabinete-digital/gabinete-api/internal/upload"
	"golang.org/x/crypto/bcrypt"
)

// modelFactory binds a store.Model to an entity's table.
type modelFactory func(def domain.Definition) store.Model

// application holds the shared dependencies built once at startup.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	responder *shared.Responder
	registry  *domain.Registry

	jwtService   auth.JWTService
	loginService *service.LoginService
	entities     []*api.EntityHandler
	uploader     *upload.Uploader
}

// newApplication wires the application against a PostgreSQL pool.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app, err := buildApplication(cfg, logger, func(def domain.Definition) store.Model {
		return postgres.NewTableModel(db, def.Table, logger)
	})
	if err != nil {
		return nil, err
	}
	app.db = db
	return app, nil
}

// buildApplication creates every service and handler. newModel is called
// once per registered entity.
func buildApplication(cfg *config.Config, logger *slog.Logger, newModel modelFactory) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		responder: shared.NewResponder(cfg.Server.Development),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_seconds", cfg.Auth.TokenLifetimeSeconds))

	app.registry, err = domain.Gabinete(auth.NewBcryptHasher(bcrypt.DefaultCost))
	if err != nil {
		return nil, fmt.Errorf("failed to build entity registry: %w", err)
	}

	sanitizer := sanitize.New()

	var usuarios store.Model
	for _, def := range app.registry.All() {
		model := newModel(def)
		if def.Path == "usuario" {
			usuarios = model
		}
		svc := service.NewEntityService(def, model, sanitizer, logger)
		app.entities = append(app.entities, api.NewEntityHandler(svc, app.responder))
	}
	if usuarios == nil {
		return nil, fmt.Errorf("entity registry has no usuario entity")
	}

	app.loginService = service.NewLoginService(usuarios, auth.NewBcryptVerifier(), app.jwtService, sanitizer, logger)
	app.uploader = upload.New(cfg.Upload)

	logger.Info("Application initialized successfully", slog.Int("entities", len(app.entities)))
	return app, nil
}

// Run serves HTTP until ctx is canceled or the process is signaled.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the database pool.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}
