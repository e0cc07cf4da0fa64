// Package app wires configuration into the running admin backend: session
// store, persistence gateway, audit recorder, e-mail and the controller.
package app

import (
	"context"
	"errors"
	"fmt"

	"marketplace-admin-backend/internal/audit"
	"marketplace-admin-backend/internal/audit/postgres"
	"marketplace-admin-backend/internal/config"
	"marketplace-admin-backend/internal/gateway"
	mongogw "marketplace-admin-backend/internal/gateway/mongo"
	"marketplace-admin-backend/internal/gateway/rest"
	"marketplace-admin-backend/internal/logger"
	"marketplace-admin-backend/internal/security"
	"marketplace-admin-backend/internal/service"
	"marketplace-admin-backend/internal/storage"
)

// App holds the long-lived components. Close releases them in reverse order.
type App struct {
	Config     *config.Config
	Sessions   storage.SessionStore
	Gateway    gateway.Gateway
	Audit      audit.Recorder
	Controller *service.Controller
	Access     service.AccessService

	closers []func() error
}

// Build opens every dependency named by cfg. On error anything already
// opened is closed again.
func Build(ctx context.Context, cfg *config.Config) (a *App, err error) {
	a = &App{Config: cfg}
	defer func() {
		if err != nil {
			_ = a.Close()
			a = nil
		}
	}()

	logger.Info("Opening session store", "type", cfg.Session.Store, "path", cfg.Session.Path)
	a.Sessions, err = storage.New(storage.Config{Type: cfg.Session.Store, Path: cfg.Session.Path})
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	a.closers = append(a.closers, a.Sessions.Close)

	if a.Gateway, err = a.buildGateway(ctx); err != nil {
		return nil, err
	}

	a.Audit = audit.Noop{}
	if cfg.Audit.Enabled {
		logger.Info("Connecting to audit database...", "host", cfg.Audit.Host, "port", cfg.Audit.Port, "database", cfg.Audit.Database)
		store, err := postgres.Open(cfg.GetAuditConnectionString())
		if err != nil {
			return nil, fmt.Errorf("failed to open audit database: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		a.Audit = store
		logger.Info("Audit database connection established")
	}

	var email service.EmailService
	if cfg.EmailEnabled() {
		logger.Info("SMTP configuration", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)
		email = service.NewEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	}

	a.Controller = service.NewController(a.Gateway, a.Sessions, a.Audit, email)
	a.Access = service.NewAccessService(a.Gateway.Auth, a.Sessions, a.Controller)
	return a, nil
}

func (a *App) buildGateway(ctx context.Context) (gateway.Gateway, error) {
	cfg := a.Config
	switch cfg.Backend.Mode {
	case config.BackendMongo:
		client, err := mongogw.Connect(ctx, cfg.Backend.Mongo.URI, cfg.MongoTimeout())
		if err != nil {
			return gateway.Gateway{}, err
		}
		a.closers = append(a.closers, func() error { return client.Disconnect(context.Background()) })

		names := mongogw.Collections{
			Users:       cfg.Backend.Mongo.UsersCollection,
			Jobs:        cfg.Backend.Mongo.JobsCollection,
			PendingJobs: cfg.Backend.Mongo.PendingJobsCollection,
			Bookings:    cfg.Backend.Mongo.BookingsCollection,
		}
		tokens := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL())
		logger.Info("Using MongoDB backend", "database", cfg.Backend.Mongo.Database)
		return mongogw.NewStore(client.Database(cfg.Backend.Mongo.Database), names, tokens).Gateway(), nil

	case config.BackendREST, "":
		logger.Info("Using REST backend", "base_url", cfg.Backend.REST.BaseURL)
		return rest.NewClient(cfg.Backend.REST.BaseURL, cfg.RESTTimeout(), a.Sessions).Gateway(), nil

	default:
		return gateway.Gateway{}, fmt.Errorf("unknown backend mode %q", cfg.Backend.Mode)
	}
}

// Close releases everything Build opened.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
