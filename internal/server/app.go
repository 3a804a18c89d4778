// Package server wires the portal together: configuration, logging, the
// Odoo client, the provisioning workflow, the upload journal and the HTTP
// and gRPC health servers, and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/docportal/internal/logging"
	"github.com/dmitrijs2005/docportal/internal/server/archive"
	"github.com/dmitrijs2005/docportal/internal/server/auth"
	"github.com/dmitrijs2005/docportal/internal/server/config"
	"github.com/dmitrijs2005/docportal/internal/server/directory"
	"github.com/dmitrijs2005/docportal/internal/server/documents"
	"github.com/dmitrijs2005/docportal/internal/server/httpapi"
	"github.com/dmitrijs2005/docportal/internal/server/journal"
	"github.com/dmitrijs2005/docportal/internal/server/metrics"
	"github.com/dmitrijs2005/docportal/internal/server/odoo"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/docportal/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	http    *httpapi.Server
	health  *gs.HealthServer
	closers []func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogBackend, os.Stdout)
	if err != nil {
		return nil, err
	}

	app := &App{config: c, logger: logger}

	registry := metrics.New()

	client := odoo.NewClient(odoo.Config{
		Host:     c.OdooHost,
		DB:       c.OdooDB,
		User:     c.OdooUser,
		Password: c.OdooPassword,
	}, odoo.HTTPDialer(c.RPCTimeout, nil), registry, logger)

	uploads, err := app.openJournal(ctx)
	if err != nil {
		app.close()
		return nil, err
	}

	var archiver documents.Archiver
	if c.S3Bucket != "" {
		store, err := archive.NewS3Store(ctx, archive.Config{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			app.close()
			return nil, fmt.Errorf("archive init error: %w", err)
		}
		archiver = store
	}

	docs := documents.NewService(client, documents.Options{
		FolderID:          c.FolderID(),
		CompensateOrphans: c.CompensateOrphans,
	}, uploads, archiver, registry, logger)

	app.http = httpapi.NewServer(c.EndpointAddrHTTP, httpapi.Deps{
		Credentials: auth.NewChecker(c.UserSecret, c.PasswordSecret),
		Tokens:      auth.NewTokenIssuer(c.SecretKey, c.SessionValidityDuration),
		Directory:   directory.NewService(client),
		Uploader:    docs,
		Journal:     uploads,
		Logins:      registry,
		Metrics:     registry.Handler(),
		Logger:      logger,
	}, httpapi.Options{
		MaxUploadBytes: c.MaxUploadBytes,
		RequireSession: c.RequireSession,
		EnableCORS:     c.EnableCORS,
	})

	if c.GRPCHealthAddr != "" {
		app.health, err = gs.NewHealthServer(c.GRPCHealthAddr, logger, client, c.HealthCheckInterval)
		if err != nil {
			app.close()
			return nil, err
		}
	}

	if c.UserSecret == "" || c.PasswordSecret == "" {
		logger.Warn(ctx, "portal secrets are not configured, every login will be rejected")
	}

	return app, nil
}

func (app *App) openJournal(ctx context.Context) (journal.Repository, error) {
	if app.config.DatabaseDSN == "" {
		app.logger.Info(ctx, "upload journal kept in memory")
		return journal.NewMemoryRepository(journal.DefaultMemoryCapacity), nil
	}

	repo, db, err := journal.OpenPostgres(ctx, app.config.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.closers = append(app.closers, db.Close)
	return repo, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case sig := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", sig.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run blocks until a signal arrives, ctx is cancelled or a server fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.http.Run(gctx)
	})

	if app.health != nil {
		g.Go(func() error {
			return app.health.Run(gctx)
		})
	}

	err := g.Wait()
	app.close()

	if err != nil {
		app.logger.Error(ctx, "app stopped with error", "error", err)
		return err
	}
	app.logger.Info(ctx, "App stopped")
	return nil
}

func (app *App) close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Error(context.Background(), "close error", "error", err)
		}
	}
	app.closers = nil
	if z, ok := app.logger.(*logging.ZapLogger); ok {
		_ = z.Sync()
	}
}
