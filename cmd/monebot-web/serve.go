package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/monebot/website/internal/config"
	"github.com/monebot/website/internal/items"
	"github.com/monebot/website/internal/server"
	"github.com/monebot/website/pkg/logging"
	"github.com/monebot/website/pkg/shutdown"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Start the web server",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.String("host", "0.0.0.0", "listen host")
	f.IntP("port", "p", 8080, "listen port")
	f.String("database-url", "", "PostgreSQL URL for the items API (memory store when empty)")
	f.String("stats-endpoint", "/api/discord-stats", "statistics URL or local path")
	bindFlags(a.v, f, map[string]string{
		"host":           "server.host",
		"port":           "server.port",
		"database-url":   "database.url",
		"stats-endpoint": "stats.endpoint",
	})
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}

	logger, flush, err := a.newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer flush()
	logging.SetDefault(logger)
	a.watchConfig(logger)

	co := shutdown.New(cfg.Server.ShutdownTimeout, shutdown.WithLogger(logger))
	opts := []server.Option{server.WithLogger(logger), server.WithVersion(version)}

	if cfg.Database.URL != "" {
		pool, err := items.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return err
		}
		co.Register("database", shutdown.PriorityStore, func(context.Context) error {
			pool.Close()
			return nil
		})

		store := items.NewPostgresStore(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return err
		}
		opts = append(opts, server.WithItems(store))
		logger.Info("items stored in postgres")
	}

	srv, err := server.New(cfg, opts...)
	if err != nil {
		return err
	}
	co.Register("http", shutdown.PriorityHTTP, srv.Shutdown)

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.ListenAndServe() }()

	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	waitErr := make(chan error, 1)
	go func() { waitErr <- co.Wait(waitCtx) }()

	select {
	case err := <-serveErr:
		cancel()
		<-waitErr
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case err := <-waitErr:
		if sErr := <-serveErr; sErr != nil {
			return fmt.Errorf("serve: %w", sErr)
		}
		if err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	}
}
