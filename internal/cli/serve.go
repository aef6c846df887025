package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/sitegrid/sitegrid/internal/server"
	"github.com/sitegrid/sitegrid/pkg/cache"
	"github.com/sitegrid/sitegrid/pkg/pipeline"
	"github.com/sitegrid/sitegrid/pkg/store"
)

// defaultServeAddr is the default listen address for the serve command.
const defaultServeAddr = ":8080"

// serveCommand creates the serve command exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the sitegrid HTTP server",
		Long: `Run the sitegrid HTTP server.

The server exposes the pipeline (POST /api/layout, POST /api/render) and
a diagram store (GET/PUT/DELETE /api/diagrams/{id}).

Backends are configured via sitegrid.toml. With [server.redis] set the
pipeline cache uses Redis instead of the local file cache; with
[server.mongo] set diagrams persist in MongoDB instead of memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config value or :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable pipeline caching")

	return cmd
}

// runServe wires the configured backends and serves until the context is
// cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	if addr == "" {
		addr = c.Config.Server.Addr
	}
	if addr == "" {
		addr = defaultServeAddr
	}

	pipelineCache, err := c.serveCache(ctx, noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(pipelineCache, nil, c.Logger)
	defer runner.Close()

	st, err := c.serveStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(runner, st, c.Logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// serveCache picks the pipeline cache backend: Redis when configured,
// otherwise the local file cache.
func (c *CLI) serveCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	redis := c.Config.Server.Redis
	if redis.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, redis.Addr, redis.Password, redis.DB)
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", redis.Addr, err)
		}
		c.Logger.Info("using redis cache", "addr", redis.Addr)
		return rc, nil
	}
	return newCache(false)
}

// serveStore picks the diagram store backend: MongoDB when configured,
// otherwise in-memory.
func (c *CLI) serveStore(ctx context.Context) (store.Store, error) {
	mongo := c.Config.Server.Mongo
	if mongo.URI != "" {
		database := mongo.Database
		if database == "" {
			database = appName
		}
		collection := mongo.Collection
		if collection == "" {
			collection = "diagrams"
		}
		st, err := store.NewMongoStore(ctx, mongo.URI, database, collection)
		if err != nil {
			return nil, fmt.Errorf("connect mongodb: %w", err)
		}
		c.Logger.Info("using mongodb store", "database", database, "collection", collection)
		return st, nil
	}
	c.Logger.Warn("no mongodb configured, diagrams are stored in memory")
	return store.NewMemoryStore(), nil
}
