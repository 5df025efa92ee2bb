package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/branchboard/branchboard/internal/server"
	"github.com/branchboard/branchboard/pkg/cache"
	"github.com/branchboard/branchboard/pkg/config"
	"github.com/branchboard/branchboard/pkg/store"
)

// serveCommand creates the serve command for running the dashboard server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		Long: `Run the dashboard HTTP server.

The server exposes the layout engine, the line differ, and the plan store
as a JSON API for the dashboard frontend. Backends are selected in the
config file: layouts cache to disk, Redis, or not at all; plans persist
in memory or MongoDB.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, configFile)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default: XDG config dir)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, configFile string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	layoutCache, err := newServerCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer layoutCache.Close()

	st, err := newServerStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	c.Logger.Info("backends ready",
		"cache", cfg.Cache.Backend,
		"store", cfg.Store.Backend,
	)

	srv := server.New(cfg, st, layoutCache, c.Logger)
	return srv.Run(ctx)
}

// newServerCache builds the cache backend named in the config.
func newServerCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendNone:
		return cache.NewNullCache(), nil
	case config.CacheBackendRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
	case config.CacheBackendFile:
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// newServerStore builds the store backend named in the config.
func newServerStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMongo:
		return store.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.Database)
	case config.StoreBackendMemory:
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
