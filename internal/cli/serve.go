package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Hanzzh/mindmap/internal/server"
	"github.com/Hanzzh/mindmap/pkg/cache"
	"github.com/Hanzzh/mindmap/pkg/pipeline"
	"github.com/Hanzzh/mindmap/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr          string
	redisAddr     string
	redisPassword string
	redisDB       int
	mongoURI      string
	mongoDB       string
	noCache       bool
}

// serveCommand creates the serve command, which runs the HTTP API.
//
// Caching defaults to the local file cache; --redis-addr switches to a
// shared Redis backend. Document endpoints are only exposed when
// --mongo-uri is set.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mindmap HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for a shared cache (e.g. localhost:6379)")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI enabling document storage (e.g. mongodb://localhost:27017)")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "mindmap", "MongoDB database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching entirely")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	ca, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}

	var st store.Store
	if opts.mongoURI != "" {
		st, err = store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB, "documents")
		if err != nil {
			return err
		}
		c.Logger.Info("document store enabled", "db", opts.mongoDB)
		defer func() { _ = st.Close(context.Background()) }()
	}

	runner := pipeline.NewRunner(ca, nil, c.Logger)
	defer runner.Close()

	return server.New(runner, st, c.Logger).ListenAndServe(ctx, opts.addr)
}

// serveCache picks the cache backend for the server process.
func (c *CLI) serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, opts.redisAddr, opts.redisPassword, opts.redisDB)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using redis cache", "addr", opts.redisAddr)
		return rc, nil
	}
	return newCache(false)
}
