package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/gi-bielefeld/carp/internal/api"
	"github.com/gi-bielefeld/carp/pkg/cache"
	"github.com/gi-bielefeld/carp/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis HTTP API",
		Long: `Serve the analysis pipeline over HTTP.

  POST /v1/analyze?splits=true&tree=true   UniMoG body, JSON result
  POST /v1/render?format=svg               UniMoG body, drawing
  GET  /healthz

Set cache.backend = "redis" in the config file to share results between
instances.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			ch, err := c.openCache(ctx, noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(ch, cache.NewScopedKeyer(nil, "api:"), c.Logger)
			defer runner.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.NewServer(runner, c.Logger).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return c.serve(ctx, srv)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (config default)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	return cmd
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func (c *CLI) serve(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
