package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/smartcredit/internal/app"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func serveCommand(r *root) *cobra.Command {
	var (
		mode string
		host string
		port int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the ledger over HTTP or MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("transport") {
				r.cfg.Transport.Mode = mode
			}
			if flags.Changed("host") {
				r.cfg.Server.Host = host
			}
			if flags.Changed("port") {
				r.cfg.Server.Port = port
			}
			if err := r.cfg.Validate(); err != nil {
				return fmt.Errorf("config error: %w", err)
			}

			a, err := r.open()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			r.logger.Info("starting smartcredit",
				"version", app.Version,
				"transport", r.cfg.Transport.Mode,
				"db", r.cfg.DB.Path,
			)
			if r.cfg.Transport.Mode == "stdio" {
				return runStdio(ctx, a)
			}
			return runHTTP(ctx, a, fmt.Sprintf("%s:%d", r.cfg.Server.Host, r.cfg.Server.Port))
		},
	}
	cmd.Flags().StringVarP(&mode, "transport", "t", "", "http or stdio (overrides config)")
	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides config)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")
	return cmd
}

// runStdio blocks until stdin closes or ctx is cancelled.
func runStdio(ctx context.Context, a *app.App) error {
	a.Logger.Info("starting stdio transport")
	if err := a.MCPServer().Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	a.Logger.Info("shutting down")
	return nil
}

func runHTTP(ctx context.Context, a *app.App, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.Logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
