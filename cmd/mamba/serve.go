package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sevigo/mamba-review/internal/wire"
)

func (c *cli) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the insight receiver",
		Long: `Run the HTTP insight receiver. POST /insights accepts JSON documents
authenticated with "Authorization: Bearer $INSIGHT_API_TOKEN".`,
		Args: cobra.NoArgs,
		RunE: c.runServe,
	}
	cmd.Flags().String("port", "", "Port to listen on (default 8080)")
	cmd.Flags().Int("workers", 0, "Number of insight workers (default 5)")
	c.bind(cmd.Flags(), "port", "SERVER_PORT")
	c.bind(cmd.Flags(), "workers", "MAX_WORKERS")
	return cmd
}

func (c *cli) runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app, cleanup, err := wire.InitializeApp(ctx, cfg, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		if err := app.Start(); err != nil {
			errCh <- err
			cancel()
		}
	}()

	<-ctx.Done()
	c.logger.Info("shutting down")

	if err := app.Stop(); err != nil {
		return fmt.Errorf("failed to stop application: %w", err)
	}
	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}
