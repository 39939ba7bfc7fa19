package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do"
	"github.com/snap-point/activity-api/bootstrap"
	"github.com/snap-point/activity-api/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		inj := bootstrap.BuildContainer(cfg)
		log := do.MustInvoke[*zap.Logger](inj)
		defer log.Sync()

		handler, err := do.Invoke[http.Handler](inj)
		if err != nil {
			return err
		}
		defer func() {
			if err := bootstrap.CloseDB(inj); err != nil {
				log.Warn("close database", zap.Error(err))
			}
		}()

		srv := &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
