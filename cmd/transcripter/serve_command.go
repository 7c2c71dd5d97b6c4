package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/transcripter/internal/api"
	"github.com/patrickprogramme/transcripter/internal/app"
	"github.com/patrickprogramme/transcripter/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(cc *commandContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose GET /transcripts/{videoID} en HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			deps, err := cc.newApp(ctx, true)
			if err != nil {
				return err
			}
			defer deps.Close()

			cfg := deps.app.Config()
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.NewRouter(deps.app, app.NewRequest(cfg, ""), deps.registry),
				ReadHeaderTimeout: 10 * time.Second,
			}

			log := logging.WithComponent("http")
			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", addr).Msg("listening")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve: %w", err)
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down")
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(sctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Adresse d'écoute (défaut : server.addr de la config)")
	return cmd
}
