package main

import (
	"net/http"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/tiltlabs/pokerarbiter/internal/handcore"
	"github.com/tiltlabs/pokerarbiter/internal/ledger"
	"github.com/tiltlabs/pokerarbiter/internal/transport"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the arbiter HTTP+WebSocket service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger := log.NewLogger(cmd.OutOrStdout())
			escrow := ledger.New()
			arbiter := handcore.NewArbiter(escrow, logger)
			arbiter.SetDefaultActionTimeout(cfg.ActionTimeout)

			hub := transport.NewHub(logger)
			srv := transport.NewServer(arbiter, escrow, hub, logger)

			logger.Info("starting pokerarbiterd", "addr", cfg.ListenAddr)
			return http.ListenAndServe(cfg.ListenAddr, srv.Router())
		},
	}
	cmd.Flags().String("listen", "", "HTTP listen address (overrides config)")
	cmd.Flags().Int64("action-timeout", 0, "seconds before a player's turn times out (overrides config)")
	return cmd
}
