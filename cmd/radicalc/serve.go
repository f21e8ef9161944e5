package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/radicals/internal/server"
)

func newServeCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := e.cfg.Addr
			if v, _ := cmd.Flags().GetString("addr"); v != "" {
				addr = v
			}
			srv := server.New(e.engine, e.store, e.log)

			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh
				e.log.Info("shutting down")
				if err := srv.Shutdown(); err != nil {
					e.log.Error("shutdown failed", slog.Any("err", err))
				}
			}()

			e.log.Info("listening", slog.String("addr", addr))
			return srv.Listen(addr)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8080, env RADICALC_ADDR)")
	return cmd
}
