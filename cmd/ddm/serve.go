package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// --- Serve Command ---

func (c *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON API and dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if host := c.viper.GetString("host"); host != "" {
				c.cfg.Server.Host = host
			}
			if port := c.viper.GetString("port"); port != "" {
				c.cfg.Server.Port = port
			}
			c.cfg.Server.Addr = fmt.Sprintf("%s:%s", c.cfg.Server.Host, c.cfg.Server.Port)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.newApp(c.cfg).Serve(ctx)
		},
	}
	cmd.Flags().String("host", "", "listen host (default from SERVER_HOST)")
	cmd.Flags().String("port", "", "listen port (default from SERVER_PORT)")
	return cmd
}
