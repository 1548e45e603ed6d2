package main

import (
	"github.com/spf13/cobra"
)

// --- Rates Command ---

func (c *cli) ratesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show the market rates used by every valuation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.newApp(c.cfg)
			get := a.MarketService.GetMarketRates
			if c.viper.GetBool("refresh") {
				get = a.MarketService.RefreshMarketRates
			}

			rates, err := get(cmd.Context())
			if err != nil {
				return err
			}

			if c.viper.GetBool("json") {
				return writeJSON(cmd.OutOrStdout(), rates)
			}
			return printRates(cmd.OutOrStdout(), rates)
		},
	}
	cmd.Flags().Bool("refresh", false, "bypass the rate cache")
	return cmd
}
