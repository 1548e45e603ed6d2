// Command ddm values dividend-paying equities with a five-year Dividend
// Discount Model, from the terminal or as an HTTP server.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/app"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/config"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/version"
)

func main() {
	if err := newRootCmd(app.New).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cli is the state shared by the commands of one invocation.
type cli struct {
	cfg    *config.Config
	viper  *viper.Viper
	newApp func(*config.Config) *app.App
}

func newRootCmd(newApp func(*config.Config) *app.App) *cobra.Command {
	c := &cli{viper: newViper(), newApp: newApp}

	root := &cobra.Command{
		Use:   "ddm",
		Short: "Five-year Dividend Discount Model valuation",
		Long: `ddm values an equity as the present value of five projected dividends
plus a Gordon growth terminal value, discounted at a CAPM cost of equity.

Every flag can also be set through a DDM_ environment variable, e.g.
DDM_LONG_TERM_GROWTH=0.03. Server and market settings come from the
environment or a .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			c.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().Bool("json", false, "print JSON instead of tables")

	root.AddCommand(c.versionCmd())
	root.AddCommand(c.valueCmd())
	root.AddCommand(c.ratesCmd())
	root.AddCommand(c.serveCmd())
	return root
}

// newViper binds DDM_* environment variables, with dashes in flag names
// read as underscores.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("DDM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// --- Version Command ---

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ddm %s\n", version.Version)
			fmt.Fprintf(out, "  go:      %s\n", runtime.Version())
		},
	}
}
