package commands

import (
	"github.com/spf13/cobra"
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nsesuite",
	Short: "Synthetic NSE market data suite",
	Long: `Seeded synthetic market data for the NSE stock universe.

Serves realistic quotes, historical series, mover rankings, index summaries
and portfolio valuations over a JSON API and a websocket stream, with no
dependency on live exchange feeds. A fixed seed reproduces every value, so
dashboards and integrations can be developed and demonstrated offline.`,
	Version: "1.0.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "config file path")
}
