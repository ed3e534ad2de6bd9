package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/di"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/config"
)

var (
	servePort int
	serveSeed int64
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the market data API server",
	Long: `Start the market data API server.

This starts all components:
- REST API for quotes, history, movers, indices and portfolio valuation
- Websocket stream pushing fresh quote batches
- Snapshot recorder capturing index readings on a cron schedule
- Optional redis queue moving captures through background workers
- Prometheus metrics on /metrics

Examples:
  nsesuite serve                      # Start with configs/config.yaml
  nsesuite serve --port 9090          # Override the listen port
  nsesuite serve --seed 42            # Fully reproducible data`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "override server port")
	serveCmd.Flags().Int64Var(&serveSeed, "seed", 0, "override generator seed (0 keeps config value)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Flag overrides
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if serveSeed != 0 {
		cfg.Generator.Seed = serveSeed
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}

	return app.Run()
}
