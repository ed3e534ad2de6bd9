package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/mockdata"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/service/cache"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/usecase"
)

var demoSeed int64

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Print a sample data session to stdout",
	Long: `Walk through the generator without starting the server.

Prints single quotes, a historical series, mover rankings, the index
summary and a small portfolio valuation. The default seed reproduces
the same session on every run.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().Int64Var(&demoSeed, "seed", 42, "generator seed")
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	source := mockdata.New(mockdata.WithSeed(demoSeed))
	market := usecase.NewMarketUseCase(source, cache.NewTTLCache(), nil, time.Minute)

	banner := strings.Repeat("=", 80)
	rule := strings.Repeat("-", 80)

	fmt.Println(banner)
	fmt.Println("Mock NSE Stock Data Generator - Demo")
	fmt.Println(banner)
	fmt.Println()
	fmt.Printf("NOTE: All data is simulated. Seed %d makes every run reproducible.\n", demoSeed)
	fmt.Println()

	fmt.Println("1. RELIANCE Stock Quote:")
	fmt.Println(rule)
	reliance, err := market.GetQuote(ctx, "RELIANCE")
	if err != nil {
		return err
	}
	if err := printJSON(reliance); err != nil {
		return err
	}
	fmt.Println()

	fmt.Println("2. TCS Stock Quote:")
	fmt.Println(rule)
	tcs, err := market.GetQuote(ctx, "TCS")
	if err != nil {
		return err
	}
	if err := printJSON(tcs); err != nil {
		return err
	}
	fmt.Println()

	fmt.Println("3. INFY Historical Data (7 days):")
	fmt.Println(rule)
	hist, err := market.GetHistorical(ctx, "INFY", 7)
	if err != nil {
		return err
	}
	fmt.Printf("Symbol: %s\n", hist.Symbol)
	fmt.Printf("Period: %d days\n", hist.Days)
	fmt.Printf("Data Points: %d\n", len(hist.Bars))
	fmt.Println("Sample (first 3 days):")
	sample := hist.Bars
	if len(sample) > 3 {
		sample = sample[:3]
	}
	if err := printJSON(sample); err != nil {
		return err
	}
	fmt.Println()

	fmt.Println("4. Top Gainers and Losers (5 each):")
	fmt.Println(rule)
	movers, err := market.GetMovers(ctx, 5)
	if err != nil {
		return err
	}
	fmt.Printf("Top Gainers (%d):\n", len(movers.Gainers))
	for _, q := range movers.Gainers {
		fmt.Printf("  %s: %+.2f%% (₹%.2f)\n", q.Symbol, q.ChangePercent, q.Price)
	}
	fmt.Println()
	fmt.Printf("Top Losers (%d):\n", len(movers.Losers))
	for _, q := range movers.Losers {
		fmt.Printf("  %s: %+.2f%% (₹%.2f)\n", q.Symbol, q.ChangePercent, q.Price)
	}
	fmt.Println()

	fmt.Println("5. Market Summary:")
	fmt.Println(rule)
	summary, err := market.GetSummary(ctx)
	if err != nil {
		return err
	}
	for _, idx := range summary.Indices {
		fmt.Printf("%s: %.2f (%+.2f%%)\n", idx.Name, idx.Value, idx.ChangePercent)
	}
	fmt.Println()

	fmt.Println("6. Sample Portfolio:")
	fmt.Println(rule)
	watchlist, err := market.GetWatchlist(ctx, "RELIANCE,TCS,INFY,HDFCBANK")
	if err != nil {
		return err
	}
	var total float64
	for _, q := range watchlist.Quotes {
		total += q.Price
	}
	fmt.Printf("Stocks: %d\n", len(watchlist.Quotes))
	for _, q := range watchlist.Quotes {
		fmt.Printf("  %s: ₹%.2f (%+.2f%%)\n", q.Symbol, q.Price, q.ChangePercent)
	}
	fmt.Printf("Total Portfolio Value: ₹%.2f\n", total)
	fmt.Println()

	fmt.Println(banner)
	fmt.Println("Demo Complete!")
	fmt.Println(banner)
	fmt.Println()
	fmt.Println("Run 'nsesuite serve' for the HTTP API and the websocket stream.")

	return nil
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
