package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/backtest"
	"github.com/rustyeddy/backtester/config"
	"github.com/rustyeddy/backtester/data"
	"github.com/rustyeddy/backtester/internal/logging"
	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/strategies"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest over historical bars",
	Long: `Run a backtest from a config file, or from flags directly.

Supported strategies:
  noop, threshold, ma-cross, ema-cross, momentum, rsi, rsi-bb

Example:
  backtester run --bars data/spy.csv --symbol SPY --strategy ma-cross --param short=50 --param long=200`,
	RunE: runBacktest,
}

var (
	runConfigPath string
	runBarsPath   string
	runDBPath     string
	runSymbol     string
	runStrategy   string
	runCapital    float64
	runCommission float64
	runSlippage   float64
	runFrom       string
	runTo         string
	runParams     map[string]string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to YAML/JSON run config")
	runCmd.Flags().StringVarP(&runBarsPath, "bars", "b", "", "path to bar CSV (time,open,high,low,close,volume)")
	runCmd.Flags().StringVarP(&runDBPath, "db", "d", "", "path to SQLite candle store (alternative to --bars)")
	runCmd.Flags().StringVarP(&runSymbol, "symbol", "i", "SPY", "symbol to backtest")
	runCmd.Flags().StringVarP(&runStrategy, "strategy", "s", "ma-cross", "strategy name")
	runCmd.Flags().Float64Var(&runCapital, "capital", 100_000, "initial capital")
	runCmd.Flags().Float64Var(&runCommission, "commission", 0.001, "commission rate used in position sizing")
	runCmd.Flags().Float64Var(&runSlippage, "slippage", 0.0005, "slippage rate used in position sizing")
	runCmd.Flags().StringVar(&runFrom, "from", "", "start date (sqlite source only)")
	runCmd.Flags().StringVar(&runTo, "to", "", "end date (sqlite source only)")
	runCmd.Flags().StringToStringVarP(&runParams, "param", "p", nil, "strategy parameter, e.g. -p short=50")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	log := logging.New(cfg.Logging)

	bars, err := loadBars(cfg)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}
	log.WithFields(map[string]interface{}{
		"symbol": cfg.Backtest.Symbol,
		"bars":   bars.Len(),
	}).Info("bars loaded")

	strat, err := strategies.ByName(cfg.Strategy.Name, cfg.Strategy.Params)
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	runner := backtest.NewRunner(backtest.Config{
		Symbol:         cfg.Backtest.Symbol,
		InitialCapital: cfg.Backtest.InitialCapital,
		Commission:     cfg.Backtest.Commission,
		Slippage:       cfg.Backtest.Slippage,
		RiskFreeRate:   cfg.Backtest.RiskFreeRate,
		PeriodsPerYear: cfg.Backtest.PeriodsPerYear,
	})

	log.WithField("strategy", strat.Name()).Info("running backtest")
	started := time.Now()

	result, err := runner.Run(bars, strat)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"elapsed": time.Since(started).Round(time.Millisecond).String(),
		"trades":  len(result.Trades),
		"pending": len(result.Pending),
	}).Info("backtest complete")

	fmt.Printf("\nStrategy: %s\n\n", result.Strategy)
	fmt.Print(result.Metrics.String())

	if len(result.Positions) > 0 {
		fmt.Printf("\nOpen positions:\n")
		for symbol, quantity := range result.Positions {
			fmt.Printf("  %s: %d\n", symbol, quantity)
		}
	}

	return nil
}

// resolveConfig merges the config file (when given) with flag
// overrides. Flags win for anything explicitly set.
func resolveConfig() (*config.Config, error) {
	if runConfigPath != "" {
		return config.LoadFromFile(runConfigPath)
	}

	cfg := config.Default()
	cfg.Backtest.Symbol = runSymbol
	cfg.Backtest.InitialCapital = runCapital
	cfg.Backtest.Commission = runCommission
	cfg.Backtest.Slippage = runSlippage
	cfg.Strategy.Name = runStrategy
	cfg.Data.From = runFrom
	cfg.Data.To = runTo

	switch {
	case runBarsPath != "":
		cfg.Data.Source = "csv"
		cfg.Data.Path = runBarsPath
	case runDBPath != "":
		cfg.Data.Source = "sqlite"
		cfg.Data.Path = runDBPath
	default:
		return nil, fmt.Errorf("either --config, --bars or --db is required")
	}

	if len(runParams) > 0 {
		cfg.Strategy.Params = make(map[string]float64, len(runParams))
		for key, raw := range runParams {
			var v float64
			if _, err := fmt.Sscanf(raw, "%g", &v); err != nil {
				return nil, fmt.Errorf("bad parameter %s=%q: %w", key, raw, err)
			}
			cfg.Strategy.Params[key] = v
		}
	}

	return cfg, cfg.Validate()
}

func loadBars(cfg *config.Config) (*market.BarSet, error) {
	switch cfg.Data.Source {
	case "sqlite":
		store, err := data.OpenStore(cfg.Data.Path)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		from, err := parseDate(cfg.Data.From)
		if err != nil {
			return nil, err
		}
		to, err := parseDate(cfg.Data.To)
		if err != nil {
			return nil, err
		}
		return store.LoadBars(cfg.Backtest.Symbol, from, to)

	default:
		return data.LoadCSV(cfg.Data.Path, cfg.Backtest.Symbol)
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad date %q", s)
}
