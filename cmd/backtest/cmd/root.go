package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backtester",
	Short: "Deterministic strategy backtester",
	Long: `Backtester replays historical price bars through a trading
strategy's signals, simulates order execution against a portfolio
ledger, and reports standardized performance statistics.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}
