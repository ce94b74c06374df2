package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/data"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import bar CSV files into the SQLite candle store",
	RunE:  runImport,
}

var (
	importCSVPath string
	importDBPath  string
	importSymbol  string
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importCSVPath, "bars", "b", "", "path to bar CSV (required)")
	importCmd.Flags().StringVarP(&importDBPath, "db", "d", "./bars.sqlite", "path to SQLite candle store")
	importCmd.Flags().StringVarP(&importSymbol, "symbol", "i", "", "symbol to file the bars under (required)")

	importCmd.MarkFlagRequired("bars")
	importCmd.MarkFlagRequired("symbol")
}

func runImport(cmd *cobra.Command, args []string) error {
	bars, err := data.LoadCSV(importCSVPath, importSymbol)
	if err != nil {
		return fmt.Errorf("load csv: %w", err)
	}

	store, err := data.OpenStore(importDBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := store.SaveBars(importSymbol, bars.Bars()); err != nil {
		return fmt.Errorf("save bars: %w", err)
	}

	fmt.Printf("Imported %d bars for %s into %s\n", bars.Len(), importSymbol, importDBPath)
	return nil
}
