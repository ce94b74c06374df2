package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write a default run config to a file",
	RunE:  runConfig,
}

var configOutPath string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringVarP(&configOutPath, "out", "o", "backtest.yaml", "output path (.yaml/.yml for YAML, anything else for JSON)")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if err := config.Default().SaveToFile(configOutPath); err != nil {
		return err
	}
	fmt.Printf("Wrote default config to %s\n", configOutPath)
	return nil
}
