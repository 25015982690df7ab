package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "smra",
	Short: "Multi-round multi-agent question answering over medical images",
	Long: `smra builds knowledge-grounded medical scene graphs and answers visual
questions through a bounded peer-review loop among simulated specialists.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to TOML configuration file")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(preprocessCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportGraphCmd)
}

func main() {
	// No .env is fine; configuration falls back to the TOML file.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
