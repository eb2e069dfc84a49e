package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "funcbase",
	Short: "Funcbase - CLI for the Funcbase serverless function platform",
	Long: `Funcbase CLI talks to the Funcbase platform API.

It supports:
- Listing deployed applications and their functions
- Invoking a deployed function by name with JSON arguments
- Running the legal-search smoke check against the deployed embedding function

Credentials and the endpoint come from flags, environment variables
(FUNCBASE_ENDPOINT, FUNCBASE_TOKEN) or the config file (~/.funcbase.yaml).`,
	Version: version,
}

var (
	flagEndpoint string
	flagToken    string
	flagConfig   string
	flagVerbose  bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "Funcbase API endpoint (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "API token (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (default ~/.funcbase.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(appsCmd)
	rootCmd.AddCommand(functionsCmd)
	rootCmd.AddCommand(invokeCmd)
	rootCmd.AddCommand(smokeCmd)
}
