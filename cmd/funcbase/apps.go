package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List deployed applications",
	Args:  cobra.NoArgs,
	RunE:  runApps,
}

var functionsCmd = &cobra.Command{
	Use:   "functions <app>",
	Short: "List functions registered under an application",
	Args:  cobra.ExactArgs(1),
	RunE:  runFunctions,
}

func runApps(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(config)
	defer logger.Sync()

	client, err := newClient(config, logger)
	if err != nil {
		return err
	}

	apps, err := client.ListApps(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATE\tFUNCTIONS")
	for _, app := range apps {
		fmt.Fprintf(w, "%s\t%s\t%d\n", app.Name, app.State, app.FunctionCount)
	}
	return w.Flush()
}

func runFunctions(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(config)
	defer logger.Sync()

	client, err := newClient(config, logger)
	if err != nil {
		return err
	}

	functions, err := client.ListFunctions(context.Background(), args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTIMEOUT\tVALIDATED")
	for _, fn := range functions {
		timeout := "default"
		if fn.TimeoutSeconds > 0 {
			timeout = fmt.Sprintf("%ds", fn.TimeoutSeconds)
		}
		validated := "no"
		if len(fn.InputSchema) > 0 {
			validated = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", fn.Name, timeout, validated)
	}
	return w.Flush()
}
