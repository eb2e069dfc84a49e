package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/funcbase/funcbase-go/libfb/json"
)

var (
	invokeArgs    []string
	invokeAsync   bool
	invokeTimeout time.Duration
)

var invokeCmd = &cobra.Command{
	Use:   "invoke <app> <function>",
	Short: "Invoke a deployed function by name",
	Long: `Invoke a deployed function by application and function name.

Arguments are passed positionally as JSON values; bare strings that are
not valid JSON are sent as strings.

Examples:
  # Invoke with a single string argument
  funcbase invoke legal-search-api generate_sparse_embedding_internal --arg '"test query"'

  # Invoke with multiple arguments
  funcbase invoke legal-search-api search --arg '"habeas corpus"' --arg 10

  # Spawn asynchronously and wait for the result
  funcbase invoke legal-search-api reindex --async
`,
	Args: cobra.ExactArgs(2),
	RunE: runInvoke,
}

func init() {
	invokeCmd.Flags().StringArrayVar(&invokeArgs, "arg", nil, "Positional argument as a JSON value (repeatable)")
	invokeCmd.Flags().BoolVar(&invokeAsync, "async", false, "Spawn the call and poll for its result")
	invokeCmd.Flags().DurationVar(&invokeTimeout, "timeout", 5*time.Minute, "Overall timeout for the invocation")
}

func runInvoke(cmd *cobra.Command, cmdArgs []string) error {
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

	args := parseArgs(invokeArgs)

	ctx, cancel := context.WithTimeout(context.Background(), invokeTimeout)
	defer cancel()

	fn, err := client.LookupFunction(ctx, cmdArgs[0], cmdArgs[1])
	if err != nil {
		return err
	}

	var output []byte
	if invokeAsync {
		call, err := fn.Spawn(ctx, args...)
		if err != nil {
			return err
		}
		fmt.Printf("Spawned call %s\n", call.ID())
		result, err := call.Result(ctx)
		if err != nil {
			return err
		}
		output = result.Output
	} else {
		result, err := fn.Remote(ctx, args...)
		if err != nil {
			return err
		}
		output = result.Output
	}

	pretty, err := json.MarshalIndent(decodeRaw(output), "", "  ")
	if err != nil {
		// Not JSON we can re-encode, print as-is
		fmt.Println(string(output))
		return nil
	}
	fmt.Println(string(pretty))
	return nil
}

// parseArgs converts --arg flags into invocation arguments. Each value is
// parsed as JSON; values that fail to parse are passed through as strings.
func parseArgs(raw []string) []any {
	args := make([]any, 0, len(raw))
	for _, r := range raw {
		var v any
		if err := json.UnmarshalString(r, &v); err != nil {
			v = r
		}
		args = append(args, v)
	}
	return args
}

// decodeRaw decodes raw JSON output for pretty-printing.
func decodeRaw(output []byte) any {
	var v any
	if err := json.Unmarshal(output, &v); err != nil {
		return string(output)
	}
	return v
}
