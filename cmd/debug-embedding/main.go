// Command debug-embedding is a manual smoke test for the deployed
// legal-search embedding function. It takes no arguments: it looks up
// generate_sparse_embedding_internal in the legal-search-api app, invokes
// it once with a fixed test query and prints the result. Any failure is
// fatal and exits 1.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/funcbase/funcbase-go/funcbase"
)

const (
	appName      = "legal-search-api"
	functionName = "generate_sparse_embedding_internal"
	testPayload  = "test query"
)

func main() {
	fmt.Printf("Invoking %s remotely...\n", functionName)

	if err := run(context.Background(), os.Stdout); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer) error {
	endpoint := os.Getenv("FUNCBASE_ENDPOINT")
	if endpoint == "" {
		endpoint = "https://api.funcbase.io"
	}

	var opts []funcbase.ClientOption
	if token := os.Getenv("FUNCBASE_TOKEN"); token != "" {
		opts = append(opts, funcbase.WithToken(token))
	}
	client, err := funcbase.NewClient(endpoint, opts...)
	if err != nil {
		return err
	}

	fn, err := client.LookupFunction(ctx, appName, functionName)
	if err != nil {
		return err
	}

	result, err := fn.Remote(ctx, testPayload)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Success!")
	fmt.Fprintln(out, result.String())
	return nil
}
