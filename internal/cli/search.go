package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/factcheck/internal/pipeline"
	"github.com/ppiankov/factcheck/internal/worker"
	"github.com/spf13/cobra"
)

var searchLimit int

// searchCmd finds knowledge-base entities by name
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search Wikidata entities by name",
	Long: `Search looks up entities whose label matches the query and prints their ids,
ready to pass to "factcheck check".

Example:
  factcheck search 東京大学
  factcheck search 富士山 --limit 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum number of results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	hits, err := pipeline.NewKBClient(cfg, limiter).Search(ctx, query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(hits) == 0 {
		fmt.Fprintf(os.Stderr, "No entities found for %q\n", query)
		return nil
	}

	out := cmd.OutOrStdout()
	for _, hit := range hits {
		fmt.Fprintf(out, "%-12s %s", hit.ID, hit.Label)
		if hit.Description != "" {
			fmt.Fprintf(out, " - %s", hit.Description)
		}
		fmt.Fprintln(out)
	}
	return nil
}
