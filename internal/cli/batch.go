package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/factcheck/internal/pipeline"
	"github.com/ppiankov/factcheck/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file.yaml>",
	Short: "Check many (entity, attribute) items from a YAML file in parallel",
	Long: `Batch reads check items from a YAML file and grades them concurrently:
- entities blocks expand to one item per listed attribute
- items may carry their own reference and/or candidate values
- empty values are fetched from Wikidata and the configured language model
- one failing item never stops the batch

Example file:
  defaults:
    pattern: direct
  entities:
    - entity: 東京大学
      entity_id: Q7842
      attributes: [inception, location, official_website]
  items:
    - entity: 富士山
      attribute: elevation
      reference: "3776"
      candidate: 3,776メートルです

Example:
  factcheck batch checks.yaml
  factcheck batch checks.yaml --concurrency 8 --output-dir ./reports --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./factcheck-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	items, err := worker.ReadItemsFromFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  factcheck batch\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s (%d items)\n", file, len(items))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	processor.OnProgress(func(done, total int) {
		fmt.Fprintf(os.Stderr, "\r⚙️  %d/%d checked", done, total)
	})

	results := processor.ProcessItems(ctx, items)
	fmt.Fprintf(os.Stderr, "\n\n")

	failureCount := 0
	for _, r := range results {
		if r.Error != "" {
			failureCount++
			if verbose {
				fmt.Fprintf(os.Stderr, "✗ %s/%s: %s\n", r.Item.Entity, r.Item.Attribute, r.Error)
			}
		}
	}

	report := p.BuildReport(filepath.Base(file), results)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	jsonPath := filepath.Join(outputDir, sanitizeFilename(strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)))+"-"+report.RunID[:8]+".json")

	renderer := pipeline.NewRenderer(cfg.Output.Color, cfg.Output.Verbose)
	renderer.RenderSummary(cmd.OutOrStdout(), report)
	if err := renderer.RenderJSON(report, jsonPath); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d items\n", len(results))
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Index:     %d/100\n", report.Score.Index)
	fmt.Fprintf(os.Stderr, "  Report:    %s\n", jsonPath)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// sanitizeFilename makes s safe to use as a single path element
func sanitizeFilename(s string) string {
	s = strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	).Replace(strings.TrimSpace(s))

	if s == "" || s == "." || s == ".." {
		s = "report"
	}

	// Limit length
	runes := []rune(s)
	if len(runes) > 100 {
		s = string(runes[:100])
	}

	return s
}
