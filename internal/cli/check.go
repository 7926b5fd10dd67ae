package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/factcheck/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	checkAttrs   []string
	checkPattern string
	checkJSON    string
	checkTimeout time.Duration
)

// checkCmd checks one entity end to end
var checkCmd = &cobra.Command{
	Use:   "check <entity-id>",
	Short: "Ask the language model about one entity and grade every answer",
	Long: `Check fetches reference values for an entity from Wikidata, asks the
configured language model the same questions and grades each answer.

Without --attr, the attribute preset of the entity's type is used.

Example:
  factcheck check Q7842 --llm-provider openai
  factcheck check Q39231 --attr elevation,location --pattern polite
  factcheck check Q7842 --json report.json --probe`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringSliceVar(&checkAttrs, "attr", nil, "attribute ids to check (default: entity-type preset)")
	checkCmd.Flags().StringVar(&checkPattern, "pattern", "", "question pattern (direct, polite, accuracy, reliability, detailed)")
	checkCmd.Flags().StringVar(&checkJSON, "json", "", "write the JSON report to this path")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 5*time.Minute, "overall timeout")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.LLM.Provider == "" {
		return fmt.Errorf("no LLM provider configured (use --llm-provider or FACTCHECK_LLM_PROVIDER)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Checking %s with %s...\n", args[0], p.Provider().Name())
	}

	report, err := p.CheckEntity(ctx, args[0], checkAttrs, checkPattern)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.Color, cfg.Output.Verbose)
	renderer.RenderSummary(cmd.OutOrStdout(), report)

	if checkJSON != "" {
		if err := renderer.RenderJSON(report, checkJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", checkJSON)
	}

	return nil
}
