package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/factcheck/internal/evaluate"
	"github.com/ppiankov/factcheck/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	evalAttr   string
	evalRef    string
	evalAnswer string
	evalJSON   bool
)

// evalCmd grades one answer without any network access
var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Grade one answer against a reference value",
	Long: `Eval runs the evaluation engine alone: no knowledge base, no language model.

Example:
  factcheck eval --attr inception --ref 1877 --answer "1877年に設立されました"
  factcheck eval --attr location --ref 東京都,文京区 --answer "東京都文京区本郷7-3-1"
  factcheck eval --attr website --ref https://www.u-tokyo.ac.jp/ --answer "u-tokyo.ac.jp" --json`,
	Args: cobra.NoArgs,
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVar(&evalAttr, "attr", "", "attribute id (e.g. inception, location, website)")
	evalCmd.Flags().StringVar(&evalRef, "ref", "", "reference value")
	evalCmd.Flags().StringVar(&evalAnswer, "answer", "", "candidate answer")
	evalCmd.Flags().BoolVar(&evalJSON, "json", false, "print the verdict as JSON")
	_ = evalCmd.MarkFlagRequired("attr")
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	attr := strings.TrimSpace(evalAttr)
	verdict := evaluate.NewEngine(cfg.Matching).Evaluate(evalRef, evalAnswer, attr)

	if evalJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(verdict); err != nil {
			return fmt.Errorf("encode verdict: %w", err)
		}
		return nil
	}

	pipeline.NewRenderer(cfg.Output.Color, cfg.Output.Verbose).RenderVerdict(cmd.OutOrStdout(), attr, verdict)
	return nil
}
