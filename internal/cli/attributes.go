package cli

import (
	"fmt"
	"strings"

	"github.com/ppiankov/factcheck/internal/catalog"
	"github.com/ppiankov/factcheck/internal/evaluate"
	"github.com/spf13/cobra"
)

var attributesCategory string

// attributesCmd lists the attribute catalog
var attributesCmd = &cobra.Command{
	Use:   "attributes",
	Short: "List checkable attributes and their comparison families",
	Long: `Attributes prints every attribute id with its Wikidata property, the
family whose rules grade it and its question label.

Example:
  factcheck attributes
  factcheck attributes --category japanese-universities`,
	Args: cobra.NoArgs,
	RunE: runAttributes,
}

func init() {
	rootCmd.AddCommand(attributesCmd)

	attributesCmd.Flags().StringVar(&attributesCategory, "category", "", "only list a category ("+strings.Join(catalog.Categories(), ", ")+")")
}

func runAttributes(cmd *cobra.Command, args []string) error {
	attrs := catalog.All()
	if attributesCategory != "" {
		var ok bool
		attrs, ok = catalog.Category(attributesCategory)
		if !ok {
			return fmt.Errorf("unknown category: %s (known: %s)", attributesCategory, strings.Join(catalog.Categories(), ", "))
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-20s %-10s %-18s %s\n", "ID", "PROPERTY", "FAMILY", "LABEL")
	for _, a := range attrs {
		family := string(evaluate.Family(a.ID))
		if units := evaluate.Units(a.ID); units != "" {
			family += "/" + units
		}
		property := a.Property
		if property == "" {
			property = "-"
		}
		fmt.Fprintf(out, "%-20s %-10s %-18s %s\n", a.ID, property, family, a.Label)
	}
	return nil
}
