package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/ppiankov/factcheck/internal/model"
)

// Renderer writes reports as JSON files and colored terminal tables
type Renderer struct {
	verbose bool
	colors  map[model.Status]*color.Color
	header  *color.Color
}

// NewRenderer creates a renderer. Colors are disabled when useColor is false.
func NewRenderer(useColor, verbose bool) *Renderer {
	if !useColor {
		color.NoColor = true
	}
	return &Renderer{
		verbose: verbose,
		colors: map[model.Status]*color.Color{
			model.StatusExact:            color.New(color.FgGreen),
			model.StatusPartial:          color.New(color.FgYellow),
			model.StatusNone:             color.New(color.FgRed),
			model.StatusReferenceMissing: color.New(color.FgMagenta),
			model.StatusCandidateMissing: color.New(color.FgMagenta),
			model.StatusBothMissing:      color.New(color.FgMagenta),
		},
		header: color.New(color.FgWhite, color.Bold),
	}
}

// RenderJSON writes the report to path, creating parent directories
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := r.WriteJSON(f, report); err != nil {
		return err
	}
	return f.Close()
}

// WriteJSON encodes the report as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, report *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// RenderSummary prints the result table and the score to w
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	fmt.Fprintln(w)
	if report.Subject != "" {
		r.header.Fprintf(w, "  %s\n", report.Subject)
	}
	fmt.Fprintf(w, "  run %s", report.RunID)
	if report.Provider != "" {
		fmt.Fprintf(w, " · %s/%s", report.Provider, report.Model)
	}
	fmt.Fprintf(w, "\n\n")

	r.header.Fprintf(w, "  %-20s %-18s %-6s %-24s %s\n", "ATTRIBUTE", "STATUS", "SCORE", "REFERENCE", "ANSWER")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("-", 96))

	for _, res := range report.Results {
		status := string(res.Verdict.Status)
		c, ok := r.colors[res.Verdict.Status]
		if ok {
			status = c.Sprintf("%-18s", status)
		} else {
			status = fmt.Sprintf("%-18s", status)
		}

		fmt.Fprintf(w, "  %-20s %s %-6d %-24s %s\n",
			truncate(res.Item.Attribute, 20),
			status,
			res.Verdict.Score,
			truncate(res.Reference, 24),
			truncate(oneLine(res.Candidate), 40),
		)

		if r.verbose {
			fmt.Fprintf(w, "      %s (%s)\n", res.Verdict.Rationale, res.Verdict.Rule)
			for _, probe := range res.Probes {
				fmt.Fprintf(w, "      probe %s: %s\n", probe.URL, probeState(probe))
			}
		}
		if res.Error != "" {
			r.colors[model.StatusNone].Fprintf(w, "      error: %s\n", res.Error)
		}
	}

	fmt.Fprintln(w)
	r.header.Fprintf(w, "  Index: %d/100 (confidence: %s)\n", report.Score.Index, report.Score.Confidence)
	for _, s := range report.Score.Signals {
		if s.Severity == model.SeverityInfo && !r.verbose {
			continue
		}
		fmt.Fprintf(w, "  [%s] %s\n", s.Severity, s.Description)
	}
	fmt.Fprintln(w)
}

// RenderVerdict prints a single engine verdict
func (r *Renderer) RenderVerdict(w io.Writer, attributeID string, v model.Verdict) {
	status := string(v.Status)
	if c, ok := r.colors[v.Status]; ok {
		status = c.Sprint(status)
	}
	fmt.Fprintf(w, "%s [%s] %s score=%d confidence=%d\n", attributeID, v.Family, status, v.Score, v.Confidence)
	fmt.Fprintf(w, "  %s (%s)\n", v.Rationale, v.Rule)
}

func probeState(p model.ProbeResult) string {
	switch {
	case p.Disallowed:
		return "disallowed by robots.txt"
	case p.IsAccessible && p.RedirectURL != "":
		return fmt.Sprintf("%d -> %s", p.StatusCode, p.RedirectURL)
	case p.IsAccessible:
		return fmt.Sprintf("%d", p.StatusCode)
	case p.Error != "":
		return p.Error
	default:
		return fmt.Sprintf("%d", p.StatusCode)
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate shortens s to n runes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
