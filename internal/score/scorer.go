package score

import (
	"fmt"
	"math"
	"sort"

	"github.com/ppiankov/factcheck/internal/model"
)

// Scorer aggregates verdicts into a run score and generates signals
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate calculates the run index and generates diagnostic signals.
// Only compared items (exact, partial or none) contribute to the index.
func (s *Scorer) Calculate(results []model.CheckResult) model.Score {
	var signals []model.Signal

	// 1. Accuracy over compared items
	index, compared, accuracySignal := s.calculateAccuracy(results)
	signals = append(signals, accuracySignal)

	// 2. Coverage (missing values)
	signals = append(signals, s.calculateCoverage(results, compared))

	// 3. Per-family breakdown
	signals = append(signals, s.familyBreakdown(results)...)

	// 4. Collaborator failures
	if errSignal, failed := s.detectErrors(results); failed {
		signals = append(signals, errSignal)
	}

	return model.Score{
		Index:      index,
		Confidence: s.determineConfidence(index, compared),
		Signals:    signals,
	}
}

// calculateAccuracy returns the mean verdict score (0-100) and the number of compared items
func (s *Scorer) calculateAccuracy(results []model.CheckResult) (int, int, model.Signal) {
	var exact, partial, none, total int
	for _, r := range results {
		switch r.Verdict.Status {
		case model.StatusExact:
			exact++
		case model.StatusPartial:
			partial++
		case model.StatusNone:
			none++
		default:
			continue
		}
		total += r.Verdict.Score
	}

	compared := exact + partial + none
	if compared == 0 {
		return 0, 0, model.Signal{
			Type:        model.SignalAccuracy,
			Severity:    model.SeverityCritical,
			Description: "No items could be compared",
			Data:        map[string]interface{}{"compared": 0},
		}
	}

	index := int(math.Round(float64(total) / float64(compared)))
	matchRatio := float64(exact+partial) / float64(compared)

	severity := model.SeverityInfo
	if matchRatio < 0.5 {
		severity = model.SeverityCritical
	} else if matchRatio < 0.8 {
		severity = model.SeverityWarning
	}

	return index, compared, model.Signal{
		Type:        model.SignalAccuracy,
		Severity:    severity,
		Description: fmt.Sprintf("Matches: %d exact, %d partial, %d none", exact, partial, none),
		Data: map[string]interface{}{
			"exact":       exact,
			"partial":     partial,
			"none":        none,
			"compared":    compared,
			"match_ratio": matchRatio,
			"index":       index,
			"formula":     "sum(verdict.score) / compared",
		},
	}
}

// calculateCoverage reports items that had nothing to compare
func (s *Scorer) calculateCoverage(results []model.CheckResult, compared int) model.Signal {
	var refMissing, candMissing, bothMissing int
	for _, r := range results {
		switch r.Verdict.Status {
		case model.StatusReferenceMissing:
			refMissing++
		case model.StatusCandidateMissing:
			candMissing++
		case model.StatusBothMissing:
			bothMissing++
		}
	}

	if len(results) == 0 {
		return model.Signal{
			Type:        model.SignalCoverage,
			Severity:    model.SeverityCritical,
			Description: "No items checked",
			Data:        map[string]interface{}{"items": 0},
		}
	}

	ratio := float64(compared) / float64(len(results))

	severity := model.SeverityInfo
	if ratio < 0.5 {
		severity = model.SeverityCritical
	} else if ratio < 1.0 {
		severity = model.SeverityWarning
	}

	return model.Signal{
		Type:        model.SignalCoverage,
		Severity:    severity,
		Description: fmt.Sprintf("Compared %d/%d items (%.0f%%)", compared, len(results), ratio*100),
		Data: map[string]interface{}{
			"items":             len(results),
			"compared":          compared,
			"reference_missing": refMissing,
			"candidate_missing": candMissing,
			"both_missing":      bothMissing,
			"ratio":             ratio,
		},
	}
}

// familyBreakdown emits one signal per attribute family, in family name order
func (s *Scorer) familyBreakdown(results []model.CheckResult) []model.Signal {
	type tally struct{ compared, matched, total int }
	byFamily := make(map[model.AttributeFamily]*tally)

	for _, r := range results {
		if r.Verdict.Status.IsMissing() || r.Family == "" {
			continue
		}
		t, ok := byFamily[r.Family]
		if !ok {
			t = &tally{}
			byFamily[r.Family] = t
		}
		t.compared++
		t.total += r.Verdict.Score
		if r.Verdict.Status.IsMatch() {
			t.matched++
		}
	}

	families := make([]string, 0, len(byFamily))
	for f := range byFamily {
		families = append(families, string(f))
	}
	sort.Strings(families)

	signals := make([]model.Signal, 0, len(families))
	for _, f := range families {
		t := byFamily[model.AttributeFamily(f)]
		mean := int(math.Round(float64(t.total) / float64(t.compared)))

		severity := model.SeverityInfo
		if t.matched == 0 {
			severity = model.SeverityWarning
		}

		signals = append(signals, model.Signal{
			Type:        model.SignalFamily,
			Severity:    severity,
			Description: fmt.Sprintf("%s: %d/%d matched, mean score %d", f, t.matched, t.compared, mean),
			Data: map[string]interface{}{
				"family":   f,
				"compared": t.compared,
				"matched":  t.matched,
				"mean":     mean,
			},
		})
	}
	return signals
}

// detectErrors reports KB or LLM failures recorded on items
func (s *Scorer) detectErrors(results []model.CheckResult) (model.Signal, bool) {
	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed == 0 {
		return model.Signal{}, false
	}

	severity := model.SeverityWarning
	if failed*2 > len(results) {
		severity = model.SeverityCritical
	}

	return model.Signal{
		Type:        model.SignalErrors,
		Severity:    severity,
		Description: fmt.Sprintf("%d/%d items failed to fetch a value", failed, len(results)),
		Data: map[string]interface{}{
			"failed": failed,
			"items":  len(results),
		},
	}, true
}

// determineConfidence determines the confidence level from the index and sample size
func (s *Scorer) determineConfidence(index int, compared int) string {
	if compared < 3 {
		return "low"
	}

	if index >= 80 {
		return "high"
	} else if index >= 60 {
		return "medium"
	}
	return "low"
}
