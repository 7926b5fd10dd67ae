package score

import (
	"testing"

	"github.com/ppiankov/factcheck/internal/model"
)

func result(family model.AttributeFamily, status model.Status, score int) model.CheckResult {
	return model.CheckResult{
		Family:  family,
		Verdict: model.Verdict{Status: status, Score: score, Family: family},
	}
}

func findSignal(signals []model.Signal, typ model.SignalType) *model.Signal {
	for i := range signals {
		if signals[i].Type == typ {
			return &signals[i]
		}
	}
	return nil
}

func TestScorer_Calculate_Index(t *testing.T) {
	scorer := NewScorer()

	results := []model.CheckResult{
		result(model.FamilyTemporal, model.StatusExact, 100),
		result(model.FamilyNumeric, model.StatusPartial, 85),
		result(model.FamilyURL, model.StatusNone, 0),
		result(model.FamilyLocation, model.StatusReferenceMissing, 0),
	}

	score := scorer.Calculate(results)

	// (100 + 85 + 0) / 3, missing items excluded
	if score.Index != 62 {
		t.Errorf("Expected index 62, got %d", score.Index)
	}
	if score.Confidence != "medium" {
		t.Errorf("Expected medium confidence, got %s", score.Confidence)
	}

	accuracy := findSignal(score.Signals, model.SignalAccuracy)
	if accuracy == nil {
		t.Fatal("Expected accuracy signal")
	}
	if accuracy.Data["exact"] != 1 || accuracy.Data["partial"] != 1 || accuracy.Data["none"] != 1 {
		t.Errorf("Unexpected accuracy data %v", accuracy.Data)
	}
	if accuracy.Severity != model.SeverityWarning {
		t.Errorf("Expected warning for 2/3 matched, got %s", accuracy.Severity)
	}

	coverage := findSignal(score.Signals, model.SignalCoverage)
	if coverage == nil {
		t.Fatal("Expected coverage signal")
	}
	if coverage.Data["reference_missing"] != 1 {
		t.Errorf("Unexpected coverage data %v", coverage.Data)
	}
}

func TestScorer_Calculate_Empty(t *testing.T) {
	score := NewScorer().Calculate(nil)

	if score.Index != 0 {
		t.Errorf("Expected index 0, got %d", score.Index)
	}
	if score.Confidence != "low" {
		t.Errorf("Expected low confidence, got %s", score.Confidence)
	}
	for _, s := range score.Signals {
		if s.Type == model.SignalAccuracy && s.Severity != model.SeverityCritical {
			t.Errorf("Expected critical accuracy signal, got %s", s.Severity)
		}
	}
}

func TestScorer_Calculate_AllMissing(t *testing.T) {
	results := []model.CheckResult{
		result(model.FamilyTemporal, model.StatusBothMissing, 0),
		result(model.FamilyTemporal, model.StatusCandidateMissing, 0),
	}

	score := NewScorer().Calculate(results)
	if score.Index != 0 {
		t.Errorf("Expected index 0, got %d", score.Index)
	}
	if fam := findSignal(score.Signals, model.SignalFamily); fam != nil {
		t.Errorf("Missing items must not produce family signals: %+v", fam)
	}
}

func TestScorer_Confidence(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		index    int
		compared int
		want     string
	}{
		{100, 2, "low"},
		{100, 3, "high"},
		{80, 5, "high"},
		{79, 5, "medium"},
		{60, 5, "medium"},
		{59, 5, "low"},
	}

	for _, tt := range tests {
		if got := scorer.determineConfidence(tt.index, tt.compared); got != tt.want {
			t.Errorf("determineConfidence(%d, %d) = %s, want %s", tt.index, tt.compared, got, tt.want)
		}
	}
}

func TestScorer_FamilyBreakdown(t *testing.T) {
	results := []model.CheckResult{
		result(model.FamilyURL, model.StatusExact, 100),
		result(model.FamilyURL, model.StatusNone, 0),
		result(model.FamilyTemporal, model.StatusNone, 0),
	}

	signals := NewScorer().familyBreakdown(results)
	if len(signals) != 2 {
		t.Fatalf("Expected 2 family signals, got %d", len(signals))
	}

	// sorted by family name
	if signals[0].Data["family"] != string(model.FamilyTemporal) {
		t.Errorf("Expected temporal first, got %v", signals[0].Data["family"])
	}
	if signals[0].Severity != model.SeverityWarning {
		t.Errorf("Expected warning for family without matches, got %s", signals[0].Severity)
	}
	if signals[1].Data["mean"] != 50 || signals[1].Data["matched"] != 1 {
		t.Errorf("Unexpected url breakdown %v", signals[1].Data)
	}
}

func TestScorer_Errors(t *testing.T) {
	results := []model.CheckResult{
		result(model.FamilyTemporal, model.StatusExact, 100),
		{Error: "llm: timeout", Verdict: model.Verdict{Status: model.StatusCandidateMissing}},
	}

	score := NewScorer().Calculate(results)
	errs := findSignal(score.Signals, model.SignalErrors)
	if errs == nil {
		t.Fatal("Expected errors signal")
	}
	if errs.Data["failed"] != 1 {
		t.Errorf("Unexpected error data %v", errs.Data)
	}

	clean := NewScorer().Calculate(results[:1])
	if findSignal(clean.Signals, model.SignalErrors) != nil {
		t.Error("Expected no errors signal without failures")
	}
}
