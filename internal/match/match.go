// Package match implements the per-family comparison rules. Every matcher
// receives a normalized reference and a normalized candidate and returns a
// Verdict; matchers hold no state and never fail.
package match

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ppiankov/factcheck/internal/location"
	"github.com/ppiankov/factcheck/internal/model"
)

// Temporal accepts only identical years
func Temporal(ref, cand model.Value) model.Verdict {
	if ref.Text != "" && ref.Text == cand.Text {
		return exact(fmt.Sprintf("temporal: %s matches", ref.Text), "temporal:exact")
	}
	return none(fmt.Sprintf("temporal: %s does not match %s", cand.Text, ref.Text), "temporal:mismatch")
}

// Numeric compares magnitudes within tolerancePercent of the reference.
// Confidence falls linearly from 100 at equality to 70 at the tolerance boundary.
func Numeric(ref, cand model.Value, tolerancePercent float64) model.Verdict {
	a, errA := parseFloat(ref.Text)
	b, errB := parseFloat(cand.Text)
	if errA != nil || errB != nil {
		return none(fmt.Sprintf("numeric: cannot compare %q with %q", cand.Text, ref.Text), "numeric:unparseable")
	}

	if a == b {
		return exact(fmt.Sprintf("numeric: %s matches", ref.Text), "numeric:exact")
	}
	if a == 0 {
		return none(fmt.Sprintf("numeric: %s differs from zero reference", cand.Text), "numeric:mismatch")
	}

	rel := math.Abs(a-b) / math.Abs(a)
	tol := tolerancePercent / 100
	if tol > 0 && rel <= tol {
		conf := int(math.Round(100 - (rel/tol)*30))
		// 100 is reserved for exact
		if conf > 99 {
			conf = 99
		}
		return model.Verdict{
			Status:     model.StatusPartial,
			Score:      conf,
			Confidence: conf,
			Rationale:  fmt.Sprintf("numeric: %s within %.1f%% of %s (difference %.2f%%)", cand.Text, tolerancePercent, ref.Text, rel*100),
			Rule:       "numeric:within-tolerance",
		}
	}

	return none(fmt.Sprintf("numeric: %s differs from %s by %.1f%% (tolerance %.1f%%)", cand.Text, ref.Text, rel*100, tolerancePercent), "numeric:mismatch")
}

// Location compares the hierarchies carried in the values' items
func Location(ref, cand model.Value, scores model.LocationScores) model.Verdict {
	return location.Compare(model.Hierarchy(ref.Items), model.Hierarchy(cand.Items), scores)
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %s", s)
	}
	return f, nil
}

func exact(rationale, rule string) model.Verdict {
	return model.Verdict{
		Status:     model.StatusExact,
		Score:      100,
		Confidence: 100,
		Rationale:  rationale,
		Rule:       rule,
	}
}

func partial(score, confidence int, rationale, rule string) model.Verdict {
	return model.Verdict{
		Status:     model.StatusPartial,
		Score:      score,
		Confidence: confidence,
		Rationale:  rationale,
		Rule:       rule,
	}
}

func none(rationale, rule string) model.Verdict {
	return model.Verdict{
		Status:    model.StatusNone,
		Rationale: rationale,
		Rule:      rule,
	}
}
