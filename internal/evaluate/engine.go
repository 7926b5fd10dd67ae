// Package evaluate is the public entry point of the answer-evaluation engine.
//
// Engine.Evaluate selects the extractor, normalizer and matcher of an attribute's
// family and returns a Verdict. Evaluation is pure: an Engine is safe for
// concurrent use and identical inputs always produce identical verdicts.
package evaluate

import (
	"fmt"
	"strings"

	"github.com/ppiankov/factcheck/internal/extract"
	"github.com/ppiankov/factcheck/internal/match"
	"github.com/ppiankov/factcheck/internal/model"
	"github.com/ppiankov/factcheck/internal/normalize"
)

// Engine evaluates candidate answers against reference values
type Engine struct {
	tolerancePercent float64
	urlOptions       match.URLOptions
	locationScores   model.LocationScores
}

// NewEngine creates a new engine with the given comparison rules
func NewEngine(cfg model.MatchingConfig) *Engine {
	return &Engine{
		tolerancePercent: cfg.TolerancePercent,
		urlOptions:       match.URLOptionsFrom(cfg),
		locationScores:   cfg.Location,
	}
}

// Evaluate compares a candidate answer with a reference value for the attribute.
// Empty or whitespace-only values count as absent.
func (e *Engine) Evaluate(reference, candidate, attributeID string) model.Verdict {
	family := Family(attributeID)

	refMissing := strings.TrimSpace(reference) == ""
	candMissing := strings.TrimSpace(candidate) == ""

	var v model.Verdict
	switch {
	case refMissing && candMissing:
		v = missing(model.StatusBothMissing, "neither a reference value nor an answer is available")
	case refMissing:
		v = missing(model.StatusReferenceMissing, "no reference value to compare against")
	case candMissing:
		v = missing(model.StatusCandidateMissing, "the answer is empty")
	default:
		ref := ReferenceValue(reference, attributeID)
		cand := CandidateValue(candidate, attributeID)
		v = e.compare(ref, cand)
	}

	v.Family = family
	return v
}

// EvaluatePointers is Evaluate for callers that distinguish absent values with nil
func (e *Engine) EvaluatePointers(reference, candidate *string, attributeID string) model.Verdict {
	return e.Evaluate(deref(reference), deref(candidate), attributeID)
}

func (e *Engine) compare(ref, cand model.Value) model.Verdict {
	switch ref.Family {
	case model.FamilyTemporal:
		return match.Temporal(ref, cand)
	case model.FamilyURL:
		return match.URL(ref, cand, e.urlOptions)
	case model.FamilyNumeric:
		return match.Numeric(ref, cand, e.tolerancePercent)
	case model.FamilyLocation:
		return match.Location(ref, cand, e.locationScores)
	case model.FamilyPersonName:
		return match.Person(ref, cand)
	case model.FamilyGenericText:
		return match.Generic(ref, cand)
	}
	panic(fmt.Sprintf("evaluate: no matcher for family %q", ref.Family))
}

// ReferenceValue normalizes a reference value for the attribute's family
func ReferenceValue(reference, attributeID string) model.Value {
	return normalize.Reference(Family(attributeID), reference)
}

// CandidateValue extracts and normalizes an answer for the attribute's family
func CandidateValue(candidate, attributeID string) model.Value {
	spec := lookup(attributeID)
	return normalize.Candidate(extract.Candidate(spec.family, candidate, spec.units))
}

func missing(status model.Status, rationale string) model.Verdict {
	return model.Verdict{
		Status:    status,
		Rationale: rationale,
		Rule:      "missing",
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
