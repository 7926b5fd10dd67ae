// Package extract recovers structured candidate values from conversational answers.
//
// Every extractor folds its input with NFKC first so that full-width digits,
// latin letters and punctuation (common in Japanese answers) match ASCII patterns.
// Extractors never fail: when nothing matches they fall back to the trimmed input.
package extract

import (
	"strings"

	"github.com/ppiankov/factcheck/internal/location"
	"github.com/ppiankov/factcheck/internal/model"
	"golang.org/x/text/unicode/norm"
)

// Candidate extracts the raw candidate value for the given family.
// units selects the unit markers of numeric attributes and may be nil.
func Candidate(family model.AttributeFamily, text string, units *UnitSet) model.Value {
	trimmed := strings.TrimSpace(text)
	v := model.Value{Family: family, Raw: trimmed}

	switch family {
	case model.FamilyTemporal:
		v.Text = Year(trimmed)

	case model.FamilyURL:
		v.Sources = URLs(trimmed)
		v.Items = append([]string(nil), v.Sources...)
		if len(v.Items) > 0 {
			v.Text = v.Items[0]
		}

	case model.FamilyNumeric:
		v.Text = Number(trimmed, units)

	case model.FamilyLocation:
		h := location.Parse(trimmed)
		v.Items = []string(h)
		v.Sources = append([]string(nil), h...)
		v.Text = h.String()

	case model.FamilyPersonName:
		v.Sources = Names(trimmed)
		v.Items = append([]string(nil), v.Sources...)
		v.Text = trimmed

	default:
		v.Text = trimmed
	}

	return v
}

// fold applies NFKC compatibility folding
func fold(s string) string {
	return norm.NFKC.String(s)
}

// dedupe keeps the first occurrence of every non-empty string
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var unique []string
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		unique = append(unique, item)
	}
	return unique
}
