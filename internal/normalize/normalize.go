// Package normalize maps extracted and reference values into the comparable
// canonical form of their attribute family.
package normalize

import (
	"regexp"
	"strings"

	"github.com/ppiankov/factcheck/internal/location"
	"github.com/ppiankov/factcheck/internal/model"
	"golang.org/x/text/unicode/norm"
)

var (
	yearPattern       = regexp.MustCompile(`\d{4}`)
	nonNumericPattern = regexp.MustCompile(`[^0-9.]`)
	schemePattern     = regexp.MustCompile(`(?i)^https?://`)
)

// Temporal returns the first 4-digit run, or the trimmed input
func Temporal(s string) string {
	trimmed := strings.TrimSpace(s)
	if m := yearPattern.FindString(norm.NFKC.String(trimmed)); m != "" {
		return m
	}
	return trimmed
}

// URL strips the scheme, a leading "www." label and trailing slashes, and lowercases
func URL(s string) string {
	u := strings.ToLower(strings.TrimSpace(s))
	u = schemePattern.ReplaceAllString(u, "")
	u = strings.TrimPrefix(u, "www.")
	return strings.TrimRight(u, "/")
}

// Numeric keeps only digits and dots; input without any passes through trimmed
func Numeric(s string) string {
	trimmed := strings.TrimSpace(s)
	if n := nonNumericPattern.ReplaceAllString(norm.NFKC.String(trimmed), ""); n != "" {
		return n
	}
	return trimmed
}

// Location parses the text into a hierarchy (normalization and extraction coincide)
func Location(s string) model.Hierarchy {
	return location.Parse(s)
}

// Text lowercases and trims
func Text(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Reference normalizes a knowledge-base value for the given family
func Reference(family model.AttributeFamily, s string) model.Value {
	trimmed := strings.TrimSpace(s)
	v := model.Value{Family: family, Raw: trimmed}

	switch family {
	case model.FamilyTemporal:
		v.Text = Temporal(trimmed)
	case model.FamilyURL:
		v.Text = URL(trimmed)
		v.Items = []string{v.Text}
		v.Sources = []string{trimmed}
	case model.FamilyNumeric:
		v.Text = Numeric(trimmed)
	case model.FamilyLocation:
		h := Location(trimmed)
		v.Items = []string(h)
		v.Sources = append([]string(nil), h...)
		v.Text = h.String()
	default:
		v.Text = Text(trimmed)
	}

	return v
}

// Candidate normalizes an extracted candidate value.
// Sources are left untouched so matchers can inspect the pre-normalization form.
func Candidate(v model.Value) model.Value {
	out := v
	out.Items = nil

	switch v.Family {
	case model.FamilyTemporal:
		out.Text = Temporal(v.Text)
	case model.FamilyURL:
		for _, src := range v.Sources {
			out.Items = append(out.Items, URL(src))
		}
		if len(out.Items) > 0 {
			out.Text = out.Items[0]
		}
	case model.FamilyNumeric:
		out.Text = Numeric(v.Text)
	case model.FamilyLocation:
		out.Items = append([]string(nil), v.Items...)
		out.Text = model.Hierarchy(out.Items).String()
	case model.FamilyPersonName:
		for _, src := range v.Sources {
			out.Items = append(out.Items, Text(src))
		}
		out.Text = Text(v.Text)
	default:
		out.Text = Text(v.Text)
	}

	return out
}
