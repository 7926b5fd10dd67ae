package model

import "strings"

// AttributeFamily selects the extractor/normalizer/matcher triple used for an attribute
type AttributeFamily string

const (
	FamilyTemporal    AttributeFamily = "temporal"          // Years and dates
	FamilyURL         AttributeFamily = "url"               // Websites
	FamilyNumeric     AttributeFamily = "numeric-magnitude" // Elevation, length, population...
	FamilyLocation    AttributeFamily = "location"          // Administrative places
	FamilyPersonName  AttributeFamily = "person-name"       // Founders, directors, authors
	FamilyGenericText AttributeFamily = "generic-text"      // Anything else
)

// Families lists every known attribute family in dispatch order
func Families() []AttributeFamily {
	return []AttributeFamily{
		FamilyTemporal,
		FamilyURL,
		FamilyNumeric,
		FamilyLocation,
		FamilyPersonName,
		FamilyGenericText,
	}
}

// Status is the graded outcome of a comparison
type Status string

const (
	StatusExact            Status = "exact"
	StatusPartial          Status = "partial"
	StatusNone             Status = "none"
	StatusReferenceMissing Status = "reference-missing"
	StatusCandidateMissing Status = "candidate-missing"
	StatusBothMissing      Status = "both-missing"
)

// IsMissing reports whether no comparison was attempted
func (s Status) IsMissing() bool {
	switch s {
	case StatusReferenceMissing, StatusCandidateMissing, StatusBothMissing:
		return true
	}
	return false
}

// IsMatch reports whether the candidate agreed with the reference at least partially
func (s Status) IsMatch() bool {
	return s == StatusExact || s == StatusPartial
}

// Verdict is the structured outcome of comparing a reference and a candidate value.
//
// status == exact implies Score >= 90, status == none implies Score == 0 and the
// *-missing statuses always carry a zero score.
type Verdict struct {
	Status     Status          `json:"status"`
	Score      int             `json:"score"`      // 0-100
	Confidence int             `json:"confidence"` // 0-100
	Rationale  string          `json:"rationale"`
	Rule       string          `json:"rule"`             // Which comparison path fired (e.g. "url:equivalent-path")
	Family     AttributeFamily `json:"family,omitempty"` // Filled by the dispatcher
}

// Hierarchy is an ordered list of place names, coarsest first
type Hierarchy []string

// String renders the hierarchy in the comma form the location parser accepts
func (h Hierarchy) String() string {
	return strings.Join(h, ",")
}

// Value is the canonical form of a reference or candidate after extraction and normalization
type Value struct {
	Family AttributeFamily `json:"family"`
	Raw    string          `json:"raw"`             // Trimmed input text
	Text   string          `json:"text"`            // Single canonical form
	Items  []string        `json:"items,omitempty"` // Normalized URL candidates, hierarchy levels or names
	// Sources holds the pre-normalization form of each item (same index as Items)
	Sources []string `json:"sources,omitempty"`
}

// String renders the value so that extracting it again yields the same canonical form.
// Person names render as their extracted sources, since lowercased text no
// longer matches the name patterns.
func (v Value) String() string {
	if len(v.Items) == 0 {
		return v.Text
	}
	switch v.Family {
	case FamilyLocation:
		return strings.Join(v.Items, ",")
	case FamilyURL:
		return strings.Join(v.Items, " ")
	case FamilyPersonName:
		if len(v.Sources) > 0 {
			return strings.Join(v.Sources, "、")
		}
		return v.Text
	default:
		return v.Text
	}
}
