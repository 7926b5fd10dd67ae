package location

import (
	"fmt"
	"strings"

	"github.com/ppiankov/factcheck/internal/model"
)

// Compare grades a candidate hierarchy against a reference hierarchy.
// Rules are tried in order: element-wise equality, hierarchical containment,
// municipality equality, municipality substring.
func Compare(ref, cand model.Hierarchy, scores model.LocationScores) model.Verdict {
	r := canonical(ref)
	c := canonical(cand)

	if len(r) == 0 || len(c) == 0 {
		return model.Verdict{
			Status:    model.StatusNone,
			Rationale: "location: empty hierarchy",
			Rule:      "location:empty",
		}
	}

	if equalElements(r, c) {
		return model.Verdict{
			Status:     model.StatusExact,
			Score:      100,
			Confidence: 100,
			Rationale:  fmt.Sprintf("location: hierarchies match (%s)", ref.String()),
			Rule:       "location:exact",
		}
	}

	short, long := r, c
	if len(c) < len(r) {
		short, long = c, r
	}
	if contained(short, long) {
		return model.Verdict{
			Status:     model.StatusPartial,
			Score:      scores.Containment,
			Confidence: 90,
			Rationale:  fmt.Sprintf("location: hierarchical containment (%s within %s)", joinRaw(short), joinRaw(long)),
			Rule:       "location:containment",
		}
	}

	rm, cm := municipality(r), municipality(c)
	if rm != "" && cm != "" {
		if rm == cm {
			return model.Verdict{
				Status:     model.StatusPartial,
				Score:      scores.MunicipalityExact,
				Confidence: 80,
				Rationale:  fmt.Sprintf("location: municipality %s matches", rm),
				Rule:       "location:municipality-exact",
			}
		}
		if strings.Contains(rm, cm) || strings.Contains(cm, rm) {
			return model.Verdict{
				Status:     model.StatusPartial,
				Score:      scores.MunicipalitySubstring,
				Confidence: 70,
				Rationale:  fmt.Sprintf("location: municipality %s overlaps %s", rm, cm),
				Rule:       "location:municipality-substring",
			}
		}
	}

	return model.Verdict{
		Status:    model.StatusNone,
		Rationale: fmt.Sprintf("location: %s does not match %s", cand.String(), ref.String()),
		Rule:      "location:mismatch",
	}
}

// contained reports whether every element of short is satisfied by long
func contained(short, long []string) bool {
	for _, s := range short {
		if !satisfied(s, long) {
			return false
		}
	}
	return true
}

func satisfied(element string, long []string) bool {
	for _, l := range long {
		if l == element {
			return true
		}
	}

	// "府中町" is satisfied by "安芸郡府中町"
	if LevelOf(element) == LevelMunicipality {
		for _, l := range long {
			if strings.Contains(l, element) {
				return true
			}
		}
	}

	for _, l := range long {
		if strings.Contains(l, element) || strings.Contains(element, l) {
			return true
		}
	}
	return false
}

// municipality returns the finest municipality-level element
func municipality(h []string) string {
	for i := len(h) - 1; i >= 0; i-- {
		if LevelOf(h[i]) == LevelMunicipality {
			return h[i]
		}
	}
	return ""
}

func equalElements(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// canonical lowercases and trims every element, dropping empties
func canonical(h model.Hierarchy) []string {
	out := make([]string, 0, len(h))
	for _, e := range h {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			out = append(out, e)
		}
	}
	return out
}

func joinRaw(h []string) string {
	return strings.Join(h, ",")
}
