package match

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/factcheck/internal/model"
)

// SimilarityThreshold is the minimum normalized edit similarity for a name match
const SimilarityThreshold = 0.7

var tokenSeparator = regexp.MustCompile(`[\s、。,.]+`)

// Person compares a reference name with the names recovered from an answer.
// Exact name equality anywhere wins over similarity and containment.
func Person(ref, cand model.Value) model.Verdict {
	r := ref.Text
	if r == "" || cand.Text == "" {
		return none("person: nothing to compare", "person:empty")
	}

	if r == cand.Text {
		return exact(fmt.Sprintf("person: %s matches", ref.Raw), "person:exact")
	}

	for _, name := range cand.Items {
		if name == r {
			return exact(fmt.Sprintf("person: extracted name %s matches", name), "person:extracted-exact")
		}
	}

	compactRef := removeSpace(r)
	for _, name := range cand.Items {
		if name == "" {
			continue
		}
		compact := removeSpace(name)
		if sim := Similarity(compact, compactRef); sim >= SimilarityThreshold {
			return partial(90, int(math.Round(sim*100)),
				fmt.Sprintf("person: %s is similar to %s (%.2f)", name, ref.Raw, sim), "person:similar")
		}
		if strings.Contains(compact, compactRef) || strings.Contains(compactRef, compact) {
			return partial(70, 70, fmt.Sprintf("person: %s overlaps %s", name, ref.Raw), "person:contained")
		}
	}

	if strings.Contains(cand.Text, r) || strings.Contains(r, cand.Text) {
		return partial(70, 70, fmt.Sprintf("person: answer mentions %s", ref.Raw), "person:raw-contained")
	}

	return none(fmt.Sprintf("person: no name in the answer matches %s", ref.Raw), "person:mismatch")
}

// Generic compares free text by equality, containment and then shared words
func Generic(ref, cand model.Value) model.Verdict {
	r, c := ref.Text, cand.Text
	if r == "" || c == "" {
		return none("generic: nothing to compare", "generic:empty")
	}

	if r == c {
		return exact("generic: text matches", "generic:exact")
	}
	if strings.Contains(c, r) || strings.Contains(r, c) {
		return exact("generic: one text contains the other", "generic:contained")
	}

	for _, rt := range words(r) {
		for _, ct := range words(c) {
			if strings.Contains(rt, ct) || strings.Contains(ct, rt) {
				return partial(70, 70, fmt.Sprintf("generic: shared word %q", rt), "generic:word-overlap")
			}
		}
	}

	return none("generic: no overlap", "generic:mismatch")
}

// words splits text into tokens longer than two runes
func words(s string) []string {
	var out []string
	for _, w := range tokenSeparator.Split(s, -1) {
		if utf8.RuneCountInString(w) > 2 {
			out = append(out, w)
		}
	}
	return out
}

// Similarity returns (maxLen - editDistance) / maxLen over runes
func Similarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}
	return float64(maxLen-Levenshtein(a, b)) / float64(maxLen)
}

// Levenshtein returns the rune edit distance between a and b
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func removeSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
