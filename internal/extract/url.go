package extract

import (
	"regexp"
	"strings"
)

// urlPattern is one way a URL can be embedded in prose
type urlPattern struct {
	name string
	re   *regexp.Regexp
}

// Scheme URL patterns, in priority order. A balanced "(...)" inside the path
// belongs to the URL (https://ja.wikipedia.org/wiki/Foo_(bar)).
var urlPatterns = []urlPattern{
	{name: "bare", re: regexp.MustCompile(`https?://(?:[^\s\[\]()<>"'「」『』、。]|\([^\s\[\]()<>"'「」『』、。]*\))+`)},
	{name: "bracketed", re: regexp.MustCompile(`\[https?://[^\]\s]+\]`)},
	{name: "parenthesized", re: regexp.MustCompile(`\(https?://(?:[^()\s]|\([^()\s]*\))+\)`)},
	{name: "japanese-punctuation", re: regexp.MustCompile(`https?://(?:[^\s、。」』()\]]|\([^\s、。」』()\]]*\))+`)},
}

// hostPattern catches scheme-less hosts such as "example.com/about"
var hostPattern = regexp.MustCompile(`(?i)\b(?:www\.)?[a-z0-9][a-z0-9-]*(?:\.[a-z0-9-]+)*\.[a-z]{2,}(?:/[^\s、。」』)\]]*)?`)

const urlTrailingPunct = ".,;:!?、。\"'"

// URLs returns the distinct URLs embedded in the text.
// When none is found the whole trimmed text is returned as the single candidate.
func URLs(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	folded := fold(trimmed)

	var found []string
	for _, p := range urlPatterns {
		for _, m := range p.re.FindAllString(folded, -1) {
			if u := cleanURL(m); strings.HasPrefix(u, "http") {
				found = append(found, u)
			}
		}
	}

	if len(found) == 0 {
		for _, m := range hostPattern.FindAllString(folded, -1) {
			found = append(found, cleanURL(m))
		}
	}

	found = dedupe(found)
	if len(found) == 0 {
		return []string{trimmed}
	}
	return found
}

// cleanURL strips one wrapping bracket pair and trailing punctuation.
// Parentheses inside the path are kept.
func cleanURL(m string) string {
	switch {
	case strings.HasPrefix(m, "[") && strings.HasSuffix(m, "]"),
		strings.HasPrefix(m, "(") && strings.HasSuffix(m, ")"):
		m = m[1 : len(m)-1]
	}
	return strings.TrimRight(m, urlTrailingPunct)
}
