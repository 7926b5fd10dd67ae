package extract

import (
	"regexp"
	"strings"
)

// namePattern is a name-shaped pattern; group 1, when present, holds the name
type namePattern struct {
	name string
	re   *regexp.Regexp
}

// Person-name patterns in priority order. Input is NFKC-folded, so
// full-width parentheses arrive as ASCII.
var namePatterns = []namePattern{
	// 山田太郎(やまだたろう)
	{name: "name-with-reading", re: regexp.MustCompile(`(\p{Han}[\p{Han}\p{Katakana}ー]{1,5})\s*\([\p{Hiragana}\p{Katakana}ー・\s]+\)`)},
	// やまだ たろう(山田太郎)
	{name: "reading-with-name", re: regexp.MustCompile(`[\p{Hiragana}\p{Katakana}ー・\s]+\((\p{Han}{2,6})\)`)},
	{name: "han", re: regexp.MustCompile(`\p{Han}{2,6}`)},
	{name: "katakana", re: regexp.MustCompile(`\p{Katakana}[\p{Katakana}ー・]{1,19}`)},
	{name: "cjk", re: regexp.MustCompile(`[\p{Han}\p{Hiragana}\p{Katakana}ー]{2,6}`)},
	{name: "western", re: regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`)},
}

// Names returns the distinct name-shaped substrings of the text in pattern priority order.
// Text without any name-shaped substring yields the trimmed text itself.
func Names(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	folded := fold(trimmed)

	var found []string
	for _, p := range namePatterns {
		for _, m := range p.re.FindAllStringSubmatch(folded, -1) {
			name := m[0]
			if len(m) > 1 {
				name = m[1]
			}
			found = append(found, strings.TrimSpace(name))
		}
	}

	found = dedupe(found)
	if len(found) == 0 {
		return []string{trimmed}
	}
	return found
}
