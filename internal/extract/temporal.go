package extract

import (
	"regexp"
	"strings"
)

var yearPattern = regexp.MustCompile(`\d{4}`)

// Year returns the first 4-digit run of the text, or the trimmed text when there is none
func Year(text string) string {
	trimmed := strings.TrimSpace(text)
	if m := yearPattern.FindString(fold(trimmed)); m != "" {
		return m
	}
	return trimmed
}
