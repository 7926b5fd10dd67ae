package llm

import (
	"sort"
	"strings"

	"github.com/ppiankov/factcheck/internal/catalog"
)

// DefaultPattern is used for unknown pattern names
const DefaultPattern = "direct"

// Question templates. {entity} and {attribute} are substituted by BuildQuestion.
var patterns = map[string]string{
	"direct":      "{entity}の{attribute}を答えてください。回答は数値や名称のみ、余分な説明は不要です。",
	"polite":      "{entity}の{attribute}について、正確な情報のみを簡潔に回答してください。",
	"accuracy":    "{entity}の{attribute}を正確に調査し、事実のみを回答してください。説明文は不要です。",
	"reliability": "{entity}の{attribute}について、信頼できる最新情報を基に事実のみを回答してください。",
	"detailed":    "{entity}の{attribute}を詳細に調査し、正確な情報のみを回答してください。",
}

// Patterns returns the known pattern names in sorted order
func Patterns() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildQuestion renders the question for entity and attribute id.
// The attribute's answer-format hint, when it has one, follows on a new line.
func BuildQuestion(pattern, entity, attributeID string) string {
	tmpl, ok := patterns[pattern]
	if !ok {
		tmpl = patterns[DefaultPattern]
	}

	attr := catalog.Lookup(attributeID)
	q := strings.NewReplacer("{entity}", entity, "{attribute}", attr.Label).Replace(tmpl)

	if attr.Hint != "" {
		q += "\n" + attr.Hint
	}
	return q
}
