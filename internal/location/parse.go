// Package location builds administrative place hierarchies (region, district,
// municipality) from free text or knowledge-base chains and compares them.
package location

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/factcheck/internal/model"
	"golang.org/x/text/unicode/norm"
)

// Administrative level of a place-name element
type Level int

const (
	LevelUnknown Level = iota
	LevelRegion
	LevelDistrict
	LevelMunicipality
)

var (
	regionSuffixes       = []string{"都", "道", "府", "県"}
	districtSuffixes     = []string{"郡"}
	municipalitySuffixes = []string{"市", "区", "町", "村"}
)

var (
	separatorPattern    = regexp.MustCompile(`[,、]`)
	postalPattern       = regexp.MustCompile(`〒?\s*\d{3}-?\d{4}`)
	districtPattern     = regexp.MustCompile(`\p{Han}{1,4}郡`)
	municipalityPattern = regexp.MustCompile(`\p{Han}{1,5}[市区町村]`)
	// leadingMunicipality matches the name directly after a region or district cut; kana names allowed
	leadingMunicipality = regexp.MustCompile(`^の?([\p{Han}\p{Hiragana}\p{Katakana}ー]{1,7}?[市区町村])`)
	prefecturePattern   = regexp.MustCompile(strings.Join(prefectures, "|"))
)

// prefectures is the closed list of region-level names recognised inside unseparated text
var prefectures = []string{
	"北海道", "青森県", "岩手県", "宮城県", "秋田県", "山形県", "福島県",
	"茨城県", "栃木県", "群馬県", "埼玉県", "千葉県", "東京都", "神奈川県",
	"新潟県", "富山県", "石川県", "福井県", "山梨県", "長野県", "岐阜県",
	"静岡県", "愛知県", "三重県", "滋賀県", "京都府", "大阪府", "兵庫県",
	"奈良県", "和歌山県", "鳥取県", "島根県", "岡山県", "広島県", "山口県",
	"徳島県", "香川県", "愛媛県", "高知県", "福岡県", "佐賀県", "長崎県",
	"熊本県", "大分県", "宮崎県", "鹿児島県", "沖縄県",
}

// LevelOf classifies an element by its administrative suffix
func LevelOf(element string) Level {
	e := strings.TrimSpace(element)
	switch {
	case hasAnySuffix(e, municipalitySuffixes):
		return LevelMunicipality
	case hasAnySuffix(e, districtSuffixes):
		return LevelDistrict
	case hasAnySuffix(e, regionSuffixes):
		return LevelRegion
	}
	return LevelUnknown
}

// Parse builds a hierarchy from free text such as "東京都,文京区" or "〒730-0001 広島県安芸郡府中町".
// Text with no administrative suffix yields a hierarchy of its parts (or of the whole text).
func Parse(text string) model.Hierarchy {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	folded := norm.NFKC.String(trimmed)

	if separatorPattern.MatchString(folded) {
		return parseParts(separatorPattern.Split(folded, -1))
	}
	return parseRun(folded)
}

// parseParts picks one region, district and municipality out of separated parts
func parseParts(raw []string) model.Hierarchy {
	var parts []string
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	var region, district, municipality string
	for _, p := range parts {
		switch LevelOf(p) {
		case LevelRegion:
			if region == "" {
				region = p
			}
		case LevelDistrict:
			if district == "" {
				district = p
			}
		case LevelMunicipality:
			if municipality == "" {
				municipality = p
			}
		}
	}

	if h := assemble(region, district, municipality); len(h) > 0 {
		return h
	}
	return model.Hierarchy(parts)
}

// parseRun extracts levels from unseparated text
func parseRun(folded string) model.Hierarchy {
	text := strings.TrimSpace(postalPattern.ReplaceAllString(folded, ""))

	var region string
	rest := text
	if loc := prefecturePattern.FindStringIndex(text); loc != nil {
		region = text[loc[0]:loc[1]]
		rest = text[loc[1]:]
	}

	var district string
	if loc := districtPattern.FindStringIndex(rest); loc != nil {
		district = rest[loc[0]:loc[1]]
		rest = rest[loc[1]:]
	}

	var municipality string
	if region != "" || district != "" {
		municipality = leadingMunicipalityOf(rest)
	}
	if municipality == "" {
		municipality = municipalityPattern.FindString(rest)
	}

	if h := assemble(region, district, municipality); len(h) > 0 {
		return h
	}
	return model.Hierarchy{strings.TrimSpace(folded)}
}

// leadingMunicipalityOf returns the municipality that opens rest. A doubled
// suffix stays part of the name (四日市市, 十日町市).
func leadingMunicipalityOf(rest string) string {
	m := leadingMunicipality.FindStringSubmatch(rest)
	if m == nil {
		return ""
	}
	name := m[1]
	if next, _ := utf8.DecodeRuneInString(rest[len(m[0]):]); strings.ContainsRune("市区町村", next) {
		name += string(next)
	}
	return name
}

// FromChain converts a knowledge-base containment chain (finest first, e.g.
// [文京区 東京都 日本]) into a hierarchy. Once any element carries an
// administrative suffix, elements without one (countries) are dropped.
func FromChain(chain []string) model.Hierarchy {
	var h model.Hierarchy
	seen := make(map[string]bool)
	suffixed := false

	for i := len(chain) - 1; i >= 0; i-- {
		e := strings.TrimSpace(chain[i])
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		h = append(h, e)
		if LevelOf(e) != LevelUnknown {
			suffixed = true
		}
	}

	if !suffixed {
		return h
	}

	var kept model.Hierarchy
	for _, e := range h {
		if LevelOf(e) != LevelUnknown {
			kept = append(kept, e)
		}
	}
	return kept
}

func assemble(levels ...string) model.Hierarchy {
	var h model.Hierarchy
	for _, l := range levels {
		if l != "" {
			h = append(h, l)
		}
	}
	return h
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}
