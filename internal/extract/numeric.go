package extract

import (
	"regexp"
	"sort"
	"strings"
)

// numberExpr matches a decimal with optional thousands separators
const numberExpr = `\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?`

var barePattern = regexp.MustCompile(numberExpr)

// UnitSet is a named group of unit markers that can follow a numeric value
type UnitSet struct {
	Name    string
	Units   []string
	pattern *regexp.Regexp
}

// NewUnitSet compiles a unit set; longer markers are tried first
func NewUnitSet(name string, units ...string) *UnitSet {
	sorted := append([]string(nil), units...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	quoted := make([]string, len(sorted))
	for i, u := range sorted {
		quoted[i] = regexp.QuoteMeta(u)
	}

	return &UnitSet{
		Name:    name,
		Units:   units,
		pattern: regexp.MustCompile(`(` + numberExpr + `)\s*(?:` + strings.Join(quoted, "|") + `)`),
	}
}

// Unit sets for the numeric attributes of the catalog.
// Markers are written in their NFKC form ("km²" folds to "km2").
var (
	Meters           = NewUnitSet("meters", "メートル", "m")
	Kilometers       = NewUnitSet("kilometers", "キロメートル", "キロ", "km")
	SquareKilometers = NewUnitSet("square-kilometers", "平方キロメートル", "km2")
	CubicMeters      = NewUnitSet("cubic-meters", "立方メートル", "m3")
	People           = NewUnitSet("people", "人", "名")
	Currency         = NewUnitSet("currency", "億円", "万円", "円", "ドル")
	Minutes          = NewUnitSet("minutes", "分", "min")
	Kilograms        = NewUnitSet("kilograms", "キログラム", "トン", "kg", "t")
)

// Number returns the plain numeric string of the first unit-qualified value,
// else of the first bare number, else the trimmed text.
func Number(text string, units *UnitSet) string {
	trimmed := strings.TrimSpace(text)
	folded := fold(trimmed)

	if units != nil {
		if m := units.pattern.FindStringSubmatch(folded); m != nil {
			return stripSeparators(m[1])
		}
	}

	if m := barePattern.FindString(folded); m != "" {
		return stripSeparators(m)
	}

	return trimmed
}

func stripSeparators(s string) string {
	return strings.ReplaceAll(s, ",", "")
}
