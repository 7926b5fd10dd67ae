package catalog

import "sort"

// EntityType is a knowledge-base class with a recommended attribute set
type EntityType struct {
	ID         string
	Label      string
	Attributes []string
}

var entityTypes = map[string]EntityType{
	"Q5":       {Label: "人物", Attributes: []string{"birth_date", "death_date", "occupation", "nationality", "educated_at", "notable_work"}},
	"Q3918":    {Label: "大学", Attributes: []string{"inception", "location", "student_count", "faculty_count", "official_website"}},
	"Q4830453": {Label: "企業", Attributes: []string{"inception", "founded_by", "headquarters", "industry", "employees", "revenue", "official_website"}},
	"Q11424":   {Label: "映画", Attributes: []string{"director", "publication_date", "genre", "duration", "cast"}},
	"Q571":     {Label: "書籍", Attributes: []string{"author", "publication_date", "genre", "publisher", "language"}},
	"Q8502":    {Label: "山", Attributes: []string{"elevation", "location", "country", "coordinate"}},
	"Q4022":    {Label: "河川", Attributes: []string{"length", "location", "country"}},
	"Q515":     {Label: "都市", Attributes: []string{"population", "area", "country", "coordinate", "official_website"}},
	"Q6256":    {Label: "国", Attributes: []string{"population", "area", "capital", "official_language", "currency"}},
	"Q7397":    {Label: "ソフトウェア", Attributes: []string{"developer", "inception", "programming_language", "operating_system", "official_website"}},
}

// DefaultAttributes are checked when an entity has no known type
var DefaultAttributes = []string{"inception", "location", "official_website"}

// Preset returns the recommended attributes for a class id
func Preset(classID string) (EntityType, bool) {
	t, ok := entityTypes[classID]
	if !ok {
		return EntityType{}, false
	}
	t.ID = classID
	t.Attributes = append([]string(nil), t.Attributes...)
	return t, true
}

// PresetFor returns the attributes of the first class with a preset,
// or DefaultAttributes when none of the classes has one.
func PresetFor(classIDs []string) []string {
	for _, id := range classIDs {
		if t, ok := Preset(id); ok {
			return t.Attributes
		}
	}
	return append([]string(nil), DefaultAttributes...)
}

// categories are curated attribute sets for well-covered entity groups
var categories = map[string][]string{
	"japanese-universities": {"inception", "location", "student_count", "website"},
	"japanese-prefectures":  {"capital", "population", "area"},
	"japanese-mountains":    {"elevation", "location", "mountain_range"},
	"japanese-rivers":       {"length", "mouth", "source"},
	"japanese-companies":    {"inception", "industry", "headquarters", "website"},
	"world-countries":       {"capital", "population", "area", "continent"},
	"world-capitals":        {"country", "population", "area"},
}

// Category returns the attributes of a named category
func Category(name string) ([]Attribute, bool) {
	ids, ok := categories[name]
	if !ok {
		return nil, false
	}
	out := make([]Attribute, len(ids))
	for i, id := range ids {
		out[i] = Lookup(id)
	}
	return out, true
}

// Categories lists the category names, sorted
func Categories() []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
