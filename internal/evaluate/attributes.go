package evaluate

import (
	"sort"
	"strings"

	"github.com/ppiankov/factcheck/internal/extract"
	"github.com/ppiankov/factcheck/internal/model"
)

// attributeSpec binds an attribute id to its family and, for magnitudes, its unit markers
type attributeSpec struct {
	family model.AttributeFamily
	units  *extract.UnitSet
}

// attributes is the static attribute → family table. Unknown ids are generic text.
var attributes = map[string]attributeSpec{
	// temporal
	"inception":          {family: model.FamilyTemporal},
	"establishment_year": {family: model.FamilyTemporal},
	"birth_date":         {family: model.FamilyTemporal},
	"death_date":         {family: model.FamilyTemporal},
	"publication_date":   {family: model.FamilyTemporal},
	"dissolved":          {family: model.FamilyTemporal},
	"設立年":                {family: model.FamilyTemporal},

	// url
	"website":          {family: model.FamilyURL},
	"official_website": {family: model.FamilyURL},
	"ウェブサイト":           {family: model.FamilyURL},

	// numeric
	"elevation":     {family: model.FamilyNumeric, units: extract.Meters},
	"標高":            {family: model.FamilyNumeric, units: extract.Meters},
	"height":        {family: model.FamilyNumeric, units: extract.Meters},
	"width":         {family: model.FamilyNumeric, units: extract.Meters},
	"depth":         {family: model.FamilyNumeric, units: extract.Meters},
	"length":        {family: model.FamilyNumeric, units: extract.Kilometers},
	"area":          {family: model.FamilyNumeric, units: extract.SquareKilometers},
	"volume":        {family: model.FamilyNumeric, units: extract.CubicMeters},
	"weight":        {family: model.FamilyNumeric, units: extract.Kilograms},
	"population":    {family: model.FamilyNumeric, units: extract.People},
	"student_count": {family: model.FamilyNumeric, units: extract.People},
	"faculty_count": {family: model.FamilyNumeric, units: extract.People},
	"employees":     {family: model.FamilyNumeric, units: extract.People},
	"revenue":       {family: model.FamilyNumeric, units: extract.Currency},
	"duration":      {family: model.FamilyNumeric, units: extract.Minutes},

	// location
	"location":        {family: model.FamilyLocation},
	"location_pref":   {family: model.FamilyLocation},
	"location_city":   {family: model.FamilyLocation},
	"headquarters":    {family: model.FamilyLocation},
	"work_location":   {family: model.FamilyLocation},
	"place_of_birth":  {family: model.FamilyLocation},
	"所在地":             {family: model.FamilyLocation},
	"本社所在地":           {family: model.FamilyLocation},
	"country":         {family: model.FamilyLocation},
	"国":               {family: model.FamilyLocation},

	// person
	"director":   {family: model.FamilyPersonName},
	"author":     {family: model.FamilyPersonName},
	"composer":   {family: model.FamilyPersonName},
	"performer":  {family: model.FamilyPersonName},
	"founded_by": {family: model.FamilyPersonName},
	"創設者":        {family: model.FamilyPersonName},
	"ceo":        {family: model.FamilyPersonName},
	"spouse":     {family: model.FamilyPersonName},
	"children":   {family: model.FamilyPersonName},
	"parents":    {family: model.FamilyPersonName},
}

func lookup(attributeID string) attributeSpec {
	if spec, ok := attributes[strings.TrimSpace(attributeID)]; ok {
		return spec
	}
	return attributeSpec{family: model.FamilyGenericText}
}

// Family resolves an attribute id to its family
func Family(attributeID string) model.AttributeFamily {
	return lookup(attributeID).family
}

// Units returns the unit set name of a numeric attribute, or ""
func Units(attributeID string) string {
	if u := lookup(attributeID).units; u != nil {
		return u.Name
	}
	return ""
}

// KnownAttributes lists the attribute ids with a dedicated family, sorted
func KnownAttributes() []string {
	ids := make([]string, 0, len(attributes))
	for id := range attributes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
