// Package catalog holds the static attribute metadata the question builder and
// knowledge-base client share: display labels, Wikidata properties, answer
// format hints and per-entity-type attribute presets.
package catalog

import (
	"sort"
	"strings"
)

// Attribute describes one checkable attribute
type Attribute struct {
	ID       string `json:"id" yaml:"id"`
	Label    string `json:"label" yaml:"label"`                           // Japanese display label, used in questions
	Property string `json:"property,omitempty" yaml:"property,omitempty"` // Wikidata property id
	Hint     string `json:"hint,omitempty" yaml:"hint,omitempty"`         // Answer format instruction
}

const (
	hintLocation = "回答形式: 都道府県,市区町村（例: 愛知県,豊田市）※必ずカンマ区切りで回答してください"
	hintYear     = "回答形式: 年のみの数字（例: 1937）"
	hintURL      = "回答形式: URLのみ（例: https://toyota.jp）"
	hintMeters   = "回答形式: 数値のみメートル単位（例: 776）"
)

var attributes = map[string]Attribute{
	// basic
	"inception":          {Label: "設立年", Property: "P571", Hint: hintYear},
	"establishment_year": {Label: "設立年", Property: "P571", Hint: hintYear},
	"birth_date":         {Label: "生年月日", Property: "P569"},
	"death_date":         {Label: "死亡年月日", Property: "P570"},
	"location":           {Label: "所在地", Property: "P131", Hint: hintLocation},
	"location_pref":      {Label: "都道府県", Property: "P131"},
	"location_city":      {Label: "市町村", Property: "P131"},
	"country":            {Label: "国", Property: "P17"},
	"official_website":   {Label: "公式ウェブサイト", Property: "P856", Hint: hintURL},
	"website":            {Label: "ウェブサイト", Property: "P856", Hint: hintURL},

	// physical
	"height":    {Label: "高さ", Property: "P2048"},
	"width":     {Label: "幅", Property: "P2049"},
	"length":    {Label: "長さ", Property: "P2043"},
	"area":      {Label: "面積", Property: "P2046"},
	"volume":    {Label: "体積", Property: "P2234"},
	"weight":    {Label: "重量", Property: "P2067"},
	"elevation": {Label: "標高", Property: "P2044", Hint: hintMeters},
	"depth":     {Label: "深さ", Property: "P4511"},

	// people
	"occupation":    {Label: "職業", Property: "P106"},
	"nationality":   {Label: "国籍", Property: "P27"},
	"alma_mater":    {Label: "出身校", Property: "P69"},
	"educated_at":   {Label: "出身校", Property: "P69"},
	"work_location": {Label: "勤務地", Property: "P937", Hint: hintLocation},
	"notable_work":  {Label: "代表作", Property: "P800"},
	"spouse":        {Label: "配偶者", Property: "P26"},
	"children":      {Label: "子供", Property: "P40"},
	"parents":       {Label: "両親", Property: "P22"},

	// organisations
	"founded_by":   {Label: "創設者", Property: "P112"},
	"headquarters": {Label: "本社所在地", Property: "P159", Hint: hintLocation},
	"employees":    {Label: "従業員数", Property: "P1128"},
	"revenue":      {Label: "収益", Property: "P2139"},
	"industry":     {Label: "業界", Property: "P452"},
	"ceo":          {Label: "CEO", Property: "P169"},

	// geography
	"population":        {Label: "人口", Property: "P1082"},
	"capital":           {Label: "首都", Property: "P36"},
	"currency":          {Label: "通貨", Property: "P38"},
	"official_language": {Label: "公用語", Property: "P37"},
	"time_zone":         {Label: "タイムゾーン", Property: "P421"},
	"continent":         {Label: "大陸", Property: "P30"},
	"mountain_range":    {Label: "山脈", Property: "P4552"},
	"mouth":             {Label: "河口", Property: "P403"},
	"source":            {Label: "水源", Property: "P885"},
	"coordinate":        {Label: "座標", Property: "P625"},

	// works
	"director":         {Label: "監督", Property: "P57"},
	"author":           {Label: "作者", Property: "P50"},
	"composer":         {Label: "作曲者", Property: "P86"},
	"performer":        {Label: "出演者", Property: "P161"},
	"cast":             {Label: "出演者", Property: "P161"},
	"genre":            {Label: "ジャンル", Property: "P136"},
	"publication_date": {Label: "発行日", Property: "P577"},
	"publisher":        {Label: "出版社", Property: "P123"},
	"duration":         {Label: "上映時間", Property: "P2047"},
	"language":         {Label: "言語", Property: "P407"},

	// education
	"academic_degree": {Label: "学位", Property: "P512"},
	"field_of_study":  {Label: "専攻分野", Property: "P101"},
	"student_count":   {Label: "学生数", Property: "P2196"},
	"faculty_count":   {Label: "教員数", Property: "P1128"},

	// technology
	"developer":            {Label: "開発者", Property: "P178"},
	"manufacturer":         {Label: "製造者", Property: "P176"},
	"model":                {Label: "モデル", Property: "P1324"},
	"operating_system":     {Label: "OS", Property: "P306"},
	"programming_language": {Label: "プログラミング言語", Property: "P277"},

	// Japanese aliases
	"設立年":    {Label: "設立年", Property: "P571", Hint: hintYear},
	"標高":     {Label: "標高", Property: "P2044", Hint: hintMeters},
	"所在地":    {Label: "所在地", Property: "P131", Hint: hintLocation},
	"本社所在地":  {Label: "本社所在地", Property: "P159", Hint: hintLocation},
	"ウェブサイト": {Label: "ウェブサイト", Property: "P856", Hint: hintURL},
	"創設者":    {Label: "創設者", Property: "P112"},
}

// Lookup returns the catalog entry for id. Unknown ids get the id as label and no property.
func Lookup(id string) Attribute {
	id = strings.TrimSpace(id)
	if a, ok := attributes[id]; ok {
		a.ID = id
		return a
	}
	return Attribute{ID: id, Label: id}
}

// Known reports whether id is in the catalog
func Known(id string) bool {
	_, ok := attributes[strings.TrimSpace(id)]
	return ok
}

// All returns every catalog entry sorted by id
func All() []Attribute {
	out := make([]Attribute, 0, len(attributes))
	for id := range attributes {
		out = append(out, Lookup(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
