package kb

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Entity is the subset of a Wikidata entity document the client reads
type Entity struct {
	ID           string               `json:"id"`
	Missing      *string              `json:"missing,omitempty"`
	Labels       map[string]LangValue `json:"labels,omitempty"`
	Descriptions map[string]LangValue `json:"descriptions,omitempty"`
	Claims       map[string][]Claim   `json:"claims,omitempty"`
}

// LangValue is a language-tagged string
type LangValue struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// Claim is one statement about a property
type Claim struct {
	Mainsnak Snak   `json:"mainsnak"`
	Rank     string `json:"rank"`
}

// Snak holds the statement value. DataValue is nil for "somevalue" and "novalue" snaks.
type Snak struct {
	SnakType  string     `json:"snaktype"`
	Property  string     `json:"property"`
	DataValue *DataValue `json:"datavalue,omitempty"`
}

// DataValue is a typed statement value; Value's shape depends on Type
type DataValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// SearchHit is one entity search result
type SearchHit struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

type searchResponse struct {
	Search []SearchHit `json:"search"`
	Error  *apiError   `json:"error,omitempty"`
}

type entitiesResponse struct {
	Entities map[string]Entity `json:"entities"`
	Error    *apiError         `json:"error,omitempty"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error %s: %s", e.Code, e.Info)
}

// Label returns the first label found in languages order, or "" when there is none
func (e *Entity) Label(languages []string) string {
	for _, lang := range languages {
		if l, ok := e.Labels[lang]; ok && l.Value != "" {
			return l.Value
		}
	}
	return ""
}

// Best returns the value of the preferred claim for property, falling back to
// the first normal-rank claim. Deprecated claims and value-less snaks are skipped.
func (e *Entity) Best(property string) *DataValue {
	var first *DataValue
	for _, c := range e.Claims[property] {
		if c.Rank == "deprecated" || c.Mainsnak.DataValue == nil {
			continue
		}
		if c.Rank == "preferred" {
			return c.Mainsnak.DataValue
		}
		if first == nil {
			first = c.Mainsnak.DataValue
		}
	}
	return first
}

type timeValue struct {
	Time      string `json:"time"`
	Precision int    `json:"precision"`
}

type quantityValue struct {
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

type monolingualValue struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type entityIDValue struct {
	ID        string `json:"id"`
	NumericID int64  `json:"numeric-id"`
}

type coordinateValue struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// EntityID returns the referenced entity id of a wikibase-entityid value
func (d *DataValue) EntityID() string {
	if d == nil || d.Type != "wikibase-entityid" {
		return ""
	}
	var v entityIDValue
	if err := json.Unmarshal(d.Value, &v); err != nil {
		return ""
	}
	if v.ID != "" {
		return v.ID
	}
	if v.NumericID > 0 {
		return "Q" + strconv.FormatInt(v.NumericID, 10)
	}
	return ""
}

// Literal renders non-entity values: time as its year, quantity as its unsigned
// amount, string and monolingual text verbatim, coordinates as "lat,lon".
func (d *DataValue) Literal() (string, error) {
	switch d.Type {
	case "time":
		var v timeValue
		if err := json.Unmarshal(d.Value, &v); err != nil {
			return "", fmt.Errorf("decode time: %w", err)
		}
		return yearOf(v.Time), nil

	case "quantity":
		var v quantityValue
		if err := json.Unmarshal(d.Value, &v); err != nil {
			return "", fmt.Errorf("decode quantity: %w", err)
		}
		return strings.TrimPrefix(v.Amount, "+"), nil

	case "string":
		var s string
		if err := json.Unmarshal(d.Value, &s); err != nil {
			return "", fmt.Errorf("decode string: %w", err)
		}
		return s, nil

	case "monolingualtext":
		var v monolingualValue
		if err := json.Unmarshal(d.Value, &v); err != nil {
			return "", fmt.Errorf("decode monolingual text: %w", err)
		}
		return v.Text, nil

	case "globecoordinate":
		var v coordinateValue
		if err := json.Unmarshal(d.Value, &v); err != nil {
			return "", fmt.Errorf("decode coordinate: %w", err)
		}
		return strconv.FormatFloat(v.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(v.Longitude, 'f', -1, 64), nil

	default:
		return "", fmt.Errorf("unsupported value type %q", d.Type)
	}
}

// yearOf extracts the year of a Wikidata timestamp ("+1877-04-12T00:00:00Z" -> "1877")
func yearOf(ts string) string {
	negative := strings.HasPrefix(ts, "-")
	ts = strings.TrimLeft(ts, "+-")
	if i := strings.IndexByte(ts, '-'); i >= 0 {
		ts = ts[:i]
	}
	ts = strings.TrimLeft(ts, "0")
	if ts == "" {
		return "0"
	}
	if negative {
		return "-" + ts
	}
	return ts
}
