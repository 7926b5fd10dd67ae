// Package kb fetches reference values from the Wikidata API.
package kb

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ppiankov/factcheck/internal/cache"
	"github.com/ppiankov/factcheck/internal/catalog"
	"github.com/ppiankov/factcheck/internal/evaluate"
	"github.com/ppiankov/factcheck/internal/location"
	"github.com/ppiankov/factcheck/internal/model"
)

const (
	// locatedIn is the administrative-containment property walked for location attributes
	locatedIn  = "P131"
	instanceOf = "P31"
)

const maxResponseBytes = 8 << 20

// Client reads entities, labels and reference values from a Wikidata-compatible API
type Client struct {
	baseURL   string
	languages []string
	maxHops   int
	fetcher   *fetcher
	cache     cache.Cache
	cacheTTL  time.Duration
}

// NewClient creates a knowledge-base client. store may be nil and throttle may be nil.
func NewClient(cfg model.KBConfig, httpClient *http.Client, store cache.Cache, cacheTTL time.Duration, throttle Throttle) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if store == nil {
		store = cache.Noop{}
	}

	languages := cfg.Languages
	if len(languages) == 0 {
		languages = []string{"ja", "en"}
	}

	maxHops := cfg.MaxHops
	if maxHops <= 0 {
		maxHops = 4
	}

	return &Client{
		baseURL:   cfg.BaseURL,
		languages: languages,
		maxHops:   maxHops,
		fetcher:   &fetcher{httpClient: httpClient, maxBytes: maxResponseBytes, throttle: throttle},
		cache:     store,
		cacheTTL:  cacheTTL,
	}
}

// Endpoint returns the API URL
func (c *Client) Endpoint() string {
	return c.baseURL
}

// Search finds entities by label in the primary language. Queries shorter than
// two characters return nothing without a request.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < 2 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("search", query)
	params.Set("language", c.languages[0])
	params.Set("uselang", c.languages[0])
	params.Set("type", "item")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("format", "json")

	var resp searchResponse
	if err := c.fetcher.fetchWithRetry(ctx, c.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("search %q: %w", query, resp.Error)
	}

	return resp.Search, nil
}

// Entity fetches one entity document, served from the cache when present
func (c *Client) Entity(ctx context.Context, id string) (*Entity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("empty entity id")
	}

	langs := strings.Join(c.languages, "|")
	key := cache.Key("entity", id+"|"+langs)

	var ent Entity
	if cache.GetJSON(c.cache, key, &ent) {
		return &ent, nil
	}

	params := url.Values{}
	params.Set("action", "wbgetentities")
	params.Set("ids", id)
	params.Set("languages", langs)
	params.Set("props", "labels|descriptions|claims")
	params.Set("format", "json")

	var resp entitiesResponse
	if err := c.fetcher.fetchWithRetry(ctx, c.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("get entity %s: %w", id, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("get entity %s: %w", id, resp.Error)
	}

	ent, ok := resp.Entities[id]
	if !ok || ent.Missing != nil {
		return nil, fmt.Errorf("entity %s not found", id)
	}

	if err := cache.SetJSON(c.cache, key, ent, c.cacheTTL); err != nil {
		slog.Debug("cache entity failed", "id", id, "error", err)
	}

	return &ent, nil
}

// Label returns the entity's label in the configured language order, or the id itself
func (c *Client) Label(ctx context.Context, id string) (string, error) {
	ent, err := c.Entity(ctx, id)
	if err != nil {
		return "", err
	}
	if l := ent.Label(c.languages); l != "" {
		return l, nil
	}
	return id, nil
}

// Classes returns the ids the entity is an instance of, in claim order
func (c *Client) Classes(ctx context.Context, id string) ([]string, error) {
	ent, err := c.Entity(ctx, id)
	if err != nil {
		return nil, err
	}

	var classes []string
	for _, cl := range ent.Claims[instanceOf] {
		if cl.Rank == "deprecated" {
			continue
		}
		if cls := cl.Mainsnak.DataValue.EntityID(); cls != "" {
			classes = append(classes, cls)
		}
	}
	return classes, nil
}

// Reference returns the reference answer for attributeID of entity id.
// An attribute without a property mapping or an entity without the claim yields "".
func (c *Client) Reference(ctx context.Context, id, attributeID string) (string, error) {
	property := catalog.Lookup(attributeID).Property
	if property == "" {
		return "", nil
	}

	ent, err := c.Entity(ctx, id)
	if err != nil {
		return "", err
	}

	value := ent.Best(property)
	if value == nil {
		return "", nil
	}

	if target := value.EntityID(); target != "" {
		if evaluate.Family(attributeID) == model.FamilyLocation {
			return c.locationChain(ctx, target)
		}
		return c.Label(ctx, target)
	}

	return value.Literal()
}

// locationChain walks located-in links from id up to maxHops entities and
// renders the chain coarsest first, e.g. "東京都,文京区".
func (c *Client) locationChain(ctx context.Context, id string) (string, error) {
	var chain []string
	seen := make(map[string]bool)

	for hop := 0; hop < c.maxHops && id != "" && !seen[id]; hop++ {
		seen[id] = true

		ent, err := c.Entity(ctx, id)
		if err != nil {
			if len(chain) > 0 {
				slog.Debug("location chain truncated", "id", id, "error", err)
				break
			}
			return "", err
		}

		label := ent.Label(c.languages)
		if label == "" {
			label = id
		}
		chain = append(chain, label)

		id = ent.Best(locatedIn).EntityID()
	}

	return location.FromChain(chain).String(), nil
}
