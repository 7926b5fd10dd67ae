package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/factcheck/internal/cache"
	"github.com/ppiankov/factcheck/internal/catalog"
	"github.com/ppiankov/factcheck/internal/evaluate"
	"github.com/ppiankov/factcheck/internal/extract"
	"github.com/ppiankov/factcheck/internal/kb"
	"github.com/ppiankov/factcheck/internal/llm"
	"github.com/ppiankov/factcheck/internal/model"
	"github.com/ppiankov/factcheck/internal/score"
	"github.com/ppiankov/factcheck/internal/util"
	"github.com/ppiankov/factcheck/internal/validate"
	"github.com/ppiankov/factcheck/internal/worker"
)

// KnowledgeBase supplies reference values. kb.Client implements it.
type KnowledgeBase interface {
	Reference(ctx context.Context, id, attributeID string) (string, error)
	Label(ctx context.Context, id string) (string, error)
	Classes(ctx context.Context, id string) ([]string, error)
}

// Prober checks reachability of URLs. validate.Validator implements it.
type Prober interface {
	Validate(ctx context.Context, urls []string) []model.ProbeResult
}

// Pipeline fetches missing reference and candidate values, then grades them
type Pipeline struct {
	engine   *evaluate.Engine
	kb       KnowledgeBase // nil disables reference lookup
	provider llm.Provider  // nil disables candidate generation
	prober   Prober        // nil unless probing is enabled
	throttle kb.Throttle   // applied to LLM requests
	scorer   *score.Scorer
	config   *model.Config
}

// NewPipeline wires the production collaborators described by cfg
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}

	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)

	p := New(cfg, NewKBClient(cfg, limiter), provider)
	p.throttle = limiter
	if cfg.Probe.Enabled {
		p.prober = validate.NewValidator(cfg.Probe, cfg.HTTP)
	}
	return p, nil
}

// NewKBClient builds the cached Wikidata client described by cfg
func NewKBClient(cfg *model.Config, throttle kb.Throttle) *kb.Client {
	return kb.NewClient(cfg.KB, util.NewHTTPClient(cfg.HTTP), cache.New(cfg.Cache), cfg.Cache.DiskTTL, throttle)
}

// New builds a pipeline around the given collaborators; either may be nil
func New(cfg *model.Config, source KnowledgeBase, provider llm.Provider) *Pipeline {
	return &Pipeline{
		engine:   evaluate.NewEngine(cfg.Matching),
		kb:       source,
		provider: provider,
		scorer:   score.NewScorer(),
		config:   cfg,
	}
}

// WithProber enables URL probing
func (p *Pipeline) WithProber(prober Prober) *Pipeline {
	p.prober = prober
	return p
}

// Provider returns the configured LLM provider, or nil
func (p *Pipeline) Provider() llm.Provider {
	return p.provider
}

// Check grades one item. Collaborator failures land on the result's Error and
// the verdict reports the side that could not be fetched as missing.
func (p *Pipeline) Check(ctx context.Context, item model.CheckItem) model.CheckResult {
	start := time.Now()
	result := model.CheckResult{
		Item:   item,
		Family: evaluate.Family(item.Attribute),
	}

	var errs []string

	entity := strings.TrimSpace(item.Entity)
	if entity == "" && item.EntityID != "" && p.kb != nil {
		label, err := p.kb.Label(ctx, item.EntityID)
		if err != nil {
			errs = append(errs, "kb: "+err.Error())
		}
		entity = label
	}

	reference := item.Reference
	if reference == "" && item.EntityID != "" && p.kb != nil {
		ref, err := p.kb.Reference(ctx, item.EntityID, item.Attribute)
		if err != nil {
			errs = append(errs, "kb: "+err.Error())
		} else {
			reference = ref
		}
	}

	candidate := item.Candidate
	if candidate == "" && p.provider != nil && entity != "" {
		answer, err := p.ask(ctx, entity, item, &result)
		if err != nil {
			errs = append(errs, "llm: "+err.Error())
		} else {
			candidate = answer
		}
	}

	result.Reference = reference
	result.Candidate = candidate
	result.Verdict = p.engine.Evaluate(reference, candidate, item.Attribute)

	if p.prober != nil && result.Family == model.FamilyURL && strings.TrimSpace(candidate) != "" {
		result.Probes = p.prober.Validate(ctx, extract.URLs(candidate))
	}

	result.Error = strings.Join(errs, "; ")
	result.Duration = time.Since(start)

	slog.Debug("checked item",
		"entity", entity,
		"attribute", item.Attribute,
		"status", result.Verdict.Status,
		"score", result.Verdict.Score,
		"duration", result.Duration,
	)

	return result
}

func (p *Pipeline) ask(ctx context.Context, entity string, item model.CheckItem, result *model.CheckResult) (string, error) {
	pattern := item.Pattern
	if pattern == "" {
		pattern = p.config.LLM.Pattern
	}
	result.Question = llm.BuildQuestion(pattern, entity, item.Attribute)

	if p.throttle != nil {
		if err := p.throttle.Wait(ctx, p.provider.Endpoint()); err != nil {
			return "", fmt.Errorf("throttle: %w", err)
		}
	}

	resp, err := p.provider.Ask(ctx, llm.AskRequest{
		Question:  result.Question,
		Model:     p.config.LLM.Model,
		MaxTokens: p.config.LLM.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	result.Model = resp.Model
	result.Tokens = resp.TokensUsed
	return resp.Answer, nil
}

// EntityItems builds one check item per attribute for entity id. Without
// attributes, the entity-type preset of the entity's classes is used.
func (p *Pipeline) EntityItems(ctx context.Context, id string, attributes []string, pattern string) ([]model.CheckItem, error) {
	if p.kb == nil {
		return nil, fmt.Errorf("no knowledge base configured")
	}

	label, err := p.kb.Label(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("label %s: %w", id, err)
	}

	if len(attributes) == 0 {
		classes, err := p.kb.Classes(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("classes %s: %w", id, err)
		}
		attributes = catalog.PresetFor(classes)
	}

	items := make([]model.CheckItem, 0, len(attributes))
	for _, attr := range attributes {
		attr = strings.TrimSpace(attr)
		if attr == "" {
			continue
		}
		items = append(items, model.CheckItem{
			Entity:    label,
			EntityID:  id,
			Attribute: attr,
			Pattern:   pattern,
		})
	}
	return items, nil
}

// CheckEntity checks every attribute of one entity and returns the report
func (p *Pipeline) CheckEntity(ctx context.Context, id string, attributes []string, pattern string) (*model.Report, error) {
	items, err := p.EntityItems(ctx, id, attributes, pattern)
	if err != nil {
		return nil, err
	}

	results := worker.NewBatchProcessor(p, p.config.Concurrency.Workers).ProcessItems(ctx, items)

	subject := id
	if len(items) > 0 && items[0].Entity != "" {
		subject = fmt.Sprintf("%s (%s)", items[0].Entity, id)
	}
	return p.BuildReport(subject, results), nil
}

// BuildReport wraps results in a scored report with a fresh run id
func (p *Pipeline) BuildReport(subject string, results []model.CheckResult) *model.Report {
	report := &model.Report{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Subject:   subject,
		Results:   results,
		Score:     p.scorer.Calculate(results),
	}
	if p.provider != nil {
		report.Provider = p.provider.Name()
		report.Model = p.config.LLM.Model
		for _, r := range results {
			if report.Model != "" {
				break
			}
			report.Model = r.Model
		}
	}
	return report
}
