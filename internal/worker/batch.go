package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ppiankov/factcheck/internal/model"
	"gopkg.in/yaml.v3"
)

// Checker defines the interface for checking one item
type Checker interface {
	Check(ctx context.Context, item model.CheckItem) model.CheckResult
}

// CheckJob represents one queued check
type CheckJob struct {
	Item    model.CheckItem
	Checker Checker
}

// Execute executes the check job
func (j *CheckJob) Execute(ctx context.Context) Result {
	return &CheckOutcome{Result: j.Checker.Check(ctx, j.Item)}
}

// CheckOutcome wraps a CheckResult for the pool
type CheckOutcome struct {
	Result model.CheckResult
}

// GetError returns the collaborator error recorded on the result
func (o *CheckOutcome) GetError() error {
	if o.Result.Error == "" {
		return nil
	}
	return errors.New(o.Result.Error)
}

// ProgressFunc is called after each finished item
type ProgressFunc func(done, total int)

// BatchProcessor checks many items concurrently
type BatchProcessor struct {
	checker     Checker
	concurrency int
	progress    ProgressFunc
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
}

// OnProgress registers a progress callback
func (b *BatchProcessor) OnProgress(fn ProgressFunc) {
	b.progress = fn
}

// ProcessItems checks items concurrently. Results keep the input order and
// items skipped by cancellation carry the context error.
func (b *BatchProcessor) ProcessItems(ctx context.Context, items []model.CheckItem) []model.CheckResult {
	if len(items) == 0 {
		return []model.CheckResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	checker := b.checker
	if b.progress != nil {
		checker = &progressChecker{next: b.checker, total: len(items), fn: b.progress}
	}

	for _, item := range items {
		if pool.Submit(&CheckJob{Item: item, Checker: checker}) < 0 {
			break
		}
	}

	outcomes := pool.Wait()

	results := make([]model.CheckResult, len(items))
	for i, item := range items {
		if o, ok := outcomes[i].(*CheckOutcome); ok {
			results[i] = o.Result
		} else {
			results[i] = model.CheckResult{
				Item:  item,
				Error: cancelled(ctx),
				Verdict: model.Verdict{
					Status:    model.StatusCandidateMissing,
					Rationale: "check was not run",
					Rule:      "missing",
				},
			}
		}
		results[i].Index = i
	}

	return results
}

// ProcessFile reads a YAML check file and processes its items
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]model.CheckResult, error) {
	items, err := ReadItemsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}

	return b.ProcessItems(ctx, items), nil
}

// CheckFile is the YAML layout of a batch file
type CheckFile struct {
	Defaults struct {
		Pattern string `yaml:"pattern"`
	} `yaml:"defaults"`
	Entities []EntityChecks   `yaml:"entities"`
	Items    []model.CheckItem `yaml:"items"`
}

// EntityChecks expands to one item per attribute
type EntityChecks struct {
	Entity     string   `yaml:"entity"`
	EntityID   string   `yaml:"entity_id"`
	Attributes []string `yaml:"attributes"`
}

// ReadItemsFromFile reads check items from a YAML file.
// Entity blocks expand first, explicit items follow; identical items are kept once.
func ReadItemsFromFile(filePath string) ([]model.CheckItem, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	var file CheckFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filePath, err)
	}

	var all []model.CheckItem
	for _, e := range file.Entities {
		for _, attr := range e.Attributes {
			all = append(all, model.CheckItem{Entity: e.Entity, EntityID: e.EntityID, Attribute: attr})
		}
	}
	all = append(all, file.Items...)

	var items []model.CheckItem
	seen := make(map[model.CheckItem]bool)
	for i, item := range all {
		item.Attribute = strings.TrimSpace(item.Attribute)
		if item.Attribute == "" {
			return nil, fmt.Errorf("item %d: attribute is required", i+1)
		}
		if item.Entity == "" && item.EntityID == "" {
			return nil, fmt.Errorf("item %d: entity or entity_id is required", i+1)
		}
		if item.Pattern == "" {
			item.Pattern = file.Defaults.Pattern
		}

		if !seen[item] {
			seen[item] = true
			items = append(items, item)
		}
	}

	return items, nil
}

// progressChecker reports completion after each check
type progressChecker struct {
	next  Checker
	total int
	fn    ProgressFunc

	mu   sync.Mutex
	done int
}

func (p *progressChecker) Check(ctx context.Context, item model.CheckItem) model.CheckResult {
	r := p.next.Check(ctx, item)

	p.mu.Lock()
	p.done++
	p.fn(p.done, p.total)
	p.mu.Unlock()

	return r
}

func cancelled(ctx context.Context) string {
	if err := ctx.Err(); err != nil {
		return err.Error()
	}
	return "not processed"
}
