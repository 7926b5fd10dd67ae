package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ppiankov/factcheck/internal/llm"
	"github.com/ppiankov/factcheck/internal/model"
)

type fakeKB struct {
	labels     map[string]string
	references map[string]string // id/attribute
	classes    map[string][]string
	err        error
}

func (f *fakeKB) Reference(ctx context.Context, id, attr string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.references[id+"/"+attr], nil
}

func (f *fakeKB) Label(ctx context.Context, id string) (string, error) {
	if l, ok := f.labels[id]; ok {
		return l, nil
	}
	return id, nil
}

func (f *fakeKB) Classes(ctx context.Context, id string) ([]string, error) {
	return f.classes[id], nil
}

type fakeProvider struct {
	mu        sync.Mutex
	answers   map[string]string // question prefix -> answer
	questions []string
	err       error
}

func (f *fakeProvider) Name() string                         { return "fake" }
func (f *fakeProvider) Endpoint() string                     { return "http://llm.test" }
func (f *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

func (f *fakeProvider) Ask(ctx context.Context, req llm.AskRequest) (*llm.AskResponse, error) {
	f.mu.Lock()
	f.questions = append(f.questions, req.Question)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	for prefix, answer := range f.answers {
		if strings.HasPrefix(req.Question, prefix) {
			return &llm.AskResponse{Answer: answer, Model: "fake-1", TokensUsed: 10}, nil
		}
	}
	return &llm.AskResponse{Answer: "わかりません", Model: "fake-1", TokensUsed: 5}, nil
}

type fakeProber struct{ urls []string }

func (f *fakeProber) Validate(ctx context.Context, urls []string) []model.ProbeResult {
	f.urls = append(f.urls, urls...)
	out := make([]model.ProbeResult, len(urls))
	for i, u := range urls {
		out[i] = model.ProbeResult{URL: u, IsAccessible: true, StatusCode: 200}
	}
	return out
}

func tokyoKB() *fakeKB {
	return &fakeKB{
		labels: map[string]string{"Q7842": "東京大学"},
		references: map[string]string{
			"Q7842/inception":        "1877",
			"Q7842/location":         "東京都,文京区",
			"Q7842/official_website": "https://www.u-tokyo.ac.jp/",
		},
		classes: map[string][]string{"Q7842": {"Q3918"}},
	}
}

func tokyoLLM() *fakeProvider {
	return &fakeProvider{answers: map[string]string{
		"東京大学の設立年":      "1877年です",
		"東京大学の所在地":      "東京都文京区本郷7-3-1",
		"東京大学の公式ウェブサイト": "公式サイトは https://www.u-tokyo.ac.jp/ja/ です。",
	}}
}

func TestPipeline_Check_FetchesBothSides(t *testing.T) {
	cfg := model.DefaultConfig()
	provider := tokyoLLM()
	p := New(cfg, tokyoKB(), provider)

	result := p.Check(context.Background(), model.CheckItem{EntityID: "Q7842", Attribute: "inception"})

	if result.Error != "" {
		t.Fatalf("unexpected error %s", result.Error)
	}
	if result.Reference != "1877" || result.Candidate != "1877年です" {
		t.Errorf("unexpected values %q / %q", result.Reference, result.Candidate)
	}
	if result.Verdict.Status != model.StatusExact {
		t.Errorf("expected exact, got %+v", result.Verdict)
	}
	if result.Family != model.FamilyTemporal {
		t.Errorf("expected temporal family, got %s", result.Family)
	}
	if !strings.HasPrefix(result.Question, "東京大学の設立年を答えてください。") {
		t.Errorf("unexpected question %q", result.Question)
	}
	if result.Model != "fake-1" || result.Tokens != 10 {
		t.Errorf("unexpected model usage %s/%d", result.Model, result.Tokens)
	}
}

func TestPipeline_Check_SuppliedValuesSkipCollaborators(t *testing.T) {
	provider := tokyoLLM()
	p := New(model.DefaultConfig(), &fakeKB{err: errors.New("must not be called")}, provider)

	result := p.Check(context.Background(), model.CheckItem{
		Entity:    "富士山",
		Attribute: "elevation",
		Reference: "3776",
		Candidate: "3,776メートル",
	})

	if result.Error != "" {
		t.Errorf("unexpected error %s", result.Error)
	}
	if result.Verdict.Status != model.StatusExact {
		t.Errorf("expected exact, got %+v", result.Verdict)
	}
	if len(provider.questions) != 0 {
		t.Errorf("provider must not be asked, got %v", provider.questions)
	}
}

func TestPipeline_Check_KBFailure(t *testing.T) {
	p := New(model.DefaultConfig(), &fakeKB{err: errors.New("timeout")}, tokyoLLM())

	result := p.Check(context.Background(), model.CheckItem{Entity: "東京大学", EntityID: "Q7842", Attribute: "inception"})

	if !strings.Contains(result.Error, "kb: timeout") {
		t.Errorf("expected kb error, got %q", result.Error)
	}
	if result.Verdict.Status != model.StatusReferenceMissing {
		t.Errorf("expected reference-missing, got %s", result.Verdict.Status)
	}
}

func TestPipeline_Check_LLMFailure(t *testing.T) {
	p := New(model.DefaultConfig(), tokyoKB(), &fakeProvider{err: errors.New("rate limited")})

	result := p.Check(context.Background(), model.CheckItem{EntityID: "Q7842", Attribute: "inception"})

	if !strings.Contains(result.Error, "llm: rate limited") {
		t.Errorf("expected llm error, got %q", result.Error)
	}
	if result.Verdict.Status != model.StatusCandidateMissing {
		t.Errorf("expected candidate-missing, got %s", result.Verdict.Status)
	}
}

func TestPipeline_Check_NoCollaborators(t *testing.T) {
	p := New(model.DefaultConfig(), nil, nil)

	result := p.Check(context.Background(), model.CheckItem{Entity: "東京大学", Attribute: "inception"})
	if result.Verdict.Status != model.StatusBothMissing {
		t.Errorf("expected both-missing, got %s", result.Verdict.Status)
	}
}

func TestPipeline_Check_Pattern(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.LLM.Pattern = "polite"
	provider := tokyoLLM()
	p := New(cfg, tokyoKB(), provider)

	p.Check(context.Background(), model.CheckItem{EntityID: "Q7842", Attribute: "inception"})
	p.Check(context.Background(), model.CheckItem{EntityID: "Q7842", Attribute: "inception", Pattern: "accuracy"})

	if !strings.Contains(provider.questions[0], "正確な情報のみを簡潔に") {
		t.Errorf("expected configured pattern, got %q", provider.questions[0])
	}
	if !strings.Contains(provider.questions[1], "正確に調査し") {
		t.Errorf("expected item pattern, got %q", provider.questions[1])
	}
}

func TestPipeline_Check_ProbesURLs(t *testing.T) {
	prober := &fakeProber{}
	p := New(model.DefaultConfig(), tokyoKB(), tokyoLLM()).WithProber(prober)

	result := p.Check(context.Background(), model.CheckItem{EntityID: "Q7842", Attribute: "official_website"})

	if len(result.Probes) != 1 || result.Probes[0].URL != "https://www.u-tokyo.ac.jp/ja/" {
		t.Errorf("unexpected probes %+v", result.Probes)
	}
	if !result.Verdict.Status.IsMatch() {
		t.Errorf("expected a URL match, got %+v", result.Verdict)
	}

	// Non-URL families are never probed
	p.Check(context.Background(), model.CheckItem{EntityID: "Q7842", Attribute: "inception"})
	if len(prober.urls) != 1 {
		t.Errorf("expected a single probed URL, got %v", prober.urls)
	}
}

func TestPipeline_CheckEntity_Preset(t *testing.T) {
	provider := tokyoLLM()
	p := New(model.DefaultConfig(), tokyoKB(), provider)

	items, err := p.EntityItems(context.Background(), "Q7842", nil, "")
	if err != nil {
		t.Fatalf("EntityItems failed: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected preset attributes for a university")
	}
	for _, it := range items {
		if it.Entity != "東京大学" || it.EntityID != "Q7842" {
			t.Errorf("unexpected item %+v", it)
		}
	}

	report, err := p.CheckEntity(context.Background(), "Q7842", []string{"inception", "location", " "}, "")
	if err != nil {
		t.Fatalf("CheckEntity failed: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if report.Results[0].Item.Attribute != "inception" || report.Results[1].Item.Attribute != "location" {
		t.Errorf("results out of order: %+v", report.Results)
	}
	if report.Results[1].Verdict.Status != model.StatusExact {
		t.Errorf("expected the street address to match the hierarchy, got %+v", report.Results[1].Verdict)
	}
	if report.Subject != "東京大学 (Q7842)" {
		t.Errorf("unexpected subject %q", report.Subject)
	}
	if report.RunID == "" || report.Provider != "fake" {
		t.Errorf("unexpected report header %+v", report)
	}
}

func TestPipeline_EntityItems_NoKB(t *testing.T) {
	p := New(model.DefaultConfig(), nil, nil)
	if _, err := p.EntityItems(context.Background(), "Q7842", nil, ""); err == nil {
		t.Error("expected error without a knowledge base")
	}
}

func TestPipeline_BuildReport(t *testing.T) {
	p := New(model.DefaultConfig(), nil, nil)
	results := []model.CheckResult{
		{Verdict: model.Verdict{Status: model.StatusExact, Score: 100}},
		{Verdict: model.Verdict{Status: model.StatusNone, Score: 0}},
	}

	a := p.BuildReport("batch", results)
	b := p.BuildReport("batch", results)

	if a.RunID == b.RunID {
		t.Error("run ids must be unique")
	}
	if a.Score.Index != 50 {
		t.Errorf("expected index 50, got %d", a.Score.Index)
	}
	if a.Provider != "" {
		t.Errorf("expected no provider, got %s", a.Provider)
	}
}

func TestRenderer_JSON(t *testing.T) {
	p := New(model.DefaultConfig(), tokyoKB(), tokyoLLM())
	report, err := p.CheckEntity(context.Background(), "Q7842", []string{"inception"}, "")
	if err != nil {
		t.Fatalf("CheckEntity failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out", "report.json")
	r := NewRenderer(false, false)
	if err := r.RenderJSON(report, path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.RunID != report.RunID || len(decoded.Results) != 1 {
		t.Errorf("unexpected decoded report %+v", decoded)
	}
	if !strings.Contains(string(data), "東京大学") {
		t.Error("expected unescaped Japanese text in JSON")
	}
}

func TestRenderer_Summary(t *testing.T) {
	report := &model.Report{
		RunID:   "run-1",
		Subject: "東京大学 (Q7842)",
		Results: []model.CheckResult{
			{
				Item:      model.CheckItem{Attribute: "inception"},
				Reference: "1877",
				Candidate: "1877年\nです",
				Verdict:   model.Verdict{Status: model.StatusExact, Score: 100, Rationale: "years match", Rule: "temporal:year"},
			},
			{
				Item:    model.CheckItem{Attribute: "location"},
				Error:   "kb: timeout",
				Verdict: model.Verdict{Status: model.StatusReferenceMissing},
			},
		},
		Score: model.Score{Index: 100, Confidence: "low", Signals: []model.Signal{
			{Type: model.SignalCoverage, Severity: model.SeverityWarning, Description: "Compared 1/2 items (50%)"},
		}},
	}

	var buf bytes.Buffer
	NewRenderer(false, true).RenderSummary(&buf, report)
	out := buf.String()

	for _, want := range []string{"東京大学 (Q7842)", "inception", "exact", "1877年 です", "years match (temporal:year)", "error: kb: timeout", "Index: 100/100", "Compared 1/2 items"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("東京都文京区本郷", 5); got != "東京都文…" {
		t.Errorf("unexpected %s", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("unexpected %s", got)
	}
}
