package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/factcheck/internal/model"
)

// run executes the root command with args and a config file holding content
func run(t *testing.T, content string, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--config", path, "--no-color"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEvalCommand(t *testing.T) {
	out, err := run(t, "log:\n  level: error\n",
		"eval", "--attr", "inception", "--ref", "1877", "--answer", "1877年に設立されました", "--json")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if !strings.Contains(out, `"status": "exact"`) || !strings.Contains(out, `"family": "temporal"`) {
		t.Errorf("unexpected verdict:\n%s", out)
	}

	out, err = run(t, "", "eval", "--attr", "location", "--ref", "東京都,文京区", "--answer", "大阪府大阪市", "--json=false")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if !strings.HasPrefix(out, "location [location] none score=0") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestConfigShow_MergesFileAndEnv(t *testing.T) {
	t.Setenv("FACTCHECK_KB_MAX_HOPS", "2")

	out, err := run(t, "llm:\n  pattern: polite\n", "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, "pattern: polite") {
		t.Errorf("config file value missing:\n%s", out)
	}
	if !strings.Contains(out, "max_hops: 2") {
		t.Errorf("env override missing:\n%s", out)
	}
	if !strings.Contains(out, "tolerance_percent: 10") {
		t.Errorf("default value missing:\n%s", out)
	}
}

func TestAttributesCommand(t *testing.T) {
	out, err := run(t, "", "attributes", "--category", "japanese-universities")
	if err != nil {
		t.Fatalf("attributes failed: %v", err)
	}
	if !strings.Contains(out, "inception") || !strings.Contains(out, "P571") || !strings.Contains(out, "temporal") {
		t.Errorf("unexpected listing:\n%s", out)
	}

	if _, err := run(t, "", "attributes", "--category", "no-such-category"); err == nil {
		t.Error("expected error for unknown category")
	}
	attributesCategory = ""
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if out != "factcheck "+Version+"\n" {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestApplyLLMEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("OLLAMA_BASE_URL", "http://ollama.local:11434")

	cfg := model.LLMConfig{Provider: "openai"}
	if err := applyLLMEnv(&cfg); err == nil {
		t.Error("expected error for missing OpenAI key")
	}

	cfg = model.LLMConfig{Provider: "anthropic"}
	if err := applyLLMEnv(&cfg); err != nil || cfg.APIKey != "sk-ant-test" {
		t.Errorf("unexpected anthropic config %+v, err %v", cfg, err)
	}

	cfg = model.LLMConfig{Provider: "ollama"}
	if err := applyLLMEnv(&cfg); err != nil || cfg.BaseURL != "http://ollama.local:11434" {
		t.Errorf("unexpected ollama config %+v, err %v", cfg, err)
	}

	cfg = model.LLMConfig{}
	if err := applyLLMEnv(&cfg); err != nil {
		t.Errorf("disabled provider must not fail: %v", err)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("writeDefaultConfig failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "tolerance_percent: 10") || !strings.Contains(string(data), "OPENAI_API_KEY") {
		t.Errorf("unexpected config file:\n%s", data)
	}

	if err := writeDefaultConfig(path); err == nil {
		t.Error("an existing config must not be overwritten")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"checks", "checks"},
		{"東京大学 (Q7842)", "東京大学-(Q7842)"},
		{"a/b:c", "a_b_c"},
		{"..", "report"},
		{"  ", "report"},
		{strings.Repeat("長", 150), strings.Repeat("長", 100)},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
