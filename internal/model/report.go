package model

import "time"

// CheckItem is one (entity, attribute) question to verify.
// Empty Reference/Candidate fields are fetched from the knowledge base / language model.
type CheckItem struct {
	Entity    string `json:"entity" yaml:"entity"`                           // Human-readable entity name
	EntityID  string `json:"entity_id,omitempty" yaml:"entity_id,omitempty"` // Knowledge-base id (e.g. Q7842)
	Attribute string `json:"attribute" yaml:"attribute"`                     // Attribute id (e.g. "inception")
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty"` // Ground truth, if known
	Candidate string `json:"candidate,omitempty" yaml:"candidate,omitempty"` // Model answer, if known
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`     // Question template name
}

// CheckResult is the outcome of one CheckItem
type CheckResult struct {
	Index     int             `json:"index"`
	Item      CheckItem       `json:"item"`
	Family    AttributeFamily `json:"family"`
	Question  string          `json:"question,omitempty"`
	Reference string          `json:"reference"`
	Candidate string          `json:"candidate"`
	Verdict   Verdict         `json:"verdict"`
	Probes    []ProbeResult   `json:"probes,omitempty"` // Informational, never affects the verdict
	Model     string          `json:"model,omitempty"`
	Tokens    int             `json:"tokens,omitempty"`
	Error     string          `json:"error,omitempty"`
	Duration  time.Duration   `json:"duration_ns"`
}

// ProbeResult is the reachability of a URL recovered from an answer
type ProbeResult struct {
	URL          string `json:"url"`
	IsAccessible bool   `json:"is_accessible"`
	StatusCode   int    `json:"status_code,omitempty"`
	IsDead       bool   `json:"is_dead"`
	Disallowed   bool   `json:"disallowed,omitempty"` // robots.txt forbids probing
	RedirectURL  string `json:"redirect_url,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Report is a complete run over one or more check items
type Report struct {
	RunID     string        `json:"run_id"`
	CreatedAt time.Time     `json:"created_at"`
	Subject   string        `json:"subject,omitempty"`
	Provider  string        `json:"provider,omitempty"`
	Model     string        `json:"model,omitempty"`
	Results   []CheckResult `json:"results"`
	Score     Score         `json:"score"`
}

// Score is the transparent aggregate of a run's verdicts
type Score struct {
	Index      int      `json:"index"`      // Mean verdict score over compared items (0-100)
	Confidence string   `json:"confidence"` // "low", "medium", "high"
	Signals    []Signal `json:"signals"`
}

// Signal is a diagnostic observation with its scoring inputs
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// SignalType classifies a diagnostic signal
type SignalType string

const (
	SignalAccuracy SignalType = "accuracy" // exact/partial/none distribution
	SignalCoverage SignalType = "coverage" // Missing reference or candidate values
	SignalFamily   SignalType = "family"   // Per attribute-family breakdown
	SignalErrors   SignalType = "errors"   // Collaborator failures
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)
