package fix

// Category identifies the class of security smell detected in a snippet.
type Category string

const (
	CategoryHardcodedAPIKey   Category = "hardcoded-api-key"
	CategoryHardcodedPassword Category = "hardcoded-password"
	CategoryXSSUnsafeWrite    Category = "xss-unsafe-write"
	CategoryCodeInjection     Category = "code-injection"
	CategoryInsecureRandom    Category = "insecure-random"
	CategoryUnclassified      Category = "unclassified"
)

// Strategy names the rewriter that produced an applied fix.
type Strategy string

const (
	StrategyGenerative    Strategy = "generative"
	StrategyDeterministic Strategy = "deterministic"
)

// Request is a single fix invocation. Category may be left empty when the
// caller has no hint; the classifier decides in that case.
type Request struct {
	Snippet          string   `json:"snippet"`
	Category         Category `json:"category,omitempty"`
	Engine           string   `json:"engine,omitempty"`
	PreferGenerative bool     `json:"prefer_generative"`
}

// Candidate is a sanitized rewrite under consideration. Raw model output is
// never stored as a Candidate.
type Candidate struct {
	Text   string   `json:"text"`
	Origin Strategy `json:"origin"`
}

// Outcome is the resolved fix for a request. It is created once per
// invocation and never mutated.
type Outcome struct {
	Request         Request  `json:"request"`
	AppliedStrategy Strategy `json:"applied_strategy"`
	Text            string   `json:"text"`
}

// Prompt is the instruction pair sent to a generative engine.
type Prompt struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// Verdict is the validator's decision for a generative candidate. Reasons
// accumulate every failed check so callers can assert on why a candidate
// was rejected.
type Verdict struct {
	Accepted bool     `json:"accepted"`
	Reasons  []string `json:"reasons,omitempty"`
}
