package sensitivedata

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/reglet-dev/envseal/internal/application/ports"
	"github.com/reglet-dev/envseal/internal/infrastructure/redaction"
)

const redacted = "[REDACTED]"

// Config holds the configuration for the Redactor.
type Config struct {
	// Custom patterns to redact (e.g. "INT-[A-Z0-9]{16}")
	Patterns []string
	// Detector is reused when set instead of loading the gitleaks rules again
	Detector *redaction.Detector
	// If true, skip the gitleaks rule set and use only regex patterns
	DisableGitleaks bool
}

// Redactor scrubs tracked plaintexts and secret-looking text from strings.
// Fields are read-only after construction.
type Redactor struct {
	provider ports.SensitiveValueProvider
	detector *redaction.Detector
	patterns []*regexp.Regexp
}

// New creates a Redactor without tracked values.
func New(cfg Config) (*Redactor, error) {
	return NewWithProvider(cfg, nil)
}

// NewWithProvider creates a Redactor that also scrubs every value tracked by
// provider at scrub time.
func NewWithProvider(cfg Config, provider ports.SensitiveValueProvider) (*Redactor, error) {
	r := &Redactor{
		provider: provider,
		patterns: make([]*regexp.Regexp, 0, len(defaultPatterns)+len(cfg.Patterns)),
	}

	switch {
	case cfg.DisableGitleaks:
	case cfg.Detector != nil:
		r.detector = cfg.Detector
	default:
		detector, err := redaction.NewDetector()
		if err != nil {
			return nil, err
		}
		r.detector = detector
	}

	for _, p := range defaultPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to compile default pattern %s: %w", p, err)
		}
		r.patterns = append(r.patterns, re)
	}

	for _, p := range cfg.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to compile custom pattern %s: %w", p, err)
		}
		r.patterns = append(r.patterns, re)
	}

	return r, nil
}

// ScrubString replaces sensitive text in input with [REDACTED].
// Tracked values go first, longest first, so a value that contains another
// is replaced whole.
func (r *Redactor) ScrubString(input string) string {
	if input == "" {
		return ""
	}

	result := input

	if r.provider != nil {
		values := r.provider.AllValues()
		slices.SortFunc(values, func(a, b string) int { return cmp.Compare(len(b), len(a)) })
		for _, v := range values {
			if v != "" {
				result = strings.ReplaceAll(result, v, redacted)
			}
		}
	}

	if r.detector != nil {
		for _, f := range r.detector.Find(result) {
			result = strings.ReplaceAll(result, f.Secret, redacted)
		}
	}

	for _, re := range r.patterns {
		result = re.ReplaceAllString(result, redacted)
	}

	return result
}

// defaultPatterns contains regexes for common secrets.
var defaultPatterns = []string{
	// AWS Access Key ID
	`\b((?:AKIA|ABIA|ACCA|ASIA)[0-9A-Z]{16})\b`,
	// Generic Private Key Header
	`-----BEGIN [A-Z ]+ PRIVATE KEY-----`,
	// Github Token
	`gh[pousr]_[A-Za-z0-9_]{36,255}`,
	// Slack Token
	`xox[baprs]-([0-9a-zA-Z]{10,48})?`,
	// Bearer credentials
	`(?i)\bbearer\s+[A-Za-z0-9\-._~+/]{16,}=*`,
}
