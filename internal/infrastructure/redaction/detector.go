// Package redaction detects secret-looking text with the gitleaks rule set.
package redaction

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"github.com/zricethezav/gitleaks/v8/config"
	"github.com/zricethezav/gitleaks/v8/detect"

	"github.com/reglet-dev/envseal/internal/application/ports"
)

// Ensure interface compliance
var _ ports.LeakScanner = (*Detector)(nil)

// Finding is one secret-looking span of a scanned value.
type Finding struct {
	RuleID string
	Secret string
}

// Detector wraps a gitleaks detector loaded with the default rules.
// gitleaks accumulates findings on the detector, so Detect calls are serialized.
type Detector struct {
	detector *detect.Detector
	mu       sync.Mutex
}

// NewDetector loads the default gitleaks configuration.
func NewDetector() (*Detector, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(config.DefaultConfig)); err != nil {
		return nil, fmt.Errorf("failed to read gitleaks config: %w", err)
	}

	var vc config.ViperConfig
	if err := v.Unmarshal(&vc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gitleaks config: %w", err)
	}

	cfg, err := vc.Translate()
	if err != nil {
		return nil, fmt.Errorf("failed to translate gitleaks config: %w", err)
	}

	return &Detector{detector: detect.NewDetector(cfg)}, nil
}

// Find returns every finding in value.
func (d *Detector) Find(value string) []Finding {
	if value == "" {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var findings []Finding
	for _, f := range d.detector.Detect(detect.Fragment{Raw: value}) {
		if f.Secret == "" {
			continue
		}
		findings = append(findings, Finding{RuleID: f.RuleID, Secret: f.Secret})
	}
	return findings
}

// Scan returns the distinct ids of the rules matching value.
func (d *Detector) Scan(value string) []string {
	var rules []string
	for _, f := range d.Find(value) {
		if !slices.Contains(rules, f.RuleID) {
			rules = append(rules, f.RuleID)
		}
	}
	return rules
}
