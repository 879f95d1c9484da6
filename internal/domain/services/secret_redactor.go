package services

import "github.com/reglet-dev/envseal/internal/domain/entities"

// RedactionResult is the outcome of obfuscating one located secret.
type RedactionResult struct {
	Err    error
	Secret entities.LocatedSecret
}

// OK reports whether the field was redacted.
func (r RedactionResult) OK() bool {
	return r.Err == nil
}

// RedactionReport collects per-field redaction outcomes.
type RedactionReport struct {
	Results []RedactionResult
}

// Failed returns the results that could not be applied.
func (r *RedactionReport) Failed() []RedactionResult {
	var failed []RedactionResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Redacted returns the number of fields successfully obfuscated.
func (r *RedactionReport) Redacted() int {
	return len(r.Results) - len(r.Failed())
}

// SecretRedactor overwrites located secrets with the obfuscation constant.
type SecretRedactor struct{}

// NewSecretRedactor creates a new secret redactor.
func NewSecretRedactor() *SecretRedactor {
	return &SecretRedactor{}
}

// RedactSecret obfuscates a single located secret in place.
func (r *SecretRedactor) RedactSecret(doc *entities.Document, secret entities.LocatedSecret) error {
	return doc.SetMarker(secret.EnvID, secret.Field, entities.ObfuscatedValue)
}

// Redact obfuscates every located secret. A failing field does not stop the others.
func (r *SecretRedactor) Redact(doc *entities.Document, secrets []entities.LocatedSecret) *RedactionReport {
	report := &RedactionReport{Results: make([]RedactionResult, 0, len(secrets))}
	for _, secret := range secrets {
		report.Results = append(report.Results, RedactionResult{
			Secret: secret,
			Err:    r.RedactSecret(doc, secret),
		})
	}
	return report
}
