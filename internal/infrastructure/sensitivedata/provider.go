// Package sensitivedata keeps secret plaintexts out of logs and error messages.
package sensitivedata

import (
	"slices"
	"sync"

	"github.com/reglet-dev/envseal/internal/application/ports"
)

// Ensure interface compliance
var _ ports.SensitiveValueProvider = (*Provider)(nil)

// Provider is a thread-safe registry of plaintexts seen during a pass.
// Each value is recorded once.
type Provider struct {
	values []string
	mu     sync.RWMutex
}

// NewProvider creates a new sensitive data provider.
func NewProvider() *Provider {
	return &Provider{
		values: make([]string, 0, 32),
	}
}

// Track registers a sensitive value to be protected.
func (p *Provider) Track(value string) {
	if value == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if slices.Contains(p.values, value) {
		return
	}
	p.values = append(p.values, value)
}

// AllValues returns all tracked sensitive values.
func (p *Provider) AllValues() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return slices.Clone(p.values)
}
