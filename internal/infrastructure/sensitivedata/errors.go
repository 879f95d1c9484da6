package sensitivedata

import (
	"errors"
	"strings"

	"github.com/reglet-dev/envseal/internal/application/ports"
)

// SafeError returns err with every tracked value in its message replaced.
// When nothing matches, the original error is returned so its type survives.
func SafeError(err error, provider ports.SensitiveValueProvider) error {
	if err == nil || provider == nil {
		return err
	}

	original := err.Error()
	msg := original
	for _, secret := range provider.AllValues() {
		if secret != "" {
			msg = strings.ReplaceAll(msg, secret, redacted)
		}
	}

	if msg == original {
		return err
	}
	return errors.New(msg)
}
