package terminal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/reglet-dev/envseal/internal/application/ports"
)

// Ensure interface compliance
var _ ports.Prompter = (*Prompter)(nil)

// Prompter asks for secret values with a masked huh input.
type Prompter struct {
	interactive func() bool
	accessible  bool
}

// PrompterOption configures a Prompter.
type PrompterOption func(*Prompter)

// WithInteractive overrides terminal detection.
func WithInteractive(interactive bool) PrompterOption {
	return func(p *Prompter) {
		p.interactive = func() bool { return interactive }
	}
}

// WithAccessible switches huh to its line-based accessible mode.
func WithAccessible(accessible bool) PrompterOption {
	return func(p *Prompter) {
		p.accessible = accessible
	}
}

// NewPrompter creates a terminal prompter.
func NewPrompter(opts ...PrompterOption) *Prompter {
	p := &Prompter{interactive: IsInteractive}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prompt shows message with the field label as description and returns the
// entered value. The default value is pre-filled. huh has no per-field submit
// label, so SubmitName only appears in the key hint.
func (p *Prompter) Prompt(ctx context.Context, message string, opts ports.PromptOptions) (string, error) {
	if !p.interactive() {
		return "", FormatNonInteractiveError(message, opts.Label)
	}

	value := opts.DefaultValue
	description := opts.Label
	if opts.SubmitName != "" {
		description = fmt.Sprintf("%s (enter: %s)", opts.Label, opts.SubmitName)
	}

	input := huh.NewInput().
		Title(message).
		Description(description).
		EchoMode(huh.EchoModePassword).
		Value(&value)

	err := huh.NewForm(huh.NewGroup(input)).
		WithAccessible(p.accessible).
		RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return "", fmt.Errorf("prompt for %q aborted: %w", opts.Label, err)
	}
	if err != nil {
		return "", fmt.Errorf("failed to prompt for %q: %w", opts.Label, err)
	}

	return value, nil
}

// FormatNonInteractiveError creates a helpful error message for non-interactive mode.
func FormatNonInteractiveError(message, label string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "%s (%s)\n\n", message, label)
	msg.WriteString("To provide this value:\n")
	msg.WriteString("  1. Run interactively and enter it when prompted\n")
	msg.WriteString("  2. Import once on a machine whose store already holds it\n")
	return fmt.Errorf("%w: %s", ErrNonInteractive, msg.String())
}
