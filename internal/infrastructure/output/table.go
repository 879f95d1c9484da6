package output

import (
	"fmt"
	"io"
	"strings"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// TableFormatter renders reports as human-readable text.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true, // Default to true, caller can disable
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// FormatPass writes a pass summary.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) FormatPass(s *PassSummary) error {
	if s.Canceled {
		fmt.Fprintf(f.writer, "%s %s of %s canceled\n", f.colorize("-", colorGray), s.Action, s.Workspace)
		return nil
	}

	symbol := f.colorize("✓", colorGreen)
	if len(s.Failures) > 0 {
		symbol = f.colorize("!", colorYellow)
	}

	switch s.Action {
	case "export":
		fmt.Fprintf(f.writer, "%s Exported %s to %s\n", symbol, f.colorize(s.Workspace, colorBold), s.FilePath)
		fmt.Fprintf(f.writer, "  Secrets redacted: %d of %d\n", s.Secrets-len(s.Failures), s.Secrets)
		if s.Purged > 0 {
			fmt.Fprintf(f.writer, "  Stale store entries removed: %d\n", s.Purged)
		}
	default:
		fmt.Fprintf(f.writer, "%s Imported %s from %s\n", symbol, f.colorize(s.Workspace, colorBold), s.FilePath)
		fmt.Fprintf(f.writer, "  Secrets restored: %d\n", s.Secrets)
		for _, source := range sortedSources(s.Sources) {
			fmt.Fprintf(f.writer, "    %s: %d\n", source, s.Sources[source])
		}
	}

	for _, failure := range s.Failures {
		fmt.Fprintf(f.writer, "  %s %s: %s\n", f.colorize("✗", colorRed), failure.Ref, failure.Error)
	}
	if len(s.Leaks) > 0 {
		fmt.Fprintln(f.writer, f.colorize("  Untagged values that look like secrets:", colorYellow))
		for _, leak := range s.Leaks {
			fmt.Fprintf(f.writer, "    %s/%s (%s)\n", leak.EnvID, leak.Field, leak.RuleID)
		}
	}
	fmt.Fprintf(f.writer, "  %s\n", f.colorize("pass "+s.PassID, colorGray))
	return nil
}

// FormatStore writes a store listing.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) FormatStore(l *StoreListing) error {
	if len(l.Entries) == 0 {
		fmt.Fprintf(f.writer, "No store entries for %s.\n", l.Workspace)
		return nil
	}

	width := len("KEY")
	for _, e := range l.Entries {
		width = max(width, len(e.Key))
	}

	fmt.Fprintln(f.writer, f.colorize(fmt.Sprintf("%-*s  %-6s  %s", width, "KEY", "KIND", "VALUE"), colorBold))
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", width+16), colorGray))
	for _, e := range l.Entries {
		fmt.Fprintf(f.writer, "%-*s  %-6s  %s\n", width, e.Key, e.Kind, e.Value)
	}
	return nil
}
