package terminal

import (
	"context"
	"errors"

	"github.com/reglet-dev/envseal/internal/application/ports"
)

// Ensure interface compliance
var _ ports.FileDialogs = (*StaticDialogs)(nil)

// ErrNoFile is returned by StaticDialogs without a configured path.
var ErrNoFile = errors.New("no file given; pass --file or run interactively")

// StaticDialogs answers every dialog with a fixed path, for --file runs.
type StaticDialogs struct {
	Path string
}

// ShowSaveDialog returns the configured path.
func (d StaticDialogs) ShowSaveDialog(_ context.Context, opts ports.DialogOptions) (ports.SaveDialogResult, error) {
	if d.Path == "" {
		return ports.SaveDialogResult{}, ErrNoFile
	}
	return ports.SaveDialogResult{FilePath: withExtension(d.Path, opts.Filters)}, nil
}

// ShowOpenDialog returns the configured path.
func (d StaticDialogs) ShowOpenDialog(_ context.Context, _ ports.DialogOptions) (ports.OpenDialogResult, error) {
	if d.Path == "" {
		return ports.OpenDialogResult{}, ErrNoFile
	}
	return ports.OpenDialogResult{FilePaths: []string{d.Path}}, nil
}
