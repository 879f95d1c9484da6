package terminal

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/afero"

	"github.com/reglet-dev/envseal/internal/application/ports"
)

// Ensure interface compliance
var _ ports.FileDialogs = (*Dialogs)(nil)

const defaultFileName = "workspace.json"

// Dialogs lets the operator choose export and import files in the terminal.
// Aborting a dialog is a cancellation, not an error.
type Dialogs struct {
	fs         afero.Fs
	accessible bool
}

// NewDialogs creates terminal file dialogs. fs is used to check for
// existing files.
func NewDialogs(fs afero.Fs, accessible bool) *Dialogs {
	return &Dialogs{fs: fs, accessible: accessible}
}

// ShowSaveDialog asks for a target path, pre-filled from opts.DefaultPath,
// and confirms before overwriting an existing file.
func (d *Dialogs) ShowSaveDialog(ctx context.Context, opts ports.DialogOptions) (ports.SaveDialogResult, error) {
	path := savePath(d.fs, opts.DefaultPath)

	input := huh.NewInput().
		Title(opts.Title).
		Description(describeFilters(opts.Filters)).
		Value(&path).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("path is required")
			}
			return nil
		})

	if err := d.run(ctx, input); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ports.SaveDialogResult{Canceled: true}, nil
		}
		return ports.SaveDialogResult{}, fmt.Errorf("failed to run save dialog: %w", err)
	}
	path = withExtension(strings.TrimSpace(path), opts.Filters)

	if exists, _ := afero.Exists(d.fs, path); exists {
		overwrite := false
		confirm := huh.NewConfirm().
			Title(fmt.Sprintf("%s already exists. Overwrite?", path)).
			Affirmative(opts.ButtonLabel).
			Negative("Cancel").
			Value(&overwrite)
		if err := d.run(ctx, confirm); err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return ports.SaveDialogResult{}, fmt.Errorf("failed to run overwrite confirmation: %w", err)
		}
		if !overwrite {
			return ports.SaveDialogResult{Canceled: true}, nil
		}
	}

	return ports.SaveDialogResult{FilePath: path}, nil
}

// ShowOpenDialog lets the operator pick one file matching opts.Filters,
// starting in the directory of opts.DefaultPath.
func (d *Dialogs) ShowOpenDialog(ctx context.Context, opts ports.DialogOptions) (ports.OpenDialogResult, error) {
	var path string

	picker := huh.NewFilePicker().
		Title(opts.Title).
		Description(describeFilters(opts.Filters)).
		CurrentDirectory(startDirectory(d.fs, opts.DefaultPath)).
		AllowedTypes(allowedTypes(opts.Filters)).
		FileAllowed(true).
		DirAllowed(false).
		Value(&path)

	if err := d.run(ctx, picker); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ports.OpenDialogResult{Canceled: true}, nil
		}
		return ports.OpenDialogResult{}, fmt.Errorf("failed to run open dialog: %w", err)
	}
	if path == "" {
		return ports.OpenDialogResult{Canceled: true}, nil
	}

	return ports.OpenDialogResult{FilePaths: []string{path}}, nil
}

func (d *Dialogs) run(ctx context.Context, field huh.Field) error {
	return huh.NewForm(huh.NewGroup(field)).
		WithAccessible(d.accessible).
		RunWithContext(ctx)
}

// savePath turns a dialog default into an editable file path. Directories
// get the default file name appended.
func savePath(fs afero.Fs, defaultPath string) string {
	if defaultPath == "" {
		defaultPath = "."
	}
	if isDir, _ := afero.IsDir(fs, defaultPath); isDir {
		return filepath.Join(defaultPath, defaultFileName)
	}
	return defaultPath
}

// startDirectory returns defaultPath when it is a directory, its parent
// when that exists, or the working directory.
func startDirectory(fs afero.Fs, defaultPath string) string {
	if isDir, _ := afero.IsDir(fs, defaultPath); isDir {
		return defaultPath
	}
	if dir := filepath.Dir(defaultPath); dir != "." {
		if isDir, _ := afero.IsDir(fs, dir); isDir {
			return dir
		}
	}
	return "."
}

// withExtension adds the first filter extension when path has none.
func withExtension(path string, filters []ports.FileFilter) string {
	if path == "" || filepath.Ext(path) != "" {
		return path
	}
	for _, f := range filters {
		if len(f.Extensions) > 0 {
			return path + "." + f.Extensions[0]
		}
	}
	return path
}

func allowedTypes(filters []ports.FileFilter) []string {
	var types []string
	for _, f := range filters {
		for _, ext := range f.Extensions {
			types = append(types, "."+strings.TrimPrefix(ext, "."))
		}
	}
	return types
}

func describeFilters(filters []ports.FileFilter) string {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		exts := make([]string, 0, len(f.Extensions))
		for _, ext := range f.Extensions {
			exts = append(exts, "*."+strings.TrimPrefix(ext, "."))
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Name, strings.Join(exts, ", ")))
	}
	return strings.Join(parts, "; ")
}
