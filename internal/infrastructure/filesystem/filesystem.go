// Package filesystem adapts afero to the FileSystem port.
package filesystem

import (
	"fmt"
	"path/filepath"

	"github.com/reglet-dev/envseal/internal/application/ports"
	"github.com/spf13/afero"
)

// Ensure interface compliance
var _ ports.FileSystem = (*FileSystem)(nil)

// FileSystem reads and writes export files.
type FileSystem struct {
	fs afero.Fs
}

// New creates a FileSystem over fs.
func New(fs afero.Fs) *FileSystem {
	return &FileSystem{fs: fs}
}

// NewOS creates a FileSystem over the real file system.
func NewOS() *FileSystem {
	return New(afero.NewOsFs())
}

// ReadFile returns the file contents.
func (f *FileSystem) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile creates or truncates path. Exports hold no plaintext secrets,
// so they are written with the usual 0644.
func (f *FileSystem) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		//nolint:gosec // G301: export directories are user-chosen
		if err := f.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	//nolint:gosec // G306: export files are meant to be shared
	if err := afero.WriteFile(f.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
