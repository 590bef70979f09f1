package codegen

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// WriteFile writes the generated text to its destination in one shot,
// creating parent directories as needed. There is no partial or
// incremental write: the previous file content is fully replaced.
func WriteFile(fs afero.Fs, path string, content []byte) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(fs, path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
