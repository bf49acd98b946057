package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed *_config.txt
var SeedFS embed.FS

// Seed writes the packaged default config for id into dir. An existing file
// is kept unless overwrite is set. It reports whether a file was written.
func Seed(dir string, id ID, overwrite bool) (bool, error) {
	data, err := fs.ReadFile(SeedFS, id.FileName())
	if err != nil {
		return false, fmt.Errorf("read seed %s: %w", id, err)
	}
	path := Path(dir, id)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("stat %s: %w", path, err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write seed %s: %w", path, err)
	}
	return true, nil
}
