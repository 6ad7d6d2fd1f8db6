package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath resolves a configured migration location to an absolute
// filesystem directory. A "file://" prefix is accepted and stripped. I/O
// failures are wrapped with the offending location; all failures are fatal
// at startup.
func ResolvePath(location string) (string, error) {
	trimmed := strings.TrimPrefix(location, "file://")
	if trimmed == "" {
		return "", fmt.Errorf("wireup: empty migration location")
	}

	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("wireup: resolving migration location %q: %w", location, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("wireup: resolving migration location %q: %w", location, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("wireup: migration location %q is not a directory", location)
	}

	return abs, nil
}

// NewOSScanner resolves every configured location against the OS filesystem
// and returns a scanner rooted at "/". Location resolution failures are
// reported immediately, not deferred to the first scan.
func NewOSScanner(locations []string) (*Scanner, error) {
	resolved := make([]string, 0, len(locations))
	for _, location := range locations {
		abs, err := ResolvePath(location)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, strings.TrimPrefix(abs, string(filepath.Separator)))
	}
	return NewScanner(os.DirFS(string(filepath.Separator)), resolved), nil
}
