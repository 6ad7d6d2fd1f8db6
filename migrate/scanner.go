// Package migrate discovers and applies versioned SQL schema migrations.
// Scripts follow the V<version>__<description>.sql naming convention and are
// applied in version order against PostgreSQL.
package migrate

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Resource is a discovered migration script.
type Resource struct {
	// Version is the numeric version parsed from the file name.
	Version int64
	// Description is the humanised part of the file name.
	Description string
	// Name is the bare file name.
	Name string
	// Path is the full path within the scanned filesystem.
	Path string
}

// Scanner discovers migration scripts under the configured locations. The
// scan runs at most once: the first caller performs it under the lock while
// concurrent callers block, then everyone reads the cached result.
type Scanner struct {
	fsys      fs.FS
	locations []string

	mu        sync.Mutex
	scanned   bool
	resources []Resource
	scanErr   error
}

// NewScanner creates a scanner over fsys for the given location directories.
func NewScanner(fsys fs.FS, locations []string) *Scanner {
	return &Scanner{fsys: fsys, locations: locations}
}

// FS returns the filesystem the scanner reads from.
func (s *Scanner) FS() fs.FS { return s.fsys }

// Resources returns the discovered migration scripts sorted by version.
// The underlying filesystem scan executes exactly once; its outcome, error
// included, is cached for every subsequent call.
func (s *Scanner) Resources() ([]Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.scanned {
		s.resources, s.scanErr = s.scan()
		s.scanned = true
	}

	return s.resources, s.scanErr
}

func (s *Scanner) scan() ([]Resource, error) {
	var found []Resource

	for _, location := range s.locations {
		entries, err := fs.ReadDir(s.fsys, path.Clean(location))
		if err != nil {
			return nil, fmt.Errorf("wireup: scanning migration location %q: %w", location, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
				continue
			}
			res, err := parseResourceName(entry.Name())
			if err != nil {
				return nil, fmt.Errorf("wireup: migration location %q: %w", location, err)
			}
			res.Path = path.Join(location, entry.Name())
			found = append(found, res)
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Version < found[j].Version })

	for i := 1; i < len(found); i++ {
		if found[i].Version == found[i-1].Version {
			return nil, fmt.Errorf("wireup: duplicate migration version %d (%s, %s)",
				found[i].Version, found[i-1].Name, found[i].Name)
		}
	}

	return found, nil
}

// parseResourceName splits V<version>__<description>.sql into its parts.
func parseResourceName(name string) (Resource, error) {
	base := strings.TrimSuffix(name, ".sql")
	if !strings.HasPrefix(base, "V") {
		return Resource{}, fmt.Errorf("invalid migration file name %q: must start with \"V\"", name)
	}

	versionPart, description, ok := strings.Cut(base[1:], "__")
	if !ok || versionPart == "" {
		return Resource{}, fmt.Errorf("invalid migration file name %q: expected V<version>__<description>.sql", name)
	}

	version, err := strconv.ParseInt(versionPart, 10, 64)
	if err != nil {
		return Resource{}, fmt.Errorf("invalid migration version in %q: %w", name, err)
	}

	return Resource{
		Version:     version,
		Description: strings.ReplaceAll(description, "_", " "),
		Name:        name,
	}, nil
}
