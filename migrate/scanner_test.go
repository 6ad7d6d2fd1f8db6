package migrate

import (
	"io/fs"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func migrationFS() fstest.MapFS {
	return fstest.MapFS{
		"db/migration/V1__create_users.sql":     {Data: []byte("CREATE TABLE users (id BIGINT);")},
		"db/migration/V3__add_email_column.sql": {Data: []byte("ALTER TABLE users ADD COLUMN email TEXT;")},
		"db/migration/V2__create_orders.sql":    {Data: []byte("CREATE TABLE orders (id BIGINT);")},
		"db/migration/README.md":                {Data: []byte("not a migration")},
	}
}

// countingFS counts ReadDir calls so tests can prove the scan runs once.
type countingFS struct {
	fs.FS
	readDirs atomic.Int64
}

func (c *countingFS) ReadDir(name string) ([]fs.DirEntry, error) {
	c.readDirs.Add(1)
	return fs.ReadDir(c.FS, name)
}

func TestScanner_Resources(t *testing.T) {
	s := NewScanner(migrationFS(), []string{"db/migration"})

	resources, err := s.Resources()
	require.NoError(t, err)
	require.Len(t, resources, 3)

	// Sorted by version, not by file name.
	assert.Equal(t, int64(1), resources[0].Version)
	assert.Equal(t, int64(2), resources[1].Version)
	assert.Equal(t, int64(3), resources[2].Version)

	assert.Equal(t, "create users", resources[0].Description)
	assert.Equal(t, "V1__create_users.sql", resources[0].Name)
	assert.Equal(t, "db/migration/V1__create_users.sql", resources[0].Path)
}

func TestScanner_ScansOnce(t *testing.T) {
	counting := &countingFS{FS: migrationFS()}
	s := NewScanner(counting, []string{"db/migration"})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resources, err := s.Resources()
			assert.NoError(t, err)
			assert.Len(t, resources, 3)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), counting.readDirs.Load())
}

func TestScanner_CachesErrors(t *testing.T) {
	counting := &countingFS{FS: fstest.MapFS{}}
	s := NewScanner(counting, []string{"missing/dir"})

	_, err1 := s.Resources()
	_, err2 := s.Resources()

	require.Error(t, err1)
	assert.Equal(t, err1, err2)
	assert.Equal(t, int64(1), counting.readDirs.Load())
}

func TestScanner_MultipleLocations(t *testing.T) {
	fsys := fstest.MapFS{
		"db/migration/V1__base.sql": {Data: []byte("SELECT 1;")},
		"db/extra/V2__extra.sql":    {Data: []byte("SELECT 2;")},
	}

	s := NewScanner(fsys, []string{"db/migration", "db/extra"})

	resources, err := s.Resources()
	require.NoError(t, err)
	require.Len(t, resources, 2)
	assert.Equal(t, int64(1), resources[0].Version)
	assert.Equal(t, int64(2), resources[1].Version)
}

func TestScanner_DuplicateVersions(t *testing.T) {
	fsys := fstest.MapFS{
		"db/migration/V1__first.sql":  {Data: []byte("SELECT 1;")},
		"db/migration/V1__second.sql": {Data: []byte("SELECT 2;")},
	}

	s := NewScanner(fsys, []string{"db/migration"})

	_, err := s.Resources()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate migration version 1")
}

func TestScanner_UnknownLocation(t *testing.T) {
	s := NewScanner(fstest.MapFS{}, []string{"does/not/exist"})

	_, err := s.Resources()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does/not/exist")
}

func TestParseResourceName(t *testing.T) {
	t.Run("valid names", func(t *testing.T) {
		res, err := parseResourceName("V42__add_audit_log.sql")
		require.NoError(t, err)
		assert.Equal(t, int64(42), res.Version)
		assert.Equal(t, "add audit log", res.Description)
		assert.Equal(t, "V42__add_audit_log.sql", res.Name)
	})

	t.Run("invalid names", func(t *testing.T) {
		cases := []string{
			"create_users.sql",
			"V__no_version.sql",
			"V1_single_underscore.sql",
			"Vx__not_numeric.sql",
		}
		for _, name := range cases {
			_, err := parseResourceName(name)
			assert.Error(t, err, "name %q", name)
		}
	})
}
