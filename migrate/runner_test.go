package migrate

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drblury/wireup/internal/logging"
	"github.com/drblury/wireup/properties"
)

type fakeRows struct {
	versions []int64
	idx      int
}

func (r *fakeRows) Next() bool { return r.idx < len(r.versions) }
func (r *fakeRows) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.versions[r.idx]
	r.idx++
	return nil
}
func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

type fakeConn struct {
	applied  []int64
	execSQL  []string
	execErr  error
	queryErr error
	closed   bool
}

func (c *fakeConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if c.execErr != nil {
		return pgconn.CommandTag{}, c.execErr
	}
	c.execSQL = append(c.execSQL, sql)
	return pgconn.CommandTag{}, nil
}

func (c *fakeConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if c.queryErr != nil {
		return nil, c.queryErr
	}
	return &fakeRows{versions: c.applied}, nil
}

func (c *fakeConn) Close(ctx context.Context) error {
	c.closed = true
	return nil
}

func stubConnect(t *testing.T, conn Conn, err error) {
	original := ConnectFactory
	t.Cleanup(func() { ConnectFactory = original })
	ConnectFactory = func(ctx context.Context, databaseURL string) (Conn, error) {
		return conn, err
	}
}

func runnerProps() properties.Migration {
	return properties.Migration{
		Enabled:     true,
		DatabaseURL: "postgres://app@db:5432/app",
		Locations:   []string{"db/migration"},
		Table:       "schema_history",
	}
}

func TestRunner_Run(t *testing.T) {
	fsys := fstest.MapFS{
		"db/migration/V1__create_users.sql":  {Data: []byte("CREATE TABLE users (id BIGINT);")},
		"db/migration/V2__create_orders.sql": {Data: []byte("CREATE TABLE orders (id BIGINT);")},
		"db/migration/V3__add_email.sql":     {Data: []byte("ALTER TABLE users ADD COLUMN email TEXT;")},
	}

	t.Run("applies only pending scripts in order", func(t *testing.T) {
		conn := &fakeConn{applied: []int64{1}}
		stubConnect(t, conn, nil)

		runner := NewRunner(runnerProps(), NewScanner(fsys, []string{"db/migration"}), logging.Nop())
		require.NoError(t, runner.Run(context.Background()))

		// CREATE TABLE, then body + history insert per pending script.
		require.Len(t, conn.execSQL, 5)
		assert.Contains(t, conn.execSQL[0], "CREATE TABLE IF NOT EXISTS")
		assert.Contains(t, conn.execSQL[0], `"schema_history"`)
		assert.Equal(t, "CREATE TABLE orders (id BIGINT);", conn.execSQL[1])
		assert.Contains(t, conn.execSQL[2], "INSERT INTO")
		assert.Equal(t, "ALTER TABLE users ADD COLUMN email TEXT;", conn.execSQL[3])
		assert.Contains(t, conn.execSQL[4], "INSERT INTO")
		assert.True(t, conn.closed)
	})

	t.Run("baseline skips old scripts", func(t *testing.T) {
		conn := &fakeConn{}
		stubConnect(t, conn, nil)

		props := runnerProps()
		props.BaselineVersion = "2"

		runner := NewRunner(props, NewScanner(fsys, []string{"db/migration"}), logging.Nop())
		require.NoError(t, runner.Run(context.Background()))

		require.Len(t, conn.execSQL, 3)
		assert.Equal(t, "ALTER TABLE users ADD COLUMN email TEXT;", conn.execSQL[1])
	})

	t.Run("connection failure is fatal", func(t *testing.T) {
		stubConnect(t, nil, errors.New("connection refused"))

		runner := NewRunner(runnerProps(), NewScanner(fsys, []string{"db/migration"}), logging.Nop())
		err := runner.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("scan failure is fatal", func(t *testing.T) {
		stubConnect(t, &fakeConn{}, nil)

		runner := NewRunner(runnerProps(), NewScanner(fstest.MapFS{}, []string{"missing"}), logging.Nop())
		err := runner.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("script failure aborts the run", func(t *testing.T) {
		conn := &fakeConn{execErr: errors.New("syntax error")}
		stubConnect(t, conn, nil)

		runner := NewRunner(runnerProps(), NewScanner(fsys, []string{"db/migration"}), logging.Nop())
		err := runner.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "syntax error")
	})
}

func TestPending(t *testing.T) {
	resources := []Resource{
		{Version: 1, Name: "V1__a.sql"},
		{Version: 2, Name: "V2__b.sql"},
		{Version: 3, Name: "V3__c.sql"},
		{Version: 4, Name: "V4__d.sql"},
	}

	t.Run("filters applied versions", func(t *testing.T) {
		applied := map[int64]struct{}{1: {}, 3: {}}
		pending := Pending(resources, applied, 0)

		require.Len(t, pending, 2)
		assert.Equal(t, int64(2), pending[0].Version)
		assert.Equal(t, int64(4), pending[1].Version)
	})

	t.Run("baseline excludes at and below", func(t *testing.T) {
		pending := Pending(resources, nil, 2)

		require.Len(t, pending, 2)
		assert.Equal(t, int64(3), pending[0].Version)
	})

	t.Run("nothing pending", func(t *testing.T) {
		applied := map[int64]struct{}{1: {}, 2: {}, 3: {}, 4: {}}
		assert.Empty(t, Pending(resources, applied, 0))
	})
}

func TestBaselineVersion(t *testing.T) {
	assert.Equal(t, int64(0), baselineVersion(""))
	assert.Equal(t, int64(7), baselineVersion("7"))
	assert.Equal(t, int64(0), baselineVersion("not-a-number"))
}
