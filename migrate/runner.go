package migrate

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/drblury/wireup/internal/logging"
	"github.com/drblury/wireup/properties"
)

// ConnectFactory allows overriding the database connection for testing.
var ConnectFactory = func(ctx context.Context, databaseURL string) (Conn, error) {
	c, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Conn is the subset of *pgx.Conn the runner needs.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close(ctx context.Context) error
}

// Runner applies pending migrations in version order and records each one in
// the schema-history table. Failures abort immediately; nothing is retried.
type Runner struct {
	props   properties.Migration
	scanner *Scanner
	log     logging.WiringLogger
}

// NewRunner creates a runner for the given migration properties. The scanner
// supplies the discovered scripts; its filesystem is also used to read the
// script bodies.
func NewRunner(props properties.Migration, scanner *Scanner, log logging.WiringLogger) *Runner {
	return &Runner{props: props, scanner: scanner, log: log}
}

// Run applies every pending migration. It connects with the configured
// timeout, ensures the history table exists, and executes each pending
// script in order.
func (r *Runner) Run(ctx context.Context) error {
	resources, err := r.scanner.Resources()
	if err != nil {
		return err
	}

	connectCtx := ctx
	if r.props.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, r.props.ConnectTimeout)
		defer cancel()
	}

	db, err := ConnectFactory(connectCtx, r.props.DatabaseURL)
	if err != nil {
		return fmt.Errorf("wireup: connecting for migration: %w", err)
	}
	defer db.Close(ctx)

	if _, err := db.Exec(ctx, fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			version BIGINT PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL
		)`, pgx.Identifier{r.props.Table}.Sanitize())); err != nil {
		return fmt.Errorf("wireup: ensuring history table %q: %w", r.props.Table, err)
	}

	applied, err := r.appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	baseline := baselineVersion(r.props.BaselineVersion)
	pendingResources := Pending(resources, applied, baseline)

	r.log.Info("Applying migrations", logging.LogFields{
		"discovered": len(resources),
		"pending":    len(pendingResources),
		"baseline":   baseline,
	})

	for _, res := range pendingResources {
		body, err := fs.ReadFile(r.scanner.FS(), res.Path)
		if err != nil {
			return fmt.Errorf("wireup: reading migration %q: %w", res.Path, err)
		}

		if _, err := db.Exec(ctx, string(body)); err != nil {
			return fmt.Errorf("wireup: applying migration %s: %w", res.Name, err)
		}

		if _, err := db.Exec(ctx, fmt.Sprintf(
			`INSERT INTO %s (version, description, applied_at) VALUES ($1, $2, $3)`,
			pgx.Identifier{r.props.Table}.Sanitize()),
			res.Version, res.Description, time.Now().UTC()); err != nil {
			return fmt.Errorf("wireup: recording migration %s: %w", res.Name, err)
		}

		r.log.Info("Applied migration", logging.LogFields{
			"version":     res.Version,
			"description": res.Description,
		})
	}

	return nil
}

func (r *Runner) appliedVersions(ctx context.Context, db Conn) (map[int64]struct{}, error) {
	result, err := db.Query(ctx, fmt.Sprintf(
		`SELECT version FROM %s`, pgx.Identifier{r.props.Table}.Sanitize()))
	if err != nil {
		return nil, fmt.Errorf("wireup: reading history table %q: %w", r.props.Table, err)
	}
	defer result.Close()

	applied := make(map[int64]struct{})
	for result.Next() {
		var version int64
		if err := result.Scan(&version); err != nil {
			return nil, fmt.Errorf("wireup: scanning history row: %w", err)
		}
		applied[version] = struct{}{}
	}
	return applied, result.Err()
}

// Pending returns the resources above the baseline that have not been
// applied yet, preserving version order.
func Pending(resources []Resource, applied map[int64]struct{}, baseline int64) []Resource {
	var pendingResources []Resource
	for _, res := range resources {
		if res.Version <= baseline {
			continue
		}
		if _, done := applied[res.Version]; done {
			continue
		}
		pendingResources = append(pendingResources, res)
	}
	return pendingResources
}

func baselineVersion(raw string) int64 {
	if raw == "" {
		return 0
	}
	var v int64
	_, err := fmt.Sscanf(raw, "%d", &v)
	if err != nil {
		return 0
	}
	return v
}
