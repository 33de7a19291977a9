// Package testutil builds throwaway sqlite-backed pools for tests.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/md-abdullah-92/edurecords/internal/app/migrations"
	"github.com/md-abdullah-92/edurecords/internal/db"
)

// QueryCounter counts statements that reach the database.
type QueryCounter struct {
	n atomic.Int64
}

var _ bun.QueryHook = (*QueryCounter)(nil)

func (c *QueryCounter) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (c *QueryCounter) AfterQuery(context.Context, *bun.QueryEvent) {
	c.n.Add(1)
}

// Count returns the number of statements seen since the last Reset.
func (c *QueryCounter) Count() int64 { return c.n.Load() }

// Reset zeroes the counter.
func (c *QueryCounter) Reset() { c.n.Store(0) }

// TestDB is a migrated sqlite database behind a db.Pool.
type TestDB struct {
	Pool    *db.Pool
	Queries *QueryCounter
	t       *testing.T
}

// DefaultPoolConfig mirrors the production defaults with a short acquire timeout.
func DefaultPoolConfig() db.PoolConfig {
	return db.PoolConfig{
		MaxConns:           4,
		WaitForConnections: true,
		AcquireTimeout:     2 * time.Second,
	}
}

// NewTestDB creates a fresh database file under t.TempDir, applies the
// sqlite schema and wraps it in a pool sized by pc. The pool is closed when
// the test ends.
func NewTestDB(t *testing.T, pc db.PoolConfig) *TestDB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "records.db") + "?_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(pc.MaxConns)

	bunDB := db.NewBunDB(sqlDB, "sqlite")
	if _, err := migrations.NewMigrator(bunDB, "sqlite", zerolog.Nop()).Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	counter := &QueryCounter{}
	bunDB.AddQueryHook(counter)

	pool := db.NewPool(bunDB, pc)
	t.Cleanup(func() { _ = pool.Close() })

	return &TestDB{Pool: pool, Queries: counter, t: t}
}

// Seed inserts rows into table and resets the query counter afterwards.
func (d *TestDB) Seed(table string, rows ...map[string]interface{}) {
	d.t.Helper()
	for _, r := range rows {
		values := r
		if _, err := d.Pool.DB().NewInsert().Model(&values).TableExpr("?", bun.Ident(table)).Exec(context.Background()); err != nil {
			d.t.Fatalf("seed %s: %v", table, err)
		}
	}
	d.Queries.Reset()
}

// Count returns the number of rows in table without touching the counter.
func (d *TestDB) Count(table string) int {
	d.t.Helper()
	var n int
	row := d.Pool.DB().DB.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table)
	if err := row.Scan(&n); err != nil {
		d.t.Fatalf("count %s: %v", table, err)
	}
	return n
}
