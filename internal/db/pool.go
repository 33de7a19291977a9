package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/uptrace/bun"
	"golang.org/x/sync/semaphore"

	"github.com/md-abdullah-92/edurecords/internal/pkg/apperrors"
)

// PoolConfig sizes a Pool.
type PoolConfig struct {
	// MaxConns caps concurrently open connections.
	MaxConns int
	// QueueLimit caps callers waiting for a connection once MaxConns are in
	// use. Zero leaves the queue unbounded.
	QueueLimit int
	// WaitForConnections false rejects any acquire beyond MaxConns outright.
	WaitForConnections bool
	// AcquireTimeout bounds the wait for a connection.
	AcquireTimeout time.Duration
}

// Pool hands out one connection per caller and tracks acquisition outcomes.
type Pool struct {
	db             *bun.DB
	gate           *semaphore.Weighted
	capacity       int64
	maxConns       int
	queueLimit     int
	acquireTimeout time.Duration
	closed         atomic.Bool

	metrics struct {
		acquired  atomic.Int64
		released  atomic.Int64
		exhausted atomic.Int64
		timeouts  atomic.Int64
	}
}

// PoolStats is a point-in-time snapshot of the pool.
type PoolStats struct {
	MaxConns        int   `json:"maxConns"`
	QueueLimit      int   `json:"queueLimit"`
	InUse           int64 `json:"inUse"`
	Acquired        int64 `json:"acquired"`
	Released        int64 `json:"released"`
	Exhausted       int64 `json:"exhausted"`
	Timeouts        int64 `json:"timeouts"`
	OpenConnections int   `json:"openConnections"`
	Idle            int   `json:"idle"`
	WaitCount       int64 `json:"waitCount"`
}

// NewPool builds a Pool over db. db must already be sized with MaxConns.
func NewPool(db *bun.DB, cfg PoolConfig) *Pool {
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = 10
	}
	if cfg.AcquireTimeout <= 0 {
		cfg.AcquireTimeout = 10 * time.Second
	}

	p := &Pool{
		db:             db,
		maxConns:       cfg.MaxConns,
		queueLimit:     cfg.QueueLimit,
		acquireTimeout: cfg.AcquireTimeout,
	}

	switch {
	case !cfg.WaitForConnections:
		p.capacity = int64(cfg.MaxConns)
	case cfg.QueueLimit > 0:
		p.capacity = int64(cfg.MaxConns + cfg.QueueLimit)
	}
	if p.capacity > 0 {
		p.gate = semaphore.NewWeighted(p.capacity)
	}

	return p
}

// DB exposes the underlying handle for schema management.
func (p *Pool) DB() *bun.DB {
	return p.db
}

// Acquire borrows a connection. The caller must Release it.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	if p.closed.Load() {
		return nil, apperrors.ErrPoolClosed
	}

	if p.gate != nil && !p.gate.TryAcquire(1) {
		p.metrics.exhausted.Add(1)
		return nil, fmt.Errorf("%w: %d connections and %d waiters in use", apperrors.ErrPoolExhausted, p.maxConns, p.queueLimit)
	}

	acquireCtx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()

	conn, err := p.db.Conn(acquireCtx)
	if err != nil {
		if p.gate != nil {
			p.gate.Release(1)
		}
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			p.metrics.timeouts.Add(1)
			return nil, fmt.Errorf("%w after %s", apperrors.ErrAcquireTimeout, p.acquireTimeout)
		case errors.Is(err, sql.ErrConnDone) || p.closed.Load():
			return nil, apperrors.ErrPoolClosed
		default:
			return nil, fmt.Errorf("%w: acquire connection: %w", apperrors.ErrBackend, err)
		}
	}

	p.metrics.acquired.Add(1)
	return &Conn{Conn: conn, pool: p}, nil
}

// Ping checks the database answers.
func (p *Pool) Ping(ctx context.Context) error {
	if p.closed.Load() {
		return apperrors.ErrPoolClosed
	}
	return p.db.PingContext(ctx)
}

// Stats returns the current counters.
func (p *Pool) Stats() PoolStats {
	dbStats := p.db.Stats()
	acquired := p.metrics.acquired.Load()
	released := p.metrics.released.Load()
	return PoolStats{
		MaxConns:        p.maxConns,
		QueueLimit:      p.queueLimit,
		InUse:           acquired - released,
		Acquired:        acquired,
		Released:        released,
		Exhausted:       p.metrics.exhausted.Load(),
		Timeouts:        p.metrics.timeouts.Load(),
		OpenConnections: dbStats.OpenConnections,
		Idle:            dbStats.Idle,
		WaitCount:       dbStats.WaitCount,
	}
}

// Close stops new acquisitions and closes every connection.
func (p *Pool) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.db.Close()
}

// Conn is a borrowed connection.
type Conn struct {
	bun.Conn
	pool *Pool
	once sync.Once
}

// Release returns the connection to the pool. Calling it twice is a no-op.
func (c *Conn) Release() {
	c.once.Do(func() {
		_ = c.Conn.Close()
		if c.pool.gate != nil {
			c.pool.gate.Release(1)
		}
		c.pool.metrics.released.Add(1)
	})
}
