package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/md-abdullah-92/edurecords/internal/app/models"
	"github.com/md-abdullah-92/edurecords/internal/db"
	"github.com/md-abdullah-92/edurecords/internal/pkg/apperrors"
	"github.com/md-abdullah-92/edurecords/internal/pkg/dberrors"
	"github.com/md-abdullah-92/edurecords/internal/pkg/logger"
)

// Executor runs exactly one statement per call on a connection borrowed from
// the pool and returned before the call ends.
type Executor struct {
	pool *db.Pool
}

// NewExecutor creates a new Executor
func NewExecutor(pool *db.Pool) *Executor {
	return &Executor{pool: pool}
}

// Select returns every row of table matching all conditions. An empty match
// is an empty slice, not an error.
func (e *Executor) Select(ctx context.Context, table string, conds []models.Condition) ([]models.Row, error) {
	conn, err := e.pool.Acquire(ctx)
	if err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error acquiring connection for select")
		return nil, err
	}
	defer conn.Release()

	q := conn.NewSelect().TableExpr("?", bun.Ident(table))
	for _, c := range conds {
		q = q.Where("? = ?", bun.Ident(c.Column), c.Value)
	}

	var raw []map[string]interface{}
	if err := q.Scan(ctx, &raw); err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.Error().Err(err).
			Str("table", table).
			Str("kind", string(dberrors.Classify(err))).
			Str("code", dberrors.Code(err)).
			Msg("Error executing select query")
		return nil, fmt.Errorf("%w: select from %s: %w", apperrors.ErrBackend, table, err)
	}

	rows := make([]models.Row, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, normalizeRow(r))
	}
	return rows, nil
}

// Insert writes one row into table. No uniqueness is enforced here.
func (e *Executor) Insert(ctx context.Context, table string, values map[string]interface{}) error {
	conn, err := e.pool.Acquire(ctx)
	if err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error acquiring connection for insert")
		return err
	}
	defer conn.Release()

	_, err = conn.NewInsert().Model(&values).TableExpr("?", bun.Ident(table)).Exec(ctx)
	if err != nil {
		logger.Error().Err(err).
			Str("table", table).
			Str("kind", string(dberrors.Classify(err))).
			Str("code", dberrors.Code(err)).
			Msg("Error executing insert query")
		return fmt.Errorf("%w: insert into %s: %w", apperrors.ErrBackend, table, err)
	}
	return nil
}

// normalizeRow turns driver byte slices (mysql text and decimal columns) into
// strings so they serialize as JSON text instead of base64.
func normalizeRow(r map[string]interface{}) models.Row {
	row := make(models.Row, len(r))
	for k, v := range r {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
			continue
		}
		row[k] = v
	}
	return row
}
