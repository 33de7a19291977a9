package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/md-abdullah-92/edurecords/internal/pkg/dberrors"
)

// QueryLogHook writes every statement to the log: debug on success, warn on
// failure.
type QueryLogHook struct {
	logger zerolog.Logger
}

var _ bun.QueryHook = (*QueryLogHook)(nil)

// NewQueryLogHook creates a QueryLogHook writing to lgr.
func NewQueryLogHook(lgr zerolog.Logger) *QueryLogHook {
	return &QueryLogHook{logger: lgr}
}

func (h *QueryLogHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryLogHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	ev := h.logger.Debug()
	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		ev = h.logger.Warn().
			Err(event.Err).
			Str("kind", string(dberrors.Classify(event.Err))).
			Str("code", dberrors.Code(event.Err))
	}
	ev.Str("operation", event.Operation()).
		Dur("duration", time.Since(event.StartTime)).
		Str("query", event.Query).
		Msg("sql statement")
}
