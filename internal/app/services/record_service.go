package services

import (
	"context"
	"fmt"

	"github.com/md-abdullah-92/edurecords/internal/app/models"
	"github.com/md-abdullah-92/edurecords/internal/app/repositories"
	"github.com/md-abdullah-92/edurecords/internal/pkg/apperrors"
	"github.com/md-abdullah-92/edurecords/internal/pkg/auth"
	"github.com/md-abdullah-92/edurecords/internal/pkg/logger"
)

// RecordNotFoundMessage is the 404 body for every lookup.
const RecordNotFoundMessage = "Record not found"

// RecordService defines the read operations over the records tables
type RecordService interface {
	// Lookup validates params against l and runs its single query.
	Lookup(ctx context.Context, l models.Lookup, params Params) ([]models.Row, error)
	// SemesterResults serves /getResults/:semester.
	SemesterResults(ctx context.Context, semester string, params Params) ([]models.Row, error)
	// CreatorInfo serves /VDSCreatorInfo.
	CreatorInfo(ctx context.Context, params Params) ([]models.Row, error)
}

// RecordServiceConfig selects the schema generation and password mode.
type RecordServiceConfig struct {
	// Scoped makes every Scoped filter of a lookup required.
	Scoped bool
	// HashedPasswords means creator rows store bcrypt hashes.
	HashedPasswords bool
}

// recordServiceImpl implements the RecordService interface
type recordServiceImpl struct {
	exec *repositories.Executor
	cfg  RecordServiceConfig
}

// NewRecordService creates a new record service instance
func NewRecordService(exec *repositories.Executor, cfg RecordServiceConfig) RecordService {
	return &recordServiceImpl{exec: exec, cfg: cfg}
}

// conditions turns params into the WHERE conditions of l, or a validation
// error naming every required input when one is missing.
func (s *recordServiceImpl) conditions(l models.Lookup, params Params) ([]models.Condition, error) {
	required := l.Required
	var optional []models.Filter
	if s.cfg.Scoped {
		required = append(append([]models.Filter{}, l.Required...), l.Scoped...)
	} else {
		optional = l.Scoped
	}

	conds := make([]models.Condition, 0, len(required)+len(optional)+len(l.Fixed))
	missing := false
	for _, f := range required {
		v, ok := params.value(f.Param)
		if !ok {
			missing = true
			continue
		}
		conds = append(conds, models.Condition{Column: f.Column, Value: v})
	}
	if missing {
		labels := make([]string, len(required))
		for i, f := range required {
			labels[i] = f.Label
		}
		return nil, apperrors.NewBadRequestError(requiredMessage(labels))
	}

	for _, f := range optional {
		if v, ok := params.value(f.Param); ok {
			conds = append(conds, models.Condition{Column: f.Column, Value: v})
		}
	}
	return append(conds, l.Fixed...), nil
}

func (s *recordServiceImpl) Lookup(ctx context.Context, l models.Lookup, params Params) ([]models.Row, error) {
	conds, err := s.conditions(l, params)
	if err != nil {
		return nil, err
	}

	rows, err := s.exec.Select(ctx, l.Table, conds)
	if err != nil {
		return nil, fmt.Errorf("%s lookup: %w", l.Name, err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewNotFoundError(RecordNotFoundMessage)
	}
	return rows, nil
}

func (s *recordServiceImpl) SemesterResults(ctx context.Context, semester string, params Params) ([]models.Row, error) {
	sem, ok := models.ParseSemester(semester)
	if !ok {
		return nil, apperrors.NewBadRequestError("Bad Request: Invalid semester")
	}
	return s.Lookup(ctx, models.SemesterResultsLookup(sem), params)
}

func (s *recordServiceImpl) CreatorInfo(ctx context.Context, params Params) ([]models.Row, error) {
	if !s.cfg.HashedPasswords {
		return s.Lookup(ctx, models.CreatorLookup, params)
	}

	// Validate the full input set first, then query by email only.
	if _, err := s.conditions(models.CreatorLookup, params); err != nil {
		return nil, err
	}
	byEmail := models.Lookup{
		Name:     models.CreatorLookup.Name,
		Table:    models.CreatorLookup.Table,
		Required: []models.Filter{models.FilterEmail},
	}
	rows, err := s.Lookup(ctx, byEmail, params)
	if err != nil {
		return nil, err
	}

	password, _ := params.value(models.FilterPassword.Param)
	matched := make([]models.Row, 0, len(rows))
	for _, r := range rows {
		hash, _ := r[models.FilterPassword.Column].(string)
		if !auth.CheckPassword(hash, password) {
			continue
		}
		out := make(models.Row, len(r))
		for k, v := range r {
			if k != models.FilterPassword.Column {
				out[k] = v
			}
		}
		matched = append(matched, out)
	}
	if len(matched) == 0 {
		logger.Debug().Str("lookup", byEmail.Name).Int("candidates", len(rows)).Msg("No creator password matched")
		return nil, apperrors.NewNotFoundError(RecordNotFoundMessage)
	}
	return matched, nil
}
