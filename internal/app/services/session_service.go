package services

import (
	"context"
	"errors"

	"github.com/md-abdullah-92/edurecords/internal/app/models"
	"github.com/md-abdullah-92/edurecords/internal/pkg/apperrors"
	"github.com/md-abdullah-92/edurecords/internal/pkg/auth"
	"github.com/md-abdullah-92/edurecords/internal/pkg/logger"
)

// SessionService backs the two-step /getdata then /getResults flow. The
// registration number submitted first is bound to the submitting client only.
type SessionService interface {
	// Submit validates a submission and returns a session token for it.
	Submit(sub models.RegistrationSubmission) (token string, err error)
	// Results reads results for the explicit regNo, or for the one bound to
	// token when regNo is empty.
	Results(ctx context.Context, regNo, token string) ([]models.Row, error)
}

// sessionServiceImpl implements the SessionService interface
type sessionServiceImpl struct {
	sessions *auth.SessionManager
	records  RecordService
}

// NewSessionService creates a new session service instance
func NewSessionService(sessions *auth.SessionManager, records RecordService) SessionService {
	return &sessionServiceImpl{sessions: sessions, records: records}
}

func (s *sessionServiceImpl) Submit(sub models.RegistrationSubmission) (string, error) {
	if err := validateFields(
		field{models.FilterRegNo.Label, sub.RegNo.String()},
		field{models.FilterDateOfBirth.Label, sub.DateOfBirth.String()},
	); err != nil {
		return "", err
	}

	token, err := s.sessions.Issue(sub.RegNo.String())
	if err != nil {
		logger.Error().Err(err).Msg("Error issuing registration session")
		return "", errors.Join(apperrors.ErrBackend, err)
	}
	return token, nil
}

func (s *sessionServiceImpl) Results(ctx context.Context, regNo, token string) ([]models.Row, error) {
	if regNo == "" {
		if token == "" {
			return nil, &apperrors.CustomError{
				Err:     errors.Join(apperrors.ErrValidationFailed, apperrors.ErrSessionMissing),
				Message: requiredMessage([]string{models.FilterRegNo.Label}),
			}
		}
		claims, err := s.sessions.Parse(token)
		if err != nil {
			logger.Debug().Err(err).Msg("Rejected registration session")
			return nil, &apperrors.CustomError{
				Err:     errors.Join(apperrors.ErrValidationFailed, apperrors.ErrSessionInvalid),
				Message: "Bad Request: Registration session is invalid or expired",
			}
		}
		regNo = claims.RegNo
	}

	return s.records.Lookup(ctx, models.SessionResultsLookup, Params{models.FilterRegNo.Param: regNo})
}
