package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/md-abdullah-92/edurecords/internal/app/models"
	"github.com/md-abdullah-92/edurecords/internal/app/repositories"
	"github.com/md-abdullah-92/edurecords/internal/pkg/apperrors"
	"github.com/md-abdullah-92/edurecords/internal/pkg/auth"
	"github.com/md-abdullah-92/edurecords/internal/pkg/logger"
)

// InsertedMessage acknowledges a successful insert.
const InsertedMessage = "Data inserted successfully"

var passwordTooLongMessage = fmt.Sprintf("Bad Request: password must be at most %d bytes", auth.MaxPasswordBytes)

// RegistrationService defines the write operations
type RegistrationService interface {
	RegisterCreator(ctx context.Context, c models.Creator) error
	RegisterKeyMaterial(ctx context.Context, k models.KeyMaterial) error
}

// registrationServiceImpl implements the RegistrationService interface
type registrationServiceImpl struct {
	exec           *repositories.Executor
	hashPasswords  bool
	hashPasswordFn func(string) (string, error)
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(exec *repositories.Executor, hashPasswords bool) RegistrationService {
	return &registrationServiceImpl{
		exec:           exec,
		hashPasswords:  hashPasswords,
		hashPasswordFn: auth.HashPassword,
	}
}

type field struct {
	label string
	value string
}

// validateFields fails when any field is blank, naming all of them.
func validateFields(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			labels := make([]string, len(fields))
			for i, each := range fields {
				labels[i] = each.label
			}
			return apperrors.NewBadRequestError(requiredMessage(labels))
		}
	}
	return nil
}

func (s *registrationServiceImpl) RegisterCreator(ctx context.Context, c models.Creator) error {
	if err := validateFields(
		field{"name", c.Name.String()},
		field{"mobile", c.Mobile.String()},
		field{"email", c.Email.String()},
		field{"password", c.Password.String()},
	); err != nil {
		return err
	}

	password := c.Password.String()
	if s.hashPasswords {
		if len(password) > auth.MaxPasswordBytes {
			return apperrors.NewBadRequestError(passwordTooLongMessage)
		}
		hashed, err := s.hashPasswordFn(password)
		if err != nil {
			logger.Error().Err(err).Msg("Error hashing creator password")
			return fmt.Errorf("%w: hash password: %w", apperrors.ErrBackend, err)
		}
		password = hashed
	}

	err := s.exec.Insert(ctx, models.TableCreator, map[string]interface{}{
		"name":     c.Name.String(),
		"mobile":   c.Mobile.String(),
		"email":    c.Email.String(),
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("register creator: %w", err)
	}
	logger.Info().Str("email", c.Email.String()).Msg("Creator registered")
	return nil
}

func (s *registrationServiceImpl) RegisterKeyMaterial(ctx context.Context, k models.KeyMaterial) error {
	if err := validateFields(
		field{"name", k.Name.String()},
		field{"email", k.Email.String()},
		field{"public key", k.PublicKey.String()},
		field{"private key", k.PrivateKey.String()},
	); err != nil {
		return err
	}

	err := s.exec.Insert(ctx, models.TableKeyMaterial, map[string]interface{}{
		"name":       k.Name.String(),
		"email":      k.Email.String(),
		"publickey":  k.PublicKey.String(),
		"privatekey": k.PrivateKey.String(),
	})
	if err != nil {
		return fmt.Errorf("register key material: %w", err)
	}
	logger.Info().Str("name", k.Name.String()).Msg("Key material stored")
	return nil
}
