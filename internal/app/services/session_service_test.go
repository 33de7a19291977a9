package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/md-abdullah-92/edurecords/internal/app/models"
	"github.com/md-abdullah-92/edurecords/internal/app/repositories"
	"github.com/md-abdullah-92/edurecords/internal/app/services"
	"github.com/md-abdullah-92/edurecords/internal/pkg/apperrors"
	"github.com/md-abdullah-92/edurecords/internal/pkg/auth"
	"github.com/md-abdullah-92/edurecords/internal/testutil"
)

func newSessionService(t *testing.T) (services.SessionService, *testutil.TestDB) {
	t.Helper()
	tdb := testutil.NewTestDB(t, testutil.DefaultPoolConfig())
	sessions, err := auth.NewSessionManager(auth.SessionConfig{SecretKey: "test", TTL: time.Minute})
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	records := services.NewRecordService(repositories.NewExecutor(tdb.Pool), services.RecordServiceConfig{})
	return services.NewSessionService(sessions, records), tdb
}

func TestSessionSubmitAndResults(t *testing.T) {
	svc, tdb := newSessionService(t)
	tdb.Seed(models.TableResult,
		map[string]interface{}{"reg_no": "A1", "semester": "1st"},
		map[string]interface{}{"reg_no": "B2", "semester": "1st"},
	)
	ctx := context.Background()

	tokenA, err := svc.Submit(models.RegistrationSubmission{RegNo: "A1", DateOfBirth: "2000-01-01"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	tokenB, err := svc.Submit(models.RegistrationSubmission{RegNo: "B2", DateOfBirth: "2001-01-01"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// A later submission by another client does not change A's results.
	rows, err := svc.Results(ctx, "", tokenA)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if len(rows) != 1 || rows[0]["reg_no"] != "A1" {
		t.Fatalf("client A got %v", rows)
	}
	rows, err = svc.Results(ctx, "", tokenB)
	if err != nil || len(rows) != 1 || rows[0]["reg_no"] != "B2" {
		t.Fatalf("client B got %v, err = %v", rows, err)
	}

	// An explicit reg_no wins over the session.
	rows, err = svc.Results(ctx, "B2", tokenA)
	if err != nil || rows[0]["reg_no"] != "B2" {
		t.Fatalf("explicit reg_no ignored: %v, %v", rows, err)
	}
}

func TestSessionResultsWithoutSession(t *testing.T) {
	svc, tdb := newSessionService(t)

	_, err := svc.Results(context.Background(), "", "")
	if !errors.Is(err, apperrors.ErrValidationFailed) || !errors.Is(err, apperrors.ErrSessionMissing) {
		t.Fatalf("err = %v; want missing session validation failure", err)
	}
	_, err = svc.Results(context.Background(), "", "garbage")
	if !errors.Is(err, apperrors.ErrSessionInvalid) {
		t.Fatalf("err = %v; want invalid session", err)
	}
	if tdb.Queries.Count() != 0 {
		t.Errorf("query ran without a registration number")
	}
}

func TestSessionSubmitValidation(t *testing.T) {
	svc, _ := newSessionService(t)

	_, err := svc.Submit(models.RegistrationSubmission{RegNo: "A1"})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v; want validation failure", err)
	}
	if got := apperrors.PublicMessage(err, ""); got != "Bad Request: Registration number and date of birth are required" {
		t.Errorf("message = %q", got)
	}
}
