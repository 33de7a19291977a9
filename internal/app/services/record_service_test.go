package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/md-abdullah-92/edurecords/internal/app/models"
	"github.com/md-abdullah-92/edurecords/internal/app/repositories"
	"github.com/md-abdullah-92/edurecords/internal/app/services"
	"github.com/md-abdullah-92/edurecords/internal/pkg/apperrors"
	"github.com/md-abdullah-92/edurecords/internal/pkg/auth"
	"github.com/md-abdullah-92/edurecords/internal/testutil"
)

func newRecordService(t *testing.T, cfg services.RecordServiceConfig) (services.RecordService, *testutil.TestDB) {
	t.Helper()
	tdb := testutil.NewTestDB(t, testutil.DefaultPoolConfig())
	return services.NewRecordService(repositories.NewExecutor(tdb.Pool), cfg), tdb
}

func TestLookupMissingRequiredRunsNoQuery(t *testing.T) {
	svc, tdb := newRecordService(t, services.RecordServiceConfig{})

	tests := []struct {
		name   string
		lookup models.Lookup
		params services.Params
		want   string
	}{
		{"no reg_no", models.StudentInfoLookup, services.Params{"dateofbirth": "2000-01-01"},
			"Bad Request: Registration number and date of birth are required"},
		{"blank dob", models.StudentInfoLookup, services.Params{"reg_no": "1", "dateofbirth": "  "},
			"Bad Request: Registration number and date of birth are required"},
		{"first semester", models.FirstSemesterResultsLookup, services.Params{},
			"Bad Request: Registration number is required"},
		{"school info", models.StudentInfoSchoolLookup, services.Params{"reg_no": "1", "dateofbirth": "x", "cls": "9"},
			"Bad Request: Registration number, date of birth, class and EIIN are required"},
		{"institution", models.InstitutionLookup, services.Params{"reg_no": "1"},
			"Bad Request: EIIN is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Lookup(context.Background(), tt.lookup, tt.params)
			if !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("err = %v; want validation failure", err)
			}
			if got := apperrors.PublicMessage(err, ""); got != tt.want {
				t.Errorf("message = %q; want %q", got, tt.want)
			}
		})
	}
	if n := tdb.Queries.Count(); n != 0 {
		t.Fatalf("%d statements ran for invalid requests", n)
	}
}

func TestLookupFoundAndNotFound(t *testing.T) {
	svc, tdb := newRecordService(t, services.RecordServiceConfig{})
	tdb.Seed(models.TableStudentInfo, map[string]interface{}{
		"reg_no": "123", "date_of_birth": "2000-01-01", "name": "Rahim",
	})
	ctx := context.Background()

	rows, err := svc.Lookup(ctx, models.StudentInfoLookup, services.Params{"reg_no": "123", "dateofbirth": "2000-01-01"})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(rows) != 1 || rows[0]["name"] != "Rahim" {
		t.Fatalf("rows = %v", rows)
	}

	_, err = svc.Lookup(ctx, models.StudentInfoLookup, services.Params{"reg_no": "123", "dateofbirth": "1999-01-01"})
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("err = %v; want not found", err)
	}
	if got := apperrors.PublicMessage(err, ""); got != services.RecordNotFoundMessage {
		t.Errorf("message = %q", got)
	}
	if n := tdb.Queries.Count(); n != 2 {
		t.Errorf("statements = %d; want one per request", n)
	}
}

func TestLookupBindsValuesAsSent(t *testing.T) {
	svc, tdb := newRecordService(t, services.RecordServiceConfig{})
	tdb.Seed(models.TableStudentInfo,
		map[string]interface{}{"reg_no": "123", "date_of_birth": "2000-01-01", "name": "Rahim"},
		map[string]interface{}{"reg_no": " 124", "date_of_birth": "2000-01-01", "name": "Karim"},
	)
	ctx := context.Background()

	_, err := svc.Lookup(ctx, models.StudentInfoLookup, services.Params{"reg_no": " 123", "dateofbirth": "2000-01-01"})
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("err = %v; a padded value must not match the bare one", err)
	}

	rows, err := svc.Lookup(ctx, models.StudentInfoLookup, services.Params{"reg_no": " 124", "dateofbirth": "2000-01-01"})
	if err != nil || len(rows) != 1 || rows[0]["name"] != "Karim" {
		t.Fatalf("rows = %v, err = %v", rows, err)
	}
}

func TestScopedFilters(t *testing.T) {
	seed := func(tdb *testutil.TestDB) {
		tdb.Seed(models.TableResult,
			map[string]interface{}{"reg_no": "7", "eiin": "100", "semester": "1st"},
			map[string]interface{}{"reg_no": "7", "eiin": "200", "semester": "1st"},
		)
	}

	t.Run("base generation treats eiin as optional", func(t *testing.T) {
		svc, tdb := newRecordService(t, services.RecordServiceConfig{})
		seed(tdb)

		rows, err := svc.Lookup(context.Background(), models.FullResultsLookup, services.Params{"reg_no": "7"})
		if err != nil || len(rows) != 2 {
			t.Fatalf("rows = %v, err = %v", rows, err)
		}
		rows, err = svc.Lookup(context.Background(), models.FullResultsLookup, services.Params{"reg_no": "7", "eiin": "200"})
		if err != nil || len(rows) != 1 {
			t.Fatalf("rows = %v, err = %v", rows, err)
		}
	})

	t.Run("scoped generation requires eiin", func(t *testing.T) {
		svc, tdb := newRecordService(t, services.RecordServiceConfig{Scoped: true})
		seed(tdb)

		_, err := svc.Lookup(context.Background(), models.FullResultsLookup, services.Params{"reg_no": "7"})
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Fatalf("err = %v; want validation failure", err)
		}
		if got := apperrors.PublicMessage(err, ""); got != "Bad Request: Registration number and EIIN are required" {
			t.Errorf("message = %q", got)
		}
		if tdb.Queries.Count() != 0 {
			t.Errorf("query ran without eiin")
		}

		rows, err := svc.Lookup(context.Background(), models.FullResultsLookup, services.Params{"reg_no": "7", "eiin": "100"})
		if err != nil || len(rows) != 1 {
			t.Fatalf("rows = %v, err = %v", rows, err)
		}
	})
}

func TestSemesterResults(t *testing.T) {
	svc, tdb := newRecordService(t, services.RecordServiceConfig{})
	for _, sem := range models.Semesters {
		tdb.Seed(models.TableResult, map[string]interface{}{"reg_no": "9", "semester": string(sem)})
	}
	ctx := context.Background()

	for _, sem := range models.Semesters {
		rows, err := svc.SemesterResults(ctx, string(sem), services.Params{"reg_no": "9"})
		if err != nil {
			t.Fatalf("%s: %v", sem, err)
		}
		if len(rows) != 1 || rows[0]["semester"] != string(sem) {
			t.Errorf("%s: rows = %v", sem, rows)
		}
	}

	tdb.Queries.Reset()
	if _, err := svc.SemesterResults(ctx, "9th", services.Params{"reg_no": "9"}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v; want validation failure", err)
	}
	if tdb.Queries.Count() != 0 {
		t.Errorf("query ran for an invalid semester")
	}
}

func TestSecondSemesterLookupFiltersSemester(t *testing.T) {
	svc, tdb := newRecordService(t, services.RecordServiceConfig{})
	tdb.Seed(models.TableResult,
		map[string]interface{}{"reg_no": "5", "semester": "1st"},
		map[string]interface{}{"reg_no": "5", "semester": "2nd"},
	)

	rows, err := svc.Lookup(context.Background(), models.SecondSemesterResultsLookup, services.Params{"reg_no": "5"})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(rows) != 1 || rows[0]["semester"] != "2nd" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestLookupBackendFailure(t *testing.T) {
	svc, tdb := newRecordService(t, services.RecordServiceConfig{})
	_ = tdb.Pool.Close()

	_, err := svc.Lookup(context.Background(), models.FirstSemesterResultsLookup, services.Params{"reg_no": "1"})
	if !apperrors.IsBackend(err) {
		t.Fatalf("err = %v; want backend failure", err)
	}
}

func TestCreatorInfoHashedPasswords(t *testing.T) {
	svc, tdb := newRecordService(t, services.RecordServiceConfig{HashedPasswords: true})
	hash, err := auth.HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	tdb.Seed(models.TableCreator, map[string]interface{}{
		"name": "A", "mobile": "017", "email": "a@x.io", "password": hash,
	})
	ctx := context.Background()

	rows, err := svc.CreatorInfo(ctx, services.Params{"email": "a@x.io", "password": "pw"})
	if err != nil {
		t.Fatalf("CreatorInfo: %v", err)
	}
	if len(rows) != 1 || rows[0]["name"] != "A" {
		t.Fatalf("rows = %v", rows)
	}
	if _, ok := rows[0]["password"]; ok {
		t.Errorf("password hash returned to the caller")
	}

	if _, err := svc.CreatorInfo(ctx, services.Params{"email": "a@x.io", "password": "nope"}); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("err = %v; want not found", err)
	}

	tdb.Queries.Reset()
	if _, err := svc.CreatorInfo(ctx, services.Params{"email": "a@x.io"}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v; want validation failure", err)
	}
	if tdb.Queries.Count() != 0 {
		t.Errorf("query ran without a password")
	}
}

func TestCreatorInfoPlainPasswords(t *testing.T) {
	svc, tdb := newRecordService(t, services.RecordServiceConfig{})
	tdb.Seed(models.TableCreator, map[string]interface{}{
		"name": "A", "mobile": "017", "email": "a@x.io", "password": "pw",
	})

	rows, err := svc.CreatorInfo(context.Background(), services.Params{"email": "a@x.io", "password": "pw"})
	if err != nil || len(rows) != 1 {
		t.Fatalf("rows = %v, err = %v", rows, err)
	}
}
