package seed_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/md-abdullah-92/edurecords/internal/app/models"
	"github.com/md-abdullah-92/edurecords/internal/app/repositories"
	"github.com/md-abdullah-92/edurecords/internal/seed"
	"github.com/md-abdullah-92/edurecords/internal/testutil"
)

func TestCreateDemoDataIsIdempotent(t *testing.T) {
	tdb := testutil.NewTestDB(t, testutil.DefaultPoolConfig())
	exec := repositories.NewExecutor(tdb.Pool)

	for i := 0; i < 2; i++ {
		if err := seed.CreateDemoData(context.Background(), exec, zerolog.Nop()); err != nil {
			t.Fatalf("CreateDemoData #%d: %v", i+1, err)
		}
	}

	if n := tdb.Count(models.TableInstitution); n != 1 {
		t.Errorf("institutions = %d; want 1", n)
	}
	if n := tdb.Count(models.TableResult); n != len(models.Semesters) {
		t.Errorf("results = %d; want %d", n, len(models.Semesters))
	}

	rows, err := exec.Select(context.Background(), models.TableResult, []models.Condition{
		{Column: "reg_no", Value: seed.DemoRegNo},
		{Column: "semester", Value: "8th"},
	})
	if err != nil || len(rows) != 1 {
		t.Fatalf("8th semester rows = %v, err = %v", rows, err)
	}
}
