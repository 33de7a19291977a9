package migrations_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/md-abdullah-92/edurecords/internal/app/migrations"
	"github.com/md-abdullah-92/edurecords/internal/app/models"
	"github.com/md-abdullah-92/edurecords/internal/testutil"
)

func TestMigrateIsIdempotent(t *testing.T) {
	// NewTestDB already applied every migration once.
	tdb := testutil.NewTestDB(t, testutil.DefaultPoolConfig())
	m := migrations.NewMigrator(tdb.Pool.DB(), "sqlite", zerolog.Nop())

	applied, err := m.Migrate(context.Background())
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if applied != 0 {
		t.Fatalf("applied = %d on an up-to-date schema; want 0", applied)
	}

	for _, table := range []string{
		models.TableStudentInfo, models.TableStudentInfoSchool, models.TableResult,
		models.TableResultSchool, models.TableInstitution, models.TableCreator, models.TableKeyMaterial,
	} {
		if n := tdb.Count(table); n != 0 {
			t.Errorf("%s: %d rows in a fresh schema", table, n)
		}
	}
}

func TestVersionsPerDialect(t *testing.T) {
	for _, dialect := range []string{"mysql", "postgres", "sqlite"} {
		files, err := migrations.NewMigrator(nil, dialect, zerolog.Nop()).Versions()
		if err != nil {
			t.Fatalf("%s: %v", dialect, err)
		}
		if len(files) == 0 || files[0] != "001_init.sql" {
			t.Errorf("%s: files = %v", dialect, files)
		}
	}

	if _, err := migrations.NewMigrator(nil, "oracle", zerolog.Nop()).Versions(); err == nil {
		t.Errorf("expected an error for an unknown dialect")
	}
}
