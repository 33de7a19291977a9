package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	appModels "github.com/md-abdullah-92/edurecords/internal/app/models"
	appRepos "github.com/md-abdullah-92/edurecords/internal/app/repositories"
)

// DemoEIIN identifies the demo institution. Its presence marks the demo data
// as already loaded.
const DemoEIIN = "100001"

// DemoRegNo is the registration number of the demo student.
const DemoRegNo = "2020000001"

// CreateDemoData loads one institution, one university student with eight
// semesters of results and one school student, unless already present.
func CreateDemoData(ctx context.Context, exec *appRepos.Executor, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating demo data (institution/students/results)...")

	existing, err := exec.Select(ctx, appModels.TableInstitution, []appModels.Condition{
		{Column: appModels.FilterEIIN.Column, Value: DemoEIIN},
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for existing demo institution")
		return err
	}
	if len(existing) > 0 {
		lgr.Info().Str("eiin", DemoEIIN).Msg("Demo data already present, skipping")
		return nil
	}

	var finalErr error
	insert := func(table string, values map[string]interface{}) {
		if err := exec.Insert(ctx, table, values); err != nil {
			lgr.Error().Err(err).Str("table", table).Msg("Error creating demo row")
			finalErr = errors.Join(finalErr, err)
		}
	}

	insert(appModels.TableInstitution, map[string]interface{}{
		"eiin":        DemoEIIN,
		"name":        "Demo Model College",
		"type":        "college",
		"address":     "1 College Road",
		"district":    "Dhaka",
		"established": "1965",
	})

	insert(appModels.TableStudentInfo, map[string]interface{}{
		"reg_no":        DemoRegNo,
		"date_of_birth": "2002-01-15",
		"eiin":          DemoEIIN,
		"name":          "Demo Student",
		"father_name":   "Demo Father",
		"mother_name":   "Demo Mother",
		"department":    "CSE",
		"session":       "2020-21",
	})

	gpas := []float64{3.45, 3.52, 3.61, 3.58, 3.70, 3.66, 3.81, 3.90}
	cgpa := 0.0
	for i, sem := range appModels.Semesters {
		cgpa = (cgpa*float64(i) + gpas[i]) / float64(i+1)
		insert(appModels.TableResult, map[string]interface{}{
			"reg_no":   DemoRegNo,
			"eiin":     DemoEIIN,
			"semester": string(sem),
			"gpa":      gpas[i],
			"cgpa":     cgpa,
			"status":   "passed",
		})
	}

	insert(appModels.TableStudentInfoSchool, map[string]interface{}{
		"reg_no":        "3030000001",
		"date_of_birth": "2010-03-02",
		"class":         "8",
		"eiin":          DemoEIIN,
		"name":          "Demo Pupil",
		"section":       "A",
		"roll":          "12",
	})
	insert(appModels.TableResultSchool, map[string]interface{}{
		"reg_no": "3030000001",
		"eiin":   DemoEIIN,
		"class":  "8",
		"exam":   "annual",
		"gpa":    4.75,
		"status": "passed",
	})

	if finalErr != nil {
		return finalErr
	}
	lgr.Info().Msg("Demo data created.")
	return nil
}
