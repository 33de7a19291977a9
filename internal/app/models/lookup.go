package models

// Row is one database record keyed by column name.
type Row map[string]interface{}

// Condition is an equality predicate on a column.
type Condition struct {
	Column string
	Value  interface{}
}

// Filter binds a request parameter to the column it filters on.
type Filter struct {
	Param  string
	Column string
	Label  string
}

// Lookup describes a read endpoint: which table it reads and which inputs
// narrow the result.
type Lookup struct {
	Name  string
	Table string
	// Required parameters must be present and non-empty.
	Required []Filter
	// Scoped parameters are applied when given and become required under the
	// scoped schema generation.
	Scoped []Filter
	// Fixed conditions are appended after the request-derived ones.
	Fixed []Condition
}

// Registration number, date of birth, class and EIIN filters shared by the
// lookups below.
var (
	FilterRegNo       = Filter{Param: "reg_no", Column: "reg_no", Label: "Registration number"}
	FilterDateOfBirth = Filter{Param: "dateofbirth", Column: "date_of_birth", Label: "date of birth"}
	FilterClass       = Filter{Param: "cls", Column: "class", Label: "class"}
	FilterEIIN        = Filter{Param: "eiin", Column: "eiin", Label: "EIIN"}
	FilterEmail       = Filter{Param: "email", Column: "email", Label: "email"}
	FilterPassword    = Filter{Param: "password", Column: "password", Label: "password"}
	FilterName        = Filter{Param: "name", Column: "name", Label: "name"}
)

// Table names
const (
	TableStudentInfo       = "studentinfo"
	TableStudentInfoSchool = "studentinfoschool"
	TableResult            = "result"
	TableResultSchool      = "resultschool"
	TableInstitution       = "institution"
	TableCreator           = "vdscreator"
	TableKeyMaterial       = "vdsdata"
)

var (
	StudentInfoLookup = Lookup{
		Name:     "StudentInfo",
		Table:    TableStudentInfo,
		Required: []Filter{FilterRegNo, FilterDateOfBirth},
		Scoped:   []Filter{FilterEIIN},
	}

	StudentInfoSchoolLookup = Lookup{
		Name:     "StudentInfoschool",
		Table:    TableStudentInfoSchool,
		Required: []Filter{FilterRegNo, FilterDateOfBirth, FilterClass, FilterEIIN},
	}

	FirstSemesterResultsLookup = Lookup{
		Name:     "getResultsfirst",
		Table:    TableResult,
		Required: []Filter{FilterRegNo},
	}

	SecondSemesterResultsLookup = Lookup{
		Name:     "getResultssceond",
		Table:    TableResult,
		Required: []Filter{FilterRegNo},
		Fixed:    []Condition{{Column: "semester", Value: string(Semester2nd)}},
	}

	FullResultsLookup = Lookup{
		Name:     "StudentFullResults",
		Table:    TableResult,
		Required: []Filter{FilterRegNo},
		Scoped:   []Filter{FilterEIIN},
	}

	FullResultsSchoolLookup = Lookup{
		Name:     "StudentFullResultsschool",
		Table:    TableResultSchool,
		Required: []Filter{FilterRegNo, FilterClass},
		Scoped:   []Filter{FilterEIIN},
	}

	InstitutionLookup = Lookup{
		Name:     "EIINInfo",
		Table:    TableInstitution,
		Required: []Filter{FilterEIIN},
	}

	CreatorLookup = Lookup{
		Name:     "VDSCreatorInfo",
		Table:    TableCreator,
		Required: []Filter{FilterEmail, FilterPassword},
	}

	KeyMaterialLookup = Lookup{
		Name:     "PKIInfo",
		Table:    TableKeyMaterial,
		Required: []Filter{FilterName},
		Scoped:   []Filter{FilterEmail},
	}
)

// SemesterResultsLookup returns the lookup for one semester's results.
func SemesterResultsLookup(s Semester) Lookup {
	return Lookup{
		Name:     "getResults/" + string(s),
		Table:    TableResult,
		Required: []Filter{FilterRegNo},
		Scoped:   []Filter{FilterEIIN},
		Fixed:    []Condition{{Column: "semester", Value: string(s)}},
	}
}

// SessionResultsLookup serves the session-bound results read. Its
// registration number comes from the request or the caller's own session.
var SessionResultsLookup = Lookup{
	Name:     "getResults",
	Table:    TableResult,
	Required: []Filter{FilterRegNo},
}
