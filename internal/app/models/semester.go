package models

// Semester is an ordinal academic term label.
type Semester string

const (
	Semester1st Semester = "1st"
	Semester2nd Semester = "2nd"
	Semester3rd Semester = "3rd"
	Semester4th Semester = "4th"
	Semester5th Semester = "5th"
	Semester6th Semester = "6th"
	Semester7th Semester = "7th"
	Semester8th Semester = "8th"
)

// Semesters lists every accepted label in order.
var Semesters = []Semester{
	Semester1st, Semester2nd, Semester3rd, Semester4th,
	Semester5th, Semester6th, Semester7th, Semester8th,
}

// ParseSemester reports whether s is one of the eight labels.
func ParseSemester(s string) (Semester, bool) {
	for _, sem := range Semesters {
		if string(sem) == s {
			return sem, true
		}
	}
	return "", false
}
