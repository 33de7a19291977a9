package models

import (
	"encoding/json"
	"testing"
)

func TestScalarAcceptsStringsAndNumbers(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"reg_no":"A1","dateofbirth":"2000-01-01"}`, "A1"},
		{`{"reg_no":55,"dateofbirth":"2000-01-01"}`, "55"},
		{`{"reg_no":2020000001,"dateofbirth":"2000-01-01"}`, "2020000001"},
		{`{"reg_no":3.5,"dateofbirth":"2000-01-01"}`, "3.5"},
		{`{"reg_no":null,"dateofbirth":"2000-01-01"}`, ""},
		{`{"dateofbirth":"2000-01-01"}`, ""},
	}

	for _, tt := range tests {
		var sub RegistrationSubmission
		if err := json.Unmarshal([]byte(tt.body), &sub); err != nil {
			t.Fatalf("%s: %v", tt.body, err)
		}
		if sub.RegNo.String() != tt.want {
			t.Errorf("%s: reg_no = %q; want %q", tt.body, sub.RegNo, tt.want)
		}
	}
}

func TestScalarRejectsStructuredValues(t *testing.T) {
	for _, body := range []string{
		`{"mobile":{"n":1}}`,
		`{"mobile":[1]}`,
		`{"mobile":true}`,
	} {
		var c Creator
		if err := json.Unmarshal([]byte(body), &c); err == nil {
			t.Errorf("%s: accepted, mobile = %q", body, c.Mobile)
		}
	}
}
