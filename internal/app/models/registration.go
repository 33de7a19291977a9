package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Scalar is a body field that accepts a JSON string or number and keeps its
// text. Numbers keep their literal form, so 1712345678 becomes "1712345678".
type Scalar string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or number, got %s", data)
	}
	*s = Scalar(n.String())
	return nil
}

// String returns the text of s.
func (s Scalar) String() string { return string(s) }

// Creator is a VDS creator account submitted to /VDSCreator.
type Creator struct {
	Name     Scalar `json:"name" form:"name"`
	Mobile   Scalar `json:"mobile" form:"mobile"`
	Email    Scalar `json:"email" form:"email"`
	Password Scalar `json:"password" form:"password"`
}

// KeyMaterial is a key pair registration submitted to /VDSdata.
type KeyMaterial struct {
	Name       Scalar `json:"name" form:"name"`
	Email      Scalar `json:"email" form:"email"`
	PublicKey  Scalar `json:"publickey" form:"publickey"`
	PrivateKey Scalar `json:"privateKey" form:"privateKey"`
}

// RegistrationSubmission is the body of /getdata.
type RegistrationSubmission struct {
	RegNo       Scalar `json:"reg_no" form:"reg_no"`
	DateOfBirth Scalar `json:"dateofbirth" form:"dateofbirth"`
}
