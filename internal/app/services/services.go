// Package services holds the request-independent logic behind each endpoint:
// input validation, query shaping and result mapping.
//
// Services defined in this package:
// - RecordService: generic lookups over the records tables
// - RegistrationService: creator and key material inserts
// - SessionService: per-client registration sessions for the legacy flow
package services

import (
	"net/url"
	"strings"
)

// Params is the set of request inputs a lookup reads from.
type Params map[string]string

// ParamsFromValues takes the first value of each key.
func ParamsFromValues(v url.Values) Params {
	p := make(Params, len(v))
	for k, vals := range v {
		if len(vals) > 0 {
			p[k] = vals[0]
		}
	}
	return p
}

// value returns the value of key as sent and whether it is usable. A
// missing or whitespace-only value is not.
func (p Params) value(key string) (string, bool) {
	v := p[key]
	return v, strings.TrimSpace(v) != ""
}

// requiredMessage renders the 400 message for a set of required inputs, e.g.
// "Bad Request: Registration number and date of birth are required".
func requiredMessage(labels []string) string {
	var subject string
	switch len(labels) {
	case 0:
		subject = "Parameters"
	case 1:
		subject = labels[0]
	default:
		subject = strings.Join(labels[:len(labels)-1], ", ") + " and " + labels[len(labels)-1]
	}
	subject = strings.ToUpper(subject[:1]) + subject[1:]

	verb := "is"
	if len(labels) > 1 {
		verb = "are"
	}
	return "Bad Request: " + subject + " " + verb + " required"
}
