// Package form implements the reading form client: the birth query, the
// submission state machine, place autocomplete and the proxy HTTP client.
package form

import (
	"cosmic_insights_backend/internal/astrology/transport"
)

// Field identifies one input of the form.
type Field int

const (
	FieldName Field = iota
	FieldDateOfBirth
	FieldTimeOfBirth
	FieldPlaceOfBirth
	FieldQuestion
)

// Fields lists the inputs in display order.
var Fields = []Field{FieldName, FieldDateOfBirth, FieldTimeOfBirth, FieldPlaceOfBirth, FieldQuestion}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "Full Name"
	case FieldDateOfBirth:
		return "Date of Birth"
	case FieldTimeOfBirth:
		return "Time of Birth"
	case FieldPlaceOfBirth:
		return "Place of Birth"
	case FieldQuestion:
		return "Your Question"
	default:
		return "unknown"
	}
}

// BirthQuery is what the user typed. Every field is required.
type BirthQuery struct {
	Name         string
	DateOfBirth  string
	TimeOfBirth  string
	PlaceOfBirth string
	Question     string
}

// Get returns the value of f.
func (q BirthQuery) Get(f Field) string {
	switch f {
	case FieldName:
		return q.Name
	case FieldDateOfBirth:
		return q.DateOfBirth
	case FieldTimeOfBirth:
		return q.TimeOfBirth
	case FieldPlaceOfBirth:
		return q.PlaceOfBirth
	case FieldQuestion:
		return q.Question
	default:
		return ""
	}
}

// With returns a copy of q with f set to value.
func (q BirthQuery) With(f Field, value string) BirthQuery {
	switch f {
	case FieldName:
		q.Name = value
	case FieldDateOfBirth:
		q.DateOfBirth = value
	case FieldTimeOfBirth:
		q.TimeOfBirth = value
	case FieldPlaceOfBirth:
		q.PlaceOfBirth = value
	case FieldQuestion:
		q.Question = value
	}
	return q
}

// Missing returns the empty fields in display order.
func (q BirthQuery) Missing() []Field {
	var missing []Field
	for _, f := range Fields {
		if q.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Complete reports whether every field is filled in.
func (q BirthQuery) Complete() bool {
	return len(q.Missing()) == 0
}

// Request projects the query onto the proxy wire shape.
func (q BirthQuery) Request() transport.PredictionRequest {
	return transport.PredictionRequest{
		Data: transport.BirthData{
			Name:     q.Name,
			DOB:      q.DateOfBirth,
			TOB:      q.TimeOfBirth,
			Place:    q.PlaceOfBirth,
			Question: q.Question,
		},
	}
}
