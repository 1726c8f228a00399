// Package transport provides DTOs for the astrology domain.
package transport

import "encoding/json"

const (
	// ErrServiceUnavailable is the user-facing error for every upstream failure.
	ErrServiceUnavailable = "Failed to connect to astrology service"
	// ErrInvalidRequest is returned when strict payload validation rejects a body.
	ErrInvalidRequest = "invalid prediction request"
	// UnknownErrorDetails is used when a failure carries no message.
	UnknownErrorDetails = "Unknown error"
)

// PredictionRequest is the wire shape the form client sends to the proxy
// and the proxy forwards to the prediction service.
type PredictionRequest struct {
	Data BirthData `json:"data"`
}

// BirthData is the renamed projection of the form's birth query.
type BirthData struct {
	Name     string `json:"name" validate:"required"`
	DOB      string `json:"dob" validate:"required"`
	TOB      string `json:"tob" validate:"required"`
	Place    string `json:"place" validate:"required"`
	Question string `json:"question" validate:"required"`
}

// PredictionResponse holds the only interpreted field of a service reply.
// Predictions stays raw so a missing or non-string value can be detected.
type PredictionResponse struct {
	Predictions json.RawMessage `json:"predictions,omitempty"`
}

// Text returns the predictions string, or false when it is absent, empty,
// or not a JSON string.
func (r PredictionResponse) Text() (string, bool) {
	if len(r.Predictions) == 0 {
		return "", false
	}
	var text string
	if err := json.Unmarshal(r.Predictions, &text); err != nil || text == "" {
		return "", false
	}
	return text, true
}

// ErrorResponse is the normalized proxy failure body. Details is always present.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}
