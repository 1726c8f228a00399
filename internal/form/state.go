package form

import (
	"cosmic_insights_backend/internal/gazetteer"
)

const (
	// NoPredictions is shown when a successful reply carries no text.
	NoPredictions = "No predictions received"
	// CosmicFallback is shown when a failure carries no message.
	CosmicFallback = "Unable to connect to the cosmic servers. Please try again later."
)

// Status is the submission phase. Exactly one of Idle, Submitting,
// Succeeded or Failed.
type Status interface {
	isStatus()
}

// Idle is the initial phase; nothing has been submitted yet.
type Idle struct{}

// Submitting means one prediction request is in flight.
type Submitting struct{}

// Succeeded holds the reading of the latest submit.
type Succeeded struct {
	Reading string
}

// Failed holds the user-facing reason the latest submit failed.
type Failed struct {
	Reason string
}

func (Idle) isStatus()       {}
func (Submitting) isStatus() {}
func (Succeeded) isStatus()  {}
func (Failed) isStatus()     {}

// Autocomplete is the place-of-birth suggestion list.
type Autocomplete struct {
	Visible     bool
	Suggestions []string
}

// State is everything the form renders.
type State struct {
	Query  BirthQuery
	Status Status
	Places Autocomplete
}

// NewState returns an empty, idle form.
func NewState() State {
	return State{Status: Idle{}}
}

// Loading reports whether a submit is in flight.
func (s State) Loading() bool {
	_, ok := s.Status.(Submitting)
	return ok
}

// Reading returns the displayed reading, if any.
func (s State) Reading() (string, bool) {
	done, ok := s.Status.(Succeeded)
	return done.Reading, ok
}

// Failure returns the displayed error, if any.
func (s State) Failure() (string, bool) {
	failed, ok := s.Status.(Failed)
	return failed.Reason, ok
}

// Event is an input to the state machine.
type Event interface {
	isEvent()
}

// FieldChanged records a keystroke in one field.
type FieldChanged struct {
	Field Field
	Value string
}

// PlaceSelected records the choice of a suggestion.
type PlaceSelected struct {
	Place string
}

// Submitted is the submit action.
type Submitted struct{}

// PredictionReceived carries the proxy's predictions text, empty when absent.
type PredictionReceived struct {
	Text string
}

// PredictionFailed carries the failure message, empty when unknown.
type PredictionFailed struct {
	Reason string
}

func (FieldChanged) isEvent()       {}
func (PlaceSelected) isEvent()      {}
func (Submitted) isEvent()          {}
func (PredictionReceived) isEvent() {}
func (PredictionFailed) isEvent()   {}

// Reducer is the form's transition function.
type Reducer struct {
	Gazetteer []string
	Limit     int
}

// NewReducer uses the built-in gazetteer.
func NewReducer() Reducer {
	return Reducer{Gazetteer: gazetteer.Cities(), Limit: gazetteer.DefaultLimit}
}

// Reduce returns the state after ev. It never performs I/O.
func (r Reducer) Reduce(s State, ev Event) State {
	if s.Status == nil {
		s.Status = Idle{}
	}

	switch ev := ev.(type) {
	case FieldChanged:
		s.Query = s.Query.With(ev.Field, ev.Value)
		if ev.Field == FieldPlaceOfBirth {
			s.Places = r.autocomplete(ev.Value)
		}

	case PlaceSelected:
		s.Query.PlaceOfBirth = ev.Place
		s.Places = Autocomplete{}

	case Submitted:
		if s.Loading() || !s.Query.Complete() {
			return s
		}
		// Entering Submitting drops whatever reading or error was shown.
		s.Status = Submitting{}

	case PredictionReceived:
		if !s.Loading() {
			return s
		}
		text := ev.Text
		if text == "" {
			text = NoPredictions
		}
		s.Status = Succeeded{Reading: text}

	case PredictionFailed:
		if !s.Loading() {
			return s
		}
		reason := ev.Reason
		if reason == "" {
			reason = CosmicFallback
		}
		s.Status = Failed{Reason: reason}
	}

	return s
}

func (r Reducer) autocomplete(input string) Autocomplete {
	if !gazetteer.ShouldSuggest(input) {
		return Autocomplete{}
	}
	return Autocomplete{
		Visible:     true,
		Suggestions: gazetteer.Suggest(input, r.Gazetteer, r.Limit),
	}
}
