package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"cosmic_insights_backend/internal/astrology/transport"
)

var (
	// ErrIncomplete is returned when a required field is empty.
	ErrIncomplete = errors.New("form: required fields missing")
	// ErrSubmitInFlight is returned while a previous submit is pending.
	ErrSubmitInFlight = errors.New("form: submission already in progress")
)

// Predictor performs the single outbound call of a submit.
type Predictor interface {
	Predict(ctx context.Context, req transport.PredictionRequest) (string, error)
}

// Session owns one form's state. It is safe for concurrent use, so a UI
// loop can dispatch keystrokes while a submit runs on another goroutine.
type Session struct {
	mu        sync.Mutex
	state     State
	reducer   Reducer
	predictor Predictor
	observer  func(State)
}

func NewSession(predictor Predictor, reducer Reducer) *Session {
	return &Session{
		state:     NewState(),
		reducer:   reducer,
		predictor: predictor,
	}
}

// Observe registers fn to be called with every new state. fn runs outside
// the session lock.
func (s *Session) Observe(fn func(State)) {
	s.mu.Lock()
	s.observer = fn
	s.mu.Unlock()
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies ev and returns the new state.
func (s *Session) Dispatch(ev Event) State {
	s.mu.Lock()
	s.state = s.reducer.Reduce(s.state, ev)
	state, observer := s.state, s.observer
	s.mu.Unlock()

	if observer != nil {
		observer(state)
	}
	return state
}

// Submit runs one submission cycle: enter Submitting, call the predictor
// exactly once, then settle in Succeeded or Failed. It refuses to start
// while loading or when fields are missing, leaving the state untouched.
func (s *Session) Submit(ctx context.Context) (State, error) {
	s.mu.Lock()
	if s.state.Loading() {
		state := s.state
		s.mu.Unlock()
		return state, ErrSubmitInFlight
	}
	if missing := s.state.Query.Missing(); len(missing) > 0 {
		state := s.state
		s.mu.Unlock()
		return state, fmt.Errorf("%w: %s", ErrIncomplete, joinFields(missing))
	}
	s.state = s.reducer.Reduce(s.state, Submitted{})
	req := s.state.Query.Request()
	state, observer := s.state, s.observer
	s.mu.Unlock()

	if observer != nil {
		observer(state)
	}

	text, err := s.predictor.Predict(ctx, req)
	if err != nil {
		return s.Dispatch(PredictionFailed{Reason: err.Error()}), nil
	}
	return s.Dispatch(PredictionReceived{Text: text}), nil
}

func joinFields(fields []Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}
