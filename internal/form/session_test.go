package form

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cosmic_insights_backend/internal/astrology/transport"
)

type fakePredictor struct {
	mu    sync.Mutex
	calls []transport.PredictionRequest
	text  string
	err   error
	hold  chan struct{}
}

func (f *fakePredictor) Predict(ctx context.Context, req transport.PredictionRequest) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	hold := f.hold
	f.mu.Unlock()
	if hold != nil {
		<-hold
	}
	return f.text, f.err
}

func (f *fakePredictor) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func fill(s *Session) {
	q := filled().Query
	for _, f := range Fields {
		s.Dispatch(FieldChanged{Field: f, Value: q.Get(f)})
	}
}

func TestSessionSubmitCallsPredictorOnce(t *testing.T) {
	p := &fakePredictor{text: "Line A"}
	s := NewSession(p, NewReducer())
	fill(s)

	var seen []State
	s.Observe(func(st State) { seen = append(seen, st) })

	state, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text, _ := state.Reading(); text != "Line A" {
		t.Fatalf("unexpected reading %q", text)
	}
	if p.count() != 1 {
		t.Fatalf("expected one call, got %d", p.count())
	}
	if p.calls[0] != filled().Query.Request() {
		t.Fatalf("unexpected request %+v", p.calls[0])
	}
	if len(seen) != 2 || !seen[0].Loading() {
		t.Fatalf("expected Submitting then Succeeded, got %d states", len(seen))
	}
}

func TestSessionSubmitIncomplete(t *testing.T) {
	p := &fakePredictor{}
	s := NewSession(p, NewReducer())
	s.Dispatch(FieldChanged{Field: FieldName, Value: "Asha"})

	_, err := s.Submit(context.Background())
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if p.count() != 0 {
		t.Fatal("expected no outbound call")
	}
}

func TestSessionRejectsSecondSubmitWhileLoading(t *testing.T) {
	p := &fakePredictor{text: "done", hold: make(chan struct{})}
	s := NewSession(p, NewReducer())
	fill(s)

	started := make(chan struct{})
	s.Observe(func(st State) {
		if st.Loading() {
			close(started)
		}
	})

	done := make(chan State)
	go func() {
		st, _ := s.Submit(context.Background())
		done <- st
	}()
	<-started

	if _, err := s.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}
	close(p.hold)

	if text, _ := (<-done).Reading(); text != "done" {
		t.Fatalf("unexpected reading %q", text)
	}
	if p.count() != 1 {
		t.Fatalf("expected one call, got %d", p.count())
	}
}

func TestSessionNextSubmitReplacesResult(t *testing.T) {
	p := &fakePredictor{err: errors.New("Bad Gateway")}
	s := NewSession(p, NewReducer())
	fill(s)

	state, _ := s.Submit(context.Background())
	if reason, _ := state.Failure(); reason != "Bad Gateway" {
		t.Fatalf("unexpected failure %q", reason)
	}

	p.err, p.text = nil, "Line B"
	state, _ = s.Submit(context.Background())
	if _, failed := state.Failure(); failed {
		t.Fatal("expected previous error replaced")
	}
	if text, _ := state.Reading(); text != "Line B" {
		t.Fatalf("unexpected reading %q", text)
	}
}
