package form

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cosmic_insights_backend/internal/astrology/transport"
	"cosmic_insights_backend/platform/logger"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func proxy(t *testing.T, status int, body string) (*ProxyClient, *transport.PredictionRequest) {
	t.Helper()
	var got transport.PredictionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/astrology" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewProxyClient(srv.URL+"/", nil, logger.Discard()), &got
}

func TestProxyClientReturnsPredictions(t *testing.T) {
	c, got := proxy(t, http.StatusOK, `{"predictions":"Line A\nLine B"}`)

	text, err := c.Predict(context.Background(), filled().Query.Request())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Line A\nLine B" {
		t.Fatalf("unexpected text %q", text)
	}
	if got.Data.Place != "Mumbai, Maharashtra, India" {
		t.Fatalf("unexpected forwarded body %+v", got)
	}
}

func TestProxyClientMissingPredictionsIsEmpty(t *testing.T) {
	c, _ := proxy(t, http.StatusOK, `{}`)

	text, err := c.Predict(context.Background(), filled().Query.Request())
	if err != nil || text != "" {
		t.Fatalf("expected empty text, got %q, %v", text, err)
	}
}

func TestProxyClientUsesDetails(t *testing.T) {
	c, _ := proxy(t, http.StatusInternalServerError, `{"error":"Failed to connect to astrology service","details":"Bad Gateway"}`)

	_, err := c.Predict(context.Background(), filled().Query.Request())
	var perr *ProxyError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProxyError, got %v", err)
	}
	if err.Error() != "Bad Gateway" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestProxyClientStatusWithoutBody(t *testing.T) {
	c, _ := proxy(t, http.StatusBadGateway, `<html>oops</html>`)

	_, err := c.Predict(context.Background(), filled().Query.Request())
	if err == nil || err.Error() != "API request failed with status 502" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestProxyClientTransportFailure(t *testing.T) {
	httpClient := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})}
	c := NewProxyClient("http://proxy.invalid", httpClient, logger.Discard())

	_, err := c.Predict(context.Background(), filled().Query.Request())
	if err == nil || err.Error() != "connection refused" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestProxyClientNonObjectReplyHasNoPredictions(t *testing.T) {
	for _, body := range []string{`"just text"`, `[1,2]`, `42`, `null`, `{"predictions":7}`} {
		c, _ := proxy(t, http.StatusOK, body)

		text, err := c.Predict(context.Background(), filled().Query.Request())
		if err != nil || text != "" {
			t.Fatalf("body %s: expected empty text, got %q, %v", body, text, err)
		}
	}
}

func TestProxyClientInvalidJSONReplyFails(t *testing.T) {
	c, _ := proxy(t, http.StatusOK, `not json`)

	if _, err := c.Predict(context.Background(), filled().Query.Request()); err == nil {
		t.Fatal("expected decode error for non-JSON reply")
	}
}

func TestSessionShowsFallbackForNonObjectReply(t *testing.T) {
	c, _ := proxy(t, http.StatusOK, `[1,2]`)
	s := NewSession(c, NewReducer())
	fill(s)

	state, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text, ok := state.Reading(); !ok || text != NoPredictions {
		t.Fatalf("expected %q, got %#v", NoPredictions, state.Status)
	}
}
