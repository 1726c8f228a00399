package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"cosmic_insights_backend/internal/astrology/transport"
	"cosmic_insights_backend/platform/logger"
)

const proxyPath = "/api/astrology"

// ProxyError is a non-2xx reply from the proxy endpoint.
type ProxyError struct {
	StatusCode int
	Details    string
}

func (e *ProxyError) Error() string {
	if e.Details != "" {
		return e.Details
	}
	return fmt.Sprintf("API request failed with status %d", e.StatusCode)
}

// ProxyClient submits prediction requests to the same-origin proxy.
type ProxyClient struct {
	httpClient *http.Client
	endpoint   string
	log        *logger.Logger
}

// NewProxyClient targets the proxy served at baseURL.
func NewProxyClient(baseURL string, httpClient *http.Client, log *logger.Logger) *ProxyClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &ProxyClient{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(baseURL, "/") + proxyPath,
		log:        log,
	}
}

// Predict posts req and returns the predictions text, which is empty when the
// reply has none. Non-2xx replies return a *ProxyError.
func (c *ProxyClient) Predict(ctx context.Context, req transport.PredictionRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode prediction request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("proxy request failed", "error", err, "url", c.endpoint)
		return "", requestCause(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp transport.ErrorResponse
		_ = json.Unmarshal(body, &errResp)
		c.log.Warn("proxy returned failure", "status", resp.StatusCode, "details", errResp.Details)
		return "", &ProxyError{StatusCode: resp.StatusCode, Details: errResp.Details}
	}

	return predictionsText(body, c.log)
}

// predictionsText reads the predictions field of a 2xx reply. Valid JSON
// that is not an object carries no predictions; only invalid JSON is an error.
func predictionsText(body []byte, log *logger.Logger) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			log.Warn("proxy reply is not an object", "type", typeErr.Value)
			return "", nil
		}
		log.Error("failed to decode proxy reply", "error", err)
		return "", err
	}

	text, _ := transport.PredictionResponse{Predictions: fields["predictions"]}.Text()
	return text, nil
}

// requestCause drops the method and URL net/http prefixes to transport errors.
func requestCause(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
