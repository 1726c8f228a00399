// Package client provides the HTTP adapter for the external prediction service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"cosmic_insights_backend/internal/astrology/transport"
	"cosmic_insights_backend/platform/logger"
)

const serviceName = "prediction-service"

// FailureKind classifies why a forward did not produce a JSON result.
type FailureKind int

const (
	// FailureStatus means the service answered with a non-2xx status.
	FailureStatus FailureKind = iota
	// FailureTransport means the service could not be reached or read.
	FailureTransport
	// FailureMalformed means a 2xx response was not valid JSON.
	FailureMalformed
)

// ServiceError describes a failed forward.
type ServiceError struct {
	Kind       FailureKind
	StatusCode int
	Body       string
	Err        error
}

// Error returns the text surfaced to callers as the failure details.
func (e *ServiceError) Error() string {
	if e.Kind == FailureStatus {
		return fmt.Sprintf("prediction service request failed with status %d: %s", e.StatusCode, e.Body)
	}
	if e.Err == nil || e.Err.Error() == "" {
		return transport.UnknownErrorDetails
	}
	return e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Client forwards payloads to the prediction service.
type Client struct {
	httpClient *http.Client
	endpoint   string
	log        *logger.Logger
}

// New creates a client for endpoint. A zero timeout leaves the request bound
// only to the caller's context.
func New(endpoint string, timeout time.Duration, log *logger.Logger) *Client {
	return NewWithHTTPClient(endpoint, &http.Client{Timeout: timeout}, log)
}

// NewWithHTTPClient creates a client using the supplied http.Client.
func NewWithHTTPClient(endpoint string, httpClient *http.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		log:        log,
	}
}

// Forward POSTs payload verbatim and returns the service's JSON body unmodified.
// Any failure is returned as a *ServiceError.
func (c *Client) Forward(ctx context.Context, payload []byte) (json.RawMessage, error) {
	log := c.log.WithContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &ServiceError{Kind: FailureTransport, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		svcErr := &ServiceError{Kind: FailureTransport, Err: transportCause(err)}
		log.UpstreamError(serviceName, 0, svcErr)
		return nil, svcErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	log.Info("prediction service responded", "status", resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		svcErr := &ServiceError{Kind: FailureTransport, StatusCode: resp.StatusCode, Err: err}
		log.UpstreamError(serviceName, resp.StatusCode, svcErr)
		return nil, svcErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		svcErr := &ServiceError{Kind: FailureStatus, StatusCode: resp.StatusCode, Body: string(body)}
		log.UpstreamError(serviceName, resp.StatusCode, svcErr)
		return nil, svcErr
	}

	if !json.Valid(body) {
		var probe any
		decodeErr := json.Unmarshal(body, &probe)
		if decodeErr == nil {
			decodeErr = errors.New("invalid JSON in response")
		}
		svcErr := &ServiceError{Kind: FailureMalformed, StatusCode: resp.StatusCode, Body: string(body), Err: decodeErr}
		log.UpstreamError(serviceName, resp.StatusCode, svcErr)
		return nil, svcErr
	}

	log.Debug("prediction service body", "body", string(body))
	return json.RawMessage(body), nil
}

// transportCause strips the "Post <url>:" prefix net/http adds so the
// reported message is the underlying cause.
func transportCause(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
