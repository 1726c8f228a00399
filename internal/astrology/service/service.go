// Package service provides the proxy policy for prediction requests.
package service

import (
	"context"
	"encoding/json"
	"errors"

	"cosmic_insights_backend/internal/astrology/client"
	"cosmic_insights_backend/internal/astrology/transport"
	"cosmic_insights_backend/platform/apperr"
	"cosmic_insights_backend/platform/logger"
	"cosmic_insights_backend/platform/validator"
)

// Forwarder sends a payload to the prediction service.
type Forwarder interface {
	Forward(ctx context.Context, payload []byte) (json.RawMessage, error)
}

// Service applies the payload policy and normalizes forwarding failures.
type Service struct {
	forwarder Forwarder
	val       *validator.Validator
	strict    bool
	log       *logger.Logger
}

// New creates the proxy service. When strict is true, bodies that are not a
// complete PredictionRequest are rejected before any outbound call.
func New(forwarder Forwarder, val *validator.Validator, strict bool, log *logger.Logger) *Service {
	return &Service{
		forwarder: forwarder,
		val:       val,
		strict:    strict,
		log:       log,
	}
}

// Predict forwards body exactly once and returns the reply unmodified.
func (s *Service) Predict(ctx context.Context, body []byte) (json.RawMessage, error) {
	if err := s.checkPayload(body); err != nil {
		return nil, err
	}

	result, err := s.forwarder.Forward(ctx, body)
	if err != nil {
		return nil, normalize(err)
	}
	return result, nil
}

func (s *Service) checkPayload(body []byte) error {
	if !s.strict {
		if json.Valid(body) {
			return nil
		}
		var probe any
		return normalize(json.Unmarshal(body, &probe))
	}

	var req transport.PredictionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperr.Validation(transport.ErrInvalidRequest).WithOp("predict").WithDetails(err.Error())
	}
	if err := s.val.Struct(req); err != nil {
		return apperr.Validation(transport.ErrInvalidRequest).WithOp("predict").WithDetails(validator.Describe(err))
	}
	return nil
}

// normalize maps every failure on the way to the prediction service onto the
// single user-facing shape.
func normalize(err error) *apperr.Error {
	details := transport.UnknownErrorDetails
	if err != nil && err.Error() != "" {
		details = err.Error()
	}

	var svcErr *client.ServiceError
	if errors.As(err, &svcErr) {
		details = svcErr.Error()
	}

	return apperr.Upstream(transport.ErrServiceUnavailable, err).WithOp("predict").WithDetails(details)
}
