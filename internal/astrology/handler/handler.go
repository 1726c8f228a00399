// Package handler provides the HTTP endpoint of the prediction proxy.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"cosmic_insights_backend/internal/astrology/transport"
	"cosmic_insights_backend/platform/apperr"
	"cosmic_insights_backend/platform/httpkit"
	"cosmic_insights_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// maxBodyBytes bounds the inbound payload; the form sends a few hundred bytes.
const maxBodyBytes = 1 << 20

// Predictor is the proxy operation the handler depends on.
type Predictor interface {
	Predict(ctx context.Context, body []byte) (json.RawMessage, error)
}

// Handler exposes the prediction proxy endpoint.
type Handler struct {
	svc Predictor
	log *logger.Logger
}

func New(svc Predictor, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Predict handles POST /api/astrology
func (h *Handler) Predict(c *gin.Context) {
	ctx := c.Request.Context()
	log := h.log.WithContext(ctx)

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		log.Warn("failed to read prediction request", "error", err)
		httpkit.HandleError(c, readError(err))
		return
	}
	log.Debug("prediction request received", "body", string(body))

	result, err := h.svc.Predict(ctx, body)
	if err != nil {
		if apperr.Is(err, apperr.KindValidation) {
			log.Warn("prediction request rejected", "error", err, "status", statusOf(err))
		} else {
			log.Error("prediction proxy failed", "error", err, "status", statusOf(err))
		}
		httpkit.HandleError(c, err)
		return
	}

	httpkit.RawJSON(c, http.StatusOK, result)
}

// readError classifies a failed body read. An oversized body is the
// client's fault; anything else keeps the proxy's failure shape.
func readError(err error) *apperr.Error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.BadRequest(transport.ErrInvalidRequest).WithDetails(err.Error())
	}
	return apperr.Upstream(transport.ErrServiceUnavailable, err).WithDetails(err.Error())
}

func statusOf(err error) int {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}
