// Package astrology provides the prediction proxy bounded context.
package astrology

import (
	"cosmic_insights_backend/internal/astrology/client"
	"cosmic_insights_backend/internal/astrology/handler"
	"cosmic_insights_backend/internal/astrology/service"
	apphttp "cosmic_insights_backend/internal/http"
	"cosmic_insights_backend/platform/config"
	"cosmic_insights_backend/platform/logger"
	"cosmic_insights_backend/platform/validator"
)

// Module is the prediction proxy bounded context module.
type Module struct {
	handler *handler.Handler
}

// NewModule wires the outbound client, proxy policy and handler.
func NewModule(cfg config.PredictionConfig, val *validator.Validator, log *logger.Logger) *Module {
	apiClient := client.New(cfg.GetPredictionServiceURL(), cfg.GetPredictionTimeout(), log)
	return newModule(apiClient, cfg.IsStrictPayload(), val, log)
}

func newModule(forwarder service.Forwarder, strict bool, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(forwarder, val, strict, log)

	log.Info("astrology module initialized", "strictPayload", strict)

	return &Module{
		handler: handler.New(svc, log),
	}
}

func (m *Module) Name() string {
	return "astrology"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.API.POST("/astrology", m.handler.Predict)
}

var _ apphttp.Module = (*Module)(nil)
