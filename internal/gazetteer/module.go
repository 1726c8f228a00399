package gazetteer

import (
	apphttp "cosmic_insights_backend/internal/http"
)

// Module wires the place suggestion HTTP routes.
type Module struct {
	handler *Handler
}

func NewModule() *Module {
	return &Module{handler: NewHandler(Cities(), DefaultLimit)}
}

func (m *Module) Name() string {
	return "gazetteer"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.API.Group("/places")
	group.GET("/suggest", m.handler.Suggest)
}

var _ apphttp.Module = (*Module)(nil)
