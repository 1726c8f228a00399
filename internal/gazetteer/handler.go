package gazetteer

import (
	"cosmic_insights_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// SuggestRequest represents the query parameters from the form page.
type SuggestRequest struct {
	Query string `form:"q"`
}

// SuggestResponse mirrors the autocomplete state the page should show.
type SuggestResponse struct {
	Visible     bool     `json:"visible"`
	Suggestions []string `json:"suggestions"`
}

// Handler exposes the place suggestion endpoint.
type Handler struct {
	cities []string
	limit  int
}

func NewHandler(cities []string, limit int) *Handler {
	return &Handler{cities: cities, limit: limit}
}

// Suggest handles GET /api/places/suggest?q=...
func (h *Handler) Suggest(c *gin.Context) {
	var req SuggestRequest
	_ = c.ShouldBindQuery(&req)

	if !ShouldSuggest(req.Query) {
		httpkit.OK(c, SuggestResponse{Visible: false, Suggestions: []string{}})
		return
	}

	httpkit.OK(c, SuggestResponse{
		Visible:     true,
		Suggestions: Suggest(req.Query, h.cities, h.limit),
	})
}
