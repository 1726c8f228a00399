// Package web serves the embedded birth-details page.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	apphttp "cosmic_insights_backend/internal/http"

	"github.com/gin-gonic/gin"
)

//go:embed static/*
var embedded embed.FS

// Module serves the page at / and its assets under /static.
type Module struct {
	index  []byte
	assets fs.FS
}

func NewModule() *Module {
	index, err := embedded.ReadFile("static/index.html")
	if err != nil {
		panic(err)
	}
	assets, err := fs.Sub(embedded, "static")
	if err != nil {
		panic(err)
	}
	return &Module{index: index, assets: assets}
}

func (m *Module) Name() string {
	return "web"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Engine.GET("/", m.serveIndex)
	ctx.Engine.StaticFS("/static", http.FS(m.assets))
}

func (m *Module) serveIndex(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/html; charset=utf-8", m.index)
}

var _ apphttp.Module = (*Module)(nil)
