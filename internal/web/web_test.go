package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apphttp "cosmic_insights_backend/internal/http"
	"cosmic_insights_backend/internal/http/router"
	"cosmic_insights_backend/platform/config"
	"cosmic_insights_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return router.New(&apphttp.App{
		Config:  &config.Config{},
		Logger:  logger.Discard(),
		Modules: []apphttp.Module{NewModule()},
	})
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestIndexServed(t *testing.T) {
	rec := get(newEngine(), "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Reveal My Cosmic Insights") {
		t.Fatal("expected submit label in page")
	}
	if strings.Contains(body, "<script>") || strings.Contains(body, "style=") {
		t.Fatal("page must not carry inline scripts or styles")
	}
}

func TestAssetsServed(t *testing.T) {
	engine := newEngine()
	for _, path := range []string{"/static/app.js", "/static/styles.css"} {
		if rec := get(engine, path); rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", path, rec.Code)
		}
	}
	if rec := get(engine, "/static/missing.js"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestScriptTargetsProxy(t *testing.T) {
	rec := get(newEngine(), "/static/app.js")
	if !strings.Contains(rec.Body.String(), "/api/astrology") {
		t.Fatal("expected script to post to the proxy")
	}
}

func TestScriptParsesSuccessBodyStrictly(t *testing.T) {
	script := get(newEngine(), "/static/app.js").Body.String()

	okBranch := strings.Index(script, "return res.json().then(")
	if okBranch < 0 {
		t.Fatal("expected success body parsed without a fallback")
	}
	if strings.Contains(script[okBranch:], "catch(function () { return {}; })") {
		t.Fatal("success body must not fall back to an empty object")
	}
}
