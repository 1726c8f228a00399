package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

var configKeys = []string{
	"APP_ENV",
	"HTTP_ADDR",
	"CORS_ORIGINS",
	"CORS_ALLOW_ALL",
	"CORS_ALLOW_CREDENTIALS",
	"PREDICTION_SERVICE_URL",
	"PREDICTION_TIMEOUT",
	"PREDICTION_STRICT_PAYLOAD",
	"PROXY_URL",
	"READING_LOG_FILE",
}

// unsetAll clears every config key for the duration of the test.
func unsetAll(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetAll(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.GetHTTPAddr() != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.GetHTTPAddr())
	}
	if cfg.GetPredictionServiceURL() != defaultPredictionServiceURL {
		t.Fatalf("expected default prediction URL, got %q", cfg.GetPredictionServiceURL())
	}
	if cfg.GetPredictionTimeout() != 0 {
		t.Fatalf("expected no timeout, got %s", cfg.GetPredictionTimeout())
	}
	if cfg.IsStrictPayload() {
		t.Fatal("expected lenient payload policy by default")
	}
	if cfg.IsCORSEnabled() {
		t.Fatal("expected CORS disabled without origins")
	}
	if cfg.GetProxyURL() != "http://localhost:8080" {
		t.Fatalf("expected default proxy URL, got %q", cfg.GetProxyURL())
	}
}

func TestLoadOverrides(t *testing.T) {
	unsetAll(t)
	t.Setenv("PREDICTION_SERVICE_URL", "http://predict.internal:9000/predict")
	t.Setenv("PREDICTION_TIMEOUT", "15s")
	t.Setenv("PREDICTION_STRICT_PAYLOAD", "TRUE")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("PROXY_URL", "http://localhost:9090/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.GetPredictionTimeout() != 15*time.Second {
		t.Fatalf("expected 15s, got %s", cfg.GetPredictionTimeout())
	}
	if !cfg.IsStrictPayload() {
		t.Fatal("expected strict payload policy")
	}
	if got := cfg.GetCORSOrigins(); len(got) != 2 || got[1] != "https://b.example" {
		t.Fatalf("expected two trimmed origins, got %v", got)
	}
	if !cfg.IsCORSEnabled() {
		t.Fatal("expected CORS enabled")
	}
	if cfg.GetProxyURL() != "http://localhost:9090" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.GetProxyURL())
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"relative prediction url", map[string]string{"PREDICTION_SERVICE_URL": "/predict"}, "PREDICTION_SERVICE_URL"},
		{"ftp prediction url", map[string]string{"PREDICTION_SERVICE_URL": "ftp://host/predict"}, "PREDICTION_SERVICE_URL"},
		{"bad timeout", map[string]string{"PREDICTION_TIMEOUT": "soon"}, "PREDICTION_TIMEOUT"},
		{"negative timeout", map[string]string{"PREDICTION_TIMEOUT": "-1s"}, "PREDICTION_TIMEOUT"},
		{"wildcard with credentials", map[string]string{"CORS_ORIGINS": "*", "CORS_ALLOW_CREDENTIALS": "true"}, "CORS_ALLOW_CREDENTIALS"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			unsetAll(t)
			for key, value := range tc.env {
				t.Setenv(key, value)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %s, got %v", tc.want, err)
			}
		})
	}
}
