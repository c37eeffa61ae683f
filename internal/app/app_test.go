package app

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rizkyfalih/league-manager/internal/config"
	"github.com/rizkyfalih/league-manager/internal/platform/logging"
)

func TestNewHTTPServer_MemoryBackend(t *testing.T) {
	cfg := config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "league-manager-api",
		HTTPAddr:           ":8080",
		CORSAllowedOrigins: []string{"*"},
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       15 * time.Second,
		JanusTimeout:       3 * time.Second,
	}

	srv, err := NewHTTPServer(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build http server: %v", err)
	}
	if srv.Addr != ":8080" {
		t.Fatalf("unexpected server addr: %q", srv.Addr)
	}

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("healthz: expected 200, got %d", rec.Code)
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	cfg := config.Config{
		CORSAllowedOrigins: []string{"*"},
	}

	if _, err := NewHTTPServer(cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}
