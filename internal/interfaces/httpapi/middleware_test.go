package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rizkyfalih/league-manager/internal/domain/user"
	"github.com/rizkyfalih/league-manager/internal/usecase"
)

func nextRecorder(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	t.Parallel()

	var called bool
	handler := CORS([]string{"https://admin.example.com"}, nextRecorder(&called))

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected next handler to run")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://admin.example.com" {
		t.Fatalf("unexpected allow-origin header: %q", got)
	}
	if got := rec.Header().Get("Vary"); got != "Origin" {
		t.Fatalf("expected Vary: Origin, got %q", got)
	}
}

func TestCORS_OptionsPreflight(t *testing.T) {
	t.Parallel()

	var called bool
	handler := CORS([]string{"*"}, nextRecorder(&called))

	req := httptest.NewRequest(http.MethodOptions, "/v1/seasons", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Fatalf("preflight must not reach the next handler")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected allow-origin header: %q", got)
	}
}

func TestCORS_DisallowsUnconfiguredOrigin(t *testing.T) {
	t.Parallel()

	var called bool
	handler := CORS([]string{"https://admin.example.com"}, nextRecorder(&called))

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatalf("plain request should still reach the next handler")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin header, got %q", got)
	}
}

type verifierFunc func(ctx context.Context, token string) (user.Principal, error)

func (f verifierFunc) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	return f(ctx, token)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	t.Parallel()

	var called bool
	handler := RequireAuth(verifierFunc(func(context.Context, string) (user.Principal, error) {
		t.Fatalf("verifier must not be called without a header")
		return user.Principal{}, nil
	}), nextRecorder(&called))

	req := httptest.NewRequest(http.MethodPost, "/v1/seasons", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Fatalf("next handler must not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	t.Parallel()

	var called bool
	handler := RequireAuth(verifierFunc(func(context.Context, string) (user.Principal, error) {
		return user.Principal{UserID: "u1"}, nil
	}), nextRecorder(&called))

	req := httptest.NewRequest(http.MethodPost, "/v1/seasons", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Fatalf("next handler must not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_StoresPrincipal(t *testing.T) {
	t.Parallel()

	var principal user.Principal
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok = principalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := RequireAuth(verifierFunc(func(_ context.Context, token string) (user.Principal, error) {
		if token != "abc" {
			return user.Principal{}, fmt.Errorf("%w: bad token", usecase.ErrUnauthorized)
		}
		return user.Principal{UserID: "u1", Email: "u1@example.com"}, nil
	}), next)

	req := httptest.NewRequest(http.MethodPost, "/v1/seasons", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !ok || principal.UserID != "u1" {
		t.Fatalf("expected principal in context, got ok=%v principal=%+v", ok, principal)
	}
}

func TestRequireInternalJobToken_Unconfigured(t *testing.T) {
	t.Parallel()

	var called bool
	handler := RequireInternalJobToken("", nextRecorder(&called))

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/rebuild-rankings", nil)
	req.Header.Set("X-Internal-Job-Token", "anything")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Fatalf("next handler must not run")
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestRequireInternalJobToken_WrongToken(t *testing.T) {
	t.Parallel()

	var called bool
	handler := RequireInternalJobToken("secret", nextRecorder(&called))

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/rebuild-rankings", nil)
	req.Header.Set("X-Internal-Job-Token", "wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Fatalf("next handler must not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireInternalJobToken_ValidToken(t *testing.T) {
	t.Parallel()

	var called bool
	handler := RequireInternalJobToken("secret", nextRecorder(&called))

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/rebuild-rankings", nil)
	req.Header.Set("X-Internal-Job-Token", "secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected next handler to run")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
