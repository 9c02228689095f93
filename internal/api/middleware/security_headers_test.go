package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := SecurityHeaders()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"X-XSS-Protection":       "1; mode=block",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for name, value := range want {
		if got := rec.Header().Get(name); got != value {
			t.Errorf("header %s: expected %q, got %q", name, value, got)
		}
	}

	csp := rec.Header().Get("Content-Security-Policy")
	for _, directive := range []string{
		"default-src 'self';",
		"script-src 'self' 'unsafe-inline';",
		"style-src 'self' 'unsafe-inline';",
		"img-src 'self' data:;",
		"font-src 'self' data:;",
	} {
		if !strings.Contains(csp, directive) {
			t.Errorf("csp missing %q in %q", directive, csp)
		}
	}
}

type emitterStub struct {
	emitted []string
}

func (e *emitterStub) Emit(clientID string) {
	e.emitted = append(e.emitted, clientID)
}

func TestActivity(t *testing.T) {
	e := echo.New()
	emitter := &emitterStub{}
	handler := Activity(emitter)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ClientHeader, "client-1")
	if err := handler(e.NewContext(req, httptest.NewRecorder())); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	// Requests without a client id are passed through silently.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	if err := handler(e.NewContext(req, httptest.NewRecorder())); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if len(emitter.emitted) != 1 || emitter.emitted[0] != "client-1" {
		t.Fatalf("expected one signal for client-1, got %v", emitter.emitted)
	}
}
