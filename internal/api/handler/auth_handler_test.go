package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/domain"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/core/service"
	"github.com/ElazAzel/Navyk-Saas-sub000/internal/infrastructure/store"
)

type nopNotifier struct{}

func (nopNotifier) Warn(string)         {}
func (nopNotifier) SessionEnded(string) {}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type stubDoer struct {
	calls int
}

func (d *stubDoer) Do(*http.Request) (*http.Response, error) {
	d.calls++
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("upstream ok")),
	}, nil
}

// newTestRegistry builds a registry over the mock credential verifier
// and in-memory storage, mirroring the server's default wiring.
func newTestRegistry(mutate func(*service.SessionConfig)) (*service.SessionRegistry, *stubDoer) {
	doer := &stubDoer{}
	registry := service.NewSessionRegistry(context.Background(), func(clientID string) *service.SessionManager {
		cfg := service.DefaultSessionConfig("navyk")
		cfg.ClientID = clientID
		if mutate != nil {
			mutate(&cfg)
		}
		return service.NewSessionManager(cfg, service.SessionDeps{
			Tokens:   service.NewTokenManager("test-secret", 2*time.Hour),
			Verifier: service.NewMockCredentialVerifier(),
			Store:    store.NewMemory(),
			Notifier: nopNotifier{},
			Clock:    realClock{},
			Doer:     doer,
			Log:      zerolog.Nop(),
		})
	})
	return registry, doer
}

func newJSONContext(e *echo.Echo, method, target, body, client string) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if client != "" {
		req.Header.Set("X-Client-ID", client)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	registry, _ := newTestRegistry(nil)
	defer registry.Close()
	h := NewAuthHandler(registry, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/auth/login",
		`{"username":"student_alice","password":"secret"}`, "client-1")

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] == "" {
		t.Fatalf("expected a token in the response")
	}
	roles, _ := resp["roles"].([]any)
	if len(roles) != 2 || roles[0] != "user" || roles[1] != "student" {
		t.Fatalf("unexpected roles %v", roles)
	}
	csrf, _ := resp["csrf_token"].(string)
	if len(csrf) != 64 {
		t.Fatalf("expected a 64-char csrf token, got %q", csrf)
	}
}

func TestAuthHandler_Login_MissingClientHeader(t *testing.T) {
	e := echo.New()
	registry, _ := newTestRegistry(nil)
	defer registry.Close()
	h := NewAuthHandler(registry, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/auth/login",
		`{"username":"alice","password":"secret"}`, "")

	if err := h.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_EmptyCredentials(t *testing.T) {
	e := echo.New()
	registry, _ := newTestRegistry(nil)
	defer registry.Close()
	h := NewAuthHandler(registry, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/auth/login",
		`{"username":"alice","password":""}`, "client-1")

	if err := h.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_LogoutAndRefresh(t *testing.T) {
	e := echo.New()
	registry, _ := newTestRegistry(nil)
	defer registry.Close()
	h := NewAuthHandler(registry, nil)

	// Refresh with no session at all.
	c, rec := newJSONContext(e, http.MethodPost, "/auth/refresh", "", "client-1")
	if err := h.Refresh(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 before login, got %d", rec.Code)
	}

	c, _ = newJSONContext(e, http.MethodPost, "/auth/login",
		`{"username":"alice","password":"secret"}`, "client-1")
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}

	c, rec = newJSONContext(e, http.MethodPost, "/auth/refresh", "", "client-1")
	if err := h.Refresh(c); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, rec = newJSONContext(e, http.MethodPost, "/auth/logout", "", "client-1")
	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if registry.Get("client-1").IsAuthenticated() {
		t.Fatalf("expected anonymous session after logout")
	}

	// Logout for an unknown client is still a 204.
	c, rec = newJSONContext(e, http.MethodPost, "/auth/logout", "", "ghost")
	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestAuthHandler_CSRF(t *testing.T) {
	e := echo.New()
	registry, _ := newTestRegistry(nil)
	defer registry.Close()
	h := NewAuthHandler(registry, nil)

	c, rec := newJSONContext(e, http.MethodGet, "/auth/csrf", "", "client-1")
	if err := h.CSRF(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp csrfResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.CSRFToken) != 64 {
		t.Fatalf("expected a 64-char csrf token, got %q", resp.CSRFToken)
	}

	// Same session, same token.
	c, rec = newJSONContext(e, http.MethodGet, "/auth/csrf", "", "client-1")
	if err := h.CSRF(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var again csrfResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &again); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if again.CSRFToken != resp.CSRFToken {
		t.Fatalf("csrf token must be stable within a session")
	}
}

type stubIdentity struct {
	registerFn func(ctx context.Context, username, password, email, role, associationID string) (*domain.User, error)
}

func (s *stubIdentity) Register(ctx context.Context, username, password, email, role, associationID string) (*domain.User, error) {
	return s.registerFn(ctx, username, password, email, role, associationID)
}

func (s *stubIdentity) Verify(context.Context, string, string) ([]string, error) {
	return nil, domain.ErrInvalidCredentials
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	registry, _ := newTestRegistry(nil)
	defer registry.Close()

	stub := &stubIdentity{
		registerFn: func(_ context.Context, username, _, _, role, associationID string) (*domain.User, error) {
			if username != "acme_hr" || role != "employer" || associationID != "emp-1" {
				t.Fatalf("unexpected args: %s %s %s", username, role, associationID)
			}
			return &domain.User{ID: "u1", Username: username, Role: role, EmployerID: associationID}, nil
		},
	}
	h := NewAuthHandler(registry, stub)

	c, rec := newJSONContext(e, http.MethodPost, "/auth/register",
		`{"username":"acme_hr","password":"Secret123!","email":"hr@acme.io","role":"employer","association_id":"emp-1"}`, "")

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Disabled(t *testing.T) {
	e := echo.New()
	registry, _ := newTestRegistry(nil)
	defer registry.Close()
	h := NewAuthHandler(registry, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/auth/register",
		`{"username":"alice","password":"Secret123!","role":"student"}`, "")

	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Rejections(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	registry, _ := newTestRegistry(nil)
	defer registry.Close()
	stub := &stubIdentity{
		registerFn: func(context.Context, string, string, string, string, string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(registry, stub)

	cases := []struct {
		name string
		body string
		code int
	}{
		{"weak password", `{"username":"alice","password":"Abc12345","role":"student"}`, http.StatusBadRequest},
		{"bad username", `{"username":"a!","password":"Secret123!","role":"student"}`, http.StatusBadRequest},
		{"unknown role", `{"username":"alice","password":"Secret123!","role":"overlord"}`, http.StatusUnprocessableEntity},
		{"duplicate user", `{"username":"alice","password":"Secret123!","role":"student"}`, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(e, http.MethodPost, "/auth/register", tc.body, "")
			if err := h.Register(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d: %s", tc.code, rec.Code, rec.Body.String())
			}
		})
	}
}
