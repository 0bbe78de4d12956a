package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/admindesk/directory-system/internal/core/domain"
	"github.com/admindesk/directory-system/internal/core/service"
	"github.com/admindesk/directory-system/internal/directory"
	"github.com/admindesk/directory-system/internal/infrastructure/db/memory"
)

// TestRouter_EndToEnd exercises the whole wired stack over HTTP: seeded
// directory, session login, token auth, RBAC, the delete confirmation flow,
// and the probes. The router is built once; echoprometheus registers on the
// default prometheus registry and must not be constructed twice per process.
func TestRouter_EndToEnd(t *testing.T) {
	log := zerolog.Nop()
	store := memory.NewStore()

	repo, err := directory.New(context.Background(), store, log, directory.Options{})
	if err != nil {
		t.Fatalf("directory.New: %v", err)
	}
	sessions, err := service.NewSessionService(context.Background(), repo, store, "e2e-secret", log)
	if err != nil {
		t.Fatalf("NewSessionService: %v", err)
	}
	gate := service.NewConfirmationGate(log)
	coordinator := service.NewDirectoryService(repo, sessions, gate, log)

	e := NewRouter(Deps{
		Directory: coordinator,
		Sessions:  sessions,
		Gate:      gate,
		Store:     store,
		JWTSecret: "e2e-secret",
		Logger:    log,
	})

	do := func(method, target, token, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, target, strings.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		} else {
			req = httptest.NewRequest(method, target, nil)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	login := func(email string) string {
		rec := do(http.MethodPost, "/auth/login", "", `{"email":"`+email+`","password":"password"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("login %s: expected 200, got %d (%s)", email, rec.Code, rec.Body.String())
		}
		var resp struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode login response: %v", err)
		}
		return resp.Token
	}

	t.Run("login rejects bad credentials", func(t *testing.T) {
		rec := do(http.MethodPost, "/auth/login", "", `{"email":"test.user@example.com","password":"wrong"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		rec = do(http.MethodPost, "/auth/login", "", `{"email":"nobody@example.com","password":"password"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	adminToken := login("test.user@example.com")

	t.Run("users require a token", func(t *testing.T) {
		rec := do(http.MethodGet, "/v1/users", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("list users", func(t *testing.T) {
		rec := do(http.MethodGet, "/v1/users?pageSize=5", adminToken, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		var resp struct {
			Data  []domain.User `json:"data"`
			Total int           `json:"total"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Total != 75 || len(resp.Data) != 5 {
			t.Fatalf("unexpected page: total=%d len=%d", resp.Total, len(resp.Data))
		}
	})

	t.Run("create duplicate email conflicts", func(t *testing.T) {
		rec := do(http.MethodPost, "/v1/users", adminToken,
			`{"firstName":"A","lastName":"B","email":"TEST.USER@example.com","role":"viewer","status":"active"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d (%s)", rec.Code, rec.Body.String())
		}
	})

	t.Run("create user", func(t *testing.T) {
		rec := do(http.MethodPost, "/v1/users", adminToken,
			`{"firstName":"Nora","lastName":"Said","email":"nora.said@example.com","role":"viewer","status":"active"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
		}
		var u domain.User
		if err := json.Unmarshal(rec.Body.Bytes(), &u); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if u.ID != "76" {
			t.Fatalf("expected allocated id 76, got %s", u.ID)
		}
	})

	t.Run("patch user", func(t *testing.T) {
		rec := do(http.MethodPatch, "/v1/users/2", adminToken, `{"status":"suspended"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		var u domain.User
		if err := json.Unmarshal(rec.Body.Bytes(), &u); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if u.Status != domain.StatusSuspended || u.FirstName != "Mohammed" {
			t.Fatalf("partial update wrong: %+v", u)
		}
	})

	t.Run("delete flows through confirmation", func(t *testing.T) {
		rec := do(http.MethodDelete, "/v1/users/3", adminToken, "")
		if rec.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d (%s)", rec.Code, rec.Body.String())
		}

		rec = do(http.MethodGet, "/v1/confirmation", adminToken, "")
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Confirm Delete") {
			t.Fatalf("expected pending delete confirmation, got %d (%s)", rec.Code, rec.Body.String())
		}

		// Nothing removed until confirmed.
		rec = do(http.MethodGet, "/v1/users/3", adminToken, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("user removed before confirmation: %d", rec.Code)
		}

		rec = do(http.MethodPost, "/v1/confirmation/confirm", adminToken, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("confirm: expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}

		rec = do(http.MethodGet, "/v1/users/3", adminToken, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 after confirmed delete, got %d", rec.Code)
		}

		// A second confirm has nothing pending.
		rec = do(http.MethodPost, "/v1/confirmation/confirm", adminToken, "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("cancel keeps the user", func(t *testing.T) {
		rec := do(http.MethodDelete, "/v1/users/4", adminToken, "")
		if rec.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d", rec.Code)
		}
		rec = do(http.MethodPost, "/v1/confirmation/cancel", adminToken, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("cancel: expected 200, got %d", rec.Code)
		}
		rec = do(http.MethodGet, "/v1/users/4", adminToken, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("cancelled delete removed the user: %d", rec.Code)
		}
	})

	t.Run("roles are admin only", func(t *testing.T) {
		rec := do(http.MethodGet, "/v1/roles", adminToken, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		var roles []domain.Role
		if err := json.Unmarshal(rec.Body.Bytes(), &roles); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(roles) != 3 {
			t.Fatalf("expected 3 roles, got %d", len(roles))
		}
	})

	t.Run("viewer is blocked from writes", func(t *testing.T) {
		viewerToken := login("khaled.ali@example.com")

		rec := do(http.MethodPost, "/v1/users", viewerToken,
			`{"firstName":"X","lastName":"Y","email":"x@y.com","role":"viewer","status":"active"}`)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		rec = do(http.MethodDelete, "/v1/users/5", viewerToken, "")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		rec = do(http.MethodGet, "/v1/roles", viewerToken, "")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		// Reads stay open to every role.
		rec = do(http.MethodGet, "/v1/users", viewerToken, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("probes and metrics", func(t *testing.T) {
		if rec := do(http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
			t.Fatalf("liveness: expected 200, got %d", rec.Code)
		}
		if rec := do(http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
			t.Fatalf("readiness: expected 200, got %d", rec.Code)
		}
		if rec := do(http.MethodGet, "/metrics", "", ""); rec.Code != http.StatusOK {
			t.Fatalf("metrics: expected 200, got %d", rec.Code)
		}
	})

	t.Run("session endpoint reflects login state", func(t *testing.T) {
		rec := do(http.MethodGet, "/auth/session", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp struct {
			Authenticated bool `json:"authenticated"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !resp.Authenticated {
			t.Fatal("expected an authenticated session")
		}

		if rec := do(http.MethodPost, "/auth/logout", "", ""); rec.Code != http.StatusNoContent {
			t.Fatalf("logout: expected 204, got %d", rec.Code)
		}
		rec = do(http.MethodGet, "/auth/session", "", "")
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Authenticated {
			t.Fatal("expected anonymous session after logout")
		}
	})
}
