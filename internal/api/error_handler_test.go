package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/admindesk/directory-system/internal/core/domain"
)

func renderError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrMissingFields, http.StatusBadRequest},
		{domain.ErrInvalidRole, http.StatusBadRequest},
		{domain.ErrInvalidStatus, http.StatusBadRequest},
		{domain.ErrDuplicateEmail, http.StatusConflict},
		{domain.ErrTransient, http.StatusBadGateway},
		{domain.ErrUnauthorized, http.StatusForbidden},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrSessionExpired, http.StatusUnauthorized},
		{domain.ErrNoPendingConfirmation, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := renderError(t, tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), `"error"`) {
				t.Fatalf("missing error envelope: %s", rec.Body.String())
			}
		})
	}
}

func TestErrorHandler_WrappedErrorsStillMap(t *testing.T) {
	wrapped := fmt.Errorf("delete: %w", domain.ErrTransient)
	rec := renderError(t, wrapped)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for wrapped transient error, got %d", rec.Code)
	}
}

func TestErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	rec := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "missing authorization header") {
		t.Fatalf("message lost: %s", rec.Body.String())
	}
}

func TestErrorHandler_UnknownErrorIs500WithoutLeak(t *testing.T) {
	rec := renderError(t, errors.New("pq: connection reset by peer"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}
