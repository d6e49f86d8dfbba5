package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret-key-for-unit-tests-only"

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID, RoleDoctor, "Dr. Rodrigo Paz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		ctx := c.Request().Context()
		if got := UserIDFromContext(ctx); got != userID {
			t.Errorf("expected user id %s, got %s", userID, got)
		}
		if got := RoleFromContext(ctx); got != RoleDoctor {
			t.Errorf("expected role doctor, got %s", got)
		}
		return c.NoContent(http.StatusOK)
	}

	h := JWTMiddleware(testSecret)(handler)
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTMiddleware(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	err := h(c)
	if err == nil {
		t.Fatal("expected error for missing authorization header")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("another-secret-used-by-somebody-else", time.Hour)
	token, err := issuer.Issue(uuid.New(), RoleAdmin, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTMiddleware(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	err = h(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for mismatched secret, got %v", err)
	}
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, -time.Minute)
	token, err := issuer.Issue(uuid.New(), RoleDoctor, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTMiddleware(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestDevAuthMiddleware(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		ctx := c.Request().Context()
		if RoleFromContext(ctx) != RoleAdmin {
			t.Error("expected dev identity to be admin")
		}
		if UserIDFromContext(ctx) != DevUserID {
			t.Error("expected dev user id")
		}
		return c.NoContent(http.StatusOK)
	}

	h := DevAuthMiddleware()(handler)
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestViewerFromContext(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	userID := uuid.New()
	token, err := issuer.Issue(userID, RoleDoctor, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTMiddleware(testSecret)(func(c echo.Context) error {
		v := ViewerFromContext(c.Request().Context())
		if v.Admin {
			t.Error("expected doctor viewer not to be admin")
		}
		if v.ID != userID {
			t.Errorf("expected viewer id %s, got %s", userID, v.ID)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
