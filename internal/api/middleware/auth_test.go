package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bagibarang-its/inventory-api/internal/core/domain"
)

type stubAuthenticator struct {
	org   *domain.Organization
	err   error
	token string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*domain.Organization, error) {
	s.token = token
	return s.org, s.err
}

func runAuth(t *testing.T, authn Authenticator, header string) (c echo.Context, called bool, err error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c = e.NewContext(req, rec)

	err = Auth(authn)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return c, called, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	org := &domain.Organization{ID: "org-1", AccountName: "css_its", Status: domain.StatusActive}
	stub := &stubAuthenticator{org: org}

	c, called, err := runAuth(t, stub, "Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if stub.token != "abc.def.ghi" {
		t.Fatalf("expected token to be passed through, got %q", stub.token)
	}
	if got := Organization(c); got != org {
		t.Fatalf("organization not set in context: %+v", got)
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	stub := &stubAuthenticator{org: &domain.Organization{ID: "org-1"}}

	_, called, err := runAuth(t, stub, "bearer tok")
	if err != nil || !called {
		t.Fatalf("expected lowercase scheme to pass, err=%v called=%v", err, called)
	}
}

func TestAuthMiddleware_MissingOrMalformedHeader(t *testing.T) {
	for _, header := range []string{"", "Token abc", "Bearer", "Bearer    ", "abc"} {
		stub := &stubAuthenticator{}
		_, called, err := runAuth(t, stub, header)
		if called {
			t.Fatalf("%q: should not reach next", header)
		}
		if !errors.Is(err, domain.ErrMissingToken) {
			t.Fatalf("%q: expected ErrMissingToken, got %v", header, err)
		}
		if stub.token != "" {
			t.Fatalf("%q: authenticator should not be called", header)
		}
	}
}

func TestAuthMiddleware_RejectedToken(t *testing.T) {
	for _, want := range []error{domain.ErrInvalidToken, domain.ErrUnknownActor} {
		c, called, err := runAuth(t, &stubAuthenticator{err: want}, "Bearer not-a-token")
		if called {
			t.Fatalf("should not reach next")
		}
		if !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
		if !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("expected an authentication error kind, got %v", err)
		}
		if Organization(c) != nil {
			t.Fatalf("organization must not be set on failure")
		}
	}
}
