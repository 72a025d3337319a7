package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bagibarang-its/inventory-api/internal/api/middleware"
	"github.com/bagibarang-its/inventory-api/internal/core/domain"
	"github.com/bagibarang-its/inventory-api/internal/core/ports"
)

var activeOrg = &domain.Organization{
	ID:          "665f1c2e8a1b2c3d4e5f6a7b",
	Name:        "CSS ITS",
	AccountName: "css_its",
	Email:       "a@student.its.ac.id",
	Status:      domain.StatusActive,
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newContext builds a request context; org, when non-nil, is placed where
// the Auth middleware would put it.
func newContext(e *echo.Echo, method, target, body string, org *domain.Organization) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if org != nil {
		c.Set(middleware.OrganizationKey, org)
	}
	return c, rec
}

type stubAuthService struct {
	registerFn     func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn        func(ctx context.Context, accountName, password string) (*ports.AuthResult, error)
	authenticateFn func(ctx context.Context, token string) (*domain.Organization, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, accountName, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, accountName, password)
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*domain.Organization, error) {
	return s.authenticateFn(ctx, token)
}

type stubItemService struct {
	createFn  func(ctx context.Context, actor *domain.Organization, in ports.CreateItemInput) (*ports.CreateItemResult, error)
	updateFn  func(ctx context.Context, actor *domain.Organization, id string, in ports.UpdateItemInput) (*domain.Item, error)
	deleteFn  func(ctx context.Context, actor *domain.Organization, id string) error
	getFn     func(ctx context.Context, id string) (*domain.Item, error)
	listFn    func(ctx context.Context) ([]*domain.Item, error)
	listOwnFn func(ctx context.Context, actor *domain.Organization) ([]*domain.Item, error)
}

func (s *stubItemService) CreateItem(ctx context.Context, actor *domain.Organization, in ports.CreateItemInput) (*ports.CreateItemResult, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubItemService) UpdateItem(ctx context.Context, actor *domain.Organization, id string, in ports.UpdateItemInput) (*domain.Item, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubItemService) DeleteItem(ctx context.Context, actor *domain.Organization, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubItemService) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	return s.getFn(ctx, id)
}

func (s *stubItemService) ListItems(ctx context.Context) ([]*domain.Item, error) {
	return s.listFn(ctx)
}

func (s *stubItemService) ListOwnItems(ctx context.Context, actor *domain.Organization) ([]*domain.Item, error) {
	return s.listOwnFn(ctx, actor)
}
