package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bilemo/bilemo-api/internal/api/middleware"
	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

var (
	adminPrincipal  = domain.Principal{ClientID: 1, Email: "admin@bilemo.test", Role: domain.RoleAdmin}
	clientPrincipal = domain.Principal{ClientID: 7, Email: "shop@example.com", Role: domain.RoleClient}
)

// newTestContext builds an echo context for a JSON request, with the request
// validator installed and p stored as the authenticated caller when non-nil.
func newTestContext(t *testing.T, method, target, body string, p *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

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
	if p != nil {
		middleware.WithPrincipal(c, *p)
	}
	return c, rec
}

func withID(c echo.Context, id string) {
	c.SetParamNames("id")
	c.SetParamValues(id)
}

func freshPage[T any](route string, items ...T) *ports.ListResult[T] {
	return &ports.ListResult[T]{
		ETag: "abc123",
		Page: &domain.Page[T]{
			Items:      items,
			Page:       1,
			Limit:      10,
			Total:      int64(len(items)),
			TotalPages: domain.TotalPages(int64(len(items)), 10),
			Route:      route,
		},
	}
}

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (string, *domain.Client, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Client, error) {
	return s.loginFn(ctx, email, password)
}

type stubClientService struct {
	getFn    func(ctx context.Context, p domain.Principal, id uint) (*domain.Client, error)
	listFn   func(ctx context.Context, in ports.ListInput) (*ports.ListResult[*domain.Client], error)
	createFn func(ctx context.Context, p domain.Principal, in ports.ClientInput) (*domain.Client, error)
	updateFn func(ctx context.Context, p domain.Principal, id uint, in ports.ClientInput) (*domain.Client, error)
	deleteFn func(ctx context.Context, p domain.Principal, id uint) error
}

func (s *stubClientService) Get(ctx context.Context, p domain.Principal, id uint) (*domain.Client, error) {
	return s.getFn(ctx, p, id)
}

func (s *stubClientService) List(ctx context.Context, in ports.ListInput) (*ports.ListResult[*domain.Client], error) {
	return s.listFn(ctx, in)
}

func (s *stubClientService) Create(ctx context.Context, p domain.Principal, in ports.ClientInput) (*domain.Client, error) {
	return s.createFn(ctx, p, in)
}

func (s *stubClientService) Update(ctx context.Context, p domain.Principal, id uint, in ports.ClientInput) (*domain.Client, error) {
	return s.updateFn(ctx, p, id, in)
}

func (s *stubClientService) Delete(ctx context.Context, p domain.Principal, id uint) error {
	return s.deleteFn(ctx, p, id)
}

func (s *stubClientService) EnsureAdmin(context.Context, ports.AdminSeed) (bool, error) {
	return false, nil
}

type stubMobileService struct {
	getFn    func(ctx context.Context, p domain.Principal, id uint) (*domain.Mobile, error)
	listFn   func(ctx context.Context, in ports.ListInput) (*ports.ListResult[*domain.Mobile], error)
	createFn func(ctx context.Context, p domain.Principal, in ports.MobileInput) (*domain.Mobile, error)
	updateFn func(ctx context.Context, p domain.Principal, id uint, in ports.MobileInput) (*domain.Mobile, error)
	deleteFn func(ctx context.Context, p domain.Principal, id uint) error
}

func (s *stubMobileService) Get(ctx context.Context, p domain.Principal, id uint) (*domain.Mobile, error) {
	return s.getFn(ctx, p, id)
}

func (s *stubMobileService) List(ctx context.Context, in ports.ListInput) (*ports.ListResult[*domain.Mobile], error) {
	return s.listFn(ctx, in)
}

func (s *stubMobileService) Create(ctx context.Context, p domain.Principal, in ports.MobileInput) (*domain.Mobile, error) {
	return s.createFn(ctx, p, in)
}

func (s *stubMobileService) Update(ctx context.Context, p domain.Principal, id uint, in ports.MobileInput) (*domain.Mobile, error) {
	return s.updateFn(ctx, p, id, in)
}

func (s *stubMobileService) Delete(ctx context.Context, p domain.Principal, id uint) error {
	return s.deleteFn(ctx, p, id)
}

type stubUserService struct {
	getFn          func(ctx context.Context, p domain.Principal, id uint) (*domain.User, error)
	listFn         func(ctx context.Context, in ports.ListInput) (*ports.ListResult[*domain.User], error)
	listAllFn      func(ctx context.Context, in ports.ListInput) (*ports.ListResult[*domain.User], error)
	listByClientFn func(ctx context.Context, in ports.ListInput, clientID uint) (*ports.ListResult[*domain.User], error)
	createFn       func(ctx context.Context, p domain.Principal, in ports.UserInput) (*domain.User, error)
	updateFn       func(ctx context.Context, p domain.Principal, id uint, in ports.UserInput) (*domain.User, error)
	deleteFn       func(ctx context.Context, p domain.Principal, id uint) error
}

func (s *stubUserService) Get(ctx context.Context, p domain.Principal, id uint) (*domain.User, error) {
	return s.getFn(ctx, p, id)
}

func (s *stubUserService) List(ctx context.Context, in ports.ListInput) (*ports.ListResult[*domain.User], error) {
	return s.listFn(ctx, in)
}

func (s *stubUserService) ListAll(ctx context.Context, in ports.ListInput) (*ports.ListResult[*domain.User], error) {
	return s.listAllFn(ctx, in)
}

func (s *stubUserService) ListByClient(ctx context.Context, in ports.ListInput, clientID uint) (*ports.ListResult[*domain.User], error) {
	return s.listByClientFn(ctx, in, clientID)
}

func (s *stubUserService) Create(ctx context.Context, p domain.Principal, in ports.UserInput) (*domain.User, error) {
	return s.createFn(ctx, p, in)
}

func (s *stubUserService) Update(ctx context.Context, p domain.Principal, id uint, in ports.UserInput) (*domain.User, error) {
	return s.updateFn(ctx, p, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, p domain.Principal, id uint) error {
	return s.deleteFn(ctx, p, id)
}
