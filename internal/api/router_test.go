package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bilemo/bilemo-api/internal/core/ports"
	"github.com/bilemo/bilemo-api/internal/core/service"
	"github.com/bilemo/bilemo-api/internal/infrastructure/db/sqlstore"
)

const (
	testSecret     = "test-secret"
	adminEmail     = "admin@bilemo.test"
	adminPassword  = "admin-password"
	mobileScenario = `{"name":"Pixel","price":"299.99","description":"A phone with a sufficiently long description."}`
)

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1"
	db, err := sqlstore.Open(ctx, sqlstore.Config{Driver: sqlstore.DriverSQLite, DSN: dsn, MaxAttempts: 1, Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlstore.Close(db) })
	require.NoError(t, sqlstore.Migrate(ctx, db))

	store := sqlstore.NewStore(db)
	opts := service.Options{
		Store:      store,
		Tables:     sqlstore.NewTableDetails(db),
		Logger:     zerolog.Nop(),
		BcryptCost: bcrypt.MinCost,
	}
	clients := service.NewClientService(opts, 5)
	created, err := clients.EnsureAdmin(ctx, ports.AdminSeed{Email: adminEmail, Password: adminPassword})
	require.NoError(t, err)
	require.True(t, created)

	e := NewRouter(Dependencies{
		Auth:       service.NewAuthService(store.Clients(), testSecret, 0),
		Clients:    clients,
		Mobiles:    service.NewMobileService(opts, 5),
		Users:      service.NewUserService(opts, 5),
		JWTSecret:  testSecret,
		LoginRate:  1000,
		LoginBurst: 1000,
		Logger:     zerolog.Nop(),
		Registerer: prometheus.NewRegistry(),
	})
	return &testServer{t: t, e: e}
}

func (s *testServer) do(method, path, token, body string, header ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/login", "", fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(s.t, resp.Token)
	return resp.Token
}

// createClient creates a client as admin and returns its id and token.
func (s *testServer) createClient(admin, email string) (uint, string) {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/admin/clients", admin,
		fmt.Sprintf(`{"name":"Shop","email":%q,"password":"secret1"}`, email))
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeID(s.t, rec), s.login(email, "secret1")
}

func (s *testServer) createUser(token, email string) uint {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/users", token,
		fmt.Sprintf(`{"username":"someone","email":%q,"password":"secret1"}`, email))
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeID(s.t, rec)
}

func decodeID(t *testing.T, rec *httptest.ResponseRecorder) uint {
	t.Helper()
	var resp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.ID)
	return resp.ID
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestRouter_MobileCreateShowAndDuplicate(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	rec := s.do(http.MethodPost, "/api/admin/mobiles", admin, mobileScenario)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decodeID(t, rec)
	assert.Equal(t, fmt.Sprintf("/api/mobiles/%d", id), rec.Header().Get(echo.HeaderLocation))

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/mobiles/%d", id), admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeMap(t, rec)
	assert.Equal(t, "Pixel", got["name"])
	assert.Equal(t, "299.99", got["price"])
	assert.Equal(t, "A phone with a sufficiently long description.", got["description"])

	rec = s.do(http.MethodPost, "/api/admin/mobiles", admin, mobileScenario)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeMap(t, rec)
	assert.Equal(t, []any{"This value is already used."}, errs["name"])

	rec = s.do(http.MethodGet, "/api/mobiles", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decodeMap(t, rec)["total"])
}

func TestRouter_InvalidPayloadChangesNothing(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	rec := s.do(http.MethodPost, "/api/admin/mobiles", admin, `{"name":"ab","price":"free","description":"x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeMap(t, rec)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "price")
	assert.Contains(t, errs, "description")

	rec = s.do(http.MethodGet, "/api/mobiles", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decodeMap(t, rec)["total"])
}

func TestRouter_ConditionalListing(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/admin/mobiles", admin, mobileScenario).Code)

	first := s.do(http.MethodGet, "/api/mobiles?page=1&limit=5", admin, "")
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Equal(t, "public, max-age=0, must-revalidate", first.Header().Get("Cache-Control"))

	again := s.do(http.MethodGet, "/api/mobiles?page=1&limit=5", admin, "", "If-None-Match", etag)
	require.Equal(t, http.StatusNotModified, again.Code)
	assert.Empty(t, again.Body.String())
	assert.Equal(t, etag, again.Header().Get("ETag"))

	rec := s.do(http.MethodPost, "/api/admin/mobiles", admin,
		`{"name":"Galaxy","price":199,"description":"Another phone for the catalogue."}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	after := s.do(http.MethodGet, "/api/mobiles?page=1&limit=5", admin, "", "If-None-Match", etag)
	require.Equal(t, http.StatusOK, after.Code)
	assert.NotEqual(t, etag, after.Header().Get("ETag"))
	assert.EqualValues(t, 2, decodeMap(t, after)["total"])

	// a different caller never shares a validation token
	_, shop := s.createClient(admin, "shop@example.com")
	other := s.do(http.MethodGet, "/api/mobiles?page=1&limit=5", shop, "", "If-None-Match", after.Header().Get("ETag"))
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestRouter_ScopedUserListing(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	aID, a := s.createClient(admin, "a@example.com")
	bID, b := s.createClient(admin, "b@example.com")
	s.createUser(a, "u1@example.com")
	s.createUser(a, "u2@example.com")
	bUser := s.createUser(b, "u3@example.com")

	rec := s.do(http.MethodGet, "/api/users", a, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decodeMap(t, rec)["total"])

	rec = s.do(http.MethodGet, "/api/admin/users", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, decodeMap(t, rec)["total"])

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/clients/%d/users", aID), a, "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, fmt.Sprintf("/api/clients/%d/users", bID), a, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/clients/9999/users", a, "").Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, fmt.Sprintf("/api/users/%d", bUser), a, "").Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/admin/users", a, "").Code)
}

func TestRouter_ClientDeleteCascadesUsers(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	clientID, shop := s.createClient(admin, "shop@example.com")
	u1 := s.createUser(shop, "u1@example.com")
	u2 := s.createUser(shop, "u2@example.com")

	rec := s.do(http.MethodDelete, fmt.Sprintf("/api/admin/clients/%d", clientID), admin, "")
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	for _, id := range []uint{u1, u2} {
		assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, fmt.Sprintf("/api/users/%d", id), admin, "").Code)
	}
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, fmt.Sprintf("/api/clients/%d", clientID), admin, "").Code)
}

func TestRouter_DeletedClientTokenCannotCreateUsers(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)
	clientID, shop := s.createClient(admin, "shop@example.com")

	rec := s.do(http.MethodDelete, fmt.Sprintf("/api/admin/clients/%d", clientID), admin, "")
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/users", shop, `{"username":"someone","email":"late@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/admin/users", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decodeMap(t, rec)["total"])
}

func TestRouter_PageBeyondIntRangeIsEmpty(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)
	for _, name := range []string{"Pixel", "Galaxy", "Xperia"} {
		body := fmt.Sprintf(`{"name":%q,"price":"10","description":"A phone for the catalogue."}`, name)
		require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/admin/mobiles", admin, body).Code)
	}

	rec := s.do(http.MethodGet, "/api/mobiles?page=9223372036854775807&limit=2", admin, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decodeMap(t, rec)
	assert.Empty(t, page["items"])
	assert.EqualValues(t, 3, page["total"])
	assert.EqualValues(t, 2, page["total_pages"])
}

func TestRouter_AuthErrors(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)
	_, shop := s.createClient(admin, "shop@example.com")

	rec := s.do(http.MethodGet, "/api/mobiles", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, map[string]any{"code": float64(401), "message": "JWT Token not found"}, decodeMap(t, rec))

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/mobiles", "garbage", "").Code)

	rec = s.do(http.MethodPost, "/api/login", "", `{"email":"shop@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials.", decodeMap(t, rec)["message"])

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/admin/clients", shop, "").Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/api/admin/mobiles", shop, mobileScenario).Code)

	// unknown ids resolve to 404 before the role check
	rec = s.do(http.MethodDelete, "/api/admin/mobiles/9999", shop, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Mobile not found", decodeMap(t, rec)["message"])
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health/ready", "", "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/metrics", "", "").Code)
}
