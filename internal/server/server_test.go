package server

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keywordapi/internal/config"
	"keywordapi/internal/handlers/api"
	"keywordapi/internal/metrics"
	"keywordapi/internal/service"
	"keywordapi/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:           "development",
		BaseURL:       "http://localhost:3000",
		MockUserID:    config.DefaultMockUserID,
		MockUserRole:  "admin",
		SessionSecret: "test-secret-that-is-long-enough-for-production",
		RateLimitMax:  100,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	store := testutil.NewMemoryStore()
	s := New(cfg, metrics.New(store))
	s.RegisterRoutes(context.Background(), Deps{
		DB: store,
		Handlers: &api.Handlers{
			Domains:   api.NewDomainHandler(service.NewDomainService(store)),
			Niches:    api.NewNicheHandler(service.NewNicheService(store)),
			Subniches: api.NewSubnicheHandler(service.NewSubnicheService(store)),
			Keywords:  api.NewKeywordHandler(service.NewKeywordService(store)),
		},
	})
	return s
}

func get(t *testing.T, app *fiber.App, path string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t, testConfig())

	tests := []struct {
		path     string
		want     int
		contains string
	}{
		{"/health", fiber.StatusOK, `"status":"ok"`},
		{"/healthz", fiber.StatusOK, `"status":"ok"`},
		{"/api/v1/domains", fiber.StatusOK, `"total_pages":0`},
		{"/api/v1/keywords/all", fiber.StatusOK, `"data":[]`},
		{"/api/v1/niches/not-a-uuid", fiber.StatusBadRequest, `"status":"error"`},
		{"/nowhere", fiber.StatusNotFound, `"status":"error"`},
		{"/metrics", fiber.StatusOK, `keywordapi_entities{entity="domain"} 0`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, s.App, tt.path)
			assert.Equal(t, tt.want, resp.StatusCode, body)
			assert.Contains(t, body, tt.contains)
		})
	}

	resp, _ := get(t, s.App, "/auth/login")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "login is not mounted without OIDC")
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitMax = 2
	s := newTestServer(t, cfg)

	for range 2 {
		resp, _ := get(t, s.App, "/healthz")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	resp, body := get(t, s.App, "/healthz")
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, body, "Rate limit exceeded")
}

// TestEncryptCookieSessionRoundTrip verifies that the encryptcookie +
// session middleware stack does not panic when a client replays encrypted
// session cookies across multiple requests.
func TestEncryptCookieSessionRoundTrip(t *testing.T) {
	s := New(testConfig(), nil)
	app := s.App

	app.Post("/session-set", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		sess.Set("oauth_state", "abc123")
		return c.SendString("ok")
	})
	app.Get("/session-get", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		val, _ := sess.Get("oauth_state").(string)
		return c.SendString(val)
	})

	req, _ := http.NewRequest("POST", "/session-set", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies, "no cookies returned")

	for i := range 2 {
		req, _ := http.NewRequest("GET", "/session-get", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		resp, err := app.Test(req)
		require.NoError(t, err, "replay %d", i)
		body, _ := io.ReadAll(resp.Body)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
		assert.Equal(t, "abc123", string(body))
		if next := resp.Cookies(); len(next) > 0 {
			cookies = next
		}
	}
}

func TestBuildTLSConfig(t *testing.T) {
	tc, err := buildTLSConfig(&config.Config{})
	require.NoError(t, err)
	assert.Nil(t, tc.ClientCAs)

	_, err = buildTLSConfig(&config.Config{TLSCAFile: filepath.Join(t.TempDir(), "missing.pem")})
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.pem")
	require.NoError(t, os.WriteFile(bad, []byte("not a certificate"), 0o600))
	_, err = buildTLSConfig(&config.Config{TLSCAFile: bad})
	assert.Error(t, err)
}

func TestDeriveEncryptionKey(t *testing.T) {
	key := deriveEncryptionKey("secret")
	assert.Len(t, key, 44)
	assert.Equal(t, key, deriveEncryptionKey("secret"))
	assert.NotEqual(t, key, deriveEncryptionKey("other"))
}
