package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/retailops/internal/config"
	"github.com/example/retailops/internal/handlers"
	"github.com/example/retailops/internal/routes"
	"github.com/example/retailops/internal/store"
	"github.com/example/retailops/internal/store/local"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "admin-secret-1"
)

func newTestApp(t *testing.T) (*fiber.App, store.Store) {
	t.Helper()

	cfg := &config.Config{
		StorageDriver: config.DriverLocal,
		JWTSecret:     "test-secret",
		TokenExpires:  time.Hour,
		AdminEmail:    testAdminEmail,
		AdminPassword: testAdminPassword,
	}

	st, err := local.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open local store: %v", err)
	}
	if err := handlers.BootstrapAdmin(context.Background(), st, cfg); err != nil {
		t.Fatalf("bootstrap admin: %v", err)
	}

	app := fiber.New()
	routes.Register(app, st, cfg)
	return app, st
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

type authResponse struct {
	Success bool `json:"success"`
	User    struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	} `json:"user"`
	Token string `json:"token"`
}

func register(t *testing.T, app *fiber.App, email, password, fullName string) authResponse {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":     email,
		"password":  password,
		"full_name": fullName,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d", email, resp.StatusCode)
	}

	var out authResponse
	decodeBody(t, resp, &out)
	return out
}

func login(t *testing.T, app *fiber.App, email, password string) authResponse {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    email,
		"password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}

	var out authResponse
	decodeBody(t, resp, &out)
	return out
}

func adminToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	return login(t, app, testAdminEmail, testAdminPassword).Token
}
