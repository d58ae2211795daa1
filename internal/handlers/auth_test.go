package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRegisterAndResumeSession(t *testing.T) {
	app, _ := newTestApp(t)

	out := register(t, app, "x@y.com", "hunter22", "Xavier")
	if out.Token == "" {
		t.Fatal("registration should return a session token")
	}
	if out.User.Role != "customer" {
		t.Fatalf("new accounts must get role=customer, got %q", out.User.Role)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/auth/me", out.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me: status %d", resp.StatusCode)
	}
	var me authResponse
	decodeBody(t, resp, &me)
	if me.User.Email != "x@y.com" || me.User.FullName != "Xavier" {
		t.Fatalf("me returned wrong identity: %+v", me.User)
	}
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	app, _ := newTestApp(t)

	register(t, app, "x@y.com", "hunter22", "First")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    "x@y.com",
		"password": "different-pass",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate registration: status %d, want 409", resp.StatusCode)
	}

	// First registration still works.
	out := login(t, app, "x@y.com", "hunter22")
	if out.User.FullName != "First" {
		t.Fatalf("original account was disturbed: %+v", out.User)
	}
}

func TestWeakPasswordRejected(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    "weak@y.com",
		"password": "abc",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("weak password: status %d, want 400", resp.StatusCode)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, _ := newTestApp(t)

	register(t, app, "x@y.com", "hunter22", "Xavier")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "x@y.com",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad password: status %d, want 401", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "nobody@y.com",
		"password": "whatever",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unknown user: status %d, want 401", resp.StatusCode)
	}
}

func TestBootstrapAdminLogin(t *testing.T) {
	app, _ := newTestApp(t)

	out := login(t, app, testAdminEmail, testAdminPassword)
	if out.User.Role != "admin" {
		t.Fatalf("bootstrap account should be admin, got %q", out.User.Role)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/products/", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: status %d, want 401", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/products/", "not-a-jwt", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token: status %d, want 401", resp.StatusCode)
	}
}
