package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func createReward(t *testing.T, app *fiber.App, token string, body fiber.Map) map[string]interface{} {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/rewards", token, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create reward: status %d", resp.StatusCode)
	}

	var out struct {
		Data map[string]interface{} `json:"data"`
	}
	decodeBody(t, resp, &out)
	return out.Data
}

func TestRewardCatalogVisibleToCustomers(t *testing.T) {
	app, _ := newTestApp(t)
	admin := adminToken(t, app)
	customer := register(t, app, "points@example.com", "password1", "Points")

	createReward(t, app, admin, fiber.Map{
		"name":            "Free Shipping",
		"reward_type":     "free_shipping",
		"points_required": 500,
	})

	resp := doJSON(t, app, http.MethodGet, "/api/rewards", customer.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list rewards as customer: status %d", resp.StatusCode)
	}
	var out struct {
		Data []map[string]interface{} `json:"data"`
	}
	decodeBody(t, resp, &out)
	if len(out.Data) != 1 || out.Data[0]["name"] != "Free Shipping" {
		t.Fatalf("reward list mismatch: %+v", out.Data)
	}
}

func TestRewardMutationsAdminOnly(t *testing.T) {
	app, _ := newTestApp(t)
	customer := register(t, app, "points@example.com", "password1", "Points")

	resp := doJSON(t, app, http.MethodPost, "/api/rewards", customer.Token, fiber.Map{
		"name":            "Nope",
		"points_required": 10,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("customer create reward: status %d, want 403", resp.StatusCode)
	}
}

func TestRewardsOrderedByPointsAscending(t *testing.T) {
	app, _ := newTestApp(t)
	token := adminToken(t, app)

	createReward(t, app, token, fiber.Map{"name": "Big", "points_required": 1000})
	createReward(t, app, token, fiber.Map{"name": "Small", "points_required": 50})
	createReward(t, app, token, fiber.Map{"name": "Mid", "points_required": 300})

	resp := doJSON(t, app, http.MethodGet, "/api/rewards", token, nil)
	var out struct {
		Data []map[string]interface{} `json:"data"`
	}
	decodeBody(t, resp, &out)

	want := []string{"Small", "Mid", "Big"}
	if len(out.Data) != len(want) {
		t.Fatalf("expected %d rewards, got %d", len(want), len(out.Data))
	}
	for i, name := range want {
		if out.Data[i]["name"] != name {
			t.Fatalf("position %d: got %v, want %s", i, out.Data[i]["name"], name)
		}
	}
}

func TestRewardValidationAndDefaults(t *testing.T) {
	app, _ := newTestApp(t)
	token := adminToken(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/rewards", token, fiber.Map{
		"name": "Zero Points", "points_required": 0,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("zero points: status %d, want 400", resp.StatusCode)
	}

	created := createReward(t, app, token, fiber.Map{
		"name": "Plain Discount", "points_required": 200, "reward_value": 10,
	})
	if created["reward_type"] != "discount_percent" {
		t.Fatalf("reward type should default to discount_percent, got %v", created["reward_type"])
	}
	if created["is_active"] != true {
		t.Fatalf("reward should default active, got %v", created["is_active"])
	}
}

func TestRewardUpdateAndDelete(t *testing.T) {
	app, _ := newTestApp(t)
	token := adminToken(t, app)

	created := createReward(t, app, token, fiber.Map{"name": "Temp", "points_required": 100})
	id, _ := created["id"].(string)

	inactive := false
	resp := doJSON(t, app, http.MethodPut, "/api/rewards/"+id, token, fiber.Map{
		"name": "Temp", "points_required": 100, "is_active": inactive,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update reward: status %d", resp.StatusCode)
	}
	var updated struct {
		Data map[string]interface{} `json:"data"`
	}
	decodeBody(t, resp, &updated)
	if updated.Data["is_active"] != false {
		t.Fatalf("reward should be inactive after update: %v", updated.Data["is_active"])
	}

	resp = doJSON(t, app, http.MethodDelete, "/api/rewards/"+id, token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete reward: status %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/rewards/"+id, token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("deleted reward should 404, got %d", resp.StatusCode)
	}
}
