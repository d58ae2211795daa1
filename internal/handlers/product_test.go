package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/example/retailops/internal/models"
)

type productListResponse struct {
	Success bool             `json:"success"`
	Data    []models.Product `json:"data"`
}

type productResponse struct {
	Success bool           `json:"success"`
	Data    models.Product `json:"data"`
}

func TestAdminCreatesProductWithDefaults(t *testing.T) {
	app, _ := newTestApp(t)
	admin := adminToken(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/products/", admin, fiber.Map{
		"name":           "Widget",
		"sku":            "W-1",
		"category":       "Tools",
		"price":          9.99,
		"stock_quantity": 5,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create product: status %d", resp.StatusCode)
	}
	var created productResponse
	decodeBody(t, resp, &created)
	if created.Data.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("created product should carry a fresh identifier")
	}
	if !created.Data.IsActive {
		t.Fatal("is_active should default to true")
	}

	resp = doJSON(t, app, http.MethodGet, "/api/products/", admin, nil)
	var listed productListResponse
	decodeBody(t, resp, &listed)
	if len(listed.Data) != 1 {
		t.Fatalf("expected exactly one product, got %d", len(listed.Data))
	}
	p := listed.Data[0]
	if p.Name != "Widget" || p.SKU != "W-1" || p.Category != "Tools" || p.Price != 9.99 || p.StockQuantity != 5 || !p.IsActive {
		t.Fatalf("listed product mismatch: %+v", p)
	}
}

func TestCustomerCannotMutateProducts(t *testing.T) {
	app, _ := newTestApp(t)
	admin := adminToken(t, app)
	customer := register(t, app, "c@y.com", "hunter22", "Customer").Token

	resp := doJSON(t, app, http.MethodPost, "/api/products/", customer, fiber.Map{
		"name": "Nope", "sku": "N-1", "category": "X",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("customer create: status %d, want 403", resp.StatusCode)
	}

	create := doJSON(t, app, http.MethodPost, "/api/products/", admin, fiber.Map{
		"name": "Widget", "sku": "W-1", "category": "Tools",
	})
	var created productResponse
	decodeBody(t, create, &created)
	id := created.Data.ID.String()

	resp = doJSON(t, app, http.MethodPut, "/api/products/"+id, customer, fiber.Map{
		"name": "Hacked", "sku": "W-1", "category": "Tools",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("customer update: status %d, want 403", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodDelete, "/api/products/"+id, customer, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("customer delete: status %d, want 403", resp.StatusCode)
	}

	// Customers can still browse the catalog.
	resp = doJSON(t, app, http.MethodGet, "/api/products/", customer, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("customer list: status %d, want 200", resp.StatusCode)
	}
}

func TestProductValidation(t *testing.T) {
	app, _ := newTestApp(t)
	admin := adminToken(t, app)

	cases := []fiber.Map{
		{"sku": "W-1", "category": "Tools"},                             // missing name
		{"name": "Widget", "category": "Tools"},                         // missing sku
		{"name": "Widget", "sku": "W-1"},                                // missing category
		{"name": "W", "sku": "W-1", "category": "Tools", "price": -1},   // negative price
		{"name": "W", "sku": "W-1", "category": "T", "stock_quantity": -3},
	}
	for i, payload := range cases {
		resp := doJSON(t, app, http.MethodPost, "/api/products/", admin, payload)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("case %d: status %d, want 400", i, resp.StatusCode)
		}
	}
}

func TestUpdateMissingProductIs404(t *testing.T) {
	app, _ := newTestApp(t)
	admin := adminToken(t, app)

	resp := doJSON(t, app, http.MethodPut, "/api/products/3f0c72a4-9df4-4e4c-9a5f-20c59ab16a41", admin, fiber.Map{
		"name": "Ghost", "sku": "G-1", "category": "Spooky",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing id update: status %d, want 404", resp.StatusCode)
	}
}

func TestDeleteProductNoResurrection(t *testing.T) {
	app, _ := newTestApp(t)
	admin := adminToken(t, app)

	create := doJSON(t, app, http.MethodPost, "/api/products/", admin, fiber.Map{
		"name": "Widget", "sku": "W-1", "category": "Tools",
	})
	var created productResponse
	decodeBody(t, create, &created)
	id := created.Data.ID.String()

	resp := doJSON(t, app, http.MethodDelete, "/api/products/"+id, admin, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: status %d", resp.StatusCode)
	}

	list := doJSON(t, app, http.MethodGet, "/api/products/", admin, nil)
	var listed productListResponse
	decodeBody(t, list, &listed)
	for _, p := range listed.Data {
		if p.ID.String() == id {
			t.Fatal("deleted product came back in listing")
		}
	}

	resp = doJSON(t, app, http.MethodGet, "/api/products/"+id, admin, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete: status %d, want 404", resp.StatusCode)
	}
}
