package handlers

import (
	"math"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/example/retailops/internal/authz"
	"github.com/example/retailops/internal/middleware"
	"github.com/example/retailops/internal/models"
	"github.com/example/retailops/internal/store"
)

const topCategories = 7

// DashboardHandler serves derived aggregates. Nothing here is stored: every
// request recomputes from the live collections, scoped by the actor's role.
type DashboardHandler struct {
	store store.Store
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(st store.Store) *DashboardHandler {
	return &DashboardHandler{store: st}
}

type categoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Stats returns counts, revenue, the product category histogram and the
// loyalty tier distribution.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	products, productTotal, err := h.store.ListProducts(c.Context(), store.ProductFilter{})
	if err != nil {
		return err
	}

	orders, orderTotal, err := h.store.ListOrders(c.Context(), store.OrderFilter{
		OwnerID: authz.OrderFilterOwner(actor),
	})
	if err != nil {
		return err
	}

	var revenue float64
	for _, o := range orders {
		revenue += o.TotalAmount
	}
	// Amounts are entered with two decimal places; keep the sum there too.
	revenue = math.Round(revenue*100) / 100

	stats := fiber.Map{
		"products":   productTotal,
		"orders":     orderTotal,
		"revenue":    revenue,
		"categories": categoryHistogram(products),
	}

	if actor.IsAdmin() {
		customers, customerTotal, err := h.store.ListCustomers(c.Context(), store.CustomerFilter{})
		if err != nil {
			return err
		}
		stats["customers"] = customerTotal
		stats["tiers"] = tierDistribution(customers)
	}

	return c.JSON(fiber.Map{"success": true, "data": stats})
}

func categoryHistogram(products []models.Product) []categoryCount {
	counts := make(map[string]int)
	for _, p := range products {
		counts[p.Category]++
	}

	histogram := make([]categoryCount, 0, len(counts))
	for category, count := range counts {
		histogram = append(histogram, categoryCount{Category: category, Count: count})
	}
	sort.Slice(histogram, func(i, j int) bool {
		if histogram[i].Count != histogram[j].Count {
			return histogram[i].Count > histogram[j].Count
		}
		return histogram[i].Category < histogram[j].Category
	})

	if len(histogram) > topCategories {
		histogram = histogram[:topCategories]
	}
	return histogram
}

func tierDistribution(customers []models.Customer) map[string]int {
	tiers := make(map[string]int, len(models.LoyaltyTiers))
	for _, tier := range models.LoyaltyTiers {
		tiers[tier] = 0
	}
	for _, c := range customers {
		if _, ok := tiers[c.LoyaltyTier]; ok {
			tiers[c.LoyaltyTier]++
		}
	}
	return tiers
}
