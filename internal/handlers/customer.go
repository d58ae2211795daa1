package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/retailops/internal/authz"
	"github.com/example/retailops/internal/middleware"
	"github.com/example/retailops/internal/models"
	"github.com/example/retailops/internal/store"
	"github.com/example/retailops/internal/utils"
)

// CustomerHandler manages the loyalty roster. Every endpoint is admin-only.
type CustomerHandler struct {
	store store.Store
}

// NewCustomerHandler constructs CustomerHandler.
func NewCustomerHandler(st store.Store) *CustomerHandler {
	return &CustomerHandler{store: st}
}

func requireRosterAccess(c *fiber.Ctx) (authz.Actor, error) {
	actor, ok := middleware.CurrentActor(c)
	if !ok || !authz.CanView(actor, authz.Customers) {
		return authz.Actor{}, fiber.NewError(fiber.StatusForbidden, "admin access required")
	}
	return actor, nil
}

// ListCustomers returns paginated customers with optional search and tier filters.
func (h *CustomerHandler) ListCustomers(c *fiber.Ctx) error {
	if _, err := requireRosterAccess(c); err != nil {
		return err
	}

	pg := utils.ParsePagination(c)
	filter := store.CustomerFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Tier:   c.Query("tier"),
		Limit:  pg.Limit,
		Offset: pg.Offset,
	}

	customers, total, err := h.store.ListCustomers(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    customers,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetCustomer loads a single roster entry.
func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	if _, err := requireRosterAccess(c); err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	customer, err := h.store.GetCustomer(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "customer not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": customer})
}

type customerRequest struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	LoyaltyPoints int    `json:"loyalty_points"`
	LoyaltyTier   string `json:"loyalty_tier"`
}

func (req *customerRequest) validate() error {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)

	if req.FullName == "" || req.Email == "" {
		return errors.New("full name and email are required")
	}
	if req.LoyaltyPoints < 0 {
		return errors.New("loyalty points must not be negative")
	}
	if req.LoyaltyTier == "" {
		req.LoyaltyTier = models.TierBronze
	}
	if !models.ValidTier(req.LoyaltyTier) {
		return errors.New("unknown loyalty tier")
	}
	return nil
}

func (req *customerRequest) toModel() models.Customer {
	return models.Customer{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         strings.TrimSpace(req.Phone),
		LoyaltyPoints: req.LoyaltyPoints,
		LoyaltyTier:   req.LoyaltyTier,
	}
}

// CreateCustomer adds a roster entry.
func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	if _, err := requireRosterAccess(c); err != nil {
		return err
	}

	var req customerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	customer := req.toModel()
	if err := h.store.CreateCustomer(c.Context(), &customer); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": customer})
}

// UpdateCustomer replaces a roster entry's editable fields.
func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	if _, err := requireRosterAccess(c); err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req customerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	customer, err := h.store.UpdateCustomer(c.Context(), id, req.toModel())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "customer not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": customer})
}

// DeleteCustomer removes a roster entry.
func (h *CustomerHandler) DeleteCustomer(c *fiber.Ctx) error {
	if _, err := requireRosterAccess(c); err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.store.DeleteCustomer(c.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "customer not found")
		}
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
