package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/retailops/internal/authz"
	"github.com/example/retailops/internal/middleware"
	"github.com/example/retailops/internal/models"
	"github.com/example/retailops/internal/services"
	"github.com/example/retailops/internal/store"
	"github.com/example/retailops/internal/utils"
)

// OrderHandler manages order endpoints. Customers operate on their own
// orders; admins see and edit everything.
type OrderHandler struct {
	store    store.Store
	telegram *services.TelegramService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(st store.Store, telegram *services.TelegramService) *OrderHandler {
	return &OrderHandler{store: st, telegram: telegram}
}

// ListOrders returns orders visible to the actor, newest first.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	filter := store.OrderFilter{
		OwnerID: authz.OrderFilterOwner(actor),
		Status:  c.Query("status"),
		Limit:   pg.Limit,
		Offset:  pg.Offset,
	}

	orders, total, err := h.store.ListOrders(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetOrder loads a single order the actor is allowed to see.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	order, err := h.store.GetOrder(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if !actor.IsAdmin() && order.UserID != actor.ID {
		return fiber.NewError(fiber.StatusForbidden, "forbidden")
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type orderRequest struct {
	TotalAmount   float64 `json:"total_amount"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method"`
	Notes         string  `json:"notes"`
	CustomerID    string  `json:"customer_id"`
}

func (req *orderRequest) validate() error {
	if req.TotalAmount <= 0 {
		return errors.New("order total must be positive")
	}
	if req.Status != "" && !models.ValidStatus(req.Status) {
		return errors.New("unknown order status")
	}
	return nil
}

func (req *orderRequest) customerUUID() (*uuid.UUID, error) {
	if req.CustomerID == "" {
		return nil, nil
	}
	id, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, errors.New("invalid customer_id")
	}
	return &id, nil
}

// CreateOrder places an order owned by the current actor. Admins may attach
// a roster customer and set an initial status; customers always start at
// pending.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req orderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	order := models.Order{
		UserID:        actor.ID,
		TotalAmount:   req.TotalAmount,
		Status:        models.StatusPending,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Notes:         strings.TrimSpace(req.Notes),
	}

	if actor.IsAdmin() {
		if req.Status != "" {
			order.Status = req.Status
		}
		customerID, err := req.customerUUID()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		order.CustomerID = customerID
	}

	if err := h.store.CreateOrder(c.Context(), &order); err != nil {
		return err
	}

	if h.telegram != nil {
		go h.telegram.NotifyNewOrder(services.OrderNotification{
			OrderID:       order.ID.String(),
			TotalAmount:   order.TotalAmount,
			Status:        order.Status,
			PaymentMethod: order.PaymentMethod,
			PlacedBy:      actor.Email,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": order})
}

// UpdateOrder edits an order. Admins edit anything; customers only their own
// pending orders, and cannot move them out of pending or reassign them.
func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	existing, err := h.store.GetOrder(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if !authz.CanUpdateOrder(actor, existing) {
		return fiber.NewError(fiber.StatusForbidden, "forbidden")
	}

	var req orderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	changes := models.Order{
		TotalAmount:   req.TotalAmount,
		Status:        existing.Status,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Notes:         strings.TrimSpace(req.Notes),
		CustomerID:    existing.CustomerID,
	}

	if actor.IsAdmin() {
		if req.Status != "" {
			changes.Status = req.Status
		}
		customerID, err := req.customerUUID()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		changes.CustomerID = customerID
	}

	order, err := h.store.UpdateOrder(c.Context(), id, changes)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

// DeleteOrder removes an order. Admin only.
func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if !authz.CanDelete(actor, authz.Orders) {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.store.DeleteOrder(c.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
