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

// ProductHandler manages catalog CRUD.
type ProductHandler struct {
	store store.Store
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(st store.Store) *ProductHandler {
	return &ProductHandler{store: st}
}

// ListProducts returns paginated products with optional search and category filters.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	filter := store.ProductFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Category: c.Query("category"),
		Limit:    pg.Limit,
		Offset:   pg.Offset,
	}

	products, total, err := h.store.ListProducts(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetProduct loads a single product.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	product, err := h.store.GetProduct(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

type productRequest struct {
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Description   string  `json:"description"`
	ImageURL      string  `json:"image_url"`
	IsActive      *bool   `json:"is_active"`
}

func (req *productRequest) validate() error {
	req.Name = strings.TrimSpace(req.Name)
	req.SKU = strings.TrimSpace(req.SKU)
	req.Category = strings.TrimSpace(req.Category)

	if req.Name == "" || req.SKU == "" || req.Category == "" {
		return errors.New("name, sku and category are required")
	}
	if req.Price < 0 {
		return errors.New("price must not be negative")
	}
	if req.StockQuantity < 0 {
		return errors.New("stock quantity must not be negative")
	}
	return nil
}

func (req *productRequest) toModel() models.Product {
	product := models.Product{
		Name:          req.Name,
		SKU:           req.SKU,
		Category:      req.Category,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Description:   strings.TrimSpace(req.Description),
		ImageURL:      strings.TrimSpace(req.ImageURL),
		IsActive:      true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	return product
}

// CreateProduct handles product creation. Admin only.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentActor(c)
	if !ok || !authz.CanCreate(actor, authz.Products) {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	product := req.toModel()
	if err := h.store.CreateProduct(c.Context(), &product); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

// UpdateProduct replaces a product's editable fields. Admin only.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentActor(c)
	if !ok || !authz.CanUpdate(actor, authz.Products) {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	product, err := h.store.UpdateProduct(c.Context(), id, req.toModel())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// DeleteProduct removes a product. Admin only.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentActor(c)
	if !ok || !authz.CanDelete(actor, authz.Products) {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.store.DeleteProduct(c.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
