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
)

// RewardHandler manages the loyalty-reward catalog.
type RewardHandler struct {
	store store.Store
}

// NewRewardHandler constructs RewardHandler.
func NewRewardHandler(st store.Store) *RewardHandler {
	return &RewardHandler{store: st}
}

// ListRewards returns the catalog ordered by points required ascending.
func (h *RewardHandler) ListRewards(c *fiber.Ctx) error {
	rewards, err := h.store.ListRewards(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": rewards})
}

// GetReward loads a single reward.
func (h *RewardHandler) GetReward(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	reward, err := h.store.GetReward(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "reward not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": reward})
}

type rewardRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	RewardType     string  `json:"reward_type"`
	RewardValue    float64 `json:"reward_value"`
	PointsRequired int     `json:"points_required"`
	IsActive       *bool   `json:"is_active"`
}

func (req *rewardRequest) validate() error {
	req.Name = strings.TrimSpace(req.Name)

	if req.Name == "" {
		return errors.New("name is required")
	}
	if req.PointsRequired <= 0 {
		return errors.New("points required must be positive")
	}
	if req.RewardType == "" {
		req.RewardType = models.RewardDiscountPercent
	}
	if !models.ValidRewardType(req.RewardType) {
		return errors.New("unknown reward type")
	}
	return nil
}

func (req *rewardRequest) toModel() models.Reward {
	reward := models.Reward{
		Name:           req.Name,
		Description:    strings.TrimSpace(req.Description),
		RewardType:     req.RewardType,
		RewardValue:    req.RewardValue,
		PointsRequired: req.PointsRequired,
		IsActive:       true,
	}
	if req.IsActive != nil {
		reward.IsActive = *req.IsActive
	}
	return reward
}

// CreateReward adds a catalog entry. Admin only.
func (h *RewardHandler) CreateReward(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentActor(c)
	if !ok || !authz.CanCreate(actor, authz.Rewards) {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
	}

	var req rewardRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	reward := req.toModel()
	if err := h.store.CreateReward(c.Context(), &reward); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": reward})
}

// UpdateReward replaces a reward's editable fields. Admin only.
func (h *RewardHandler) UpdateReward(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentActor(c)
	if !ok || !authz.CanUpdate(actor, authz.Rewards) {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req rewardRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	reward, err := h.store.UpdateReward(c.Context(), id, req.toModel())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "reward not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": reward})
}

// DeleteReward removes a reward. Admin only.
func (h *RewardHandler) DeleteReward(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentActor(c)
	if !ok || !authz.CanDelete(actor, authz.Rewards) {
		return fiber.NewError(fiber.StatusForbidden, "admin access required")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.store.DeleteReward(c.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "reward not found")
		}
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
