package handlers

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/retailops/internal/config"
	"github.com/example/retailops/internal/middleware"
	"github.com/example/retailops/internal/models"
	"github.com/example/retailops/internal/store"
	"github.com/example/retailops/internal/utils"
)

const minPasswordLength = 6

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	store store.Store
	cfg   *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(st store.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{store: st, cfg: cfg}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Register creates a new customer account.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing email or password")
	}
	if len(req.Password) < minPasswordLength {
		return fiber.NewError(fiber.StatusBadRequest, "password too short")
	}

	if _, err := h.store.FindUserByEmail(c.Context(), req.Email); err == nil {
		return fiber.NewError(fiber.StatusConflict, "user already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		fullName = strings.SplitN(req.Email, "@", 2)[0]
	}

	user := models.User{
		Email:        req.Email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		Role:         models.RoleCustomer,
	}

	if err := h.store.CreateUser(c.Context(), &user); err != nil {
		// The pre-check above can lose a race with a concurrent register;
		// the store's uniqueness guarantee is the authority.
		if errors.Is(err, store.ErrDuplicate) {
			return fiber.NewError(fiber.StatusConflict, "user already exists")
		}
		return err
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    userResponse(user),
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an existing user.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.store.FindUserByEmail(c.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return err
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    userResponse(user),
		"token":   token,
	})
}

// Me returns the current actor resolved from the token. A page reload
// resumes its session through this endpoint without re-authenticating.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.store.GetUser(c.Context(), actor.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "account no longer exists")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "user": userResponse(user)})
}

func userResponse(user models.User) fiber.Map {
	return fiber.Map{
		"id":        user.ID,
		"email":     user.Email,
		"full_name": user.FullName,
		"role":      user.Role,
	}
}

// BootstrapAdmin seeds (or rotates) the admin account from config. There is
// no privileged credential in source: without ADMIN_EMAIL set, no admin
// exists.
func BootstrapAdmin(ctx context.Context, st store.Store, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("admin bootstrap skipped: ADMIN_EMAIL/ADMIN_PASSWORD not configured")
		return nil
	}

	user, err := st.FindUserByEmail(ctx, cfg.AdminEmail)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if errors.Is(err, store.ErrNotFound) {
		passwordHash, err := utils.HashPassword(cfg.AdminPassword)
		if err != nil {
			return err
		}
		admin := models.User{
			Email:        cfg.AdminEmail,
			FullName:     "Administrator",
			PasswordHash: passwordHash,
			Role:         models.RoleAdmin,
		}
		if err := st.CreateUser(ctx, &admin); err != nil {
			return err
		}
		log.Printf("admin account %s created", cfg.AdminEmail)
		return nil
	}

	changed := false
	if user.Role != models.RoleAdmin {
		user.Role = models.RoleAdmin
		changed = true
	}
	if !utils.CheckPassword(user.PasswordHash, cfg.AdminPassword) {
		passwordHash, err := utils.HashPassword(cfg.AdminPassword)
		if err != nil {
			return err
		}
		user.PasswordHash = passwordHash
		changed = true
	}
	if changed {
		if err := st.SaveUser(ctx, &user); err != nil {
			return err
		}
		log.Printf("admin account %s rotated", cfg.AdminEmail)
	}
	return nil
}
