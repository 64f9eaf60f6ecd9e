package handlers

import (
	"errors"

	"github.com/crimpd/crimpd-backend/internal/dto"
	"github.com/crimpd/crimpd-backend/internal/services"
	"github.com/crimpd/crimpd-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /:gym/login. The gym is resolved by the gate;
// credentials are checked against that gym's accounts and global
// climbers. The `next` field from the gate's redirect is echoed back
// so the client can return where it was headed.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	gym := tenant.Gym(c)

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Next == "" {
		req.Next = c.Query("next")
	}

	resp, err := h.auth.Login(gym, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid username or password",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Login failed",
		})
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "refresh_token is required",
		})
	}

	resp, err := h.auth.Refresh(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid or expired refresh token",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Refresh failed",
		})
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "refresh_token is required",
		})
	}

	if err := h.auth.Logout(&req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Logout failed",
		})
	}
	return c.JSON(dto.ActionOK())
}

// Me returns the authenticated user's own record.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := tenant.User(c)
	if user == nil {
		return fiber.ErrUnauthorized
	}
	return c.JSON(services.UserToResponse(user))
}
