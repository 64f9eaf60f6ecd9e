package handlers

import (
	"errors"
	"log/slog"

	"github.com/crimpd/crimpd-backend/internal/dto"
	"github.com/crimpd/crimpd-backend/internal/services"
	"github.com/crimpd/crimpd-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type StaffHandler struct {
	staff *services.StaffService
}

func NewStaffHandler(staff *services.StaffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// List handles GET /:gym/admin/staff (owner).
func (h *StaffHandler) List(c *fiber.Ctx) error {
	gym := tenant.Gym(c)

	staff, err := h.staff.List(gym.ID)
	if err != nil {
		return err
	}

	resp := make([]dto.StaffResponse, len(staff))
	for i := range staff {
		resp[i] = services.StaffToResponse(&staff[i])
	}
	return c.JSON(fiber.Map{"staff": resp})
}

// AssignableLevels handles GET /:gym/admin/staff/levels (owner): the
// tiers the requesting user may assign, for form building.
func (h *StaffHandler) AssignableLevels(c *fiber.Ctx) error {
	user := tenant.User(c)
	return c.JSON(fiber.Map{"levels": services.AssignableLevels(user.Level)})
}

// Create handles POST /:gym/admin/staff (owner).
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	gym := tenant.Gym(c)
	user := tenant.User(c)

	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil || req.Username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "username and password are required",
		})
	}

	created, err := h.staff.Create(gym, user, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken),
			errors.Is(err, services.ErrLevelNotAllowed),
			errors.Is(err, services.ErrPasswordTooWeak):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return err
	}

	slog.Info("staff member created", "gym", gym.Slug, "username", created.Username, "level", created.Level)
	return c.Status(fiber.StatusCreated).JSON(services.StaffToResponse(created))
}

// Update handles PUT /:gym/admin/staff/:user (owner). Owner records
// can have their names edited but never their level.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	user := tenant.User(c)
	member := tenant.Staff(c)

	var req dto.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.staff.Update(member, user, &req); err != nil {
		if errors.Is(err, services.ErrLevelNotAllowed) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return err
	}
	return c.JSON(services.StaffToResponse(member))
}

// Delete handles DELETE /:gym/admin/staff/:user (owner, NoOwner).
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	gym := tenant.Gym(c)
	member := tenant.Staff(c)

	if err := h.staff.Delete(member); err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}

	slog.Info("staff member deleted", "gym", gym.Slug, "username", member.Username)
	return c.JSON(dto.ActionOK())
}
