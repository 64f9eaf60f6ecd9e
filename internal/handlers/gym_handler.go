package handlers

import (
	"errors"
	"log/slog"

	"github.com/crimpd/crimpd-backend/internal/dto"
	"github.com/crimpd/crimpd-backend/internal/services"
	"github.com/crimpd/crimpd-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type GymHandler struct {
	gyms   *services.GymService
	routes *services.RouteService
}

func NewGymHandler(gyms *services.GymService, routes *services.RouteService) *GymHandler {
	return &GymHandler{gyms: gyms, routes: routes}
}

// List handles GET /gyms - the public gym directory.
func (h *GymHandler) List(c *fiber.Ctx) error {
	gyms, err := h.gyms.List()
	if err != nil {
		return err
	}

	resp := dto.GymListResponse{Gyms: make([]dto.GymResponse, len(gyms))}
	for i := range gyms {
		resp.Gyms[i] = services.GymToResponse(&gyms[i])
	}
	return c.JSON(resp)
}

// Create handles POST /gyms. The authenticated creator becomes the
// gym's owner.
func (h *GymHandler) Create(c *fiber.Ctx) error {
	user := tenant.User(c)
	if user == nil {
		return fiber.ErrUnauthorized
	}

	var req dto.CreateGymRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	gym, err := h.gyms.Create(user, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNameRequired), errors.Is(err, services.ErrAlreadyStaff):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return err
	}

	slog.Info("gym created", "gym", gym.Slug, "user_id", user.ID.String())
	return c.Status(fiber.StatusCreated).JSON(services.GymToResponse(gym))
}

// Page handles GET /:gym - the public gym page.
func (h *GymHandler) Page(c *fiber.Ctx) error {
	gym := tenant.Gym(c)

	liveCount, err := h.gyms.LiveRouteCount(gym.ID)
	if err != nil {
		return err
	}

	return c.JSON(dto.GymPageResponse{
		Gym:        services.GymToResponse(gym),
		LiveRoutes: liveCount,
		Followed:   tenant.Followed(c),
	})
}

// Dashboard handles GET /:gym/dashboard (staff): the gym page plus
// the five newest routes.
func (h *GymHandler) Dashboard(c *fiber.Ctx) error {
	gym := tenant.Gym(c)

	recent, err := h.routes.Recent(gym.ID, 5)
	if err != nil {
		return err
	}

	resp := dto.DashboardResponse{
		Gym:          services.GymToResponse(gym),
		LatestRoutes: make([]dto.RouteResponse, len(recent)),
	}
	for i := range recent {
		resp.LatestRoutes[i] = services.RouteToResponse(&recent[i], h.routes.SetterUsername(&recent[i]))
	}
	return c.JSON(resp)
}

// UpdateSettings handles PUT /:gym/settings (owner).
func (h *GymHandler) UpdateSettings(c *fiber.Ctx) error {
	gym := tenant.Gym(c)

	var req dto.UpdateGymSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.gyms.UpdateSettings(gym, &req); err != nil {
		if errors.Is(err, services.ErrNameRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return err
	}
	return c.JSON(services.GymToResponse(gym))
}
