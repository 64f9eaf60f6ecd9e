package handlers

import (
	"errors"
	"log/slog"

	"github.com/crimpd/crimpd-backend/internal/dto"
	"github.com/crimpd/crimpd-backend/internal/services"
	"github.com/crimpd/crimpd-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type RouteHandler struct {
	routes *services.RouteService
}

func NewRouteHandler(routes *services.RouteService) *RouteHandler {
	return &RouteHandler{routes: routes}
}

func (h *RouteHandler) list(c *fiber.Ctx, allStatuses bool) error {
	gym := tenant.Gym(c)

	sort := services.NormalizeSort(c.Query("sort"))
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	routes, total, err := h.routes.List(gym.ID, sort, page, limit, allStatuses)
	if err != nil {
		return err
	}

	resp := dto.RouteListResponse{
		Routes:   make([]dto.RouteResponse, len(routes)),
		Total:    total,
		Page:     page,
		Limit:    limit,
		Sort:     sort,
		SortName: services.SortName(sort),
	}
	for i := range routes {
		resp.Routes[i] = services.RouteToResponse(&routes[i], h.routes.SetterUsername(&routes[i]))
	}
	return c.JSON(resp)
}

// List handles GET /:gym/routes - completed routes only.
func (h *RouteHandler) List(c *fiber.Ctx) error {
	return h.list(c, false)
}

// AdminList handles GET /:gym/admin/routes (staff) - every status.
func (h *RouteHandler) AdminList(c *fiber.Ctx) error {
	return h.list(c, true)
}

// Page handles GET /:gym/routes/:route. Each view bumps the route's
// view counter.
func (h *RouteHandler) Page(c *fiber.Ctx) error {
	route := tenant.Route(c)

	if err := h.routes.IncrementViews(route.ID); err != nil {
		slog.Error("failed to increment route views", "route", route.Slug, "error", err)
	} else {
		route.Views++
	}

	resp := dto.RoutePageResponse{
		Route:    services.RouteToResponse(route, h.routes.SetterUsername(route)),
		Followed: tenant.Followed(c),
	}

	if user := tenant.User(c); user != nil {
		state, err := h.routes.StateFor(route.ID, user.ID)
		if err != nil {
			return err
		}
		resp.Sent = state.Sent
		resp.Favorited = state.Favorited
		resp.Score = state.Score
	}

	return c.JSON(resp)
}

// Sends handles GET /:gym/routes/:route/sends.
func (h *RouteHandler) Sends(c *fiber.Ctx) error {
	route := tenant.Route(c)

	sends, err := h.routes.Sends(route.ID)
	if err != nil {
		return err
	}

	resp := dto.SendListResponse{Sends: make([]dto.SendResponse, len(sends))}
	for i, send := range sends {
		username := ""
		if send.User != nil {
			username = send.User.Username
		}
		resp.Sends[i] = dto.SendResponse{Username: username, CreatedAt: send.CreatedAt}
	}
	return c.JSON(resp)
}

// Create handles POST /:gym/admin/routes (setter).
func (h *RouteHandler) Create(c *fiber.Ctx) error {
	gym := tenant.Gym(c)
	user := tenant.User(c)

	var req dto.RouteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	route, err := h.routes.Create(gym, user, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRoute) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return err
	}

	slog.Info("route created", "gym", gym.Slug, "route", route.Slug, "user_id", user.ID.String())
	return c.Status(fiber.StatusCreated).JSON(services.RouteToResponse(route, h.routes.SetterUsername(route)))
}

// Update handles PUT /:gym/admin/routes/:route (setter).
func (h *RouteHandler) Update(c *fiber.Ctx) error {
	gym := tenant.Gym(c)
	user := tenant.User(c)
	route := tenant.Route(c)

	var req dto.RouteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.routes.Update(route, gym, user, &req); err != nil {
		if errors.Is(err, services.ErrInvalidRoute) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return err
	}
	return c.JSON(services.RouteToResponse(route, h.routes.SetterUsername(route)))
}
