package handlers

import (
	"errors"

	"github.com/crimpd/crimpd-backend/internal/dto"
	"github.com/crimpd/crimpd-backend/internal/models"
	"github.com/crimpd/crimpd-backend/internal/services"
	"github.com/crimpd/crimpd-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type InteractionHandler struct {
	interactions *services.InteractionService
}

func NewInteractionHandler(interactions *services.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactions: interactions}
}

// actingUser enforces the shared precondition for interaction
// mutations: the requester is authenticated and not affiliated with a
// different gym than the one addressed. Global climbers may interact
// anywhere. Violations are 404, matching the gate's information
// hiding.
func actingUser(c *fiber.Ctx, gym *models.Gym) (*models.User, error) {
	user := tenant.User(c)
	if user == nil {
		return nil, fiber.ErrNotFound
	}
	if user.GymID != nil && *user.GymID != gym.ID {
		return nil, fiber.ErrNotFound
	}
	return user, nil
}

// GymAction handles POST /:gym/action/:action for follow/unfollow.
func (h *InteractionHandler) GymAction(c *fiber.Ctx) error {
	gym := tenant.Gym(c)
	user, err := actingUser(c, gym)
	if err != nil {
		return err
	}

	switch c.Params("action") {
	case "follow":
		isNew, err := h.interactions.Follow(user.ID, gym.ID)
		if err != nil {
			return err
		}
		return c.JSON(dto.ActionAdded(isNew))
	case "unfollow":
		if err := h.interactions.Unfollow(user.ID, gym.ID); err != nil {
			return err
		}
		return c.JSON(dto.ActionOK())
	}
	return fiber.ErrNotFound
}

// RouteAction handles POST /:gym/routes/:route/action/:action for
// send/unsend/favorite/unfavorite/rate.
func (h *InteractionHandler) RouteAction(c *fiber.Ctx) error {
	gym := tenant.Gym(c)
	route := tenant.Route(c)
	user, err := actingUser(c, gym)
	if err != nil {
		return err
	}

	switch c.Params("action") {
	case "send":
		isNew, err := h.interactions.AddSend(user.ID, route.ID)
		if err != nil {
			return err
		}
		return c.JSON(dto.ActionAdded(isNew))
	case "unsend":
		if err := h.interactions.RemoveSend(user.ID, route.ID); err != nil {
			return err
		}
		return c.JSON(dto.ActionOK())
	case "favorite":
		isNew, err := h.interactions.AddFavorite(user.ID, route.ID)
		if err != nil {
			return err
		}
		return c.JSON(dto.ActionAdded(isNew))
	case "unfavorite":
		if err := h.interactions.RemoveFavorite(user.ID, route.ID); err != nil {
			return err
		}
		return c.JSON(dto.ActionOK())
	case "rate":
		var req dto.RateRequest
		if err := c.BodyParser(&req); err != nil {
			return c.JSON(dto.ActionFailed())
		}
		if err := h.interactions.Rate(user.ID, route.ID, req.Score); err != nil {
			if errors.Is(err, services.ErrInvalidScore) {
				return c.JSON(dto.ActionFailed())
			}
			return err
		}
		return c.JSON(dto.ActionOK())
	}
	return fiber.ErrNotFound
}
