// Package tenant carries the request-scoped entities resolved at the
// top of request handling: the gym addressed by the URL, optionally a
// route under it, and the authenticated user. Everything is resolved
// once by the gate middleware and read from Fiber locals downstream,
// so repeated lookups during one request never re-query storage.
package tenant

import (
	"github.com/crimpd/crimpd-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	localGym      = "gym"
	localRoute    = "route"
	localUser     = "current_user"
	localStaff    = "staff_member"
	localFollowed = "followed"
)

func SetGym(c *fiber.Ctx, g *models.Gym) {
	c.Locals(localGym, g)
}

// Gym returns the gym resolved for this request, or nil.
func Gym(c *fiber.Ctx) *models.Gym {
	if g, ok := c.Locals(localGym).(*models.Gym); ok {
		return g
	}
	return nil
}

func SetRoute(c *fiber.Ctx, r *models.Route) {
	c.Locals(localRoute, r)
}

// Route returns the route resolved for this request, or nil.
func Route(c *fiber.Ctx) *models.Route {
	if r, ok := c.Locals(localRoute).(*models.Route); ok {
		return r
	}
	return nil
}

func SetUser(c *fiber.Ctx, u *models.User) {
	c.Locals(localUser, u)
}

// User returns the authenticated user, or nil for anonymous requests.
func User(c *fiber.Ctx) *models.User {
	if u, ok := c.Locals(localUser).(*models.User); ok {
		return u
	}
	return nil
}

func SetStaff(c *fiber.Ctx, u *models.User) {
	c.Locals(localStaff, u)
}

// Staff returns the staff record targeted by a staff-management
// request, or nil.
func Staff(c *fiber.Ctx) *models.User {
	if u, ok := c.Locals(localStaff).(*models.User); ok {
		return u
	}
	return nil
}

func SetFollowed(c *fiber.Ctx, followed bool) {
	c.Locals(localFollowed, followed)
}

// Followed reports whether the authenticated user follows the
// resolved gym. Always false for anonymous requests.
func Followed(c *fiber.Ctx) bool {
	if f, ok := c.Locals(localFollowed).(bool); ok {
		return f
	}
	return false
}
