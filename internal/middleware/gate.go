package middleware

import (
	"errors"
	"net/url"

	"github.com/crimpd/crimpd-backend/internal/models"
	"github.com/crimpd/crimpd-backend/internal/services"
	"github.com/crimpd/crimpd-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// GateConfig declares, per endpoint, which resolution steps run and
// what staff level the endpoint requires. A nil Threshold means
// public. Denials are 404, not 403: whether a gym exists is itself
// information an outsider shouldn't learn.
type GateConfig struct {
	Threshold    *int
	ResolveRoute bool
	ResolveStaff bool
	// NoOwner makes staff-record operations targeting the owner tier
	// 404, so the owner can't be edited or removed through ordinary
	// staff management.
	NoOwner bool
}

// Level is a convenience for declaring a threshold inline.
func Level(n int) *int { return &n }

// Gate resolves the tenant (and optionally a route or staff record)
// named in the URL, enforces the endpoint's level threshold, and
// attaches everything to the request context in one pass.
type Gate struct {
	gyms   *services.GymService
	routes *services.RouteService
	staff  *services.StaffService
}

func NewGate(gyms *services.GymService, routes *services.RouteService, staff *services.StaffService) *Gate {
	return &Gate{gyms: gyms, routes: routes, staff: staff}
}

func (g *Gate) Require(cfg GateConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gym, err := g.gyms.GetBySlug(c.Params("gym"))
		if err != nil {
			if errors.Is(err, services.ErrGymNotFound) {
				return fiber.ErrNotFound
			}
			return err
		}
		tenant.SetGym(c, gym)

		user := tenant.User(c)

		if cfg.Threshold != nil {
			if user == nil {
				target := "/" + gym.Slug + "/login?next=" + url.QueryEscape(c.Path())
				return c.Redirect(target, fiber.StatusFound)
			}
			if !user.BelongsTo(gym.ID) || user.Level < *cfg.Threshold {
				return fiber.ErrNotFound
			}
		}

		if user != nil {
			followed, err := g.gyms.Follows(gym.ID, user.ID)
			if err != nil {
				return err
			}
			tenant.SetFollowed(c, followed)
		}

		if cfg.ResolveRoute {
			route, err := g.routes.GetBySlug(gym.ID, c.Params("route"))
			if err != nil {
				if errors.Is(err, services.ErrRouteNotFound) {
					return fiber.ErrNotFound
				}
				return err
			}
			tenant.SetRoute(c, route)
		}

		if cfg.ResolveStaff {
			member, err := g.staff.GetByUsername(gym.ID, c.Params("user"))
			if err != nil {
				if errors.Is(err, services.ErrStaffNotFound) {
					return fiber.ErrNotFound
				}
				return err
			}
			if cfg.NoOwner && member.Level == models.LevelOwner {
				return fiber.ErrNotFound
			}
			tenant.SetStaff(c, member)
		}

		return c.Next()
	}
}
