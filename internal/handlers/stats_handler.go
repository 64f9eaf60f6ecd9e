package handlers

import (
	"errors"
	"sort"

	"github.com/crimpd/crimpd-backend/internal/dto"
	"github.com/crimpd/crimpd-backend/internal/services"
	"github.com/crimpd/crimpd-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	stats *services.StatsService
}

func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Stats handles GET /:gym/stats (staff). With no live routes the
// distributions are undefined and the endpoint says so instead of
// returning empty charts.
func (h *StatsHandler) Stats(c *fiber.Ctx) error {
	gym := tenant.Gym(c)

	dist, err := h.stats.Compute(gym.ID)
	if err != nil {
		if errors.Is(err, services.ErrNoLiveRoutes) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Error: true, Message: "No live routes to aggregate",
			})
		}
		return err
	}

	return c.JSON(dto.StatsResponse{
		TopRopeGrades:    toPoints(dist.TopRopeGrades),
		BoulderingGrades: toPoints(dist.BoulderingGrades),
		Types:            toPoints(dist.Types),
		Setters:          toPoints(dist.Setters),
		Locations:        toPoints(dist.Locations),
	})
}

// toPoints orders a distribution for display: descending by fraction,
// ties broken by label.
func toPoints(dist map[string]float64) []dto.StatPoint {
	points := make([]dto.StatPoint, 0, len(dist))
	for label, value := range dist {
		points = append(points, dto.StatPoint{Label: label, Value: value})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Label < points[j].Label
	})
	return points
}
