package board

import (
	"fmt"
	"sort"

	"github.com/gofiber/fiber/v2"

	"svitlo-board/internal/snapshot"
)

// Handlers holds the board service dependencies.
type Handlers struct {
	Store         *snapshot.Store
	OverlapGroups []string
}

// RegisterRoutes registers board API routes on the given Fiber app group.
func (h *Handlers) RegisterRoutes(api fiber.Router) {
	board := api.Group("/board")
	board.Get("/regions", h.GetRegions)
	board.Get("/:region/groups", h.GetGroups)
	board.Get("/:region", h.GetDayBoard)
	board.Get("/:region/:group", h.GetGroupBoard)

	api.Get("/health", h.GetHealth)
}

// GetRegions returns a list of regions with loaded snapshots.
func (h *Handlers) GetRegions(c *fiber.Ctx) error {
	regions := h.Store.Regions()
	if len(regions) == 0 {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "schedule data not yet loaded",
		})
	}
	return c.JSON(regions)
}

// GetGroups returns the list of group IDs present in today's schedule.
// A day without data yields an empty list, not an error.
func (h *Handlers) GetGroups(c *fiber.Ctx) error {
	region := c.Params("region")

	snap := h.Store.Snapshot(region)
	if snap == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("region %q not found", region),
		})
	}

	day := snap.TodayData()
	groups := make([]snapshot.GroupInfo, 0, len(day))
	for g := range day {
		groups = append(groups, snapshot.GroupInfo{ID: g, Name: snap.GroupName(g)})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })

	return c.JSON(fiber.Map{
		"region": snap.RegionID,
		"groups": groups,
	})
}

// GetDayBoard returns the full derived board for a region.
func (h *Handlers) GetDayBoard(c *fiber.Ctx) error {
	region := c.Params("region")

	snap := h.Store.Snapshot(region)
	if snap == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("region %q not found", region),
		})
	}

	return c.JSON(BuildDayBoard(snap, h.OverlapGroups))
}

// GetGroupBoard returns the expanded day for one group of a region.
func (h *Handlers) GetGroupBoard(c *fiber.Ctx) error {
	region := c.Params("region")
	group := c.Params("group")

	snap := h.Store.Snapshot(region)
	if snap == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("region %q not found", region),
		})
	}

	return c.JSON(BuildGroupBoard(snap, group))
}

// GetHealth reports the fetch state of every region.
func (h *Handlers) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"regions": h.Store.HealthAll(),
	})
}
