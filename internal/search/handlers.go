package search

import (
	"strings"

	"backend-wandermap/internal/guide"
	"backend-wandermap/internal/shared/country"
	"backend-wandermap/internal/trip"

	"github.com/gofiber/fiber/v2"
)

type tripResult struct {
	trip.Trip
	Flag string `json:"flag"`
}

type results struct {
	Trips  []tripResult  `json:"trips"`
	Guides []guide.Guide `json:"guides"`
}

func RegisterRoutes(r fiber.Router, trips *trip.Service, guides *guide.Service, authMiddleware fiber.Handler) {
	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		out := results{Trips: []tripResult{}, Guides: []guide.Guide{}}

		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			return c.JSON(out)
		}

		allTrips, err := trips.ListByOwner(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		allGuides, err := guides.ListByOwner(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		for _, t := range MatchTrips(allTrips, query) {
			name := t.Country
			if name == "" {
				name = t.Destination
			}
			out.Trips = append(out.Trips, tripResult{Trip: t, Flag: country.Flag(name)})
		}
		matched := MatchGuides(allGuides, query)
		if matched != nil {
			out.Guides = matched
		}
		return c.JSON(out)
	})

	r.Get("/route", authMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"summary": RouteSummary(c.Query("from"), c.Query("to")),
		})
	})

	r.Get("/hotels", authMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"summary": HotelSummary(c.Query("where"), c.Query("when"), c.Query("travelers")),
		})
	})
}
