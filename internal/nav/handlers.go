package nav

import (
	"context"
	"errors"
	"sync"

	"backend-wandermap/internal/apperr"
	"backend-wandermap/internal/guide"
	"backend-wandermap/internal/stream"
	"backend-wandermap/internal/trip"
	"backend-wandermap/internal/watch"

	"github.com/gofiber/fiber/v2"
)

// Sessions hands each user their own machine so a phone and a tablet
// signed into different accounts never share navigation state. It also
// owns one watcher per user and collection; the watchers mirror the
// user's records off the stream hub and back the snapshot endpoints.
type Sessions struct {
	mu            sync.Mutex
	machines      map[string]*Machine
	tripWatchers  map[string]*watch.Watcher[trip.Trip]
	guideWatchers map[string]*watch.Watcher[guide.Guide]

	trips  TripGateway
	guides GuideGateway
	hub    *stream.Hub
	policy DeletePolicy
}

func NewSessions(trips TripGateway, guides GuideGateway, hub *stream.Hub, policy DeletePolicy) *Sessions {
	return &Sessions{
		machines:      make(map[string]*Machine),
		tripWatchers:  make(map[string]*watch.Watcher[trip.Trip]),
		guideWatchers: make(map[string]*watch.Watcher[guide.Guide]),
		trips:         trips,
		guides:        guides,
		hub:           hub,
		policy:        policy,
	}
}

func (s *Sessions) For(userID string) *Machine {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.machines[userID]
	if !ok {
		m = NewMachine(s.trips, s.guides, s.policy)
		s.machines[userID] = m
	}
	return m
}

// TripWatcher returns the user's trip mirror, starting it on first
// use. Watchers outlive individual requests, so they run on the
// background context until Close.
func (s *Sessions) TripWatcher(userID string) *watch.Watcher[trip.Trip] {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.tripWatchers[userID]
	if !ok {
		w = watch.New("trips", s.hub, s.trips.ListByOwner)
		w.Start(context.Background(), userID)
		s.tripWatchers[userID] = w
	}
	return w
}

func (s *Sessions) GuideWatcher(userID string) *watch.Watcher[guide.Guide] {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.guideWatchers[userID]
	if !ok {
		w = watch.New("guides", s.hub, s.guides.ListByOwner)
		w.Start(context.Background(), userID)
		s.guideWatchers[userID] = w
	}
	return w
}

// Close stops every running watcher.
func (s *Sessions) Close() {
	s.mu.Lock()
	tripWatchers := s.tripWatchers
	guideWatchers := s.guideWatchers
	s.tripWatchers = make(map[string]*watch.Watcher[trip.Trip])
	s.guideWatchers = make(map[string]*watch.Watcher[guide.Guide])
	s.mu.Unlock()

	for _, w := range tripWatchers {
		w.Stop()
	}
	for _, w := range guideWatchers {
		w.Stop()
	}
}

func state(m *Machine) fiber.Map {
	return fiber.Map{
		"screen":           m.Current().String(),
		"editing_trip_id":  m.EditingTripID(),
		"editing_guide_id": m.EditingGuideID(),
	}
}

func snapshotJSON[T any](snap watch.Snapshot[T]) fiber.Map {
	return fiber.Map{
		"records":    snap.Records,
		"is_loading": snap.IsLoading,
		"error":      snap.Err,
	}
}

func RegisterRoutes(r fiber.Router, sessions *Sessions, authMiddleware fiber.Handler) {
	userID := func(c *fiber.Ctx) string {
		id, _ := c.Locals("user_id").(string)
		return id
	}
	machine := func(c *fiber.Ctx) *Machine {
		return sessions.For(userID(c))
	}

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(state(machine(c)))
	})

	r.Post("/goto", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Screen string `json:"screen"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		m := machine(c)
		switch body.Screen {
		case "home":
			m.GoHome()
		case "add-choice":
			m.OpenAddChoice()
		case "trip-form":
			m.OpenCreateTrip()
		case "trip-list":
			m.OpenTripList()
		case "guide-form":
			m.OpenCreateGuide()
		case "guide-list":
			m.OpenGuideList()
		case "profile":
			m.GoProfile()
		case "search":
			m.GoSearch()
		default:
			return fiber.NewError(fiber.StatusBadRequest, "unknown screen")
		}
		return c.JSON(state(m))
	})

	r.Get("/trips", authMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(snapshotJSON(sessions.TripWatcher(userID(c)).Snapshot()))
	})

	r.Post("/trips/edit", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			ID string `json:"id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		m := machine(c)
		m.OpenTripForEdit(body.ID)
		return c.JSON(state(m))
	})

	r.Post("/trips/save", authMiddleware, func(c *fiber.Ctx) error {
		var d trip.Draft
		if err := c.BodyParser(&d); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		m := machine(c)
		rec, err := m.SaveTrip(c.Context(), userID(c), d)
		if errors.Is(err, apperr.ErrSaveInFlight) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"record": rec, "nav": state(m)})
	})

	r.Post("/trips/delete", authMiddleware, func(c *fiber.Ctx) error {
		m := machine(c)
		if err := m.DeleteTrip(c.Context(), userID(c)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(state(m))
	})

	r.Get("/guides", authMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(snapshotJSON(sessions.GuideWatcher(userID(c)).Snapshot()))
	})

	r.Post("/guides/edit", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			ID string `json:"id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		m := machine(c)
		m.OpenGuideForEdit(body.ID)
		return c.JSON(state(m))
	})

	r.Post("/guides/save", authMiddleware, func(c *fiber.Ctx) error {
		var d guide.Draft
		if err := c.BodyParser(&d); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		m := machine(c)
		rec, err := m.SaveGuide(c.Context(), userID(c), d)
		if errors.Is(err, apperr.ErrSaveInFlight) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"record": rec, "nav": state(m)})
	})

	r.Post("/guides/delete", authMiddleware, func(c *fiber.Ctx) error {
		m := machine(c)
		if err := m.DeleteGuide(c.Context(), userID(c)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(state(m))
	})
}
