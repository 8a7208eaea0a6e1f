package nav

import (
	"context"
	"log"
	"sync"

	"backend-wandermap/internal/apperr"
	"backend-wandermap/internal/guide"
	"backend-wandermap/internal/trip"
)

// DeletePolicy controls how the machine reacts when a delete fails
// against the backend.
type DeletePolicy int

const (
	// SilentDeletes logs the failure and proceeds to the list screen.
	SilentDeletes DeletePolicy = iota
	// StrictDeletes stays on the form and surfaces the error.
	StrictDeletes
)

// ParsePolicy maps the DELETE_POLICY config value; anything other
// than "strict" falls back to silent.
func ParsePolicy(s string) DeletePolicy {
	if s == "strict" {
		return StrictDeletes
	}
	return SilentDeletes
}

type TripGateway interface {
	Create(ctx context.Context, ownerID string, d trip.Draft) (trip.Trip, error)
	Update(ctx context.Context, ownerID, id string, d trip.Draft) (trip.Trip, error)
	Delete(ctx context.Context, ownerID, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]trip.Trip, error)
}

type GuideGateway interface {
	Create(ctx context.Context, ownerID string, d guide.Draft) (guide.Guide, error)
	Update(ctx context.Context, ownerID, id string, d guide.Draft) (guide.Guide, error)
	Delete(ctx context.Context, ownerID, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]guide.Guide, error)
}

// Machine tracks which screen a session is on and which record, if
// any, its form is editing. An empty editing id means create mode.
// All methods are safe for concurrent use; watcher callbacks and
// request handlers share one machine per session.
type Machine struct {
	mu             sync.Mutex
	screen         Screen
	editingTripID  string
	editingGuideID string
	saving         bool

	trips  TripGateway
	guides GuideGateway
	policy DeletePolicy
}

func NewMachine(trips TripGateway, guides GuideGateway, policy DeletePolicy) *Machine {
	return &Machine{trips: trips, guides: guides, policy: policy}
}

func (m *Machine) Current() Screen {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.screen
}

func (m *Machine) EditingTripID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editingTripID
}

func (m *Machine) EditingGuideID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editingGuideID
}

func (m *Machine) OpenAddChoice() { m.setScreen(AddChoice) }
func (m *Machine) GoHome()        { m.setScreen(Home) }
func (m *Machine) GoSearch()      { m.setScreen(Search) }
func (m *Machine) GoProfile()     { m.setScreen(Profile) }

func (m *Machine) OpenCreateTrip() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editingTripID = ""
	m.screen = TripForm
}

func (m *Machine) OpenTripForEdit(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editingTripID = id
	m.screen = TripForm
}

func (m *Machine) OpenTripList() { m.setScreen(TripList) }

func (m *Machine) OpenCreateGuide() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editingGuideID = ""
	m.screen = GuideForm
}

func (m *Machine) OpenGuideForEdit(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editingGuideID = id
	m.screen = GuideForm
}

func (m *Machine) OpenGuideList() { m.setScreen(GuideList) }

func (m *Machine) setScreen(s Screen) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.screen = s
}

// EditingTrip resolves the trip being edited against the current
// snapshot. A nil result means the form is in create mode, including
// when the record was deleted underneath the editor.
func (m *Machine) EditingTrip(records []trip.Trip) *trip.Trip {
	m.mu.Lock()
	id := m.editingTripID
	m.mu.Unlock()
	if id == "" {
		return nil
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i]
		}
	}
	return nil
}

func (m *Machine) EditingGuide(records []guide.Guide) *guide.Guide {
	m.mu.Lock()
	id := m.editingGuideID
	m.mu.Unlock()
	if id == "" {
		return nil
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i]
		}
	}
	return nil
}

// SaveTrip writes the form through the gateway, creating or updating
// depending on the editing id. The screen moves to the trip list only
// after the write settles; on failure the form stays put and the
// error is returned. A second submit while one is outstanding gets
// ErrSaveInFlight.
func (m *Machine) SaveTrip(ctx context.Context, ownerID string, d trip.Draft) (trip.Trip, error) {
	m.mu.Lock()
	if m.saving {
		m.mu.Unlock()
		return trip.Trip{}, apperr.ErrSaveInFlight
	}
	m.saving = true
	id := m.editingTripID
	m.mu.Unlock()

	var rec trip.Trip
	var err error
	if id == "" {
		rec, err = m.trips.Create(ctx, ownerID, d)
	} else {
		rec, err = m.trips.Update(ctx, ownerID, id, d)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.saving = false
	if err != nil {
		return trip.Trip{}, err
	}
	m.editingTripID = ""
	m.screen = TripList
	return rec, nil
}

func (m *Machine) SaveGuide(ctx context.Context, ownerID string, d guide.Draft) (guide.Guide, error) {
	m.mu.Lock()
	if m.saving {
		m.mu.Unlock()
		return guide.Guide{}, apperr.ErrSaveInFlight
	}
	m.saving = true
	id := m.editingGuideID
	m.mu.Unlock()

	var rec guide.Guide
	var err error
	if id == "" {
		rec, err = m.guides.Create(ctx, ownerID, d)
	} else {
		rec, err = m.guides.Update(ctx, ownerID, id, d)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.saving = false
	if err != nil {
		return guide.Guide{}, err
	}
	m.editingGuideID = ""
	m.screen = GuideList
	return rec, nil
}

// DeleteTrip removes the record being edited. With nothing being
// edited it is a no-op that still lands on the list. Failures follow
// the configured policy; an already-deleted id is not a failure at
// the gateway, so it resolves to the list either way.
func (m *Machine) DeleteTrip(ctx context.Context, ownerID string) error {
	m.mu.Lock()
	id := m.editingTripID
	m.mu.Unlock()

	if id == "" {
		m.setScreen(TripList)
		return nil
	}

	err := m.trips.Delete(ctx, ownerID, id)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		if m.policy == StrictDeletes {
			return err
		}
		log.Printf("trip delete failed, continuing: %v", err)
	}
	m.editingTripID = ""
	m.screen = TripList
	return nil
}

func (m *Machine) DeleteGuide(ctx context.Context, ownerID string) error {
	m.mu.Lock()
	id := m.editingGuideID
	m.mu.Unlock()

	if id == "" {
		m.setScreen(GuideList)
		return nil
	}

	err := m.guides.Delete(ctx, ownerID, id)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		if m.policy == StrictDeletes {
			return err
		}
		log.Printf("guide delete failed, continuing: %v", err)
	}
	m.editingGuideID = ""
	m.screen = GuideList
	return nil
}
