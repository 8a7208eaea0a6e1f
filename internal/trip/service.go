package trip

import (
	"context"
	"encoding/json"
	"errors"

	"backend-wandermap/internal/apperr"
	"backend-wandermap/internal/db"
	"backend-wandermap/internal/stream"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const collection = "trips"

type Service struct {
	db  db.Querier
	hub *stream.Hub
}

func NewService(db db.Querier, hub *stream.Hub) *Service {
	return &Service{db: db, hub: hub}
}

// Create assigns the id and owner, writes the record and returns the
// canonical shape. The gateway does not retry.
func (s *Service) Create(ctx context.Context, ownerID string, d Draft) (Trip, error) {
	t := Trip{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Destination: d.Destination,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Country:     d.Country,
		Activities:  d.Activities,
	}
	if t.Activities == nil {
		t.Activities = []string{}
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO trips (id, user_id, destination, start_date, end_date, country, activities)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, t.ID, t.UserID, t.Destination, t.StartDate, t.EndDate, t.Country, t.Activities)
	if err := row.Scan(&t.CreatedAt); err != nil {
		return Trip{}, &apperr.WriteError{Op: "create", Collection: collection, Err: err}
	}

	s.notify(t.UserID, "create", t.ID)
	return t, nil
}

// Update replaces all mutable fields of the owner's record. ID and
// owner are untouched; an id the owner does not hold yields a
// WriteError wrapping apperr.ErrNotFound, so one user can never reach
// another's rows.
func (s *Service) Update(ctx context.Context, ownerID, id string, d Draft) (Trip, error) {
	t := Trip{
		ID:          id,
		UserID:      ownerID,
		Destination: d.Destination,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Country:     d.Country,
		Activities:  d.Activities,
	}
	if t.Activities == nil {
		t.Activities = []string{}
	}

	row := s.db.QueryRow(ctx, `
		UPDATE trips
		SET destination=$3, start_date=$4, end_date=$5, country=$6, activities=$7
		WHERE id=$1 AND user_id=$2
		RETURNING created_at
	`, id, ownerID, t.Destination, t.StartDate, t.EndDate, t.Country, t.Activities)
	if err := row.Scan(&t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = apperr.ErrNotFound
		}
		return Trip{}, &apperr.WriteError{Op: "update", Collection: collection, ID: id, Err: err}
	}

	s.notify(ownerID, "update", id)
	return t, nil
}

// Delete removes the owner's record. Deleting an id that is already
// gone, or that belongs to someone else, affects no rows and is not an
// error.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	err := s.db.QueryRow(ctx, `
		DELETE FROM trips WHERE id=$1 AND user_id=$2
		RETURNING id
	`, id, ownerID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return &apperr.WriteError{Op: "delete", Collection: collection, ID: id, Err: err}
	}

	s.notify(ownerID, "delete", id)
	return nil
}

// ListByOwner returns the owner's trips. The owner filter is an exact,
// case-sensitive match; ordering is by creation time with the id as a
// tiebreaker so snapshots are deterministic.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, destination, start_date, end_date, country, activities, created_at
		FROM trips WHERE user_id=$1
		ORDER BY created_at, id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []Trip
	for rows.Next() {
		var t Trip
		if err := rows.Scan(&t.ID, &t.UserID, &t.Destination, &t.StartDate, &t.EndDate, &t.Country, &t.Activities, &t.CreatedAt); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (s *Service) notify(ownerID, op, id string) {
	if s.hub == nil {
		return
	}
	payload, _ := json.Marshal(stream.Event{Collection: collection, Op: op, ID: id})
	s.hub.Broadcast(stream.Topic(collection, ownerID), payload)
}
