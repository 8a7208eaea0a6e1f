package guide

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

const collection = "guides"

type Service struct {
	db  db.Querier
	hub *stream.Hub
}

func NewService(db db.Querier, hub *stream.Hub) *Service {
	return &Service{db: db, hub: hub}
}

func (s *Service) Create(ctx context.Context, ownerID string, d Draft) (Guide, error) {
	g := Guide{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Title:     d.Title,
		Location:  d.Location,
		Content:   d.Content,
		PhotoURLs: d.PhotoURLs,
	}
	if g.PhotoURLs == nil {
		g.PhotoURLs = []string{}
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO guides (id, user_id, title, location, content, photo_urls)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, g.ID, g.UserID, g.Title, g.Location, g.Content, g.PhotoURLs)
	if err := row.Scan(&g.CreatedAt); err != nil {
		return Guide{}, &apperr.WriteError{Op: "create", Collection: collection, Err: err}
	}

	s.notify(g.UserID, "create", g.ID)
	return g, nil
}

// Update rewrites the owner's record only; an id held by another user
// behaves exactly like a missing one.
func (s *Service) Update(ctx context.Context, ownerID, id string, d Draft) (Guide, error) {
	g := Guide{
		ID:        id,
		UserID:    ownerID,
		Title:     d.Title,
		Location:  d.Location,
		Content:   d.Content,
		PhotoURLs: d.PhotoURLs,
	}
	if g.PhotoURLs == nil {
		g.PhotoURLs = []string{}
	}

	row := s.db.QueryRow(ctx, `
		UPDATE guides
		SET title=$3, location=$4, content=$5, photo_urls=$6
		WHERE id=$1 AND user_id=$2
		RETURNING created_at
	`, id, ownerID, g.Title, g.Location, g.Content, g.PhotoURLs)
	if err := row.Scan(&g.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = apperr.ErrNotFound
		}
		return Guide{}, &apperr.WriteError{Op: "update", Collection: collection, ID: id, Err: err}
	}

	s.notify(ownerID, "update", id)
	return g, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	err := s.db.QueryRow(ctx, `
		DELETE FROM guides WHERE id=$1 AND user_id=$2
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

// ListByOwner filters by exact owner match, ordered by creation time
// with the id as tiebreaker.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Guide, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, title, location, content, photo_urls, created_at
		FROM guides WHERE user_id=$1
		ORDER BY created_at, id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guides []Guide
	for rows.Next() {
		var g Guide
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Location, &g.Content, &g.PhotoURLs, &g.CreatedAt); err != nil {
			return nil, err
		}
		guides = append(guides, g)
	}
	return guides, rows.Err()
}

func (s *Service) notify(ownerID, op, id string) {
	if s.hub == nil {
		return
	}
	payload, _ := json.Marshal(stream.Event{Collection: collection, Op: op, ID: id})
	s.hub.Broadcast(stream.Topic(collection, ownerID), payload)
}
