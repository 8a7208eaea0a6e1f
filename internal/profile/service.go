package profile

import (
	"context"
	"errors"

	"backend-wandermap/internal/apperr"
	"backend-wandermap/internal/db"

	"github.com/jackc/pgx/v5"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Get(ctx context.Context, userID string) (UserProfile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, email, display_name, photo_url, updated_at
		FROM users WHERE id=$1
	`, userID)

	var p UserProfile
	if err := row.Scan(&p.UserID, &p.Email, &p.DisplayName, &p.PhotoURL, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserProfile{}, apperr.ErrNotFound
		}
		return UserProfile{}, err
	}
	return p, nil
}

// Update replaces the mutable fields only. Empty values store as NULL,
// matching the "blank means unset" behavior of the profile form. Email
// is never touched.
func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) (UserProfile, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE users
		SET display_name=$2, photo_url=$3, updated_at=now()
		WHERE id=$1
		RETURNING id, email, display_name, photo_url, updated_at
	`, userID, nullable(req.DisplayName), nullable(req.PhotoURL))

	var p UserProfile
	if err := row.Scan(&p.UserID, &p.Email, &p.DisplayName, &p.PhotoURL, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = apperr.ErrNotFound
		}
		return UserProfile{}, &apperr.WriteError{Op: "update", Collection: "users", ID: userID, Err: err}
	}
	return p, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
