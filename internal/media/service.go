package media

import (
	"context"

	"backend-wandermap/internal/db"

	"github.com/google/uuid"
)

// Service records uploaded objects so guide photos and profile
// pictures resolve to stable URLs. The bytes themselves live on the
// CDN; only the pointer is kept here.
type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) SaveObject(ctx context.Context, userID, url, kind string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO media_objects (id, user_id, url, kind)
		VALUES ($1,$2,$3,$4)
	`, id, userID, url, kind)
	if err != nil {
		return "", err
	}
	return id, nil
}
