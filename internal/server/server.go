package server

import (
	"backend-wandermap/internal/auth"
	"backend-wandermap/internal/config"
	"backend-wandermap/internal/guide"
	"backend-wandermap/internal/media"
	"backend-wandermap/internal/nav"
	"backend-wandermap/internal/profile"
	"backend-wandermap/internal/search"
	"backend-wandermap/internal/stream"
	"backend-wandermap/internal/trip"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	trips := trip.NewService(s.DB, s.Stream)
	guides := guide.NewService(s.DB, s.Stream)
	sessions := nav.NewSessions(trips, guides, s.Stream, nav.ParsePolicy(s.Cfg.DeletePolicy))

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	trip.RegisterRoutes(s.App.Group("/trips"), trips, jwtMiddleware)
	guide.RegisterRoutes(s.App.Group("/guides"), guides, jwtMiddleware)
	profile.RegisterRoutes(s.App.Group("/profile"), profile.NewService(s.DB), jwtMiddleware)
	search.RegisterRoutes(s.App.Group("/search"), trips, guides, jwtMiddleware)
	nav.RegisterRoutes(s.App.Group("/nav"), sessions, jwtMiddleware)
	media.RegisterRoutes(s.App.Group("/media"), media.NewService(s.DB), jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream, jwtMiddleware)
}
