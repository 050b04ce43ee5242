package server

import (
	"backend-passiverdi/internal/activity"
	"backend-passiverdi/internal/challenge"
	"backend-passiverdi/internal/config"
	"backend-passiverdi/internal/device"
	"backend-passiverdi/internal/player"
	"backend-passiverdi/internal/stream"
	"backend-passiverdi/internal/tracking"

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

	coeffs := s.Cfg.Coefficients()

	activities := activity.NewService(s.DB)
	challenges := challenge.NewService(s.DB)
	players := player.NewService(s.DB, s.Redis, activities, challenges)
	sessions := tracking.NewService(coeffs, s.Cfg.ClassifierWindow, players, s.Stream)

	tracking.RegisterRoutes(s.App.Group("/tracking"), sessions)
	activity.RegisterRoutes(s.App.Group("/activities"), activities, players, coeffs)
	player.RegisterRoutes(s.App.Group("/players"), players)
	player.RegisterLeaderboard(s.App.Group("/leaderboard"), players)
	challenge.RegisterRoutes(s.App.Group("/challenges"), challenges)
	device.RegisterRoutes(s.App.Group("/devices"), sessions)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
