package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/microservices-console/config"
	"github.com/oksasatya/microservices-console/internal/application"
	"github.com/oksasatya/microservices-console/internal/interface/view"
	"github.com/oksasatya/microservices-console/internal/session"
	"github.com/oksasatya/microservices-console/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	rabbitPub   *helpers.RabbitPublisher

	board    *application.StatusBoard
	checker  *application.HealthChecker
	sessions *session.Store
	renderer *view.Renderer
)

func SetConfig(c *config.Config)                    { cfg = c }
func GetConfig() *config.Config                     { return cfg }
func SetLogger(l *logrus.Logger)                    { logger = l }
func GetLogger() *logrus.Logger                     { return logger }
func SetRedis(r *redis.Client)                      { redisClient = r }
func GetRedis() *redis.Client                       { return redisClient }
func SetRabbitPub(p *helpers.RabbitPublisher)       { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher        { return rabbitPub }
func SetStatusBoard(b *application.StatusBoard)     { board = b }
func GetStatusBoard() *application.StatusBoard      { return board }
func SetHealthChecker(h *application.HealthChecker) { checker = h }
func GetHealthChecker() *application.HealthChecker  { return checker }
func SetSessions(s *session.Store)                  { sessions = s }
func GetSessions() *session.Store                   { return sessions }

func SetRenderer(r *view.Renderer) { renderer = r }
func GetRenderer() *view.Renderer {
	if renderer != nil {
		return renderer
	}
	return view.MustRenderer()
}
