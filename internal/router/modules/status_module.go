package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/microservices-console/internal/container"
	handlers "github.com/oksasatya/microservices-console/internal/interface/http"
	"github.com/oksasatya/microservices-console/internal/interface/middleware"
)

// StatusModule serves GET /api/status.
type StatusModule struct {
	Handler *handlers.StatusHandler
}

func NewStatusModule(h *handlers.StatusHandler) *StatusModule {
	return &StatusModule{Handler: h}
}

func (m *StatusModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/status", rl, m.Handler.JSON)
}
