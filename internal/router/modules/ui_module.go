package modules

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/microservices-console/internal/container"
	handlers "github.com/oksasatya/microservices-console/internal/interface/http"
	"github.com/oksasatya/microservices-console/internal/interface/middleware"
	"github.com/oksasatya/microservices-console/internal/interface/view"
	"github.com/oksasatya/microservices-console/internal/session"
	"github.com/oksasatya/microservices-console/pkg/helpers"
)

// UIModule wires the console page into routes on the root group.
// Page:      GET /, GET /tabs/:name
// Mutations: POST /users, POST /products, GET|POST /{users,products}/:id/delete
// Fragments: GET /fragments/{users,products,status}
// Probes:    GET /health
type UIModule struct {
	UI       *handlers.UIHandler
	Status   *handlers.StatusHandler
	Sessions *session.Store
	Cookies  *helpers.Manager
}

func NewUIModule(ui *handlers.UIHandler, status *handlers.StatusHandler, sessions *session.Store, cookies *helpers.Manager) *UIModule {
	return &UIModule{UI: ui, Status: status, Sessions: sessions, Cookies: cookies}
}

func (m *UIModule) Register(rg *gin.RouterGroup) {
	// Session-less
	rg.GET("/health", handlers.Health)
	rg.GET("/fragments/status", m.Status.Fragment)
	rg.StaticFS("/assets", http.FS(view.Assets()))

	cfg := container.GetConfig()
	known := middleware.KnownFunc(m.Sessions.Known)

	page := rg.Group("/")
	// Limits run ahead of Session so unknown cookies are counted per IP
	// before any session is opened.
	page.Use(middleware.RateLimit(
		container.GetRedis(),
		cfg.RateLimitNewSessions,
		time.Minute,
		middleware.KeyNewSession(),
		middleware.AllowKnownSession(known),
	))
	// mutations only; reads and internal callers bypass
	page.Use(middleware.RateLimit(
		container.GetRedis(),
		cfg.RateLimitMutations,
		time.Minute,
		middleware.KeyBySession(known),
		middleware.AnyOf(middleware.AllowReads(), middleware.AllowPrivateIP()),
	))
	page.Use(middleware.Session(m.Sessions, m.Cookies))
	{
		page.GET("/", m.UI.Index)
		page.GET("/tabs/:name", m.UI.ShowTab)

		page.POST("/users", m.UI.SubmitUser)
		page.GET("/users/:id/delete", m.UI.ConfirmDeleteUser)
		page.POST("/users/:id/delete", m.UI.DeleteUser)

		page.POST("/products", m.UI.SubmitProduct)
		page.GET("/products/:id/delete", m.UI.ConfirmDeleteProduct)
		page.POST("/products/:id/delete", m.UI.DeleteProduct)

		page.GET("/fragments/users", m.UI.UsersFragment)
		page.GET("/fragments/products", m.UI.ProductsFragment)
	}
}
