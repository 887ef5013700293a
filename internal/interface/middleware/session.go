package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/microservices-console/internal/application"
	"github.com/oksasatya/microservices-console/internal/session"
	"github.com/oksasatya/microservices-console/pkg/helpers"
)

const (
	SessionIDKey     = "session_id"
	ControllerKey    = "ui_controller"
	SessionOpenedKey = "session_opened"
)

// Session binds the request to its page-session controller. A browser with
// no usable cookie gets one issued and is served by a transient controller;
// the stored session opens when that cookie comes back.
func Session(store *session.Store, cookies *helpers.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sent := cookies.Session(c)
		if !session.ValidID(sent) {
			cookies.SetSession(c, session.NewID(), 0)
			c.Set(ControllerKey, store.Transient())
			c.Next()
			return
		}
		ctrl, opened := store.Acquire(c.Request.Context(), sent)
		c.Set(SessionIDKey, sent)
		c.Set(SessionOpenedKey, opened)
		c.Set(ControllerKey, ctrl)
		c.Next()
	}
}

// ControllerFrom returns the controller bound by Session.
func ControllerFrom(c *gin.Context) (*application.Controller, bool) {
	v, ok := c.Get(ControllerKey)
	if !ok {
		return nil, false
	}
	ctrl, ok := v.(*application.Controller)
	return ctrl, ok
}

// KnownFunc reports whether a session id is live.
type KnownFunc func(id string) bool

// knownSession returns the cookie's session id when known reports it live.
func knownSession(c *gin.Context, known KnownFunc) (string, bool) {
	sid, err := c.Cookie(helpers.SessionCookie)
	if err != nil || sid == "" || known == nil || !known(sid) {
		return "", false
	}
	return sid, true
}
