package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the page-session cookie.
const SessionCookie = "ui_session"

type Manager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure}
}

// SetSession stores the page-session id. ttl <= 0 makes it a browser-session cookie.
func (m *Manager) SetSession(c *gin.Context, id string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, maxAgeFrom(ttl), "/", m.Domain, m.Secure, true)
}

// Session returns the page-session id sent by the browser, if any.
func (m *Manager) Session(c *gin.Context) string {
	v, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return v
}

func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(ttl time.Duration) int {
	sec := int(ttl.Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
