package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP bypasses the limit for loopback and private-range clients
// (10.0.0.0/8, 172.16/12, 192.168/16).
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// AllowReads bypasses the limit for GET and HEAD, so only mutations are counted.
func AllowReads() AllowFunc {
	return func(c *gin.Context) bool {
		m := c.Request.Method
		return m == http.MethodGet || m == http.MethodHead
	}
}

// AllowKnownSession bypasses requests whose cookie names a live session.
func AllowKnownSession(known KnownFunc) AllowFunc {
	return func(c *gin.Context) bool {
		_, ok := knownSession(c, known)
		return ok
	}
}

// AnyOf bypasses when any of fns does.
func AnyOf(fns ...AllowFunc) AllowFunc {
	return func(c *gin.Context) bool {
		for _, f := range fns {
			if f != nil && f(c) {
				return true
			}
		}
		return false
	}
}
