package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sibuku/sibuku-gateway/internal/session"
)

// protectedPrefixes are the storefront navigations that require a
// session. API calls are guarded per-handler instead, with a 401 body.
var protectedPrefixes = []string{"/cart", "/checkout", "/orders", "/account", "/admin"}

func isProtectedPage(path string) bool {
	for _, prefix := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// PageGuard redirects unauthenticated browser navigations on protected
// prefixes to the login page, carrying the original destination in the
// next parameter so the user lands back where they started.
func PageGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") || !isProtectedPage(path) {
			c.Next()
			return
		}
		if session.TokenFromRequest(c.Request) != "" {
			c.Next()
			return
		}

		next := path
		if q := c.Request.URL.RawQuery; q != "" {
			next += "?" + q
		}
		c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(next))
		c.Abort()
	}
}

// RequestID tags every request with an X-Request-Id, generating one when
// the browser did not send any.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-Id", id)
		c.Set("request_id", id)
		c.Next()
	}
}
