package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sibuku/sibuku-gateway/internal/metrics"
	"github.com/sibuku/sibuku-gateway/internal/session"
	"github.com/sibuku/sibuku-gateway/internal/upstream"
	log "github.com/sirupsen/logrus"
)

// API bundles what every handler needs: the upstream client and the
// session cookie writer. Handlers are stateless per request beyond this.
type API struct {
	Upstream *upstream.Client
	Sessions *session.Manager
}

// unauthorizedBody is the fixed 401 payload; auth-required handlers
// return it without ever contacting upstream.
var unauthorizedBody = gin.H{"detail": "Unauthorized"}

// requireToken short-circuits with 401 when the session cookie is absent.
func (a *API) requireToken(c *gin.Context) (string, bool) {
	token := session.TokenFromRequest(c.Request)
	if token == "" {
		metrics.AuthRejectionsTotal.WithLabelValues(c.FullPath()).Inc()
		c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorizedBody)
		return "", false
	}
	return token, true
}

// forward performs the upstream call and relays the result.
func (a *API) forward(c *gin.Context, req upstream.Request) {
	res, err := a.Upstream.Do(c.Request.Context(), req)
	if err != nil {
		a.fail(c, req.Operation, err)
		return
	}
	relay(c, res)
}

// relay writes an upstream result back to the browser: status and JSON
// body verbatim, empty body on 204, raw text with the original content
// type when the upstream response was not JSON.
func relay(c *gin.Context, res *upstream.Result) {
	if res.NoContent() {
		c.Status(http.StatusNoContent)
		return
	}
	if !res.IsJSON() {
		ct := res.ContentType
		if ct == "" {
			ct = "text/plain"
		}
		c.Data(res.Status, ct, res.Body)
		return
	}
	if res.JSON != nil {
		c.JSON(res.Status, res.JSON)
		return
	}
	c.JSON(res.Status, nil)
}

// fail maps transport-level problems onto the gateway's own errors:
// breaker open -> 503, anything else -> 502 with a generic message.
// Upstream 4xx/5xx never land here; those are relayed with their body.
func (a *API) fail(c *gin.Context, operation string, err error) {
	if errors.Is(err, upstream.ErrUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Backend sedang tidak tersedia"})
		return
	}
	log.WithFields(log.Fields{
		"operation": operation,
		"path":      c.FullPath(),
	}).Error("Upstream call failed: ", err)
	c.JSON(http.StatusBadGateway, gin.H{"detail": "Request gagal"})
}

// readBody drains the incoming request body for verbatim forwarding.
func readBody(c *gin.Context) []byte {
	if c.Request.Body == nil {
		return nil
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		return nil
	}
	return raw
}

// relayJSON builds a handler that forwards the request as-is to one
// upstream path and relays the response. The path is resolved per
// request so route parameters can be substituted.
func (a *API) relayJSON(operation string, auth bool, path func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := upstream.Request{
			Operation: operation,
			Method:    c.Request.Method,
			Path:      path(c),
			Query:     c.Request.URL.Query(),
		}
		if auth {
			token, ok := a.requireToken(c)
			if !ok {
				return
			}
			req.Token = token
		}
		req.RawJSON = readBody(c)
		a.forward(c, req)
	}
}

// staticPath adapts a fixed upstream path for relayJSON.
func staticPath(p string) func(*gin.Context) string {
	return func(*gin.Context) string { return p }
}

// idPath substitutes the :id route parameter into an upstream template.
func idPath(prefix, suffix string) func(*gin.Context) string {
	return func(c *gin.Context) string {
		return prefix + url.PathEscape(c.Param("id")) + suffix
	}
}
