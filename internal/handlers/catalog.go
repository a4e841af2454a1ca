package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sibuku/sibuku-gateway/internal/normalize"
	"github.com/sibuku/sibuku-gateway/internal/session"
	"github.com/sibuku/sibuku-gateway/internal/upstream"
)

func queryInt(c *gin.Context, key string, def int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil && v > 0 {
		return v
	}
	return def
}

// relayPaged forwards a paginated read and coerces whatever envelope the
// backend used into the canonical {meta,data} shape.
func (a *API) relayPaged(operation string, auth bool, path func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := upstream.Request{
			Operation: operation,
			Method:    http.MethodGet,
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

		res, err := a.Upstream.Do(c.Request.Context(), req)
		if err != nil {
			a.fail(c, operation, err)
			return
		}
		if res.Status < 200 || res.Status >= 300 {
			relay(c, res)
			return
		}

		page := queryInt(c, "page", 1)
		limit := queryInt(c, "limit", 10)
		c.JSON(http.StatusOK, normalize.PagedEnvelope(res.JSON, page, limit))
	}
}

// PaymentMethods resolves the payment-method list against its candidate
// paths. A 200 carrying a non-JSON body is a backend defect and comes
// back as 502 instead of being relayed as-is.
func (a *API) PaymentMethods(c *gin.Context) {
	// The list is public on some backend releases and authenticated on
	// others; send the token when the browser has one, never require it.
	token := session.TokenFromRequest(c.Request)

	res := upstream.PaymentMethodsResolution
	out, err := a.Upstream.Do(c.Request.Context(), upstream.Request{
		Operation:  res.Operation,
		Method:     http.MethodGet,
		Candidates: res.Candidates,
		Query:      c.Request.URL.Query(),
		Token:      token,
	})
	if err != nil {
		a.fail(c, res.Operation, err)
		return
	}
	if out.Status < 200 || out.Status >= 300 {
		relay(c, out)
		return
	}
	if out.JSON == nil {
		raw := string(out.Body)
		if len(raw) > 500 {
			raw = raw[:500]
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"detail": "Backend mengirim response non-JSON",
			"raw":    raw,
		})
		return
	}
	c.JSON(http.StatusOK, normalize.List(out.JSON))
}

// registerCatalog wires the public catalog reads.
func (a *API) registerCatalog(r gin.IRoutes) {
	r.GET("/books", a.relayJSON("books", false, staticPath("/books")))
	r.GET("/books/:id", a.relayJSON("books", false, idPath("/books/", "")))
	r.GET("/authors", a.relayJSON("authors", false, staticPath("/authors")))
	r.GET("/authors/paged", a.relayPaged("authors-paged", false, staticPath("/authors/paged")))
	r.GET("/authors/:id", a.relayJSON("authors", false, idPath("/authors/", "")))
	r.GET("/genres", a.relayJSON("genres", false, staticPath("/genres")))
	r.GET("/payment-methods", a.PaymentMethods)
	r.GET("/master/payment-methods", a.PaymentMethods)
}
