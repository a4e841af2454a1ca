package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sibuku/sibuku-gateway/internal/models"
	"github.com/sibuku/sibuku-gateway/internal/normalize"
	"github.com/sibuku/sibuku-gateway/internal/upstream"
)

// ListOrders relays /orders. With ?filter= the gateway classifies the
// backend-reported status labels itself and returns the matching subset
// plus per-tab counts, so every page shares one filter implementation.
func (a *API) ListOrders(c *gin.Context) {
	token, ok := a.requireToken(c)
	if !ok {
		return
	}

	req := upstream.Request{
		Operation: "orders",
		Method:    http.MethodGet,
		Path:      "/orders",
		Query:     c.Request.URL.Query(),
		Token:     token,
	}

	filter := c.Query("filter")
	if filter == "" {
		a.forward(c, req)
		return
	}
	delete(req.Query, "filter")

	res, err := a.Upstream.Do(c.Request.Context(), req)
	if err != nil {
		a.fail(c, req.Operation, err)
		return
	}
	if res.Status < 200 || res.Status >= 300 {
		relay(c, res)
		return
	}

	orders := decodeOrders(res.JSON)
	key := models.ParseFilterKey(filter)

	c.JSON(http.StatusOK, gin.H{
		"data":   models.FilterOrders(orders, key),
		"counts": models.CountByFilter(orders),
	})
}

// decodeOrders maps whatever list envelope the backend used onto typed
// orders; entries that do not decode are skipped rather than fatal.
func decodeOrders(body any) []models.Order {
	items := normalize.List(body)
	orders := make([]models.Order, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			continue
		}
		var o models.Order
		if err := json.Unmarshal(raw, &o); err != nil {
			continue
		}
		orders = append(orders, o)
	}
	return orders
}

// GetOrder fetches one order, falling back to the nested detail route.
func (a *API) GetOrder(c *gin.Context) {
	token, ok := a.requireToken(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "order id kosong"})
		return
	}
	a.forward(c, upstream.Request{
		Operation:  "order-detail",
		Method:     http.MethodGet,
		Candidates: upstream.OrderDetailCandidates(id),
		Token:      token,
	})
}

// PatchOrder handles the lightweight order actions: ?action=archive and
// ?action=unarchive map to their sub-routes, anything else is a plain
// PATCH on the order itself.
func (a *API) PatchOrder(c *gin.Context) {
	token, ok := a.requireToken(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "order id kosong"})
		return
	}

	target := upstream.OrderDetailCandidates(id)[0]
	switch strings.ToLower(c.Query("action")) {
	case "archive":
		target += "/archive"
	case "unarchive":
		target += "/unarchive"
	}

	a.forward(c, upstream.Request{
		Operation: "order-action",
		Method:    http.MethodPatch,
		Path:      target,
		Token:     token,
		RawJSON:   readBody(c),
	})
}

// registerOrders wires the customer-facing order routes.
func (a *API) registerOrders(r gin.IRoutes) {
	r.GET("/orders", a.ListOrders)
	r.GET("/orders/:id", a.GetOrder)
	r.DELETE("/orders/:id", a.relayJSON("order-delete", true, idPath("/orders/", "")))
	r.PATCH("/orders/:id", a.PatchOrder)
}
