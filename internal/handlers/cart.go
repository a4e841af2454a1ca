package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sibuku/sibuku-gateway/internal/models"
	"github.com/sibuku/sibuku-gateway/internal/upstream"
)

// checkoutPayload applies the field aliases older storefront builds
// still send, then whitelists what the backend's atomic checkout
// accepts. Unknown fields are dropped so the backend never rejects the
// call over extras.
func checkoutPayload(body map[string]any) map[string]any {
	if body["alamat_pengiriman"] == nil && body["alamat"] != nil {
		body["alamat_pengiriman"] = body["alamat"]
	}
	if body["no_hp_pengiriman"] == nil && body["no_hp"] != nil {
		body["no_hp_pengiriman"] = body["no_hp"]
	}
	if body["id_jenis_pembayaran"] == nil && body["id_metode_pembayaran"] != nil {
		body["id_jenis_pembayaran"] = body["id_metode_pembayaran"]
	}
	if body["id_jenis_pembayaran"] == nil && body["id_payment_method"] != nil {
		body["id_jenis_pembayaran"] = body["id_payment_method"]
	}

	clean := map[string]any{}
	if v := body["id_jenis_pembayaran"]; v != nil {
		clean["id_jenis_pembayaran"] = v
	}
	if s, ok := body["alamat_pengiriman"].(string); ok {
		clean["alamat_pengiriman"] = s
	}
	if s, ok := body["no_hp_pengiriman"].(string); ok && strings.TrimSpace(s) != "" {
		clean["no_hp_pengiriman"] = strings.TrimSpace(s)
	}
	if s, ok := body["catatan"].(string); ok && strings.TrimSpace(s) != "" {
		clean["catatan"] = strings.TrimSpace(s)
	}
	return clean
}

func paymentMethodID(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), n == float64(int(n))
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}

// Checkout validates locally and forwards to the backend's atomic
// checkout via the candidate-path table. Validation failures return 400
// without contacting upstream.
func (a *API) Checkout(c *gin.Context) {
	token, ok := a.requireToken(c)
	if !ok {
		return
	}

	var body map[string]any
	if raw := readBody(c); raw != nil {
		if err := json.Unmarshal(raw, &body); err != nil {
			body = nil
		}
	}
	if body == nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Body harus JSON."})
		return
	}

	clean := checkoutPayload(body)

	id, numeric := paymentMethodID(clean["id_jenis_pembayaran"])
	if !numeric || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "id_jenis_pembayaran tidak valid."})
		return
	}

	alamat, _ := clean["alamat_pengiriman"].(string)
	if len(strings.TrimSpace(alamat)) < 5 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "alamat_pengiriman minimal 5 karakter."})
		return
	}

	payload := models.CheckoutRequest{
		IDJenisPembayaran: id,
		AlamatPengiriman:  alamat,
	}
	if s, ok := clean["no_hp_pengiriman"].(string); ok {
		payload.NoHPPengiriman = s
	}
	if s, ok := clean["catatan"].(string); ok {
		payload.Catatan = s
	}

	res := upstream.CheckoutResolution
	a.forward(c, upstream.Request{
		Operation:  res.Operation,
		Method:     http.MethodPost,
		Candidates: res.Candidates,
		Token:      token,
		JSON:       payload,
	})
}

// CartSummaryAlias serves /api/cart-summary: it reads the cart and
// returns only the summary aggregate, defaulting to zeros when the
// backend response carries none.
func (a *API) CartSummaryAlias(c *gin.Context) {
	token, ok := a.requireToken(c)
	if !ok {
		return
	}
	res, err := a.Upstream.Do(c.Request.Context(), upstream.Request{
		Operation: "cart-summary",
		Method:    http.MethodGet,
		Path:      "/cart/",
		Token:     token,
	})
	if err != nil {
		a.fail(c, "cart-summary", err)
		return
	}
	if res.Status < 200 || res.Status >= 300 {
		relay(c, res)
		return
	}

	summary := models.CartSummary{}
	if m, ok := res.JSON.(map[string]any); ok {
		if raw, err := json.Marshal(m["summary"]); err == nil {
			json.Unmarshal(raw, &summary)
		}
	}
	c.JSON(http.StatusOK, summary)
}

// registerCart wires the cart resource family.
func (a *API) registerCart(r gin.IRoutes) {
	r.GET("/cart", a.relayJSON("cart", true, staticPath("/cart/")))
	r.DELETE("/cart", a.relayJSON("cart", true, staticPath("/cart/")))
	r.GET("/cart/summary", a.relayJSON("cart-summary", true, staticPath("/cart/summary")))
	r.GET("/cart-summary", a.CartSummaryAlias)
	r.POST("/cart/items", a.relayJSON("cart-items", true, staticPath("/cart/items")))
	r.PATCH("/cart/items/:id", a.relayJSON("cart-items", true, idPath("/cart/items/", "")))
	r.DELETE("/cart/items/:id", a.relayJSON("cart-items", true, idPath("/cart/items/", "")))
	r.POST("/cart/checkout", a.Checkout)
	r.POST("/checkout", a.Checkout)
}
