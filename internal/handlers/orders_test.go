package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersFixture = `[
	{"id_order":1,"kode_order":"ORD-001","status_pembayaran":{"nama_status":"Menunggu Pembayaran"},"status_order":{"nama_status":"Diproses"}},
	{"id_order":2,"kode_order":"ORD-002","status_pembayaran":{"nama_status":"PENDING"},"status_order":{"nama_status":"Dikemas"}},
	{"id_order":3,"kode_order":"ORD-003","status_pembayaran":{"nama_status":"Belum Dibayar"},"status_order":{"nama_status":"Diproses"}},
	{"id_order":4,"kode_order":"ORD-004","status_pembayaran":{"nama_status":"Lunas"},"status_order":{"nama_status":"Dikirim"}},
	{"id_order":5,"kode_order":"ORD-005","status_pembayaran":{"nama_status":"Gagal"},"status_order":{"nama_status":"Dibatalkan"}}
]`

func TestListOrdersRelaysWithoutFilter(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(ordersFixture))
	})
	router := testRouter(fb)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/orders", nil), "tok123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Len(t, out, 5)
}

func TestListOrdersUnpaidFilter(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		// the filter is the gateway's, never forwarded upstream
		assert.Empty(t, r.URL.Query().Get("filter"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(ordersFixture))
	})
	router := testRouter(fb)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/orders?filter=unpaid", nil), "tok123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Data []struct {
			IDOrder int `json:"id_order"`
		} `json:"data"`
		Counts map[string]int `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	ids := make([]int, 0, len(out.Data))
	for _, o := range out.Data {
		ids = append(ids, o.IDOrder)
	}
	assert.Equal(t, []int{1, 2, 3}, ids)
	assert.Equal(t, 5, out.Counts["all"])
	assert.Equal(t, 3, out.Counts["unpaid"])
	assert.Equal(t, 1, out.Counts["cancel"])
}

func TestListOrdersFilterToleratesEnvelopeVariants(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"data":` + ordersFixture + `}}`))
	})
	router := testRouter(fb)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/orders?filter=unpaid", nil), "tok123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Data []any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Len(t, out.Data, 3)
}

func TestGetOrderFallsBackToDetailRoute(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/orders/9" {
			http.NotFound(w, r)
			return
		}
		require.Equal(t, "/orders/detail/9", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id_order":9,"kode_order":"ORD-009"}`))
	})
	router := testRouter(fb)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/orders/9", nil), "tok123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, fb.CallCount())
}

func TestPatchOrderArchiveAction(t *testing.T) {
	fb := newFakeBackend(t, nil)
	router := testRouter(fb)

	req := withSession(httptest.NewRequest(http.MethodPatch, "/api/orders/5?action=archive", nil), "tok123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	calls := fb.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/orders/5/archive", calls[0].Path)
	assert.Equal(t, http.MethodPatch, calls[0].Method)
}

func TestDeleteOrderRelaysUpstreamError(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail":"Order sudah dibayar, tidak bisa dihapus"}`))
	})
	router := testRouter(fb)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/orders/4", nil), "tok123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"detail":"Order sudah dibayar, tidak bisa dihapus"}`, w.Body.String())
}
