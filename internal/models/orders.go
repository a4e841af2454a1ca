package models

import "strings"

// StatusRef is the joined status lookup row embedded in orders.
type StatusRef struct {
	NamaStatus *string `json:"nama_status"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	IDBuku      int           `json:"id_buku"`
	Jumlah      int           `json:"jumlah"`
	Subtotal    *float64      `json:"subtotal,omitempty"`
	HargaSatuan *float64      `json:"harga_satuan,omitempty"`
	Buku        *CartBookInfo `json:"buku,omitempty"`
}

// Order carries two independent status references: fulfillment
// (status_order) and payment (status_pembayaran). The gateway never
// transitions either; it only classifies the labels the backend reports.
type Order struct {
	IDOrder          int         `json:"id_order"`
	KodeOrder        string      `json:"kode_order"`
	TotalHarga       float64     `json:"total_harga"`
	CreatedAt        *string     `json:"created_at,omitempty"`
	StatusOrder      *StatusRef  `json:"status_order,omitempty"`
	StatusPembayaran *StatusRef  `json:"status_pembayaran,omitempty"`
	OrderItems       []OrderItem `json:"order_item,omitempty"`
}

// FilterKey selects a slice of the order list by status labels.
type FilterKey string

const (
	FilterAll        FilterKey = "all"
	FilterUnpaid     FilterKey = "unpaid"
	FilterProcessing FilterKey = "processing"
	FilterShipping   FilterKey = "shipping"
	FilterDone       FilterKey = "done"
	FilterCancel     FilterKey = "cancel"
)

// ParseFilterKey maps a query value onto a FilterKey, defaulting to all.
func ParseFilterKey(s string) FilterKey {
	switch FilterKey(strings.ToLower(strings.TrimSpace(s))) {
	case FilterUnpaid, FilterProcessing, FilterShipping, FilterDone, FilterCancel:
		return FilterKey(strings.ToLower(strings.TrimSpace(s)))
	default:
		return FilterAll
	}
}

func normLabel(ref *StatusRef) string {
	if ref == nil || ref.NamaStatus == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*ref.NamaStatus))
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// PaymentStatus returns the order's normalized payment label.
func (o Order) PaymentStatus() string { return normLabel(o.StatusPembayaran) }

// FulfillmentStatus returns the order's normalized fulfillment label.
func (o Order) FulfillmentStatus() string { return normLabel(o.StatusOrder) }

// IsUnpaid reports whether payment is still outstanding.
func (o Order) IsUnpaid() bool {
	return containsAny(o.PaymentStatus(), "menunggu", "pending", "belum")
}

// IsProcessing reports whether fulfillment is in progress.
func (o Order) IsProcessing() bool {
	return containsAny(o.FulfillmentStatus(), "diproses", "proses")
}

// IsShipping reports whether the order is on its way.
func (o Order) IsShipping() bool {
	return containsAny(o.FulfillmentStatus(), "dikirim", "siap kirim", "siap dikirim")
}

// IsDone reports whether the order finished (delivered or fully paid).
func (o Order) IsDone() bool {
	return containsAny(o.FulfillmentStatus(), "selesai") ||
		containsAny(o.PaymentStatus(), "lunas")
}

// IsCancelled reports whether the order was cancelled or payment failed.
func (o Order) IsCancelled() bool {
	return containsAny(o.FulfillmentStatus(), "batal", "dibatalkan") ||
		containsAny(o.PaymentStatus(), "gagal")
}

// Matches applies a FilterKey to one order.
func (o Order) Matches(key FilterKey) bool {
	switch key {
	case FilterUnpaid:
		return o.IsUnpaid()
	case FilterProcessing:
		return o.IsProcessing()
	case FilterShipping:
		return o.IsShipping()
	case FilterDone:
		return o.IsDone()
	case FilterCancel:
		return o.IsCancelled()
	default:
		return true
	}
}

// FilterOrders returns the subset of orders matching key. The result is
// never nil.
func FilterOrders(orders []Order, key FilterKey) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.Matches(key) {
			out = append(out, o)
		}
	}
	return out
}

// CountByFilter tallies the order list per filter tab.
func CountByFilter(orders []Order) map[FilterKey]int {
	counts := map[FilterKey]int{
		FilterAll:        len(orders),
		FilterUnpaid:     0,
		FilterProcessing: 0,
		FilterShipping:   0,
		FilterDone:       0,
		FilterCancel:     0,
	}
	for _, o := range orders {
		if o.IsUnpaid() {
			counts[FilterUnpaid]++
		}
		if o.IsProcessing() {
			counts[FilterProcessing]++
		}
		if o.IsShipping() {
			counts[FilterShipping]++
		}
		if o.IsDone() {
			counts[FilterDone]++
		}
		if o.IsCancelled() {
			counts[FilterCancel]++
		}
	}
	return counts
}
