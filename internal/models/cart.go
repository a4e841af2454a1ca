package models

// CartBookInfo is the slim book projection embedded in cart items.
type CartBookInfo struct {
	Judul      *string  `json:"judul,omitempty"`
	Harga      *float64 `json:"harga,omitempty"`
	CoverImage *string  `json:"cover_image,omitempty"`
	Berat      *float64 `json:"berat,omitempty"`
	Status     *string  `json:"status,omitempty"`
}

// CartItem is one line of the cart.
type CartItem struct {
	IDKeranjangItem int           `json:"id_keranjang_item"`
	IDKeranjang     int           `json:"id_keranjang"`
	IDBuku          int           `json:"id_buku"`
	Jumlah          int           `json:"jumlah"`
	HargaSatuan     *float64      `json:"harga_satuan,omitempty"`
	Subtotal        *float64      `json:"subtotal,omitempty"`
	CreatedAt       *string       `json:"created_at,omitempty"`
	Buku            *CartBookInfo `json:"buku,omitempty"`
}

// CartSummary carries the server-computed aggregates. The gateway never
// recomputes these: the backend is the single source of truth for totals.
type CartSummary struct {
	TotalQty   int     `json:"total_qty"`
	TotalPrice float64 `json:"total_price"`
}

// CartView is the /cart response: { cart_id, summary, items }.
type CartView struct {
	CartID  *int        `json:"cart_id"`
	Summary CartSummary `json:"summary"`
	Items   []CartItem  `json:"items"`
}

// AddToCartPayload adds a book to the cart.
type AddToCartPayload struct {
	IDBuku int `json:"id_buku" binding:"required"`
	Jumlah int `json:"jumlah" binding:"required,gt=0"`
}

// UpdateCartQtyPayload changes one item's quantity.
type UpdateCartQtyPayload struct {
	Jumlah int `json:"jumlah" binding:"required,gt=0"`
}
