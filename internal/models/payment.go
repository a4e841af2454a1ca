package models

// PaymentMethod is a payment option row from master data.
type PaymentMethod struct {
	IDJenisPembayaran int     `json:"id_jenis_pembayaran"`
	NamaPembayaran    string  `json:"nama_pembayaran"`
	Keterangan        *string `json:"keterangan,omitempty"`
	IsActive          bool    `json:"is_active"`
}

// CheckoutRequest is the whitelisted payload the gateway forwards to the
// backend's atomic checkout.
type CheckoutRequest struct {
	IDJenisPembayaran int    `json:"id_jenis_pembayaran"`
	AlamatPengiriman  string `json:"alamat_pengiriman"`
	NoHPPengiriman    string `json:"no_hp_pengiriman,omitempty"`
	Catatan           string `json:"catatan,omitempty"`
}

// CheckoutResult is the backend's atomic checkout response.
type CheckoutResult struct {
	Message    string  `json:"message"`
	IDOrder    int     `json:"id_order"`
	KodeOrder  string  `json:"kode_order"`
	TotalBayar float64 `json:"total_bayar"`
	Status     string  `json:"status"`
}
