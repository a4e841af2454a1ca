package models

// Genre is a book genre row from the backend master data.
type Genre struct {
	IDGenre        int     `json:"id_genre"`
	NamaGenre      string  `json:"nama_genre"`
	DeskripsiGenre *string `json:"deskripsi_genre,omitempty"`
	Slug           *string `json:"slug,omitempty"`
}

// Penulis is an author row.
type Penulis struct {
	IDPenulis   int     `json:"id_penulis"`
	NamaPenulis string  `json:"nama_penulis"`
	Biografi    *string `json:"biografi,omitempty"`
	FotoPenulis *string `json:"foto_penulis,omitempty"`
}

// Book mirrors the backend book schema, relations included.
type Book struct {
	IDBuku     int      `json:"id_buku"`
	Judul      string   `json:"judul"`
	ISBN       *string  `json:"isbn,omitempty"`
	Harga      float64  `json:"harga"`
	Stok       int      `json:"stok"`
	Berat      *float64 `json:"berat,omitempty"`
	Deskripsi  *string  `json:"deskripsi,omitempty"`
	CoverImage *string  `json:"cover_image,omitempty"`
	Status     string   `json:"status,omitempty"`

	IDGenre   *int     `json:"id_genre,omitempty"`
	IDPenulis *int     `json:"id_penulis,omitempty"`
	Genre     *Genre   `json:"genre,omitempty"`
	Penulis   *Penulis `json:"penulis,omitempty"`

	CreatedAt *string `json:"created_at,omitempty"`
	UpdatedAt *string `json:"updated_at,omitempty"`
}

// PagingMeta is the backend's canonical paging header.
type PagingMeta struct {
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	SortBy     string `json:"sort_by,omitempty"`
	Order      string `json:"order,omitempty"`
}
