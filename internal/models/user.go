package models

// LoginPayload is what the browser submits to /api/auth/login.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterPayload is the registration form body, forwarded untouched.
type RegisterPayload struct {
	Nama     string `json:"nama"`
	Email    string `json:"email"`
	Password string `json:"password"`
	NoHP     string `json:"no_hp,omitempty"`
	Alamat   string `json:"alamat,omitempty"`
}

// AuthUser is the slim user object returned inside the login response.
type AuthUser struct {
	ID    int    `json:"id"`
	Nama  string `json:"nama"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TokenResponse is the backend's /auth/login response.
type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        AuthUser `json:"user"`
}

// MeUser is the full profile row from /auth/me and /users/profile.
type MeUser struct {
	IDUser    int     `json:"id_user"`
	Nama      string  `json:"nama"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	NoHP      *string `json:"no_hp,omitempty"`
	Alamat    *string `json:"alamat,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
	LastLogin *string `json:"last_login,omitempty"`
	CreatedAt *string `json:"created_at,omitempty"`
}

// ProfileUpdatePayload is the PUT /users/profile body.
type ProfileUpdatePayload struct {
	Nama   string `json:"nama,omitempty"`
	NoHP   string `json:"no_hp,omitempty"`
	Alamat string `json:"alamat,omitempty"`
}

// AdminDashboardStats is the /admin/stats aggregate.
type AdminDashboardStats struct {
	TotalUser       int     `json:"total_user"`
	TotalBuku       int     `json:"total_buku"`
	TotalOrder      int     `json:"total_order"`
	TotalPendapatan float64 `json:"total_pendapatan"`
}
