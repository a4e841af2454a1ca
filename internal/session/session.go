package session

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenCookie is the HTTP-only cookie holding the opaque backend bearer
// token. The gateway never inspects the token's structure.
const TokenCookie = "sibuku_token"

// OnboardedCookie marks that the intro flow was completed. Not httpOnly:
// the storefront reads it to skip the onboarding screens.
const OnboardedCookie = "sibuku_onboarded_intro"

const (
	// LoginMaxAge is the session lifetime set at login.
	LoginMaxAge = 60 * 60 * 24 * 7
	// HelperMaxAge is the shorter lifetime used by the server-side token
	// refresh helper. The two lifetimes intentionally differ pending a
	// product decision on which one is right.
	HelperMaxAge = 60 * 60 * 2
	// OnboardedMaxAge keeps the intro marker for a year.
	OnboardedMaxAge = 60 * 60 * 24 * 365
)

// Sanitize strips any number of leading "Bearer " prefixes from a stored
// token. Tokens are persisted unprefixed; this guards against older
// cookies written as "Bearer xxx" or even "Bearer Bearer xxx".
func Sanitize(raw string) string {
	t := strings.TrimSpace(raw)
	for strings.HasPrefix(strings.ToLower(t), "bearer ") {
		t = strings.TrimSpace(t[7:])
	}
	return t
}

// TokenFromRequest returns the sanitized session token, or "" when the
// cookie is absent or empty.
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(TokenCookie)
	if err != nil {
		return ""
	}
	return Sanitize(c.Value)
}

// Manager writes session cookies with the gateway's fixed attributes.
type Manager struct {
	secure bool
}

// NewManager returns a Manager; secure controls the cookie Secure flag
// (on in production, off for local development over plain HTTP).
func NewManager(secure bool) *Manager {
	return &Manager{secure: secure}
}

// SetToken persists a sanitized token for the login lifetime.
func (m *Manager) SetToken(c *gin.Context, token string) {
	m.set(c, TokenCookie, Sanitize(token), LoginMaxAge, true)
}

// ClearToken expires the session cookie immediately.
func (m *Manager) ClearToken(c *gin.Context) {
	m.set(c, TokenCookie, "", -1, true)
}

// SetOnboarded writes the onboarding marker cookie.
func (m *Manager) SetOnboarded(c *gin.Context) {
	m.set(c, OnboardedCookie, "1", OnboardedMaxAge, false)
}

func (m *Manager) set(c *gin.Context, name, value string, maxAge int, httpOnly bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: httpOnly,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
