package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sibuku/sibuku-gateway/internal/normalize"
	"github.com/sibuku/sibuku-gateway/internal/upstream"
	log "github.com/sirupsen/logrus"
)

// extractToken digs the access token out of the login response; the
// backend has wrapped it differently across releases.
func extractToken(body any) string {
	m, ok := body.(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range []string{"access_token", "token"} {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	if inner, ok := m["data"].(map[string]any); ok {
		return extractToken(inner)
	}
	return ""
}

// Login forwards credentials to /auth/login and, on success, persists
// the returned token as the session cookie. The payload duplicates the
// email into a username field for backends that authenticate on either.
func (a *API) Login(c *gin.Context) {
	var body map[string]any
	if raw := readBody(c); raw != nil {
		if err := json.Unmarshal(raw, &body); err != nil {
			body = nil
		}
	}
	if body == nil {
		body = map[string]any{}
	}

	payload := make(map[string]any, len(body)+1)
	for k, v := range body {
		payload[k] = v
	}
	if payload["username"] == nil && body["email"] != nil {
		payload["username"] = body["email"]
	}

	res, err := a.Upstream.Do(c.Request.Context(), upstream.Request{
		Operation: "login",
		Method:    http.MethodPost,
		Path:      "/auth/login",
		JSON:      payload,
	})
	if err != nil {
		a.fail(c, "login", err)
		return
	}

	if res.Status < 200 || res.Status >= 300 {
		c.JSON(res.Status, gin.H{"detail": normalize.Message(res.JSON, "Login gagal")})
		return
	}

	if token := extractToken(res.JSON); token != "" {
		a.Sessions.SetToken(c, token)
	} else {
		log.Warn("Login succeeded but no access token in response body")
	}

	relay(c, res)
}

// Register forwards the registration body without an Authorization
// header, so a stale token can never shadow the new account.
func (a *API) Register(c *gin.Context) {
	res, err := a.Upstream.Do(c.Request.Context(), upstream.Request{
		Operation: "register",
		Method:    http.MethodPost,
		Path:      "/auth/register",
		RawJSON:   readBody(c),
	})
	if err != nil {
		a.fail(c, "register", err)
		return
	}
	if res.Status < 200 || res.Status >= 300 {
		c.JSON(res.Status, gin.H{"detail": normalize.Message(res.JSON, "Register gagal")})
		return
	}
	if res.JSON == nil {
		c.JSON(res.Status, gin.H{"message": "Registrasi berhasil"})
		return
	}
	relay(c, res)
}

// Logout clears the session cookie. Purely local: the backend keeps no
// session state worth revoking.
func (a *API) Logout(c *gin.Context) {
	a.Sessions.ClearToken(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me returns the authenticated user's profile from /auth/me, unwrapping
// the data/user envelopes some backend releases put around it.
func (a *API) Me(c *gin.Context) {
	token, ok := a.requireToken(c)
	if !ok {
		return
	}
	res, err := a.Upstream.Do(c.Request.Context(), upstream.Request{
		Operation: "me",
		Method:    http.MethodGet,
		Path:      "/auth/me",
		Token:     token,
	})
	if err != nil {
		a.fail(c, "me", err)
		return
	}
	if res.Status >= 200 && res.Status < 300 && res.JSON != nil {
		if user := normalize.Object(res.JSON); user != nil {
			c.JSON(res.Status, user)
			return
		}
	}
	relay(c, res)
}

// CompleteOnboarding sets the intro marker cookie; no upstream call.
func (a *API) CompleteOnboarding(c *gin.Context) {
	a.Sessions.SetOnboarded(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
