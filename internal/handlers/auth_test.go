package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sibuku/sibuku-gateway/internal/models"
	"github.com/sibuku/sibuku-gateway/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeWithoutCookieIs401AndNeverCallsUpstream(t *testing.T) {
	fb := newFakeBackend(t, nil)
	router := testRouter(fb)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Unauthorized"}`, w.Body.String())
	assert.Zero(t, fb.CallCount())
}

func TestMeForwardsBearerToken(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id_user":1,"nama":"Budi","email":"a@b.com","role":"customer"}`))
	})
	router := testRouter(fb)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, withSession(httptest.NewRequest(http.MethodGet, "/api/me", nil), "tok123"))

	assert.Equal(t, http.StatusOK, w.Code)
	calls := fb.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/auth/me", calls[0].Path)
	assert.Equal(t, "Bearer tok123", calls[0].Header.Get("Authorization"))

	var me models.MeUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, 1, me.IDUser)
	assert.Equal(t, "customer", me.Role)
}

func TestMeStripsDoubleWrappedBearerPrefix(t *testing.T) {
	fb := newFakeBackend(t, nil)
	router := testRouter(fb)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, withSession(httptest.NewRequest(http.MethodGet, "/api/me", nil), "Bearer Bearer tok123"))

	calls := fb.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer tok123", calls[0].Header.Get("Authorization"))
}

func TestMeUnwrapsUserEnvelope(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"id_user":1,"nama":"Budi"}}`))
	})
	router := testRouter(fb)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, withSession(httptest.NewRequest(http.MethodGet, "/api/me", nil), "tok123"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id_user":1,"nama":"Budi"}`, w.Body.String())
}

func TestLoginSetsSessionCookie(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		raw, err := json.Marshal(models.TokenResponse{
			AccessToken: "tok123",
			TokenType:   "bearer",
			User:        models.AuthUser{ID: 1, Nama: "Budi", Email: "a@b.com", Role: "customer"},
		})
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		w.Write(raw)
	})
	router := testRouter(fb)

	loginBody, err := json.Marshal(models.LoginPayload{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	// compatibility duplication: username mirrors email
	calls := fb.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/auth/login", calls[0].Path)
	assert.Empty(t, calls[0].Header.Get("Authorization"))

	var sent map[string]any
	require.NoError(t, json.Unmarshal(calls[0].Body, &sent))
	assert.Equal(t, "a@b.com", sent["email"])
	assert.Equal(t, "a@b.com", sent["username"])
	assert.Equal(t, "secret", sent["password"])

	cookies := w.Result().Cookies()
	var tokenCookie *http.Cookie
	for _, ck := range cookies {
		if ck.Name == session.TokenCookie {
			tokenCookie = ck
		}
	}
	require.NotNil(t, tokenCookie, "login must set the session cookie")
	assert.Equal(t, "tok123", tokenCookie.Value)
	assert.True(t, tokenCookie.HttpOnly)
}

func TestLoginSanitizesPrefixedTokenBeforePersisting(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"token":"Bearer tok456"}}`))
	})
	router := testRouter(fb)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.com","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "tok456", cookies[0].Value)
}

func TestLoginFailureRelaysBackendDetailWithoutCookie(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Email atau password salah"}`))
	})
	router := testRouter(fb)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Email atau password salah"}`, w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestRegisterFlattensValidationErrors(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[
			{"loc":["body","nama"],"msg":"field required"},
			{"loc":["body","email"],"msg":"value is not a valid email address"}
		]}`))
	})
	router := testRouter(fb)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"detail":"nama: field required • email: value is not a valid email address"}`, w.Body.String())
}

func TestLogoutClearsCookieWithoutUpstream(t *testing.T) {
	fb := newFakeBackend(t, nil)
	router := testRouter(fb)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, fb.CallCount())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.TokenCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestRegisterForwardsWithoutAuthorization(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"Registrasi berhasil"}`))
	})
	router := testRouter(fb)

	registerBody, err := json.Marshal(models.RegisterPayload{Nama: "Budi", Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(registerBody))
	req.Header.Set("Content-Type", "application/json")
	// stale token must not leak into registration
	withSession(req, "old-token")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	calls := fb.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/auth/register", calls[0].Path)
	assert.Empty(t, calls[0].Header.Get("Authorization"))
}
